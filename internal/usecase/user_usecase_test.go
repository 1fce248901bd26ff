package usecase

import (
	"context"
	"testing"

	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserUsecase_Update_BlankFieldsUnchanged(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)

	user := testUser(1, "alice")
	user.Email = "old@test.com"
	user.PasswordHash = "old-hash"

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	uc := NewUserUsecase(userRepo, &fakeTxManager{}, NewBcryptPasswordHasher(bcrypt.MinCost))

	//空欄は「変更しない」
	out, err := uc.Update(ctx, "alice", UserUpdateInput{Email: "", Password: ""})
	assert.NoError(t, err)
	assert.Equal(t, "old@test.com", out.Email)
	assert.Equal(t, "old-hash", user.PasswordHash)
}

func TestUserUsecase_Update_EmailAndPassword(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)

	user := testUser(1, "alice")
	user.PasswordHash = "old-hash"

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	uc := NewUserUsecase(userRepo, &fakeTxManager{}, NewBcryptPasswordHasher(bcrypt.MinCost))

	out, err := uc.Update(ctx, "alice", UserUpdateInput{Email: "new@test.com", Password: "NewPassword1"})
	assert.NoError(t, err)
	assert.Equal(t, "new@test.com", out.Email)

	//ハッシュ化されて保存される
	assert.NotEqual(t, "old-hash", user.PasswordHash)
	assert.NotEqual(t, "NewPassword1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NewPassword1")))
}

func TestUserUsecase_IsUsernameAvailable(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByUsername", mock.Anything, "taken").Return(true, nil)
	userRepo.On("ExistsByUsername", mock.Anything, "free").Return(false, nil)

	uc := NewUserUsecase(userRepo, &fakeTxManager{}, NewBcryptPasswordHasher(bcrypt.MinCost))

	ok, err := uc.IsUsernameAvailable(ctx, "taken")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.IsUsernameAvailable(ctx, "free")
	assert.NoError(t, err)
	assert.True(t, ok)
}

// 退会：トークン類の削除 → 投稿・コメントのauthor切り離し → ユーザー削除
func TestUserUsecase_Delete_Cascade(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rtRepo := newFakeRefreshTokenRepo()
	resetRepo := newFakeResetTokenRepo()

	user := testUser(1, "alice")
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	userRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
	postRepo.On("DetachAuthor", mock.Anything, int64(1)).Return(nil)
	commentRepo.On("DetachAuthor", mock.Anything, int64(1)).Return(nil)

	//削除対象のトークンを仕込む
	assert.NoError(t, rtRepo.Upsert(ctx, 1, "refresh-token"))
	_, err := NewPasswordResetFlow(
		&fakeTxManager{repos: fakeTxRepos{resets: resetRepo}},
		resetRepo, fixedClock{}, 0,
	).Request(ctx, 1)
	assert.NoError(t, err)

	txm := &fakeTxManager{repos: fakeTxRepos{
		users:    userRepo,
		rts:      rtRepo,
		resets:   resetRepo,
		posts:    postRepo,
		comments: commentRepo,
	}}

	uc := NewUserUsecase(userRepo, txm, NewBcryptPasswordHasher(bcrypt.MinCost))

	assert.NoError(t, uc.Delete(ctx, "alice"))

	//refresh行が消えている
	_, err = rtRepo.FindByToken(ctx, "refresh-token")
	assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)

	userRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
	commentRepo.AssertExpectations(t)
}

func TestUserUsecase_Delete_UnknownUser(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repo.ErrUserNotFound)

	txm := &fakeTxManager{repos: fakeTxRepos{users: userRepo}}
	uc := NewUserUsecase(userRepo, txm, NewBcryptPasswordHasher(bcrypt.MinCost))

	assert.ErrorIs(t, uc.Delete(ctx, "ghost"), ErrUserNotFound)
}
