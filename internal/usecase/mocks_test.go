package usecase

import (
	"context"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	args := m.Called(ctx, nickname)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repo.UserRepository = (*MockUserRepository)(nil)

// =====================
// Mock: RoleRepository
// =====================

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*model.Role)
	return r, args.Error(1)
}

func (m *MockRoleRepository) EnsureDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ repo.RoleRepository = (*MockRoleRepository)(nil)

// =====================
// Mock: AuthValidator / Notifier
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateRegister(ctx context.Context, username string, email string, nickname string, password string) error {
	args := m.Called(ctx, username, email, nickname, password)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateResetPassword(ctx context.Context, token string, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

var _ AuthValidator = (*MockAuthValidator)(nil)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendPasswordReset(ctx context.Context, email string, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

var _ Notifier = (*MockNotifier)(nil)

// =====================
// In-memory fake: RefreshTokenRepository
// ローテーション・同時ログアウトの動きを実DBに近い形で見たいので
// モックではなく状態を持つfakeを使う
// =====================

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	byUser map[int64]string // userID -> token
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byUser: map[int64]string{}}
}

func (f *fakeRefreshTokenRepo) Upsert(ctx context.Context, userID int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[userID] = token
	return nil
}

func (f *fakeRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, t := range f.byUser {
		if t == token {
			return &model.RefreshToken{UserID: userID, Token: t}, nil
		}
	}
	return nil, repo.ErrRefreshTokenNotFound
}

func (f *fakeRefreshTokenRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byUser, userID)
	return nil
}

var _ repo.RefreshTokenRepository = (*fakeRefreshTokenRepo)(nil)

// =====================
// In-memory fake: PasswordResetTokenRepository
// 消費の一回性（DeleteByTokenが勝者1件だけ成功）を再現する
// =====================

type fakeResetTokenRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{nextID: 1, rows: map[int64]model.PasswordResetToken{}}
}

func (f *fakeResetTokenRepo) Upsert(ctx context.Context, token *model.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	//同一ユーザーの行は上書き
	for id, row := range f.rows {
		if row.UserID == token.UserID {
			token.ID = id
			f.rows[id] = *token
			return nil
		}
	}

	token.ID = f.nextID
	f.nextID++
	f.rows[token.ID] = *token
	return nil
}

func (f *fakeResetTokenRepo) FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Token == token {
			out := row
			return &out, nil
		}
	}
	return nil, repo.ErrResetTokenNotFound
}

func (f *fakeResetTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.rows {
		if row.Token == token {
			delete(f.rows, id)
			return nil
		}
	}
	return repo.ErrResetTokenNotFound
}

func (f *fakeResetTokenRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.rows {
		if row.UserID == userID {
			delete(f.rows, id)
		}
	}
	return nil
}

var _ repo.PasswordResetTokenRepository = (*fakeResetTokenRepo)(nil)

// =====================
// Fake: TransactionManager
// fnをそのまま実行する。rollbackの再現はしない
// =====================

type fakeTxRepos struct {
	users    repo.UserRepository
	rts      repo.RefreshTokenRepository
	resets   repo.PasswordResetTokenRepository
	posts    repo.PostRepository
	comments repo.CommentRepository
}

func (r fakeTxRepos) Users() repo.UserRepository                  { return r.users }
func (r fakeTxRepos) RefreshTokens() repo.RefreshTokenRepository  { return r.rts }
func (r fakeTxRepos) ResetTokens() repo.PasswordResetTokenRepository { return r.resets }
func (r fakeTxRepos) Posts() repo.PostRepository                  { return r.posts }
func (r fakeTxRepos) Comments() repo.CommentRepository            { return r.comments }

type fakeTxManager struct {
	repos fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

var _ repo.TransactionManager = (*fakeTxManager)(nil)

// =====================
// Clock
// =====================

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// =====================
// Mock: PostRepository / CommentRepository
// =====================

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, postID int64) (*model.Post, error) {
	args := m.Called(ctx, postID)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, page int, size int) ([]model.Post, int64, error) {
	args := m.Called(ctx, page, size)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ListByMarket(ctx context.Context, market string, page int, size int) ([]model.Post, int64, error) {
	args := m.Called(ctx, market, page, size)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) DetachAuthor(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repo.PostRepository = (*MockPostRepository)(nil)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	args := m.Called(ctx, commentID)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *MockCommentRepository) ListByPostID(ctx context.Context, postID int64) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]model.Comment)
	return comments, args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) DetachAuthor(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repo.CommentRepository = (*MockCommentRepository)(nil)

// =====================
// Mock: CandleRepository / CandleFetcher
// =====================

type MockCandleRepository struct {
	mock.Mock
}

func (m *MockCandleRepository) SaveBatch(ctx context.Context, candles []model.Candle) error {
	args := m.Called(ctx, candles)
	return args.Error(0)
}

func (m *MockCandleRepository) ListRecent(ctx context.Context, market string, limit int) ([]model.Candle, error) {
	args := m.Called(ctx, market, limit)
	candles, _ := args.Get(0).([]model.Candle)
	return candles, args.Error(1)
}

var _ repo.CandleRepository = (*MockCandleRepository)(nil)

type MockCandleFetcher struct {
	mock.Mock
}

func (m *MockCandleFetcher) FetchMinuteCandles(ctx context.Context, market string, unit int, count int) ([]model.Candle, error) {
	args := m.Called(ctx, market, unit, count)
	candles, _ := args.Get(0).([]model.Candle)
	return candles, args.Error(1)
}

var _ CandleFetcher = (*MockCandleFetcher)(nil)
