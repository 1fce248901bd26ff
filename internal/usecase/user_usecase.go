package usecase

import (
	"context"
	"errors"

	repo "app/internal/repository"
)

type UserUpdateInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUsecase struct {
	users  repo.UserRepository
	tx     repo.TransactionManager
	hasher PasswordHasher
}

func NewUserUsecase(
	users repo.UserRepository,
	tx repo.TransactionManager,
	hasher PasswordHasher,
) *UserUsecase {
	return &UserUsecase{
		users:  users,
		tx:     tx,
		hasher: hasher,
	}
}

func (u *UserUsecase) Me(ctx context.Context, username string) (*UserDTO, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrUnavailable
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// email / passwordの変更。空欄は変更なし。
func (u *UserUsecase) Update(ctx context.Context, username string, in UserUpdateInput) (*UserDTO, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrUnavailable
	}

	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		pwHash, err := u.hasher.Hash(in.Password)
		if err != nil {
			return nil, ErrInternal
		}
		user.PasswordHash = pwHash
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, ErrUnavailable
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (u *UserUsecase) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := u.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, ErrUnavailable
	}
	return !taken, nil
}

func (u *UserUsecase) IsNicknameAvailable(ctx context.Context, nickname string) (bool, error) {
	taken, err := u.users.ExistsByNickname(ctx, nickname)
	if err != nil {
		return false, ErrUnavailable
	}
	return !taken, nil
}

// 退会。トークン類を消し、投稿・コメントは作者を外して残す。
// 全部1トランザクション。
func (u *UserUsecase) Delete(ctx context.Context, username string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		if err := r.RefreshTokens().DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := r.ResetTokens().DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := r.Posts().DetachAuthor(ctx, user.ID); err != nil {
			return err
		}
		if err := r.Comments().DetachAuthor(ctx, user.ID); err != nil {
			return err
		}

		return r.Users().Delete(ctx, user.ID)
	})

	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrUnavailable
	}
	return nil
}
