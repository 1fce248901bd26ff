package usecase

import (
	"context"
	"errors"

	repo "app/internal/repository"
)

// 認証済みリクエストの操作主体。
type Actor struct {
	Username string
	IsAdmin  bool
}

// 投稿・コメントの編集権限チェック。作者本人か管理者のみ許可する。
// authorIDがnil（退会済みユーザーの残骸）の場合は管理者だけが触れる。
func checkOwnership(ctx context.Context, users repo.UserRepository, actor Actor, authorID *int64) error {
	if actor.IsAdmin {
		return nil
	}
	if authorID == nil {
		return ErrForbidden
	}

	user, err := users.FindByUsername(ctx, actor.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrForbidden
		}
		return ErrUnavailable
	}

	if user.ID != *authorID {
		return ErrForbidden
	}
	return nil
}
