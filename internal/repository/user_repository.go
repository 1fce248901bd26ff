package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（Rolesの紐付けも含む）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する（Roles込み）。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// usernameからユーザーを1件取得する（Roles込み）。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	// ユーザー情報の更新=>メール・ニックネームの変更など
	Update(ctx context.Context, user *model.User) error
	//パスワードハッシュだけを更新
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Delete(ctx context.Context, userID int64) error
}
