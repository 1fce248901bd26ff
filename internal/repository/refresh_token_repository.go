package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・削除。
// ユーザーごとに1行だけ：Upsertは同一ユーザーへの同時呼び出しでも
// 行が1つに収束すること（last-writer-wins）。
type RefreshTokenRepository interface {
	Upsert(ctx context.Context, userID int64, token string) error
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	// 0行削除はエラーにしない（logoutの冪等性）
	DeleteByUserID(ctx context.Context, userID int64) error
}
