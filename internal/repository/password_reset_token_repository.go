package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrResetTokenNotFound = errors.New("password reset token not found")

type PasswordResetTokenRepository interface {
	// 同一ユーザーの既存トークンは上書き（supersede）
	Upsert(ctx context.Context, token *model.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	// token値で1行消す。0行は ErrResetTokenNotFound。
	// 消費の一回性とsupersede後の旧トークン拒否はこの値一致に依っている。
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
