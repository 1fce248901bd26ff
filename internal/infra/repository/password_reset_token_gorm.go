package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type passwordResetTokenGormRepository struct {
	db *gorm.DB
}

func NewPasswordResetTokenRepository(db *gorm.DB) repo.PasswordResetTokenRepository {
	return &passwordResetTokenGormRepository{db: db}
}

// 同一ユーザーの既存行はtoken/expires_atを上書き（古いトークンは即無効）
func (r *passwordResetTokenGormRepository) Upsert(ctx context.Context, token *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at"}),
		}).
		Create(token).Error
}

func (r *passwordResetTokenGormRepository) FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken

	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&t).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrResetTokenNotFound
		}
		return nil, err
	}

	return &t, nil
}

// 更新件数0は「すでに消費済み/存在しない/上書き済み」。
// 同時消費の勝者判定はこのRowsAffectedに依っている。
// idではなくtoken値で消す：supersedeは同じ行をtokenごと上書きするので、
// id指定だと旧トークンが新しいトークンの行を消してしまう。
func (r *passwordResetTokenGormRepository) DeleteByToken(ctx context.Context, token string) error {
	res := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.PasswordResetToken{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrResetTokenNotFound
	}
	return nil
}

func (r *passwordResetTokenGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetToken{}).Error; err != nil {
		return err
	}
	return nil
}
