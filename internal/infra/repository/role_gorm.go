package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleGormRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) repo.RoleRepository {
	return &roleGormRepository{db: db}
}

func (r *roleGormRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role

	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrRoleNotFound
		}
		return nil, err
	}

	return &role, nil
}

// 起動時にROLE_USER / ROLE_ADMINを用意する
func (r *roleGormRepository) EnsureDefaults(ctx context.Context) error {
	defaults := []model.Role{
		{Name: model.RoleUser},
		{Name: model.RoleAdmin},
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&defaults).Error
}
