package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrRoleNotFound = errors.New("role not found")

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	// ROLE_USER / ROLE_ADMIN が無ければ作る（起動時）
	EnsureDefaults(ctx context.Context) error
}
