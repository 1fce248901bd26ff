package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users         repo.UserRepository
	refreshTokens repo.RefreshTokenRepository
	resetTokens   repo.PasswordResetTokenRepository
	posts         repo.PostRepository
	comments      repo.CommentRepository
}

func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) RefreshTokens() repo.RefreshTokenRepository { return r.refreshTokens }
func (r *txReposGorm) ResetTokens() repo.PasswordResetTokenRepository {
	return r.resetTokens
}
func (r *txReposGorm) Posts() repo.PostRepository       { return r.posts }
func (r *txReposGorm) Comments() repo.CommentRepository { return r.comments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:         NewUserRepository(tx),
			refreshTokens: NewRefreshTokenRepository(tx),
			resetTokens:   NewPasswordResetTokenRepository(tx),
			posts:         NewPostRepository(tx),
			comments:      NewCommentRepository(tx),
		}
		return fn(r)
	})
}
