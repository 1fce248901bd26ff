package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// Author込みで1件取得
	FindByID(ctx context.Context, postID int64) (*model.Post, error)
	// created_at降順。totalは全件数。
	List(ctx context.Context, page int, size int) ([]model.Post, int64, error)
	ListByMarket(ctx context.Context, market string, page int, size int) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, postID int64) error
	// 退会ユーザーの投稿はauthorをNULLにして残す
	DetachAuthor(ctx context.Context, userID int64) error
}
