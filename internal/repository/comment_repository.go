package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID int64) (*model.Comment, error)
	ListByPostID(ctx context.Context, postID int64) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, commentID int64) error
	DetachAuthor(ctx context.Context, userID int64) error
}
