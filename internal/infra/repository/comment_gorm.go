package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type commentGormRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repo.CommentRepository {
	return &commentGormRepository{db: db}
}

func (r *commentGormRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

func (r *commentGormRepository) FindByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	var c model.Comment

	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", commentID).
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrCommentNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *commentGormRepository) ListByPostID(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment

	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentGormRepository) Update(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	return nil
}

func (r *commentGormRepository) Delete(ctx context.Context, commentID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&model.Comment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrCommentNotFound
	}
	return nil
}

func (r *commentGormRepository) DetachAuthor(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("author_id = ?", userID).
		Update("author_id", nil).Error
}
