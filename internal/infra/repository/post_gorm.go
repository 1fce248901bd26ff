package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type postGormRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repo.PostRepository {
	return &postGormRepository{db: db}
}

func (r *postGormRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	return nil
}

func (r *postGormRepository) FindByID(ctx context.Context, postID int64) (*model.Post, error) {
	var p model.Post

	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", postID).
		First(&p).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrPostNotFound
		}
		return nil, err
	}

	return &p, nil
}

// created_at降順でページング
func (r *postGormRepository) List(ctx context.Context, page int, size int) ([]model.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.Post{}), page, size)
}

func (r *postGormRepository) ListByMarket(ctx context.Context, market string, page int, size int) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("market = ?", market)
	return r.list(ctx, q, page, size)
}

func (r *postGormRepository) list(ctx context.Context, q *gorm.DB, page int, size int) ([]model.Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := q.
		Preload("Author").
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postGormRepository) Update(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	return nil
}

func (r *postGormRepository) Delete(ctx context.Context, postID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", postID).
		Delete(&model.Post{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrPostNotFound
	}
	return nil
}

// 退会ユーザーの投稿は author_id をNULLにして本文は残す
func (r *postGormRepository) DetachAuthor(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", userID).
		Update("author_id", nil).Error
}
