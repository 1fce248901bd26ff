package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CommentDTO struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"post_id"`
	Content        string    `json:"content"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CommentUsecase struct {
	comments repo.CommentRepository
	posts    repo.PostRepository
	users    repo.UserRepository
}

func NewCommentUsecase(
	comments repo.CommentRepository,
	posts repo.PostRepository,
	users repo.UserRepository,
) *CommentUsecase {
	return &CommentUsecase{
		comments: comments,
		posts:    posts,
		users:    users,
	}
}

func (u *CommentUsecase) Create(ctx context.Context, username string, postID int64, content string) (*CommentDTO, error) {
	if content == "" {
		return nil, ErrValidation
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrUnavailable
	}

	//対象の投稿が存在すること
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, ErrUnavailable
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: &user.ID,
		Author:   user,
		Content:  content,
	}

	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, ErrUnavailable
	}

	dto := toCommentDTO(comment)
	return &dto, nil
}

func (u *CommentUsecase) ListByPost(ctx context.Context, postID int64) ([]CommentDTO, error) {
	comments, err := u.comments.ListByPostID(ctx, postID)
	if err != nil {
		return nil, ErrUnavailable
	}

	dtos := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		dtos = append(dtos, toCommentDTO(&comments[i]))
	}
	return dtos, nil
}

func (u *CommentUsecase) Update(ctx context.Context, actor Actor, postID int64, commentID int64, content string) (*CommentDTO, error) {
	if content == "" {
		return nil, ErrValidation
	}

	comment, err := u.findInPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	if err := checkOwnership(ctx, u.users, actor, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Content = content

	if err := u.comments.Update(ctx, comment); err != nil {
		return nil, ErrUnavailable
	}

	dto := toCommentDTO(comment)
	return &dto, nil
}

func (u *CommentUsecase) Delete(ctx context.Context, actor Actor, postID int64, commentID int64) error {
	comment, err := u.findInPost(ctx, postID, commentID)
	if err != nil {
		return err
	}

	if err := checkOwnership(ctx, u.users, actor, comment.AuthorID); err != nil {
		return err
	}

	if err := u.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repo.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return ErrUnavailable
	}
	return nil
}

// コメントが対象の投稿に属しているか確認してから返す
func (u *CommentUsecase) findInPost(ctx context.Context, postID int64, commentID int64) (*model.Comment, error) {
	comment, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, ErrUnavailable
	}

	if comment.PostID != postID {
		return nil, ErrValidation
	}

	return comment, nil
}

func toCommentDTO(c *model.Comment) CommentDTO {
	nickname := deletedUserNickname
	if c.Author != nil {
		nickname = c.Author.Nickname
	}

	return CommentDTO{
		ID:             c.ID,
		PostID:         c.PostID,
		Content:        c.Content,
		AuthorNickname: nickname,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
