package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 退会ユーザーの表示名
const deletedUserNickname = "退会済みユーザー"

type PostDTO struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorNickname string    `json:"author_nickname"`
	Market         string    `json:"market"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PostPageDTO struct {
	Posts []PostDTO `json:"posts"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}

type PostCreateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Market  string `json:"market"`
}

type PostUpdateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostUsecase struct {
	posts repo.PostRepository
	users repo.UserRepository
}

func NewPostUsecase(posts repo.PostRepository, users repo.UserRepository) *PostUsecase {
	return &PostUsecase{posts: posts, users: users}
}

// authorはPrincipalのusernameから引く
func (u *PostUsecase) Create(ctx context.Context, username string, in PostCreateInput) (*PostDTO, error) {
	if in.Title == "" || in.Content == "" {
		return nil, ErrValidation
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrUnavailable
	}

	post := &model.Post{
		AuthorID: &user.ID,
		Author:   user,
		Title:    in.Title,
		Content:  in.Content,
		Market:   in.Market,
	}

	if err := u.posts.Create(ctx, post); err != nil {
		return nil, ErrUnavailable
	}

	dto := toPostDTO(post)
	return &dto, nil
}

func (u *PostUsecase) List(ctx context.Context, page int, size int) (*PostPageDTO, error) {
	page, size = clampPage(page, size)

	posts, total, err := u.posts.List(ctx, page, size)
	if err != nil {
		return nil, ErrUnavailable
	}

	return toPostPageDTO(posts, total, page, size), nil
}

func (u *PostUsecase) ListByMarket(ctx context.Context, market string, page int, size int) (*PostPageDTO, error) {
	page, size = clampPage(page, size)

	posts, total, err := u.posts.ListByMarket(ctx, market, page, size)
	if err != nil {
		return nil, ErrUnavailable
	}

	return toPostPageDTO(posts, total, page, size), nil
}

func (u *PostUsecase) Get(ctx context.Context, postID int64) (*PostDTO, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, ErrUnavailable
	}

	dto := toPostDTO(post)
	return &dto, nil
}

func (u *PostUsecase) Update(ctx context.Context, actor Actor, postID int64, in PostUpdateInput) (*PostDTO, error) {
	if in.Title == "" || in.Content == "" {
		return nil, ErrValidation
	}

	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, ErrUnavailable
	}

	if err := checkOwnership(ctx, u.users, actor, post.AuthorID); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content

	if err := u.posts.Update(ctx, post); err != nil {
		return nil, ErrUnavailable
	}

	dto := toPostDTO(post)
	return &dto, nil
}

func (u *PostUsecase) Delete(ctx context.Context, actor Actor, postID int64) error {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return ErrUnavailable
	}

	if err := checkOwnership(ctx, u.users, actor, post.AuthorID); err != nil {
		return err
	}

	if err := u.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return ErrUnavailable
	}
	return nil
}

func toPostDTO(p *model.Post) PostDTO {
	nickname := deletedUserNickname
	if p.Author != nil {
		nickname = p.Author.Nickname
	}

	return PostDTO{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		AuthorNickname: nickname,
		Market:         p.Market,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPostPageDTO(posts []model.Post, total int64, page int, size int) *PostPageDTO {
	dtos := make([]PostDTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, toPostDTO(&posts[i]))
	}

	return &PostPageDTO{
		Posts: dtos,
		Total: total,
		Page:  page,
		Size:  size,
	}
}

func clampPage(page int, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
