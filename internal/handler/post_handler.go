package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	posts    *usecase.PostUsecase
	comments *usecase.CommentUsecase
}

func NewPostHandler(posts *usecase.PostUsecase, comments *usecase.CommentUsecase) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

func (h *PostHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/posts")

	//一覧・閲覧は未ログインでも可
	g.GET("", h.list)
	g.GET("/:postId", h.get)
	g.GET("/:postId/comments", h.listComments)

	g.POST("", h.create, middleware.RequireAuth())
	g.PUT("/:postId", h.update, middleware.RequireAuth())
	g.DELETE("/:postId", h.delete, middleware.RequireAuth())

	g.POST("/:postId/comments", h.createComment, middleware.RequireAuth())
	g.PUT("/:postId/comments/:commentId", h.updateComment, middleware.RequireAuth())
	g.DELETE("/:postId/comments/:commentId", h.deleteComment, middleware.RequireAuth())
}

func (h *PostHandler) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	market := c.QueryParam("market")
	if market != "" {
		out, err := h.posts.ListByMarket(c.Request().Context(), market, page, size)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	out, err := h.posts.List(c.Request().Context(), page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) get(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}

	out, err := h.posts.Get(c.Request().Context(), postID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) create(c echo.Context) error {
	p, _ := middleware.GetPrincipal(c)

	var in usecase.PostCreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.posts.Create(c.Request().Context(), p.Username, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PostHandler) update(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}

	var in usecase.PostUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.posts.Update(c.Request().Context(), actorFrom(c), postID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) delete(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}

	if err := h.posts.Delete(c.Request().Context(), actorFrom(c), postID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) listComments(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}

	out, err := h.comments.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) createComment(c echo.Context) error {
	p, _ := middleware.GetPrincipal(c)

	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.comments.Create(c.Request().Context(), p.Username, postID, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PostHandler) updateComment(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.comments.Update(c.Request().Context(), actorFrom(c), postID, commentID, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) deleteComment(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post id"})
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
	}

	if err := h.comments.Delete(c.Request().Context(), actorFrom(c), postID, commentID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func actorFrom(c echo.Context) usecase.Actor {
	p, _ := middleware.GetPrincipal(c)

	isAdmin := false
	for _, r := range p.Roles {
		if r == model.RoleAdmin {
			isAdmin = true
			break
		}
	}
	return usecase.Actor{Username: p.Username, IsAdmin: isAdmin}
}
