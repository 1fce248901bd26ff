package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/users")

	//登録フォームの重複チェックに使うので未ログインでも可
	g.GET("/check-username", h.checkUsername)
	g.GET("/check-nickname", h.checkNickname)

	g.GET("/me", h.me, middleware.RequireAuth())
	g.PUT("/me", h.updateMe, middleware.RequireAuth())
	g.DELETE("/me", h.deleteMe, middleware.RequireAuth())
}

func (h *UserHandler) me(c echo.Context) error {
	p, _ := middleware.GetPrincipal(c)

	out, err := h.uc.Me(c.Request().Context(), p.Username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) updateMe(c echo.Context) error {
	p, _ := middleware.GetPrincipal(c)

	var in usecase.UserUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), p.Username, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) deleteMe(c echo.Context) error {
	p, _ := middleware.GetPrincipal(c)

	if err := h.uc.Delete(c.Request().Context(), p.Username); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func (h *UserHandler) checkUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
	}

	ok, err := h.uc.IsUsernameAvailable(c.Request().Context(), username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: ok})
}

func (h *UserHandler) checkNickname(c echo.Context) error {
	nickname := c.QueryParam("nickname")
	if nickname == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nickname is required"})
	}

	ok, err := h.uc.IsNicknameAvailable(c.Request().Context(), nickname)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: ok})
}
