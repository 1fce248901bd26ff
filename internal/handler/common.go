package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラーをHTTPステータスへ写す。
// 認証系は内部区分をクライアントへ出さない。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidRefreshToken):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, usecase.ErrDuplicateUsername):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
	case errors.Is(err, usecase.ErrDuplicateNickname):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "nickname already taken"})
	case errors.Is(err, usecase.ErrAccountMismatch):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and email do not match"})
	case errors.Is(err, usecase.ErrResetTokenNotFound),
		errors.Is(err, usecase.ErrResetTokenExpired):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid or expired token"})
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrPostNotFound),
		errors.Is(err, usecase.ErrCommentNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, usecase.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporarily unavailable"})
	default:
		//500
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
