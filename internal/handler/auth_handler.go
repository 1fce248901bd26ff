package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// refresh tokenを運ぶcookie。
// http-only + SameSite=Laxのcookie輸送に一本化している（JSON bodyでは受けない）。
const refreshCookieName = "refreshToken"

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	refreshTTL   time.Duration // refresh cookieの有効期限
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		refreshTTL:   cfg.RefreshTokenTTL,
		cookieSecure: cfg.GoEnv == "prod",
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/refresh", h.refresh)
	g.POST("/logout", h.logout)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
	g.POST("/verify-username-for-password-reset", h.verifyUsername)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshToken)

	//JSONレスポンス（user + access token）
	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeError(c, err)
	}

	//ローテーション済みの新しいrefreshをcookieへ
	h.setRefreshCookie(c, out.RefreshToken)

	return c.JSON(http.StatusOK, out.Body)
}

// access token（Authorizationヘッダ）とrefresh cookieの両方を失効させる。
// どちらが欠けていても成功で返す（冪等）。
func (h *AuthHandler) logout(c echo.Context) error {
	accessToken := extractBearerToken(c)

	refreshToken := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.uc.Logout(c.Request().Context(), accessToken, refreshToken); err != nil {
		return writeError(c, err)
	}

	h.clearRefreshCookie(c)

	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "logged out"})
}

type forgotPasswordRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and email are required"})
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Username, req.Email); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "password reset mail sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "password has been reset"})
}

type verifyUsernameRequest struct {
	Username string `json:"username"`
}

type verifyUsernameResponse struct {
	Email string `json:"email"`
}

func (h *AuthHandler) verifyUsername(c echo.Context) error {
	var req verifyUsernameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
	}

	masked, err := h.uc.VerifyUsernameForReset(c.Request().Context(), req.Username)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, verifyUsernameResponse{Email: masked})
}

// refreshtoken をCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func extractBearerToken(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authz) > len(prefix) && authz[:len(prefix)] == prefix {
		return authz[len(prefix):]
	}
	return ""
}
