package validator

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"app/internal/usecase"
)

const minPasswordLength = 8

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, nickname string, password string) error {
	username = strings.TrimSpace(username)
	nickname = strings.TrimSpace(nickname)

	// 必須チェック
	if username == "" || email == "" || nickname == "" || password == "" {
		return fmt.Errorf("%w: all fields are required", usecase.ErrValidation)
	}

	if len(username) > 50 || len(nickname) > 50 {
		return fmt.Errorf("%w: username/nickname too long", usecase.ErrValidation)
	}

	// email形式
	if !isEmailLike(email) {
		return fmt.Errorf("%w: invalid email format", usecase.ErrValidation)
	}

	// パスワード最低文字数
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password too short", usecase.ErrValidation)
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", usecase.ErrValidation)
	}
	return nil
}

// 再設定の入力を検証
func (v *authValidator) ValidateResetPassword(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", usecase.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password too short", usecase.ErrValidation)
	}
	return nil
}

func isEmailLike(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
