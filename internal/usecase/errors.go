package usecase

import (
	"errors"
	"fmt"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗（存在しないユーザーとパスワード違いは区別しない）
	ErrInvalidCredentials = errors.New("invalid credentials")
	//409 username重複
	ErrDuplicateUsername = errors.New("username already taken")
	//409 nickname重複
	ErrDuplicateNickname = errors.New("nickname already taken")
	//401 不明・失効・ローテーション済みは呼び出し側から区別できない
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	//400 usernameとemailの組み合わせ不一致
	ErrAccountMismatch = errors.New("account mismatch")
	//400 再設定トークンが無い（消費済み・上書き済み含む）
	ErrResetTokenNotFound = errors.New("reset token not found")
	//400 再設定トークン期限切れ
	ErrResetTokenExpired = errors.New("reset token expired")
	//404
	ErrUserNotFound = errors.New("user not found")
	//404
	ErrPostNotFound = errors.New("post not found")
	//404
	ErrCommentNotFound = errors.New("comment not found")
	//403
	ErrForbidden = errors.New("forbidden")
	//503 依存先（DB・メール）の失敗。リトライは呼び出し側の責務。
	ErrUnavailable = errors.New("dependency unavailable")
	//500
	ErrInternal = errors.New("internal error")
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
