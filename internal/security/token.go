// Package security holds the token codec and the revocation registry.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	// 署名不一致などパース可能だが受理できないもの
	ErrTokenInvalid = errors.New("token invalid")
)

// 検証済みトークンから取り出す値
type Claims struct {
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

type jwtClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenServiceはHS256で署名付きトークンを発行・検証する。
// 状態を持たない：鍵とTTLは起動時に渡され、以後不変。
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) AccessTokenTTL() time.Duration { return s.accessTTL }

// アクセストークン発行（sub + roles + iat/exp）
func (s *TokenService) IssueAccess(username string, roles []string, now time.Time) (string, time.Time, error) {
	return s.issue(username, roles, now, s.accessTTL)
}

// リフレッシュトークン発行（roleは載せない、長いTTL）
func (s *TokenService) IssueRefresh(username string, now time.Time) (string, time.Time, error) {
	return s.issue(username, nil, now, s.refreshTTL)
}

func (s *TokenService) issue(username string, roles []string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)

	claims := jwtClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// 署名と期限を検証してclaimsを返す。
// 失敗区分はログ用で、境界では全部「認証失敗」にまとめる。
func (s *TokenService) Verify(token string) (*Claims, error) {
	var claims jwtClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return &Claims{
		Username:  claims.Subject,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
