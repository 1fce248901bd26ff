package middleware

import (
	"net/http"
	"strings"

	"app/internal/logging"
	"app/internal/security"

	"github.com/labstack/echo/v4"
)

const (
	CtxUsernameKey = "auth_username" // string
	CtxRolesKey    = "auth_roles"    // []string
)

// リクエスト単位の認証済みユーザー。保存はしない。
type Principal struct {
	Username string
	Roles    []string
}

// AuthenticateはBearerトークンを検証してPrincipalをcontextへ載せる。
// ヘッダ無し・検証失敗は匿名のまま通す（要求するかはルート側のRequireAuth）。
// 失効済みトークンだけはここで401を返す：署名が有効なぶん、
// 区別したメッセージ（session ended）で落とす。
func Authenticate(tokens *security.TokenService, revocations *security.RevocationRegistry, logger *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractBearer(c.Request())
			if raw == "" {
				return next(c)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				//失敗区分はログだけに残し、クライアントには返さない
				logger.Debug().Err(err).Msg("bearer token rejected")
				return next(c)
			}

			if revocations.IsRevoked(raw) {
				return c.JSON(http.StatusUnauthorized, errorJSON("session ended"))
			}

			c.Set(CtxUsernameKey, claims.Username)
			c.Set(CtxRolesKey, claims.Roles)

			return next(c)
		}
	}
}

// 認証必須ルート用。匿名なら401。
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := GetPrincipal(c); !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}

// contextからPrincipalを取り出す
func GetPrincipal(c echo.Context) (Principal, bool) {
	username, ok := c.Get(CtxUsernameKey).(string)
	if !ok || username == "" {
		return Principal{}, false
	}

	roles, _ := c.Get(CtxRolesKey).([]string)

	return Principal{Username: username, Roles: roles}, true
}

// Authorization: Bearer <token> からtokenを抜く
func extractBearer(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
