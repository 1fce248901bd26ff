package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//PrincipalのロールにROLE_ADMINが含まれるかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := GetPrincipal(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, role := range p.Roles {
				if role == model.RoleAdmin {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("admin only"))
		}
	}
}
