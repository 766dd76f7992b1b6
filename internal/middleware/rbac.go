package middleware

import (
	"strconv"

	"bookstore/internal/common"
	"bookstore/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireAdmin lets only administrators through. It must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			if role != models.RoleAdmin {
				return common.SendForbiddenError(c)
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin lets a customer reach only resources addressed by their own
// id in the named path parameter. Administrators pass unconditionally.
func RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			if role, _ := common.GetRoleFromContext(ctx); role == models.RoleAdmin {
				return next(c)
			}

			target, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil || target != userID {
				return common.SendForbiddenError(c)
			}
			return next(c)
		}
	}
}
