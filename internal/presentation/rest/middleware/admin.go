package middleware

import (
	"github.com/labstack/echo/v4"

	"coin-server/internal/domain/user"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// AdminMiddleware 管理者ロールを要求するミドルウェア
// AuthMiddlewareの後段に配置すること
func AdminMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if role != user.RoleAdmin.String() {
				logger.Warn(c.Request().Context(), "Admin role required", map[string]interface{}{
					"user_id": c.Get(ContextKeyUserID),
					"role":    role,
					"path":    c.Request().URL.Path,
				})
				return c.JSON(403, ErrorResponse{
					Error:   "forbidden",
					Message: "Admin role required",
				})
			}
			return next(c)
		}
	}
}
