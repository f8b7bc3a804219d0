package middleware

import (
	"net/http"

	"stroymonitor/internal/entity"
	"stroymonitor/internal/service"

	"github.com/labstack/echo/v4"
)

func RequireRole(role entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile, ok := ProfileFromContext(c)
			if !ok || !service.Authorize(profile, role) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
