package middleware

import (
	"net/http"

	"stroymonitor/internal/service"

	"github.com/labstack/echo/v4"
)

// HeaderAuthToken carries the opaque session token on every
// authenticated request.
const HeaderAuthToken = "X-Auth-Token"

type AuthMiddleware struct {
	Sessions *service.SessionManager
}

// RequireSession validates the session token before any business logic
// runs. Missing, unknown, expired and revoked tokens all yield 401.
func (m AuthMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Sessions == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := c.Request().Header.Get(HeaderAuthToken)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		profile, err := m.Sessions.Validate(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if profile == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		SetProfile(c, profile)
		return next(c)
	}
}
