package middleware

import (
	"stroymonitor/internal/service"

	"github.com/labstack/echo/v4"
)

const contextProfileKey = "auth_profile"

func SetProfile(c echo.Context, profile *service.Profile) {
	c.Set(contextProfileKey, profile)
}

func ProfileFromContext(c echo.Context) (*service.Profile, bool) {
	value := c.Get(contextProfileKey)
	profile, ok := value.(*service.Profile)
	return profile, ok && profile != nil
}
