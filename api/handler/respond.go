package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stroymonitor/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}

// writeServiceError maps the service sentinel errors onto the HTTP
// contract. Anything unrecognized becomes a 500 with a generic body; raw
// error text never reaches the caller.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidCode):
		return writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		return writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCodeDelivery):
		return writeError(c, http.StatusInternalServerError, err.Error())
	}
	return writeError(c, http.StatusInternalServerError, "internal server error")
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
