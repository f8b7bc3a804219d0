package handler

import (
	"net/http"

	"stroymonitor/api/middleware"
	"stroymonitor/internal/dto"
	"stroymonitor/internal/entity"
	"stroymonitor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the admin-only user management and audit endpoints.
// Role enforcement happens in the route middleware chain before any of
// these run.
type UserHandler struct {
	Auth     *service.AuthService
	Activity *service.ActivityLogger
	Validate *validator.Validate
}

func NewUserHandler(auth *service.AuthService, activity *service.ActivityLogger, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		Auth:     auth,
		Activity: activity,
		Validate: validate,
	}
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Auth.ListUsers(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UsersResponse{Users: dto.UserResponsesFromEntities(users)})
}

func (h *UserHandler) ListActivityLogs(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	logs, err := h.Activity.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActivityLogsResponse{Logs: dto.ActivityLogResponsesFromEntities(logs)})
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	actor, ok := middleware.ProfileFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, "email and password are required")
	}

	id, err := h.Auth.CreateUser(c.Request().Context(), *actor, service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     entity.UserRole(req.Role),
	}, stringPtr(c.RealIP()), stringPtr(c.Request().UserAgent()))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateUserResponse{ID: id.String(), Message: "user created"})
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, ok := middleware.ProfileFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid fields")
	}

	input := service.UpdateUserInput{
		FullName: req.FullName,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := entity.UserRole(*req.Role)
		input.Role = &role
	}

	if err := h.Auth.UpdateUser(c.Request().Context(), *actor, userID, input,
		stringPtr(c.RealIP()), stringPtr(c.Request().UserAgent())); err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "user updated"})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	actor, ok := middleware.ProfileFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.ChangePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, "new password is required")
	}

	if err := h.Auth.ChangePassword(c.Request().Context(), *actor, userID, req.NewPassword,
		stringPtr(c.RealIP()), stringPtr(c.Request().UserAgent())); err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "password changed"})
}

func (h *UserHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
