package handler

import (
	"net/http"

	"stroymonitor/api/middleware"
	"stroymonitor/internal/dto"
	"stroymonitor/internal/entity"
	"stroymonitor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *service.SessionManager
	Codes    *service.VerificationCodeService
	Validate *validator.Validate
}

func NewAuthHandler(
	auth *service.AuthService,
	sessions *service.SessionManager,
	codes *service.VerificationCodeService,
	validate *validator.Validate,
) *AuthHandler {
	return &AuthHandler{
		Auth:     auth,
		Sessions: sessions,
		Codes:    codes,
		Validate: validate,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.Auth.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Code:      req.Code,
		IPAddress: stringPtr(c.RealIP()),
		UserAgent: stringPtr(c.Request().UserAgent()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ProfileResponseFromService(&result.Profile),
	})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	token := c.Request().Header.Get(middleware.HeaderAuthToken)
	if token == "" {
		return writeError(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
	}

	profile, err := h.Sessions.Validate(c.Request().Context(), token)
	if err != nil {
		return writeServiceError(c, err)
	}
	if profile == nil {
		return writeError(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
	}

	return c.JSON(http.StatusOK, dto.VerifyResponse{
		User: dto.ProfileResponseFromService(profile),
	})
}

// Logout is idempotent: revoking an unknown or already-expired token
// still answers 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := c.Request().Header.Get(middleware.HeaderAuthToken)
	if token != "" {
		if err := h.Sessions.Revoke(c.Request().Context(), token); err != nil {
			return writeServiceError(c, err)
		}
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) SendCode(c echo.Context) error {
	var req dto.SendCodeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, "email is required")
	}

	if err := h.Codes.Send(c.Request().Context(), req.Email, codePurpose(req.Purpose)); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "code sent"})
}

func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req dto.VerifyCodeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, "email and code are required")
	}

	valid, err := h.Codes.Verify(c.Request().Context(), req.Email, req.Code, codePurpose(req.Purpose))
	if err != nil {
		return writeServiceError(c, err)
	}
	if !valid {
		return writeServiceError(c, service.ErrInvalidCode)
	}
	return c.JSON(http.StatusOK, dto.VerifyCodeResponse{Message: "code confirmed", Valid: true})
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func codePurpose(value string) entity.CodePurpose {
	if value == string(entity.PurposePasswordReset) {
		return entity.PurposePasswordReset
	}
	return entity.PurposeLogin
}
