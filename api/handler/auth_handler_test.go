package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stroymonitor/api/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newJSONContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Validation rejects bad payloads before any service is touched, so a
// handler with nil services exercises those paths safely.
func newBareHandler() *AuthHandler {
	return NewAuthHandler(nil, nil, nil, validator.New())
}

func TestLogin_RejectsBadPayloads(t *testing.T) {
	h := newBareHandler()

	cases := map[string]string{
		"malformed json": `{"email": `,
		"unknown field":  `{"email":"a@b.com","password":"x","extra":true}`,
		"missing email":  `{"password":"x"}`,
		"missing pass":   `{"email":"a@b.com"}`,
		"not an email":   `{"email":"nope","password":"x"}`,
		"short code":     `{"email":"a@b.com","password":"x","code":"12"}`,
		"non-digit code": `{"email":"a@b.com","password":"x","code":"12a456"}`,
	}

	for name, body := range cases {
		c, rec := newJSONContext(t, body)
		require.NoError(t, h.Login(c), name)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestVerify_MissingToken(t *testing.T) {
	h := newBareHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Verify(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_NoTokenStillSucceeds(t *testing.T) {
	h := newBareHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"logged out"}`, rec.Body.String())
	require.Empty(t, req.Header.Get(middleware.HeaderAuthToken))
}

func TestSendCode_RequiresEmail(t *testing.T) {
	h := newBareHandler()

	c, rec := newJSONContext(t, `{}`)
	require.NoError(t, h.SendCode(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newJSONContext(t, `{"email":"a@b.com","purpose":"mystery"}`)
	require.NoError(t, h.SendCode(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyCode_RequiresEmailAndCode(t *testing.T) {
	h := newBareHandler()

	cases := map[string]string{
		"missing code":  `{"email":"a@b.com"}`,
		"missing email": `{"code":"123456"}`,
		"short code":    `{"email":"a@b.com","code":"123"}`,
	}
	for name, body := range cases {
		c, rec := newJSONContext(t, body)
		require.NoError(t, h.VerifyCode(c), name)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}
