package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LamineSayad1/agriconnect/internal/config"
	"github.com/LamineSayad1/agriconnect/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func doRequest(authz string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := middleware.AuthJWT(config.Config{JWTSecret: testSecret})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, c
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":       "user-1",
		"user_type": "farmer",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	rec, c := doRequest("Bearer " + token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "farmer", c.Get(middleware.CtxUserTypeKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := doRequest("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	rec, _ := doRequest("Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":       "user-1",
		"user_type": "farmer",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":       "user-1",
		"user_type": "farmer",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingUserTypeClaim(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := doRequest("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
