package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func authApp() *fiber.App {
	app := fiber.New()
	app.Get("/me",
		AuthJWT(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}),
		func(c *fiber.Ctx) error {
			return c.SendString(UserIDFromLocals(c))
		},
	)
	return app
}

func TestAuthJWTBearer(t *testing.T) {
	app := authApp()
	raw := signToken(t, jwt.MapClaims{"sub": "user_1", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAuthJWTCookieFallback(t *testing.T) {
	app := authApp()
	raw := signToken(t, jwt.MapClaims{"id": "user_2", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: raw})
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAuthJWTRefusesEmptySecret(t *testing.T) {
	assert.Panics(t, func() {
		AuthJWT(AuthJWTOpts{Secret: "  "})
	})
}

func TestAuthJWTMissingToken(t *testing.T) {
	app := authApp()

	req := httptest.NewRequest("GET", "/me", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestAuthJWTBadSignature(t *testing.T) {
	app := authApp()
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_1"})
	raw, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestAuthJWTNoSubject(t *testing.T) {
	app := authApp()
	raw := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}
