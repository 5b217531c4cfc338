package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityasampath/Imagify-Project/internal/pkg/token"
	"github.com/adityasampath/Imagify-Project/internal/pkg/usercontext"
)

const testSecret = "auth-middleware-test-secret"

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	app.Get("/protected", RequireTokenAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"user_id": usercontext.GetUserID(c),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestRequireTokenAuthMissingToken(t *testing.T) {
	app := newProtectedApp(t)

	status, body := doRequest(t, app, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not Authorized. Login Again", body["message"])
}

func TestRequireTokenAuthInvalidToken(t *testing.T) {
	app := newProtectedApp(t)

	status, body := doRequest(t, app, map[string]string{"token": "not-a-jwt"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestRequireTokenAuthWrongSecret(t *testing.T) {
	app := newProtectedApp(t)

	signed, err := token.Issue(7, []byte("some-other-secret"), time.Hour)
	require.NoError(t, err)

	status, body := doRequest(t, app, map[string]string{"token": signed})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestRequireTokenAuthMalformedSubject(t *testing.T) {
	app := newProtectedApp(t)

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	status, body := doRequest(t, app, map[string]string{"token": signed})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token format", body["message"])
}

func TestRequireTokenAuthValidTokenHeader(t *testing.T) {
	app := newProtectedApp(t)

	signed, err := token.Issue(42, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	status, body := doRequest(t, app, map[string]string{"token": signed})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(42), body["user_id"])
}

func TestRequireTokenAuthBearerHeader(t *testing.T) {
	app := newProtectedApp(t)

	signed, err := token.Issue(42, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	status, body := doRequest(t, app, map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
}
