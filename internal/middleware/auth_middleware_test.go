package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rohanz/shopkart/internal/middleware"
	"github.com/rohanz/shopkart/internal/models"
	"github.com/rohanz/shopkart/internal/services"
)

const testSecret = "middleware-test-secret"

// buildTestApp wires a protected route and an admin-only route through
// the two middleware stages.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me",
		middleware.Protected(testSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"username": middleware.Username(c), "role": middleware.Role(c)})
		},
	)
	app.Get("/admin",
		middleware.Protected(testSecret),
		middleware.RequireRoles(models.RoleAdmin),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	user := models.User{ID: primitive.NewObjectID(), Username: "tester", Role: role}
	token, err := services.IssueToken(testSecret, user)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestProtectedMissingToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedMalformedHeader(t *testing.T) {
	app := buildTestApp()
	for _, header := range []string{"garbage", "Bearer ", "Basic abc123"} {
		resp := doRequest(t, app, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		resp.Body.Close()
	}
}

func TestProtectedBadSignature(t *testing.T) {
	app := buildTestApp()
	user := models.User{ID: primitive.NewObjectID(), Username: "tester", Role: models.RoleUser}
	token, err := services.IssueToken("some-other-secret", user)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedExpiredToken(t *testing.T) {
	claims := services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID:   primitive.NewObjectID().Hex(),
		Username: "tester",
		Role:     models.RoleUser,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "/me", "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedValidToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", tokenForRole(t, models.RoleUser))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRolesForbidsUser(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/admin", tokenForRole(t, models.RoleUser))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"a valid credential with the wrong role is forbidden, not unauthenticated")
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/admin", tokenForRole(t, models.RoleAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
