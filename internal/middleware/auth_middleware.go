package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rohanz/shopkart/internal/services"
)

// Locals keys set by Protected and read by handlers.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// Protected authenticates the request: it validates the bearer token's
// signature and expiry and attaches the decoded identity to the
// context. Missing, malformed, or invalid tokens stop the chain with
// 401. Authorization is a separate stage, see RequireRoles.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing token"})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token format"})
		}

		claims, err := services.ParseToken(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRoles authorizes an already-authenticated request against a
// route-level allow-list. A valid token with the wrong role gets 403.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := Role(c)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "insufficient permissions"})
	}
}

// UserID returns the authenticated user id, empty if not set.
func UserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// Username returns the authenticated username, empty if not set.
func Username(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// Role returns the authenticated role, empty if not set.
func Role(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}
