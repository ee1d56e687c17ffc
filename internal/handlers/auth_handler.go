package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rohanz/shopkart/internal/middleware"
	"github.com/rohanz/shopkart/internal/models"
	"github.com/rohanz/shopkart/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	user, err := h.auth.Register(c.Context(), request.Username, request.Password, request.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "user registered successfully",
		"userId":   user.ID.Hex(),
		"username": user.Username,
	})
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	token, role, err := h.auth.Login(c.Context(), request.Username, request.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
		"role":    role,
	})
}

// Verify reports whether the presented token is valid. Runs behind the
// Protected middleware, so reaching it means the token checked out.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	role := middleware.Role(c)
	return c.JSON(fiber.Map{
		"isValid":  true,
		"username": middleware.Username(c),
		"role":     role,
		"isAdmin":  role == models.RoleAdmin,
	})
}
