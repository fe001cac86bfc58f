package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/pkg/utils"
)

// AuthHandler logs the single configured account in and hands out bearer
// tokens for the protected API.
type AuthHandler struct {
	email        string
	passwordHash string
	jwtSecret    string
}

func NewAuthHandler(email, passwordHash, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.ToLower(strings.TrimSpace(req.Email)) != h.email ||
		!utils.CheckPassword(req.Password, h.passwordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateToken(h.email, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"email": email})
}
