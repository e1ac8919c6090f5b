package auth

import (
	"errors"
	"time"

	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/response"
	"campbnb-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service   *Service
	JWTSecret []byte
	TokenTTL  time.Duration
}

// LoginRequest body (email, password).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/auth/register — 201 with { user, token }, 409 duplicate.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	user, err := h.Service.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailRegistered):
			return response.Error(c, err.Error(), fiber.StatusConflict)
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrNameTooShort):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
		}
	}

	tok, err := token.Generate(h.JWTSecret, user.ID.String(), h.TokenTTL)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": tok})
}

// Login POST /api/auth/login — { user, token } or 401.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest)
	}

	user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}

	tok, err := token.Generate(h.JWTSecret, user.ID.String(), h.TokenTTL)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"user": user, "token": tok})
}

// Me GET /api/auth/me — the authenticated user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": middleware.CurrentUser(c)})
}

// ForgotPassword POST /api/auth/forgot-password — always the same reply to
// prevent email enumeration; no mail is sent.
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "If an account exists with this email, a reset link has been sent.",
	})
}
