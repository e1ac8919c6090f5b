package users

import (
	"errors"

	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// Get GET /api/users/:id — public profile with counts.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrUserNotFound.Error())
	}
	profile, err := h.Service.GetProfile(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(profile)
}

// UpdateMe PUT /api/users/me — update the caller's own profile.
func (h *Handlers) UpdateMe(c *fiber.Ctx) error {
	var req UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	user := middleware.CurrentUser(c)
	updated, err := h.Service.UpdateProfile(c.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFields), errors.Is(err, errNameTooShort), errors.Is(err, errBadAvatar):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
		}
	}
	return c.JSON(updated)
}

// BecomeHost PUT /api/users/me/become-host — one-way host upgrade.
func (h *Handlers) BecomeHost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	updated, err := h.Service.BecomeHost(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"message": "You are now a host!", "user": updated})
}
