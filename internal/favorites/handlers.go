package favorites

import (
	"errors"

	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/pagination"
	"campbnb-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/favorites — saved listings for the caller.
func (h *Handlers) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	listings, total, err := h.Service.List(c.Context(), user.ID, p)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(pagination.NewPage(listings, total, p))
}

// Add POST /api/favorites/:listingId — 201, 409 when already saved.
func (h *Handlers) Add(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return response.NotFound(c, ErrListingNotFound.Error())
	}
	user := middleware.CurrentUser(c)
	if err := h.Service.Add(c.Context(), user.ID, listingID); err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrAlreadyFavorite):
			return response.Error(c, err.Error(), fiber.StatusConflict)
		default:
			return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Added to favorites",
		"listingId": listingID,
	})
}

// Remove DELETE /api/favorites/:listingId — 404 when not saved.
func (h *Handlers) Remove(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return response.NotFound(c, ErrNotFavorite.Error())
	}
	user := middleware.CurrentUser(c)
	if err := h.Service.Remove(c.Context(), user.ID, listingID); err != nil {
		if errors.Is(err, ErrNotFavorite) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{
		"message":   "Removed from favorites",
		"listingId": listingID,
	})
}
