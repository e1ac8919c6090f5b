package listings

import (
	"encoding/json"
	"errors"
	"strconv"

	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/pagination"
	"campbnb-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// Search GET /api/listings — filter and sort active listings.
func (h *Handlers) Search(c *fiber.Ctx) error {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	minPrice, _ := strconv.ParseFloat(c.Query("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)
	guests, _ := strconv.Atoi(c.Query("guests"))

	listings, total, err := h.Service.Search(c.Context(), SearchInput{
		Type:     c.Query("type"),
		Province: c.Query("province"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Guests:   guests,
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}, p)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(pagination.NewPage(listings, total, p))
}

// ListHost GET /api/listings/host — the caller's own listings.
func (h *Handlers) ListHost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	listings, total, err := h.Service.ListForHost(c.Context(), user.ID, p)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(pagination.NewPage(listings, total, p))
}

// Get GET /api/listings/:id — listing details with host, recent reviews and
// isFavorited for the (optional) caller.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrListingNotFound.Error())
	}
	viewerID := uuid.Nil
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = user.ID
	}
	details, err := h.Service.GetByID(c.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(details)
}

// Create POST /api/listings — host only, validated against the schema.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateListingInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if issues := in.Validate(); len(issues) > 0 {
		return response.ValidationError(c, "Validation failed", issues)
	}

	user := middleware.CurrentUser(c)
	listing, err := h.Service.Create(c.Context(), user.ID, in)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// Update PUT /api/listings/:id — owner only; partial update of allowed fields.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrListingNotFound.Error())
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	user := middleware.CurrentUser(c)
	listing, err := h.Service.Update(c.Context(), id, user.ID, fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrNotAuthorized):
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		}
	}
	return c.JSON(listing)
}

// Delete DELETE /api/listings/:id — owner only.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrListingNotFound.Error())
	}
	user := middleware.CurrentUser(c)
	if err := h.Service.Delete(c.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrNotAuthorized):
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
		}
	}
	return c.JSON(fiber.Map{"message": "Listing deleted"})
}
