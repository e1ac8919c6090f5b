package reviews

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

// CreateReviewRequest body for POST /api/reviews/listing/:listingId.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// List GET /api/reviews/listing/:listingId — paginated reviews.
func (h *Handlers) List(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return response.NotFound(c, ErrListingNotFound.Error())
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	reviews, total, err := h.Service.ListForListing(c.Context(), listingID, p)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(pagination.NewPage(reviews, total, p))
}

// Create POST /api/reviews/listing/:listingId — 201, 409 on duplicate.
func (h *Handlers) Create(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return response.NotFound(c, ErrListingNotFound.Error())
	}
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	user := middleware.CurrentUser(c)
	review, err := h.Service.Create(c.Context(), user.ID, listingID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, ErrAlreadyReviewed):
			return response.Error(c, err.Error(), fiber.StatusConflict)
		case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrCommentTooShort):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
