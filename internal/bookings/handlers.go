package bookings

import (
	"context"
	"errors"
	"time"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/pagination"
	"campbnb-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// CreateBookingRequest body for POST /api/bookings.
type CreateBookingRequest struct {
	ListingID string `json:"listingId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Adults    *int   `json:"adults"`
	Children  *int   `json:"children"`
	Infants   *int   `json:"infants"`
	Pets      *int   `json:"pets"`
}

// Create POST /api/bookings — 201 with the booking, 404 unknown listing,
// 400 capacity or date range, 409 date conflict.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.ValidationError(c, "Validation failed", []fiber.Map{
			{"field": "listingId", "message": "listingId must be a valid id"},
		})
	}
	checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		return response.ValidationError(c, "Validation failed", []fiber.Map{
			{"field": "checkIn", "message": "checkIn must be an ISO datetime"},
		})
	}
	checkOut, err := time.Parse(time.RFC3339, req.CheckOut)
	if err != nil {
		return response.ValidationError(c, "Validation failed", []fiber.Map{
			{"field": "checkOut", "message": "checkOut must be an ISO datetime"},
		})
	}

	adults := intOrDefault(req.Adults, 1)
	children := intOrDefault(req.Children, 0)
	infants := intOrDefault(req.Infants, 0)
	pets := intOrDefault(req.Pets, 0)
	if adults < 1 {
		return response.ValidationError(c, "Validation failed", []fiber.Map{
			{"field": "adults", "message": "adults must be at least 1"},
		})
	}
	if children < 0 || infants < 0 || pets < 0 {
		return response.ValidationError(c, "Validation failed", []fiber.Map{
			{"field": "guests", "message": "guest counts must not be negative"},
		})
	}

	user := middleware.CurrentUser(c)
	booking, err := h.Service.Create(c.Context(), user.ID, CreateBookingInput{
		ListingID: listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Adults:    adults,
		Children:  children,
		Infants:   infants,
		Pets:      pets,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// List GET /api/bookings — current user's bookings, optional status filter.
func (h *Handlers) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	bookings, total, err := h.Service.ListForUser(c.Context(), user.ID, c.Query("status"), p)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(pagination.NewPage(bookings, total, p))
}

// ListHost GET /api/bookings/host — bookings on listings owned by the caller.
func (h *Handlers) ListHost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	bookings, total, err := h.Service.ListForHost(c.Context(), user.ID, c.Query("status"), p)
	if err != nil {
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
	return c.JSON(pagination.NewPage(bookings, total, p))
}

// Get GET /api/bookings/:id — booking details for the guest or the host.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrBookingNotFound.Error())
	}
	user := middleware.CurrentUser(c)
	booking, err := h.Service.GetByID(c.Context(), id, user.ID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}

// Cancel PUT /api/bookings/:id/cancel — guest cancels their booking.
func (h *Handlers) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.Service.Cancel)
}

// Confirm PUT /api/bookings/:id/confirm — host confirms a pending booking.
func (h *Handlers) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.Service.Confirm)
}

// Reject PUT /api/bookings/:id/reject — host rejects; status becomes CANCELLED.
func (h *Handlers) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.Service.Reject)
}

// Complete PUT /api/bookings/:id/complete — host completes after check-out.
func (h *Handlers) Complete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrBookingNotFound.Error())
	}
	user := middleware.CurrentUser(c)
	booking, err := h.Service.Complete(c.Context(), id, user.ID, time.Now())
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}

func (h *Handlers) transition(c *fiber.Ctx, op func(ctx context.Context, id, callerID uuid.UUID) (*domain.Booking, error)) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, ErrBookingNotFound.Error())
	}
	user := middleware.CurrentUser(c)
	booking, err := op(c.Context(), id, user.ID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(booking)
}

// bookingError maps domain errors onto HTTP statuses.
func bookingError(c *fiber.Ctx, err error) error {
	var capErr *CapacityError
	switch {
	case errors.Is(err, ErrListingNotFound), errors.Is(err, ErrBookingNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, ErrNotAuthorized):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, ErrDatesUnavailable):
		return response.Error(c, err.Error(), fiber.StatusConflict)
	case errors.As(err, &capErr),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrCancelCompleted),
		errors.Is(err, ErrNotConfirmed),
		errors.Is(err, ErrNotCheckedOut):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	default:
		return response.Error(c, "Internal server error", fiber.StatusInternalServerError)
	}
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
