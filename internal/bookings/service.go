package bookings

import (
	"context"
	"encoding/json"
	"time"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// CreateBookingInput is the validated admission request.
type CreateBookingInput struct {
	ListingID uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	Children  int
	Infants   int
	Pets      int
}

// Create admits a booking: capacity check, pricing, conflict probe and insert
// run in one transaction with the listing row locked, so two concurrent
// requests for overlapping dates cannot both pass the availability check.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.Listing{})
		// sqlite has no FOR UPDATE; there the transaction alone serializes.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var listing domain.Listing
		if err := q.Where("id = ?", in.ListingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrListingNotFound
			}
			return err
		}

		// Infants and pets don't count against the cap.
		totalGuests := in.Adults + in.Children
		if totalGuests > listing.MaxGuests {
			return &CapacityError{MaxGuests: listing.MaxGuests}
		}

		quote, err := PriceStay(listing.Price, listing.CleaningFee, in.CheckIn, in.CheckOut)
		if err != nil {
			return err
		}

		// Inclusive overlap: back-to-back stays sharing an instant conflict.
		var conflict domain.Booking
		err = tx.Where(
			"listing_id = ? AND status IN ? AND check_in <= ? AND check_out >= ?",
			in.ListingID, domain.ActiveBookingStatuses, in.CheckOut, in.CheckIn,
		).First(&conflict).Error
		if err == nil {
			return ErrDatesUnavailable
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		booking = &domain.Booking{
			ListingID:   in.ListingID,
			UserID:      userID,
			CheckIn:     in.CheckIn,
			CheckOut:    in.CheckOut,
			Adults:      in.Adults,
			Children:    in.Children,
			Infants:     in.Infants,
			Pets:        in.Pets,
			Guests:      totalGuests,
			NightlyRate: quote.NightlyRate,
			CleaningFee: quote.CleaningFee,
			ServiceFee:  quote.ServiceFee,
			Taxes:       quote.Taxes,
			TotalPrice:  quote.Total,
			Status:      domain.BookingConfirmed,
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"status":      booking.Status,
			"nights":      quote.Nights,
			"total_price": booking.TotalPrice,
			"check_in":    booking.CheckIn,
			"check_out":   booking.CheckOut,
		})
		if err := tx.Create(&domain.BookingEvent{
			BookingID: booking.ID,
			EventType: domain.EventBookingCreated,
			ActorID:   &userID,
			EventData: datatypes.JSON(eventData),
		}).Error; err != nil {
			return err
		}

		booking.Listing = &listing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForUser returns the guest's own bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, status string, p pagination.Params) ([]domain.Booking, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Booking{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bookings []domain.Booking
	if err := q.Order("created_at DESC").Offset(p.Skip).Limit(p.Limit).
		Preload("Listing").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListForHost returns bookings on any of the host's listings, newest first.
func (s *Service) ListForHost(ctx context.Context, hostID uuid.UUID, status string, p pagination.Params) ([]domain.Booking, int64, error) {
	var listingIDs []uuid.UUID
	if err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Where("host_id = ?", hostID).Pluck("id", &listingIDs).Error; err != nil {
		return nil, 0, err
	}
	if len(listingIDs) == 0 {
		return []domain.Booking{}, 0, nil
	}

	q := s.DB.WithContext(ctx).Model(&domain.Booking{}).Where("listing_id IN ?", listingIDs)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bookings []domain.Booking
	if err := q.Order("created_at DESC").Offset(p.Skip).Limit(p.Limit).
		Preload("User").Preload("Listing").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// GetByID returns a booking with listing and host; only the booking's guest
// or the listing's host may see it.
func (s *Service) GetByID(ctx context.Context, id, callerID uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := s.DB.WithContext(ctx).
		Preload("Listing").Preload("Listing.Host").
		Where("id = ?", id).First(&booking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != callerID && (booking.Listing == nil || booking.Listing.HostID != callerID) {
		return nil, ErrNotAuthorized
	}
	return &booking, nil
}

// Cancel moves a booking to CANCELLED; only the booking's guest may cancel.
func (s *Service) Cancel(ctx context.Context, id, callerID uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, id, func(b *domain.Booking) (string, string, error) {
		if b.UserID != callerID {
			return "", "", ErrNotAuthorized
		}
		switch b.Status {
		case domain.BookingCancelled:
			return "", "", ErrAlreadyCancelled
		case domain.BookingCompleted:
			return "", "", ErrCancelCompleted
		}
		return domain.BookingCancelled, domain.EventBookingCancelled, nil
	}, callerID)
}

// Confirm moves a booking to CONFIRMED; only the listing's host may confirm.
func (s *Service) Confirm(ctx context.Context, id, callerID uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, id, func(b *domain.Booking) (string, string, error) {
		if b.Listing == nil || b.Listing.HostID != callerID {
			return "", "", ErrNotAuthorized
		}
		return domain.BookingConfirmed, domain.EventBookingConfirmed, nil
	}, callerID)
}

// Reject moves a booking to CANCELLED on behalf of the host. The status
// stays CANCELLED on the wire but the audit event records REJECTED.
func (s *Service) Reject(ctx context.Context, id, callerID uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, id, func(b *domain.Booking) (string, string, error) {
		if b.Listing == nil || b.Listing.HostID != callerID {
			return "", "", ErrNotAuthorized
		}
		return domain.BookingCancelled, domain.EventBookingRejected, nil
	}, callerID)
}

// Complete moves a CONFIRMED booking to COMPLETED once its check-out has
// passed; only the listing's host may complete.
func (s *Service) Complete(ctx context.Context, id, callerID uuid.UUID, now time.Time) (*domain.Booking, error) {
	return s.transition(ctx, id, func(b *domain.Booking) (string, string, error) {
		if b.Listing == nil || b.Listing.HostID != callerID {
			return "", "", ErrNotAuthorized
		}
		if b.Status != domain.BookingConfirmed {
			return "", "", ErrNotConfirmed
		}
		if now.Before(b.CheckOut) {
			return "", "", ErrNotCheckedOut
		}
		return domain.BookingCompleted, domain.EventBookingCompleted, nil
	}, callerID)
}

// transition loads the booking with its listing, applies the guard, then
// writes the new status and an audit event in one transaction.
func (s *Service) transition(ctx context.Context, id uuid.UUID, guard func(*domain.Booking) (status, event string, err error), actorID uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Listing").Where("id = ?", id).First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrBookingNotFound
			}
			return err
		}

		newStatus, eventType, err := guard(&booking)
		if err != nil {
			return err
		}

		previous := booking.Status
		booking.Status = newStatus
		if err := tx.Model(&domain.Booking{}).Where("id = ?", id).
			Update("status", newStatus).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"from": previous,
			"to":   newStatus,
		})
		return tx.Create(&domain.BookingEvent{
			BookingID: booking.ID,
			EventType: eventType,
			ActorID:   &actorID,
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Events returns the audit trail for a booking, oldest first.
func (s *Service) Events(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingEvent, error) {
	var events []domain.BookingEvent
	if err := s.DB.WithContext(ctx).
		Where("booking_id = ?", bookingID).Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
