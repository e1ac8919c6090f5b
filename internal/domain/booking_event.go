package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking event types. REJECTED is recorded when a host rejects a booking
// even though the booking status itself becomes CANCELLED, so reporting can
// distinguish host rejections from guest cancellations.
const (
	EventBookingCreated   = "CREATED"
	EventBookingConfirmed = "CONFIRMED"
	EventBookingCancelled = "CANCELLED"
	EventBookingRejected  = "REJECTED"
	EventBookingCompleted = "COMPLETED"
)

// BookingEvent is an append-only audit row for booking status transitions.
type BookingEvent struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID      `gorm:"column:booking_id;type:uuid;not null;index" json:"bookingId"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"eventType"`
	ActorID   *uuid.UUID     `gorm:"column:actor_id;type:uuid" json:"actorId"`
	EventData datatypes.JSON `gorm:"column:event_data;type:json" json:"eventData"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (BookingEvent) TableName() string {
	return "booking_events"
}

// BeforeCreate sets the UUID if not set.
func (e *BookingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
