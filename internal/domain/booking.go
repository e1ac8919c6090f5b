package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// ActiveBookingStatuses are the statuses that block a listing's dates.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed}

// Booking is a reservation of a listing for a date range by a guest.
// Price fields are snapshots taken at creation time; bookings are never
// physically deleted, only moved through statuses.
type Booking struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID   uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listingId"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Listing     *Listing  `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CheckIn     time.Time `gorm:"column:check_in;not null" json:"checkIn"`
	CheckOut    time.Time `gorm:"column:check_out;not null" json:"checkOut"`
	Adults      int       `gorm:"column:adults;not null" json:"adults"`
	Children    int       `gorm:"column:children;default:0" json:"children"`
	Infants     int       `gorm:"column:infants;default:0" json:"infants"`
	Pets        int       `gorm:"column:pets;default:0" json:"pets"`
	Guests      int       `gorm:"column:guests;not null" json:"guests"`
	NightlyRate float64   `gorm:"column:nightly_rate;type:decimal(10,2);not null" json:"nightlyRate"`
	CleaningFee float64   `gorm:"column:cleaning_fee;type:decimal(10,2);not null" json:"cleaningFee"`
	ServiceFee  float64   `gorm:"column:service_fee;type:decimal(10,2);not null" json:"serviceFee"`
	Taxes       float64   `gorm:"column:taxes;type:decimal(10,2);not null" json:"taxes"`
	TotalPrice  float64   `gorm:"column:total_price;type:decimal(10,2);not null" json:"totalPrice"`
	Status      string    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate sets the UUID if not set.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
