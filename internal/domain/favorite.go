package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a (user, listing) join record with a uniqueness constraint.
type Favorite struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_favorites_user_listing" json:"userId"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:idx_favorites_user_listing" json:"listingId"`
	Listing   *Listing  `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate sets the UUID if not set.
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
