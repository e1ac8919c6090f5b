package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing types (campsite categories).
const (
	TypeTent        = "TENT"
	TypeCabin       = "CABIN"
	TypeRVSpot      = "RV_SPOT"
	TypeGlamping    = "GLAMPING"
	TypeBackcountry = "BACKCOUNTRY"
	TypeTreehouse   = "TREEHOUSE"
	TypeYurt        = "YURT"
)

// ListingTypes is the fixed set of allowed listing types.
var ListingTypes = []string{
	TypeTent, TypeCabin, TypeRVSpot, TypeGlamping,
	TypeBackcountry, TypeTreehouse, TypeYurt,
}

// IsValidListingType reports whether t is one of the allowed types.
func IsValidListingType(t string) bool {
	for _, lt := range ListingTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// DefaultCleaningFee is applied to new listings that don't set their own.
const DefaultCleaningFee = 35

// Listing is a bookable camping unit owned by a host.
type Listing struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description;not null" json:"description"`
	Type        string     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Price       float64    `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Location    string     `gorm:"column:location;not null" json:"location"`
	Latitude    float64    `gorm:"column:latitude" json:"latitude"`
	Longitude   float64    `gorm:"column:longitude" json:"longitude"`
	Province    string     `gorm:"column:province;not null" json:"province"`
	Images      StringList `gorm:"column:images;type:json" json:"images"`
	Amenities   StringList `gorm:"column:amenities;type:json" json:"amenities"`
	MaxGuests   int        `gorm:"column:max_guests;default:4" json:"maxGuests"`
	Bedrooms    int        `gorm:"column:bedrooms;default:1" json:"bedrooms"`
	Beds        int        `gorm:"column:beds;default:1" json:"beds"`
	Bathrooms   float64    `gorm:"column:bathrooms;default:1" json:"bathrooms"`
	CleaningFee float64    `gorm:"column:cleaning_fee;type:decimal(10,2);default:35" json:"cleaningFee"`
	Rating      float64    `gorm:"column:rating;default:0" json:"rating"`
	ReviewCount int        `gorm:"column:review_count;default:0" json:"reviewCount"`
	IsSuperhost bool       `gorm:"column:is_superhost;default:false" json:"isSuperhost"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"isActive"`
	HostID      uuid.UUID  `gorm:"column:host_id;type:uuid;not null;index" json:"hostId"`
	Host        *User      `gorm:"foreignKey:HostID" json:"host,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets the UUID if not set.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
