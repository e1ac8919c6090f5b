package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can book listings and, once upgraded, host them.
type User struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;not null" json:"-"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Avatar        *string   `gorm:"column:avatar" json:"avatar"`
	Phone         *string   `gorm:"column:phone" json:"phone"`
	IsHost        bool      `gorm:"column:is_host;default:false" json:"isHost"`
	IsSuperCamper bool      `gorm:"column:is_super_camper;default:false" json:"isSuperCamper"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets the UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the reduced shape embedded in listings, bookings and reviews.
type PublicUser struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
}

// Public returns the embeddable shape for the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
