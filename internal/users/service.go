package users

import (
	"context"
	"strings"
	"time"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Profile is the public view of a user with activity counts.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Avatar        *string   `json:"avatar"`
	IsHost        bool      `json:"isHost"`
	IsSuperCamper bool      `json:"isSuperCamper"`
	CreatedAt     time.Time `json:"createdAt"`
	Counts        Counts    `json:"counts"`
}

// Counts are the profile activity totals.
type Counts struct {
	Listings          int64 `json:"listings"`
	Reviews           int64 `json:"reviews"`
	CompletedBookings int64 `json:"bookings"`
}

// GetProfile returns the public profile with listing/review/completed-stay counts.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var counts Counts
	if err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Where("host_id = ?", id).Count(&counts.Listings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Review{}).
		Where("user_id = ?", id).Count(&counts.Reviews).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND status = ?", id, domain.BookingCompleted).
		Count(&counts.CompletedBookings).Error; err != nil {
		return nil, err
	}

	return &Profile{
		ID:            u.ID,
		Name:          u.Name,
		Avatar:        u.Avatar,
		IsHost:        u.IsHost,
		IsSuperCamper: u.IsSuperCamper,
		CreatedAt:     u.CreatedAt,
		Counts:        counts,
	}, nil
}

// UpdateProfileInput for PUT /api/users/me; nil fields are left unchanged.
type UpdateProfileInput struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile applies the caller's own profile changes.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*domain.User, error) {
	upd := make(map[string]interface{})
	if in.Name != nil {
		if len(strings.TrimSpace(*in.Name)) < 2 {
			return nil, errNameTooShort
		}
		upd["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		upd["phone"] = *in.Phone
	}
	if in.Avatar != nil {
		if !validation.IsValidURL(*in.Avatar) {
			return nil, errBadAvatar
		}
		upd["avatar"] = *in.Avatar
	}
	if len(upd) == 0 {
		return nil, ErrNoFields
	}

	if err := s.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).Updates(upd).Error; err != nil {
		return nil, err
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// BecomeHost flips the one-way host flag.
func (s *Service) BecomeHost(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).Update("is_host", true).Error; err != nil {
		return nil, err
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
