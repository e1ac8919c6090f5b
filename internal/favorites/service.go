package favorites

import (
	"context"
	"time"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// FavoritedListing is a saved listing flattened for the client.
type FavoritedListing struct {
	domain.Listing
	IsFavorited bool      `json:"isFavorited"`
	FavoritedAt time.Time `json:"favoritedAt"`
}

// List returns the user's saved listings, newest favorite first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]FavoritedListing, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Favorite{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var favs []domain.Favorite
	if err := q.Order("created_at DESC").Offset(p.Skip).Limit(p.Limit).
		Preload("Listing").Preload("Listing.Host").Find(&favs).Error; err != nil {
		return nil, 0, err
	}

	listings := make([]FavoritedListing, 0, len(favs))
	for _, f := range favs {
		if f.Listing == nil {
			continue
		}
		listings = append(listings, FavoritedListing{
			Listing:     *f.Listing,
			IsFavorited: true,
			FavoritedAt: f.CreatedAt,
		})
	}
	return listings, total, nil
}

// Add saves a listing to the user's favorites.
func (s *Service) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrListingNotFound
		}
		return err
	}

	var existing domain.Favorite
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).First(&existing).Error
	if err == nil {
		return ErrAlreadyFavorite
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return s.DB.WithContext(ctx).Create(&domain.Favorite{
		UserID:    userID,
		ListingID: listingID,
	}).Error
}

// Remove deletes a favorite; missing records report ErrNotFavorite.
func (s *Service) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFavorite
	}
	return nil
}
