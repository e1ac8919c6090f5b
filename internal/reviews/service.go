package reviews

import (
	"context"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// ListForListing returns a listing's reviews, newest first.
func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID, p pagination.Params) ([]domain.Review, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Review{}).Where("listing_id = ?", listingID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []domain.Review
	if err := q.Order("created_at DESC").Offset(p.Skip).Limit(p.Limit).
		Preload("User").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Create inserts a review and recomputes the listing's aggregate rating and
// review count in the same transaction, so two concurrent reviews can't both
// write stale aggregates.
func (s *Service) Create(ctx context.Context, userID, listingID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if len(comment) < 10 {
		return nil, ErrCommentTooShort
	}

	var review *domain.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("id = ?", listingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrListingNotFound
			}
			return err
		}

		var existing domain.Review
		err := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).First(&existing).Error
		if err == nil {
			return ErrAlreadyReviewed
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		review = &domain.Review{
			UserID:    userID,
			ListingID: listingID,
			Rating:    rating,
			Comment:   comment,
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		// Aggregate over all reviews including the new one.
		type stats struct {
			Avg   float64
			Count int64
		}
		var st stats
		if err := tx.Model(&domain.Review{}).
			Select("AVG(rating) as avg, COUNT(rating) as count").
			Where("listing_id = ?", listingID).Scan(&st).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Listing{}).Where("id = ?", listingID).
			Updates(map[string]interface{}{
				"rating":       st.Avg,
				"review_count": st.Count,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Preload("User").
		Where("id = ?", review.ID).First(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
