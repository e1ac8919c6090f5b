package listings

import (
	"context"
	"errors"
	"strings"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/pagination"
	"campbnb-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// SearchInput are the supported listing filters.
type SearchInput struct {
	Type     string
	Province string
	MinPrice float64
	MaxPrice float64
	Guests   int
	Search   string
	Sort     string
}

// Search returns active listings matching the filters, with hosts preloaded.
func (s *Service) Search(ctx context.Context, in SearchInput, p pagination.Params) ([]domain.Listing, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Listing{}).Where("is_active = ?", true)

	if in.Type != "" && domain.IsValidListingType(in.Type) {
		q = q.Where("type = ?", in.Type)
	}
	if in.Province != "" {
		q = q.Where("province = ?", in.Province)
	}
	if in.MinPrice > 0 {
		q = q.Where("price >= ?", in.MinPrice)
	}
	if in.MaxPrice > 0 {
		q = q.Where("price <= ?", in.MaxPrice)
	}
	if in.Guests > 0 {
		q = q.Where("max_guests >= ?", in.Guests)
	}
	if in.Search != "" {
		pattern := "%" + strings.ToLower(in.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch in.Sort {
	case "price_asc":
		q = q.Order("price ASC")
	case "price_desc":
		q = q.Order("price DESC")
	case "rating":
		q = q.Order("rating DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var listings []domain.Listing
	if err := q.Offset(p.Skip).Limit(p.Limit).Preload("Host").Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ListForHost returns the host's own listings, active or not.
func (s *Service) ListForHost(ctx context.Context, hostID uuid.UUID, p pagination.Params) ([]domain.Listing, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Listing{}).Where("host_id = ?", hostID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var listings []domain.Listing
	if err := q.Order("created_at DESC").Offset(p.Skip).Limit(p.Limit).Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ListingDetails is the detail view: the listing plus its latest reviews and
// whether the caller has favorited it.
type ListingDetails struct {
	domain.Listing
	Reviews     []domain.Review `json:"reviews"`
	IsFavorited bool            `json:"isFavorited"`
}

// GetByID returns listing details. viewerID may be uuid.Nil for anonymous
// callers, in which case isFavorited is always false.
func (s *Service) GetByID(ctx context.Context, id, viewerID uuid.UUID) (*ListingDetails, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Preload("Host").Where("id = ?", id).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	var reviews []domain.Review
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", id).
		Order("created_at DESC").Limit(5).Preload("User").Find(&reviews).Error; err != nil {
		return nil, err
	}

	isFavorited := false
	if viewerID != uuid.Nil {
		var fav domain.Favorite
		err := s.DB.WithContext(ctx).
			Where("user_id = ? AND listing_id = ?", viewerID, id).First(&fav).Error
		if err == nil {
			isFavorited = true
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	return &ListingDetails{Listing: listing, Reviews: reviews, IsFavorited: isFavorited}, nil
}

// CreateListingInput mirrors the create listing request body.
type CreateListingInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Price       float64           `json:"price"`
	Location    string            `json:"location"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Province    string            `json:"province"`
	Images      domain.StringList `json:"images"`
	Amenities   domain.StringList `json:"amenities"`
	MaxGuests   int               `json:"maxGuests"`
	Bedrooms    *int              `json:"bedrooms"`
	Beds        int               `json:"beds"`
	Bathrooms   *float64          `json:"bathrooms"`
	CleaningFee *float64          `json:"cleaningFee"`
}

// ValidationIssue is one failed field constraint.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate applies the create-listing schema rules.
func (in *CreateListingInput) Validate() []ValidationIssue {
	var issues []ValidationIssue
	if len(in.Title) < 5 {
		issues = append(issues, ValidationIssue{"title", "Title must be at least 5 characters"})
	}
	if len(in.Description) < 20 {
		issues = append(issues, ValidationIssue{"description", "Description must be at least 20 characters"})
	}
	if !domain.IsValidListingType(in.Type) {
		issues = append(issues, ValidationIssue{"type", "Invalid listing type"})
	}
	if in.Price <= 0 {
		issues = append(issues, ValidationIssue{"price", "Price must be positive"})
	}
	if len(in.Location) < 3 {
		issues = append(issues, ValidationIssue{"location", "Location must be at least 3 characters"})
	}
	if len(in.Images) < 1 {
		issues = append(issues, ValidationIssue{"images", "At least one image required"})
	}
	for _, img := range in.Images {
		if !validation.IsValidURL(img) {
			issues = append(issues, ValidationIssue{"images", "Image must be a valid URL"})
			break
		}
	}
	if in.MaxGuests < 0 {
		issues = append(issues, ValidationIssue{"maxGuests", "maxGuests must be positive"})
	}
	return issues
}

// Create inserts a listing for the host, applying schema defaults.
func (s *Service) Create(ctx context.Context, hostID uuid.UUID, in CreateListingInput) (*domain.Listing, error) {
	maxGuests := in.MaxGuests
	if maxGuests == 0 {
		maxGuests = 4
	}
	beds := in.Beds
	if beds == 0 {
		beds = 1
	}
	bedrooms := 1
	if in.Bedrooms != nil {
		bedrooms = *in.Bedrooms
	}
	bathrooms := 1.0
	if in.Bathrooms != nil {
		bathrooms = *in.Bathrooms
	}
	cleaningFee := float64(domain.DefaultCleaningFee)
	if in.CleaningFee != nil && *in.CleaningFee >= 0 {
		cleaningFee = *in.CleaningFee
	}
	amenities := in.Amenities
	if amenities == nil {
		amenities = domain.StringList{}
	}

	listing := &domain.Listing{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Province:    in.Province,
		Images:      in.Images,
		Amenities:   amenities,
		MaxGuests:   maxGuests,
		Bedrooms:    bedrooms,
		Beds:        beds,
		Bathrooms:   bathrooms,
		CleaningFee: cleaningFee,
		IsActive:    true,
		HostID:      hostID,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Preload("Host").Where("id = ?", listing.ID).First(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// Update applies allowed fields to an owned listing.
func (s *Service) Update(ctx context.Context, id, callerID uuid.UUID, fields map[string]interface{}) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.HostID != callerID {
		return nil, ErrNotAuthorized
	}

	allowed := map[string]string{
		"title": "title", "description": "description", "type": "type",
		"price": "price", "location": "location", "latitude": "latitude",
		"longitude": "longitude", "province": "province", "images": "images",
		"amenities": "amenities", "maxGuests": "max_guests",
		"bedrooms": "bedrooms", "beds": "beds", "bathrooms": "bathrooms",
		"cleaningFee": "cleaning_fee", "isActive": "is_active",
	}
	upd := make(map[string]interface{})
	for k, v := range fields {
		col, ok := allowed[k]
		if !ok {
			continue
		}
		// JSON array columns need the StringList codec.
		if col == "images" || col == "amenities" {
			list, err := toStringList(v)
			if err != nil {
				continue
			}
			upd[col] = list
		} else {
			upd[col] = v
		}
	}
	if len(upd) == 0 {
		return nil, errors.New("No valid update fields provided")
	}

	if err := s.DB.WithContext(ctx).Model(&listing).Updates(upd).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Delete removes an owned listing.
func (s *Service) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrListingNotFound
		}
		return err
	}
	if listing.HostID != callerID {
		return ErrNotAuthorized
	}
	return s.DB.WithContext(ctx).Delete(&listing).Error
}

func toStringList(v interface{}) (domain.StringList, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, errors.New("not an array")
	}
	out := make(domain.StringList, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("not a string array")
		}
		out = append(out, s)
	}
	return out, nil
}
