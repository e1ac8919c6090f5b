package reviews

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrAlreadyReviewed = errors.New("You already reviewed this listing")
	ErrInvalidRating   = errors.New("Rating must be between 1 and 5")
	ErrCommentTooShort = errors.New("Review must be at least 10 characters")
)
