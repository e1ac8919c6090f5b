package favorites

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrAlreadyFavorite = errors.New("Already in favorites")
	ErrNotFavorite     = errors.New("Not in favorites")
)
