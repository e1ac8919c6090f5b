package users

import "errors"

var (
	ErrUserNotFound = errors.New("User not found")
	ErrNoFields     = errors.New("No valid update fields provided")

	errNameTooShort = errors.New("Name must be at least 2 characters")
	errBadAvatar    = errors.New("Avatar must be a valid URL")
)
