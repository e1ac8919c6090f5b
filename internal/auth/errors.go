package auth

import "errors"

var (
	ErrEmailRegistered    = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidEmail       = errors.New("Invalid email")
	ErrPasswordTooShort   = errors.New("Password must be at least 8 characters")
	ErrNameTooShort       = errors.New("Name must be at least 2 characters")
)
