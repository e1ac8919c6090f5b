package middleware

import "errors"

var (
	errNoToken      = errors.New("No token provided")
	errUserNotFound = errors.New("User not found")
)
