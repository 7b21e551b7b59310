package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrIDExhausted  = errors.New("could not allocate a unique user id")
)
