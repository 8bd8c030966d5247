package store

import "errors"

var (
	// ErrUsernameConflict is returned when a username already exists in the
	// target realm
	ErrUsernameConflict = errors.New("username already exists in realm")

	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")
)
