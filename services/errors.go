package services

import "errors"

var (
	// ErrNilPrincipal is returned when Masquerade is called without a
	// principal. This is a caller contract violation, not a business
	// failure, so it surfaces as an error rather than a failed result.
	ErrNilPrincipal = errors.New("principal must not be nil")
)
