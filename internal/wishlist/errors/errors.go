package errors

import "errors"

var (
	ErrLoginRequired    = errors.New("login required")
	ErrToggleInProgress = errors.New("wishlist update already in progress")
	ErrStaleSession     = errors.New("session changed while the request was running")
	ErrNotFound         = errors.New("saved entry not found")
	ErrListingNotFound  = errors.New("listing not found")
)
