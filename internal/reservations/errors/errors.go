package errors

import "errors"

var (
	ErrInvalidRange = errors.New("check-out must be after check-in")

	ErrInvalidRent = errors.New("rent must not be negative")

	ErrLoginRequired = errors.New("login required")

	ErrDatesRequired = errors.New("check-in and check-out dates are required")

	ErrInvalidDates = errors.New("check-out must be after check-in")

	ErrCheckInPast = errors.New("check-in cannot be in the past")

	ErrSubmissionInProgress = errors.New("reservation submission already in progress")

	ErrListingNotFound = errors.New("listing not found")

	ErrRoomNotFound = errors.New("room not found for listing")

	ErrInvalidGuests = errors.New("guests must be between 1 and 4")
)
