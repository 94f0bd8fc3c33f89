package errors

import "errors"

var (
	ErrNotFound = errors.New("listing not found")

	ErrRoomNotFound = errors.New("room not found for listing")

	ErrInvalidCriteria = errors.New("invalid filter criteria")

	ErrFiltersNotFound = errors.New("no remembered filters")

	ErrCatalogEmpty = errors.New("listing store returned no listings")
)
