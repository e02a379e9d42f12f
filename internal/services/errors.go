// Package services defines the business logic for favorites. This file
// centralizes the service-level error values so that they can be returned
// consistently by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Validation errors. The input is rejected before the store is touched.
var (
	// ErrMissingFields is returned when any of userId, title, url, date or
	// explanation is empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrMissingUserID is returned when a listing is requested without a user.
	ErrMissingUserID = errors.New("user id is required")

	// ErrInvalidID is returned when a favorite id does not have the store's
	// identifier shape.
	ErrInvalidID = errors.New("invalid favorite id")

	// ErrInvalidMediaType is returned when mediaType is neither "image" nor "video".
	ErrInvalidMediaType = errors.New("media type must be image or video")
)

var (
	// ErrAlreadyFavorited is returned when the user already saved the picture
	// of that date.
	ErrAlreadyFavorited = errors.New("already in favorites")

	// ErrFavoriteNotFound is returned when a remove targets a missing record.
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrMissingUserID) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidMediaType)
}
