// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case. Generic codes mirror HTTP status semantics;
// domain codes name the operation that failed so clients can branch without
// parsing messages.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "Already in favorites"
//	}
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeSaveFailed      = "save_failed"
	ErrCodeListFailed      = "list_failed"
	ErrCodeRemoveFailed    = "remove_failed"
	ErrCodeConfig          = "config_error"
	ErrCodeUpstream        = "upstream_error"
	ErrCodeUpstreamTimeout = "upstream_timeout"
)

// Client-facing messages. The frontend matches some of them verbatim.
const (
	msgMissingFields    = "Missing required fields"
	msgInvalidMediaType = "Invalid media type"
	msgAlreadyFavorited = "Already in favorites"
	msgUserIDRequired   = "User ID is required"
	msgInvalidID        = "Invalid favorite ID"
	msgFavNotFound      = "Favorite not found"
	msgFavRemoved       = "Favorite removed successfully"
	msgSaveFailed       = "Error saving to favorites"
	msgListFailed       = "Error fetching favorites"
	msgRemoveFailed     = "Error removing favorite"
	msgNoAPIKey         = "NASA API key not configured"
	msgUpstreamFailed   = "Error fetching data from NASA API"
	msgQuizNotFound     = "Quiz not found"
	msgInvalidJSON      = "Invalid JSON body"
)
