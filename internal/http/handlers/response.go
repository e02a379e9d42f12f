// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints: the error
// envelope, the fail helpers and the success writer.
//
// Conventions:
//   - Every error response is an ErrorResponse with a stable `code`.
//   - `message` is the human-readable text the client shows (and for some
//     endpoints branches on, e.g. "Already in favorites").
//   - `error` carries detail. For internal failures it is present only when
//     the server runs outside production.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "Favorite not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/nasa-image-explorer/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Favorite not found"`
	// Optional detail (upstream message, or internal error outside production)
	Error string `json:"error,omitempty" example:"An invalid api_key was supplied"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message" example:"Favorite removed successfully"`
}

// fail aborts the request with a structured error.
func fail(c *gin.Context, status int, code, msg string) {
	failDetail(c, status, code, msg, "", nil)
}

// failDetail is fail with a client-visible detail and a cause. Server errors
// (>=500) are logged with the request-scoped logger, cause included even when
// detail is withheld from the client.
func failDetail(c *gin.Context, status int, code, msg, detail string, cause error) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
		Error:     detail,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		ev := lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg)
		if cause != nil {
			ev = ev.Err(cause)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// internal responds 500 with msg. err is always logged; it reaches the client
// only when h exposes errors.
func (h *Handlers) internal(c *gin.Context, code, msg string, err error) {
	detail := ""
	if h.opt.ExposeErrors && err != nil {
		detail = err.Error()
	}
	failDetail(c, http.StatusInternalServerError, code, msg, detail, err)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
