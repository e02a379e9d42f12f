package apod

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrMissingAPIKey is returned by Fetch when no upstream credential is
// configured. No request is sent in that case.
var ErrMissingAPIKey = errors.New("NASA API key not configured")

// UpstreamError reports a failed upstream round-trip: a non-2xx answer, a
// transport failure or a timeout.
type UpstreamError struct {
	// Status is the upstream HTTP status, or 0 when no response arrived.
	Status int
	// Message is the upstream's own error message when it sent one,
	// otherwise the transport error text.
	Message string
	// Timeout is set when the request exceeded its deadline.
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return "apod upstream timeout: " + e.Message
	case e.Status != 0:
		return fmt.Sprintf("apod upstream status %d: %s", e.Status, e.Message)
	default:
		return "apod upstream: " + e.Message
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// upstreamMessage extracts the error text from an upstream error body. The
// API answers in several shapes:
//
//	{"error":{"code":"API_KEY_INVALID","message":"..."}}
//	{"error":"..."}
//	{"code":400,"msg":"..."}
//
// It returns "" when none of them match.
func upstreamMessage(body []byte) string {
	var env struct {
		Error   any    `json:"error"`
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	switch v := env.Error.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case map[string]any:
		if s, ok := v["message"].(string); ok && s != "" {
			return s
		}
		if s, ok := v["code"].(string); ok && s != "" {
			return s
		}
	}
	if env.Msg != "" {
		return env.Msg
	}
	return env.Message
}
