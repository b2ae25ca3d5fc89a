package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for API operations.
var (
	// ErrNotFound indicates the requested resource does not exist.
	// Views treat this as an empty result, not a failure.
	ErrNotFound = errors.New("api: not found")
)

// APIError is a backend-reported failure. Message carries the
// human-readable text from the response body when the backend supplied
// one; callers fall back to a per-operation message when it is empty.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsClientError reports whether the failure is a 4xx-class caller
// mistake. Retry helpers use this to skip retrying.
func (e *APIError) IsClientError() bool {
	return e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError
}

// BackendMessage extracts the backend-supplied message from err, or
// returns fallback when err carries none (transport failures and
// messageless backend errors alike).
func BackendMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
