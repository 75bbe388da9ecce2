package types

import (
	"errors"
	"fmt"
)

// Record and resource lookup errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrResourceUnknown = errors.New("unknown resource")
	ErrInvalidID       = errors.New("invalid record ID")
	ErrInvalidData     = errors.New("invalid record data")
)

// Guarded-mutation errors. These are raised client-side before any network
// call when a record is flagged as protected; the server enforces the same
// rules authoritatively.
var (
	ErrProtectedDefault = errors.New("cannot delete the default record")
	ErrRecordInUse      = errors.New("cannot delete a record that is in use")
)

// Client lifecycle errors.
var (
	ErrCacheClosed  = errors.New("cache is closed")
	ErrUnauthorized = errors.New("unauthorized: token missing or expired")
)

// APIError is a failure reported by the server. Message carries the
// human-readable text from the error body when the server provided one;
// callers surface it verbatim in notifications.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// UserMessage returns the text to show the user for err: the server-provided
// message when err is an APIError carrying one, the sentinel text for a
// client-side guard rejection, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	for _, guard := range []error{ErrProtectedDefault, ErrRecordInUse} {
		if errors.Is(err, guard) {
			return guard.Error()
		}
	}
	return fallback
}
