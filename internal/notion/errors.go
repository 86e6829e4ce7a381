package notion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the API (or relay) could not be reached.
	ErrUnavailable = errors.New("notion api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("notion request timed out")

	// ErrUnauthorized indicates the credential was rejected (401/403).
	ErrUnauthorized = errors.New("notion credential rejected")

	// ErrUpstream indicates any other non-success status.
	ErrUpstream = errors.New("notion api error")

	// ErrInvalidResponse indicates a success status with an undecodable body.
	ErrInvalidResponse = errors.New("invalid notion response")
)

// StatusError carries the status and error object of a non-2xx response.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notion api error: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("notion api error: %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return ErrUnauthorized
	}
	return ErrUpstream
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrUpstream):
		return "UPSTREAM"
	default:
		return "UNKNOWN"
	}
}
