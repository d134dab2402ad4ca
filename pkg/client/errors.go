package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for the status buckets the backend is known to return.
var (
	// ErrNoToken is returned by a TokenSource that has no credentials at
	// all (logged out / demo mode), as opposed to an expired token.
	ErrNoToken = errors.New("no access token available")

	ErrAuth       = errors.New("authentication failed")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// APIError carries a non-2xx status that does not fall into one of the
// dedicated buckets.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d", e.StatusCode)
}

// statusToError maps a response code to the taxonomy. 2xx codes return nil.
func statusToError(code int, body string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == 401:
		return ErrAuth
	case code == 403:
		return ErrPermission
	case code == 404:
		return ErrNotFound
	case code == 422:
		return ErrValidation
	default:
		return &APIError{StatusCode: code, Body: body}
	}
}
