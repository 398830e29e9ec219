package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the backend: a non-2xx status or a
// `success: false` envelope. Message is meant for the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the backend rejected the credentials.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// AsError unwraps err to an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
