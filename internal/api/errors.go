package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned for any non-2xx response. The body is not inspected.
type Error struct {
	StatusText string
	Status     int
}

func (e *Error) Error() string {
	if e.StatusText == "" {
		return fmt.Sprintf("api error: %d", e.Status)
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.StatusText)
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	status := StatusOf(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
