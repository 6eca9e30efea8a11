// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/michaelpawlus/990-beacon/internal/api"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Command errors.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoResults       = errors.New("no results")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Explain wraps API and transport failures in a UserError that says what
// the user can do about them. Other errors are returned unchanged.
func Explain(err error) error {
	if err == nil {
		return nil
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return err
	}

	switch status := api.StatusOf(err); {
	case api.IsUnauthorized(err):
		return NewUserError("not authorized; set BEACON_AUTH_TOKEN or the auth client credentials", err)
	case status == http.StatusNotFound:
		return NewUserError("not found", err)
	case status == http.StatusTooManyRequests:
		return NewUserError("usage limit reached; try again later", err)
	case status >= http.StatusInternalServerError:
		return NewUserError("the 990 Beacon API is having trouble", err)
	case status != 0:
		return NewUserError("request rejected by the API", err)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewUserError("canceled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewUserError("timed out waiting for the API", err)
	}
	return err
}
