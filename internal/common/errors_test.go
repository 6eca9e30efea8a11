package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/michaelpawlus/990-beacon/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewUserError("cannot reach the API", cause)

	assert.Equal(t, "cannot reach the API: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bare", NewUserError("bare", nil).Error())
}

func TestExplain(t *testing.T) {
	tests := []struct {
		err     error
		name    string
		message string
	}{
		{name: "unauthorized", err: &api.Error{Status: http.StatusUnauthorized}, message: "not authorized"},
		{name: "forbidden", err: &api.Error{Status: http.StatusForbidden}, message: "not authorized"},
		{name: "not found", err: &api.Error{Status: http.StatusNotFound}, message: "not found"},
		{name: "rate limited", err: &api.Error{Status: http.StatusTooManyRequests}, message: "usage limit reached"},
		{name: "server error", err: &api.Error{Status: http.StatusBadGateway}, message: "having trouble"},
		{name: "other status", err: &api.Error{Status: http.StatusBadRequest}, message: "request rejected"},
		{name: "wrapped status", err: fmt.Errorf("search: %w", &api.Error{Status: http.StatusNotFound}), message: "not found"},
		{name: "deadline", err: context.DeadlineExceeded, message: "timed out"},
		{name: "canceled", err: context.Canceled, message: "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Explain(tt.err)

			var userErr *UserError
			require.ErrorAs(t, got, &userErr)
			assert.Contains(t, userErr.UserMessage, tt.message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestExplainPassesThrough(t *testing.T) {
	assert.NoError(t, Explain(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, Explain(plain))

	already := NewUserError("already friendly", plain)
	assert.Same(t, already, Explain(already))
}
