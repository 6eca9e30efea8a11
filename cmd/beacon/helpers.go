package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/michaelpawlus/990-beacon/internal/api"
	"github.com/michaelpawlus/990-beacon/internal/auth"
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/michaelpawlus/990-beacon/internal/config"
)

// newClient builds an API client from the loaded configuration.
func newClient(ctx context.Context, cfg config.Config) (*api.Client, error) {
	tokens, err := auth.TokenSource(ctx, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	opts := []api.Option{
		api.WithTokenSource(tokens),
		api.WithLogger(slog.Default()),
		api.WithUserAgent("beacon/" + version),
	}
	if cfg.API.Timeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}))
	}
	return api.New(cfg.API.BaseURL, opts...), nil
}

// notFound turns a 404 into a user-facing message and explains anything else.
func notFound(err error, what string) error {
	if api.IsNotFound(err) {
		return common.NewUserError(what+" not found.", err)
	}
	return common.Explain(err)
}

