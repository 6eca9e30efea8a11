// Package auth supplies bearer tokens for the API client.
//
// The identity provider is external: either a token handed to us directly
// (for example a session token exported by the web app) or an OAuth2
// client-credentials grant against the provider's token endpoint.
package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrIncompleteCredentials is returned when client credentials are only partly configured.
var ErrIncompleteCredentials = errors.New("client_id, client_secret and token_url must all be set")

// Config selects how tokens are obtained.
type Config struct {
	Token        string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// HasClientCredentials reports whether any client-credentials field is set.
func (c Config) HasClientCredentials() bool {
	return c.ClientID != "" || c.ClientSecret != "" || c.TokenURL != ""
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.HasClientCredentials() && (c.ClientID == "" || c.ClientSecret == "" || c.TokenURL == "") {
		return ErrIncompleteCredentials
	}
	return nil
}

// TokenSource returns the token source described by cfg, or nil when no
// credentials are configured and requests should go out unauthenticated.
// A static token wins over client credentials.
func TokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case cfg.Token != "":
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}), nil
	case cfg.HasClientCredentials():
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		// ReuseTokenSource caches until expiry.
		return oauth2.ReuseTokenSource(nil, cc.TokenSource(ctx)), nil
	default:
		return nil, nil
	}
}
