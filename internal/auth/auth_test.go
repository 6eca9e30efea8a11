package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSource_None(t *testing.T) {
	ts, err := TokenSource(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestTokenSource_Static(t *testing.T) {
	ts, err := TokenSource(context.Background(), Config{
		Token:    "static-token",
		ClientID: "ignored",
		// Static token wins even with partial credentials present.
		ClientSecret: "ignored",
		TokenURL:     "https://idp.example/token",
	})
	require.NoError(t, err)
	require.NotNil(t, ts)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "static-token", tok.AccessToken)
}

func TestTokenSource_Incomplete(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing secret", cfg: Config{ClientID: "id", TokenURL: "https://idp/token"}},
		{name: "missing url", cfg: Config{ClientID: "id", ClientSecret: "secret"}},
		{name: "only url", cfg: Config{TokenURL: "https://idp/token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TokenSource(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, ErrIncompleteCredentials)
		})
	}
}

func TestTokenSource_ClientCredentials(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"issued","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	ts, err := TokenSource(context.Background(), Config{
		ClientID:     "beacon-cli",
		ClientSecret: "secret",
		TokenURL:     srv.URL,
		Scopes:       []string{"read"},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		tok, tokErr := ts.Token()
		require.NoError(t, tokErr)
		assert.Equal(t, "issued", tok.AccessToken)
	}
	assert.Equal(t, 1, requests)
}
