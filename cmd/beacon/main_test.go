package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/michaelpawlus/990-beacon/internal/model"
	tuitest "github.com/michaelpawlus/990-beacon/internal/tui/testing"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned responses and records the queries it saw.
type fakeAPI struct {
	mu      sync.Mutex
	queries []string
	auth    []string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	record := func(r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.queries = append(f.queries, r.URL.RawQuery)
		f.auth = append(f.auth, r.Header.Get("Authorization"))
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		reply(w, model.Health{Status: "ok", DB: "connected", Version: "0.1.0"})
	})
	mux.HandleFunc("/api/v1/usage/summary", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		reply(w, model.UsageSummary{SearchesToday: 4, SearchesThisMonth: 1204})
	})
	mux.HandleFunc("/api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.Header.Get("Authorization") == "" {
			http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
			return
		}
		reply(w, model.User{Email: "dana@example.org", PlanTier: "free"})
	})
	mux.HandleFunc("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		reply(w, model.PaginatedResults[model.OrganizationSearchResult]{
			Items:      []model.OrganizationSearchResult{{ID: "org-1", EIN: "530196605", Name: "American Red Cross"}},
			Total:      1,
			Page:       1,
			PageSize:   20,
			TotalPages: 1,
		})
	})
	mux.HandleFunc("/api/v1/search/typeahead", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		reply(w, []model.TypeaheadResult{{ID: "org-1", EIN: "530196605", Name: "American Red Cross"}})
	})
	mux.HandleFunc("/api/v1/organizations/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.URL.Path != "/api/v1/organizations/org-1" {
			http.Error(w, `{"detail":"Organization not found"}`, http.StatusNotFound)
			return
		}
		reply(w, model.OrganizationProfile{ID: "org-1", EIN: "530196605", Name: "American Red Cross"})
	})
	return mux
}

// execute runs the root command against a fake API and returns stdout.
func execute(t *testing.T, args ...string) (string, *fakeAPI, error) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BEACON_AUTH_TOKEN", "")
	viper.Reset()
	cfgFile = ""
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--api-url", srv.URL}, args...))

	err := root.ExecuteContext(context.Background())
	return tuitest.StripANSI(stdout.String()), api, err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "beacon dev\n", out)
}

func TestHealthCommand(t *testing.T) {
	out, _, err := execute(t, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "API ok · database connected · v0.1.0")
}

func TestUsageCommandJSON(t *testing.T) {
	out, _, err := execute(t, "usage", "--json")
	require.NoError(t, err)

	var got model.UsageSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.SearchesToday)
	assert.Equal(t, 1204, got.SearchesThisMonth)
}

func TestWhoamiRequiresToken(t *testing.T) {
	_, _, err := execute(t, "whoami")
	require.Error(t, err)
	var userErr *common.UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Contains(t, err.Error(), "not authorized")
}

func TestWhoamiSendsToken(t *testing.T) {
	out, api, err := execute(t, "--token", "secret", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "dana@example.org")
	assert.Contains(t, out, "Plan: Free")
	assert.Equal(t, []string{"Bearer secret"}, api.auth)
}

func TestSearchCommand(t *testing.T) {
	out, api, err := execute(t, "search", "red", "cross", "--state", "dc", "--min-revenue", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "American Red Cross")

	require.Len(t, api.queries, 1)
	assert.Contains(t, api.queries[0], "q=red+cross")
	assert.Contains(t, api.queries[0], "state=DC")
	assert.Contains(t, api.queries[0], "min_revenue=1000")
	assert.Contains(t, api.queries[0], "page_size=20")
}

func TestSearchCommandRejectsBadState(t *testing.T) {
	_, api, err := execute(t, "search", "x", "--state", "ZZ")
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.Empty(t, api.queries)
}

func TestSuggestCommand(t *testing.T) {
	out, _, err := execute(t, "suggest", "red")
	require.NoError(t, err)
	assert.Contains(t, out, "American Red Cross")

	_, _, err = execute(t, "suggest", "r")
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestOrgCommand(t *testing.T) {
	out, _, err := execute(t, "org", "org-1")
	require.NoError(t, err)
	assert.Contains(t, out, "American Red Cross")
	assert.Contains(t, out, "No 990 filings on record.")
}

func TestOrgCommandNotFound(t *testing.T) {
	_, _, err := execute(t, "org", "missing")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Organization not found.", userErr.UserMessage)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "health")
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}
