package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type failingTokenSource struct{ err error }

func (s failingTokenSource) Token() (*oauth2.Token, error) { return nil, s.err }

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		writeJSON(t, w, map[string]string{"id": "1", "email": "test@test.com"})
	})

	client := New(srv.URL, WithToken("test-token"))
	user, err := client.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "test@test.com", user.Email)
}

func TestClient_NoTokenSendsNoAuthorization(t *testing.T) {
	var present bool
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		writeJSON(t, w, model.Health{Status: "ok", DB: "connected", Version: "0.1.0"})
	})

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "no option", opts: nil},
		{name: "empty token", opts: []Option{WithToken("")}},
		{name: "token source yields empty token", opts: []Option{WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{}))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			present = true
			health, err := New(srv.URL, tt.opts...).Health(context.Background())
			require.NoError(t, err)
			assert.False(t, present)
			assert.True(t, health.OK())
		})
	}
}

func TestClient_TokenSourceConsultedPerRequest(t *testing.T) {
	var calls int
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, model.UsageSummary{})
	})

	ts := oauth2.TokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
		calls++
		return &oauth2.Token{AccessToken: "tok"}, nil
	}))
	client := New(srv.URL, WithTokenSource(ts))

	_, err := client.UsageSummary(context.Background())
	require.NoError(t, err)
	_, err = client.UsageSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) { return f() }

func TestClient_TokenSourceError(t *testing.T) {
	boom := errors.New("identity provider down")
	client := New("http://unused.invalid", WithTokenSource(failingTokenSource{err: boom}))

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestClient_Non2xxReturnsTypedError(t *testing.T) {
	tests := []struct {
		name       string
		wantText   string
		status     int
		wantNotFnd bool
		wantUnauth bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantText: "Unauthorized", wantUnauth: true},
		{name: "not found", status: http.StatusNotFound, wantText: "Not Found", wantNotFnd: true},
		{name: "server error", status: http.StatusInternalServerError, wantText: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail":"ignored"}`))
			})

			_, err := New(srv.URL, WithToken("bad-token")).Me(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantText, apiErr.StatusText)
			assert.Equal(t, tt.status, StatusOf(err))
			assert.Equal(t, tt.wantNotFnd, IsNotFound(err))
			assert.Equal(t, tt.wantUnauth, IsUnauthorized(err))
		})
	}
}

func TestClient_NetworkErrorPassesThrough(t *testing.T) {
	netErr := errors.New("Network error")
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, netErr
	})}

	_, err := New("http://api.example", WithToken("token"), WithHTTPClient(hc)).Me(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, "Network error")
	assert.ErrorIs(t, err, netErr)
	assert.Zero(t, StatusOf(err))
}

func TestClient_Search(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		writeJSON(t, w, map[string]any{
			"items": []map[string]any{
				{"id": "1", "ein": "123456789", "name": "Test Nonprofit", "city": "Washington", "state": "DC", "latest_revenue": 5000000},
			},
			"total":       1,
			"page":        2,
			"page_size":   20,
			"total_pages": 1,
		})
	})

	minRevenue := int64(1000)
	results, err := New(srv.URL).Search(context.Background(), model.SearchFilters{
		Q:          "food bank",
		State:      "DC",
		MinRevenue: &minRevenue,
		Page:       2,
	})

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/search", gotPath)
	assert.Equal(t, map[string][]string{
		"q":           {"food bank"},
		"state":       {"DC"},
		"min_revenue": {"1000"},
		"page":        {"2"},
	}, gotQuery)

	require.Len(t, results.Items, 1)
	item := results.Items[0]
	assert.Equal(t, "Test Nonprofit", item.Name)
	assert.Equal(t, "Washington, DC", item.Location())
	require.NotNil(t, item.LatestRevenue)
	assert.Equal(t, int64(5000000), *item.LatestRevenue)
	assert.Nil(t, item.LatestTaxYear)
	assert.Equal(t, 2, results.Page)
}

func TestClient_Typeahead(t *testing.T) {
	var rawQuery string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "/api/v1/search/typeahead", r.URL.Path)
		writeJSON(t, w, []model.TypeaheadResult{{ID: "a", EIN: "1", Name: "Red Cross"}})
	})

	results, err := New(srv.URL).Typeahead(context.Background(), "red & cross")

	require.NoError(t, err)
	assert.Equal(t, "q=red+%26+cross", rawQuery)
	require.Len(t, results, 1)
	assert.Equal(t, "Red Cross", results[0].Name)
}

func TestClient_Organization(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/organizations/abc-123", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"id":   "abc-123",
			"ein":  "987654321",
			"name": "Helping Hands",
			"filings": []map[string]any{
				{"id": "f2", "tax_year": 2023, "people": []map[string]any{{"id": "p1", "name": "Ann"}}},
				{"id": "f1", "tax_year": 2022, "grants": []map[string]any{{"id": "g1", "recipient_name": "School"}}},
			},
			"metrics": map[string]any{"program_expense_ratio": 0.81},
		})
	})

	profile, err := New(srv.URL).Organization(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.Equal(t, "Helping Hands", profile.Name)
	latest, ok := profile.LatestFiling()
	require.True(t, ok)
	assert.Equal(t, 2023, latest.TaxYear)
	assert.Len(t, profile.People(), 1)
	assert.Len(t, profile.Grants(), 1)
	require.NotNil(t, profile.Metrics.ProgramExpenseRatio)
	assert.InDelta(t, 0.81, *profile.Metrics.ProgramExpenseRatio, 1e-9)
	assert.Nil(t, profile.Metrics.RevenueGrowthRate)
}

func TestClient_DecodeError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := New(srv.URL).UsageSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode /api/v1/usage/summary response")
	assert.Zero(t, StatusOf(err))
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	assert.Equal(t, "https://api.example.org", New("https://api.example.org/").BaseURL())
}

func TestFiltersToQuery_OmitsUnset(t *testing.T) {
	year := int64(2023)
	zero := int64(0)

	q := FiltersToQuery(model.SearchFilters{FilingYear: &year, MaxAssets: &zero})

	assert.Equal(t, "filing_year=2023&max_assets=0", q.Encode())
	assert.Empty(t, FiltersToQuery(model.SearchFilters{}))
}
