// Package api is a thin client for the 990 Beacon backend.
//
// Requests are read-only. A non-2xx response becomes an *Error carrying the
// status; transport failures are returned as the transport reported them.
// Nothing is retried.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/michaelpawlus/990-beacon/internal/model"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the backend API.
type Client struct {
	tokens     oauth2.TokenSource
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	userAgent  string
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.get(ctx, "/api/v1/me", nil, &user)
	return user, err
}

// Health returns the backend liveness report.
func (c *Client) Health(ctx context.Context) (model.Health, error) {
	var health model.Health
	err := c.get(ctx, "/health", nil, &health)
	return health, err
}

// Search runs a paginated organization search.
func (c *Client) Search(ctx context.Context, filters model.SearchFilters) (model.PaginatedResults[model.OrganizationSearchResult], error) {
	var results model.PaginatedResults[model.OrganizationSearchResult]
	err := c.get(ctx, "/api/v1/search", FiltersToQuery(filters), &results)
	return results, err
}

// Typeahead returns name suggestions for a partial query.
func (c *Client) Typeahead(ctx context.Context, q string) ([]model.TypeaheadResult, error) {
	var results []model.TypeaheadResult
	err := c.get(ctx, "/api/v1/search/typeahead", url.Values{"q": {q}}, &results)
	return results, err
}

// Organization returns the full profile of one organization.
func (c *Client) Organization(ctx context.Context, id string) (model.OrganizationProfile, error) {
	var profile model.OrganizationProfile
	err := c.get(ctx, "/api/v1/organizations/"+url.PathEscape(id), nil, &profile)
	return profile, err
}

// UsageSummary returns the caller's usage counters.
func (c *Client) UsageSummary(ctx context.Context) (model.UsageSummary, error) {
	var usage model.UsageSummary
	err := c.get(ctx, "/api/v1/usage/summary", nil, &usage)
	return usage, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.request(ctx, http.MethodGet, path, query, out)
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.tokens != nil {
		token, tokenErr := c.tokens.Token()
		if tokenErr != nil {
			return fmt.Errorf("failed to obtain access token: %w", tokenErr)
		}
		if token != nil && token.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Hand back what the transport reported, not net/http's wrapper.
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return urlErr.Err
		}
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// statusText mirrors the reason phrase of the response line.
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// FiltersToQuery encodes filters as query parameters, omitting unset fields.
func FiltersToQuery(f model.SearchFilters) url.Values {
	q := url.Values{}
	setString(q, "q", f.Q)
	setString(q, "state", f.State)
	setString(q, "ntee_code", f.NTEECode)
	setInt(q, "min_revenue", f.MinRevenue)
	setInt(q, "max_revenue", f.MaxRevenue)
	setInt(q, "min_assets", f.MinAssets)
	setInt(q, "max_assets", f.MaxAssets)
	setInt(q, "filing_year", f.FilingYear)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value *int64) {
	if value != nil {
		q.Set(key, strconv.FormatInt(*value, 10))
	}
}
