package model

import "slices"

// DefaultPageSize is the page size the backend applies when none is sent.
const DefaultPageSize = 20

// SearchFilters is an immutable snapshot of a search query.
// Empty strings and nil pointers mean "no constraint"; a zero Page or
// PageSize lets the backend choose.
type SearchFilters struct {
	MinRevenue *int64
	MaxRevenue *int64
	MinAssets  *int64
	MaxAssets  *int64
	FilingYear *int64
	Q          string
	State      string
	NTEECode   string
	Page       int
	PageSize   int
}

// WithQuery returns a copy with the query set and the page reset to 1.
func (f SearchFilters) WithQuery(q string) SearchFilters {
	f.Q = q
	f.Page = 1
	return f
}

// WithPage returns a copy pointing at the given page.
func (f SearchFilters) WithPage(page int) SearchFilters {
	f.Page = page
	return f
}

// HasActiveFilters reports whether any criterion other than the query is set.
func (f SearchFilters) HasActiveFilters() bool {
	return f.State != "" ||
		f.NTEECode != "" ||
		nonZero(f.MinRevenue) ||
		nonZero(f.MaxRevenue) ||
		nonZero(f.MinAssets) ||
		nonZero(f.MaxAssets) ||
		nonZero(f.FilingYear)
}

// Cleared returns filters holding only the query, as the Clear action does.
func (f SearchFilters) Cleared() SearchFilters {
	return SearchFilters{Q: f.Q, PageSize: f.PageSize}
}

func nonZero(v *int64) bool {
	return v != nil && *v != 0
}

// PaginatedResults is one page of a server-side paginated listing.
// Page is 1-indexed and TotalPages is computed by the server.
type PaginatedResults[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// HasPrev reports whether a previous page exists.
func (p PaginatedResults[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a following page exists.
func (p PaginatedResults[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// USStates are the state codes accepted by the state filter: the fifty
// states plus DC and PR.
var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "PR",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV",
	"WI", "WY",
}

// IsUSState reports whether code is one of USStates.
func IsUSState(code string) bool {
	return slices.Contains(USStates, code)
}
