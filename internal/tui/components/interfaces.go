package components

import (
	"context"

	"github.com/michaelpawlus/990-beacon/internal/model"
)

// SearchService runs organization searches and typeahead lookups.
type SearchService interface {
	Search(ctx context.Context, filters model.SearchFilters) (model.PaginatedResults[model.OrganizationSearchResult], error)
	Typeahead(ctx context.Context, q string) ([]model.TypeaheadResult, error)
}

// OrganizationService loads organization profiles.
type OrganizationService interface {
	Organization(ctx context.Context, id string) (model.OrganizationProfile, error)
}

// AccountService loads data about the signed-in user and the backend.
type AccountService interface {
	Me(ctx context.Context) (model.User, error)
	Health(ctx context.Context) (model.Health, error)
}

// UsageService loads the signed-in user's usage counters.
type UsageService interface {
	UsageSummary(ctx context.Context) (model.UsageSummary, error)
}

// Backend is everything the interactive client reads from the API.
type Backend interface {
	SearchService
	OrganizationService
	AccountService
	UsageService
}
