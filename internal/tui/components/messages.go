package components

import (
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

// OpenOrganizationMsg requests the profile screen for an organization.
type OpenOrganizationMsg struct {
	ID string
}

// BackMsg requests a return to the previous screen.
type BackMsg struct{}

// NavigateMsg requests a top-level screen.
type NavigateMsg struct {
	Screen viewmodel.Screen
}

// SearchSubmittedMsg is sent when the user submits the search input.
type SearchSubmittedMsg struct {
	Query string
}

// FiltersAppliedMsg carries the filter panel values. Query and page are
// left for the search page to fill in.
type FiltersAppliedMsg struct {
	Filters model.SearchFilters
}

// FiltersClearedMsg is sent when the filter panel is reset.
type FiltersClearedMsg struct{}

type typeaheadResultMsg struct {
	err     error
	query   string
	results []model.TypeaheadResult
	seq     int
}

type searchResultMsg struct {
	err     error
	results model.PaginatedResults[model.OrganizationSearchResult]
	filters model.SearchFilters
	seq     int
}

type profileLoadedMsg struct {
	err     error
	id      string
	profile model.OrganizationProfile
}

type usageLoadedMsg struct {
	err     error
	summary model.UsageSummary
}

type userLoadedMsg struct {
	err  error
	user model.User
}

type healthLoadedMsg struct {
	err    error
	health model.Health
}
