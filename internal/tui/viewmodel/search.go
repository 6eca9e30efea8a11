package viewmodel

import (
	"fmt"

	"github.com/michaelpawlus/990-beacon/internal/format"
	"github.com/michaelpawlus/990-beacon/internal/model"
)

// SearchPhase is what the results area of the search screen shows.
type SearchPhase int

const (
	// PhaseIdle is shown before any search has run.
	PhaseIdle SearchPhase = iota
	// PhaseLoading is shown while a search is outstanding.
	PhaseLoading
	// PhaseResults is shown when the latest search returned items.
	PhaseResults
	// PhaseEmpty is shown when the latest search returned no items.
	PhaseEmpty
	// PhaseError is shown when the latest search failed.
	PhaseError
)

// SearchView is the display state of the search screen.
type SearchView struct {
	Err         error
	Results     *model.PaginatedResults[model.OrganizationSearchResult]
	Query       string
	Loading     bool
	HasSearched bool
}

// Phase derives what the results area should render.
func (sv SearchView) Phase() SearchPhase {
	switch {
	case sv.Loading:
		return PhaseLoading
	case sv.Err != nil:
		return PhaseError
	case !sv.HasSearched:
		return PhaseIdle
	case sv.Results != nil && len(sv.Results.Items) > 0:
		return PhaseResults
	default:
		return PhaseEmpty
	}
}

// EmptyState is the copy for an idle or empty results area.
type EmptyState struct {
	Title string
	Body  string
}

var (
	promptState = EmptyState{
		Title: "Search nonprofits",
		Body:  "Enter a name or EIN to search IRS 990 filing data.",
	}
	noResultsState = EmptyState{
		Title: "No results found",
		Body:  "Try adjusting your search terms or filters.",
	}
)

// EmptyState returns the copy to show, and false when the phase is not idle or empty.
func (sv SearchView) EmptyState() (EmptyState, bool) {
	switch sv.Phase() {
	case PhaseIdle:
		return promptState, true
	case PhaseEmpty:
		if sv.Query != "" {
			return noResultsState, true
		}
		return promptState, true
	default:
		return EmptyState{}, false
	}
}

// ResultCountLabel renders "1 result found" / "N results found".
func ResultCountLabel(total int) string {
	if total == 1 {
		return "1 result found"
	}
	return fmt.Sprintf("%s results found", format.Count(total))
}

// PaginationView is the state of the prev/next control.
type PaginationView struct {
	Page       int
	TotalPages int
}

// NewPaginationView reads pagination state from a result page.
func NewPaginationView[T any](p model.PaginatedResults[T]) PaginationView {
	return PaginationView{Page: p.Page, TotalPages: p.TotalPages}
}

// Visible reports whether the control is shown at all.
// A single page and an empty result (TotalPages 0) both hide it.
func (pv PaginationView) Visible() bool {
	return pv.TotalPages > 1
}

// CanPrev reports whether "previous" is enabled.
func (pv PaginationView) CanPrev() bool {
	return pv.Page > 1
}

// CanNext reports whether "next" is enabled.
func (pv PaginationView) CanNext() bool {
	return pv.Page < pv.TotalPages
}

// Label renders "Page x of y".
func (pv PaginationView) Label() string {
	return fmt.Sprintf("Page %d of %d", pv.Page, pv.TotalPages)
}

// ResultSubtitle renders "EIN: x | City, ST" for a result or suggestion.
func ResultSubtitle(ein, location string) string {
	if location == "" {
		return "EIN: " + ein
	}
	return "EIN: " + ein + " | " + location
}
