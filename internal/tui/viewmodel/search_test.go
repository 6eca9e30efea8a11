package viewmodel

import (
	"errors"
	"testing"

	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/stretchr/testify/assert"
)

func page(items int, total int) *model.PaginatedResults[model.OrganizationSearchResult] {
	p := &model.PaginatedResults[model.OrganizationSearchResult]{Total: total, Page: 1, PageSize: 20}
	for i := 0; i < items; i++ {
		p.Items = append(p.Items, model.OrganizationSearchResult{ID: "x"})
	}
	return p
}

func TestSearchView_Phase(t *testing.T) {
	tests := []struct {
		name string
		view SearchView
		want SearchPhase
	}{
		{name: "nothing searched", view: SearchView{}, want: PhaseIdle},
		{name: "loading wins", view: SearchView{Loading: true, HasSearched: true, Err: errors.New("x")}, want: PhaseLoading},
		{name: "error", view: SearchView{HasSearched: true, Err: errors.New("boom")}, want: PhaseError},
		{name: "results", view: SearchView{HasSearched: true, Results: page(2, 2)}, want: PhaseResults},
		{name: "empty page", view: SearchView{HasSearched: true, Results: page(0, 0)}, want: PhaseEmpty},
		{name: "no payload", view: SearchView{HasSearched: true}, want: PhaseEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.Phase())
		})
	}
}

func TestSearchView_EmptyState(t *testing.T) {
	t.Run("prompt before any search", func(t *testing.T) {
		es, ok := SearchView{}.EmptyState()
		assert.True(t, ok)
		assert.Equal(t, "Search nonprofits", es.Title)
		assert.Equal(t, "Enter a name or EIN to search IRS 990 filing data.", es.Body)
	})

	t.Run("no results for a query", func(t *testing.T) {
		es, ok := SearchView{HasSearched: true, Query: "zzz", Results: page(0, 0)}.EmptyState()
		assert.True(t, ok)
		assert.Equal(t, "No results found", es.Title)
		assert.Equal(t, "Try adjusting your search terms or filters.", es.Body)
	})

	t.Run("filter-only search with nothing back keeps the prompt", func(t *testing.T) {
		es, ok := SearchView{HasSearched: true, Results: page(0, 0)}.EmptyState()
		assert.True(t, ok)
		assert.Equal(t, "Search nonprofits", es.Title)
	})

	t.Run("results have no empty state", func(t *testing.T) {
		_, ok := SearchView{HasSearched: true, Results: page(1, 1)}.EmptyState()
		assert.False(t, ok)
	})
}

func TestResultCountLabel(t *testing.T) {
	assert.Equal(t, "1 result found", ResultCountLabel(1))
	assert.Equal(t, "0 results found", ResultCountLabel(0))
	assert.Equal(t, "42 results found", ResultCountLabel(42))
	assert.Equal(t, "12,345 results found", ResultCountLabel(12345))
}

func TestPaginationView(t *testing.T) {
	tests := []struct {
		name    string
		view    PaginationView
		visible bool
		prev    bool
		next    bool
		label   string
	}{
		{name: "empty result", view: PaginationView{Page: 1, TotalPages: 0}, visible: false, prev: false, next: false, label: "Page 1 of 0"},
		{name: "single page", view: PaginationView{Page: 1, TotalPages: 1}, visible: false, prev: false, next: false, label: "Page 1 of 1"},
		{name: "first of many", view: PaginationView{Page: 1, TotalPages: 3}, visible: true, prev: false, next: true, label: "Page 1 of 3"},
		{name: "middle", view: PaginationView{Page: 2, TotalPages: 3}, visible: true, prev: true, next: true, label: "Page 2 of 3"},
		{name: "last", view: PaginationView{Page: 3, TotalPages: 3}, visible: true, prev: true, next: false, label: "Page 3 of 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, tt.view.Visible())
			assert.Equal(t, tt.prev, tt.view.CanPrev())
			assert.Equal(t, tt.next, tt.view.CanNext())
			assert.Equal(t, tt.label, tt.view.Label())
		})
	}
}

func TestNewPaginationView(t *testing.T) {
	pv := NewPaginationView(model.PaginatedResults[model.TypeaheadResult]{Page: 2, TotalPages: 5})
	assert.Equal(t, PaginationView{Page: 2, TotalPages: 5}, pv)
}

func TestResultSubtitle(t *testing.T) {
	assert.Equal(t, "EIN: 123456789", ResultSubtitle("123456789", ""))
	assert.Equal(t, "EIN: 123456789 | Boston, MA", ResultSubtitle("123456789", "Boston, MA"))
}
