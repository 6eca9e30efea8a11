package components

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/michaelpawlus/990-beacon/internal/debounce"
	"github.com/michaelpawlus/990-beacon/internal/model"
	tuitest "github.com/michaelpawlus/990-beacon/internal/tui/testing"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
)

const testDelay = 5 * time.Millisecond

type fakeBackend struct {
	typeahead    func(q string) ([]model.TypeaheadResult, error)
	search       func(f model.SearchFilters) (model.PaginatedResults[model.OrganizationSearchResult], error)
	organization func(id string) (model.OrganizationProfile, error)
	me           func() (model.User, error)
	health       func() (model.Health, error)
	usage        func() (model.UsageSummary, error)

	typeaheadCalls []string
	searchCalls    []model.SearchFilters
	orgCalls       []string
	meCalls        int
	usageCalls     int
}

func (f *fakeBackend) Typeahead(_ context.Context, q string) ([]model.TypeaheadResult, error) {
	f.typeaheadCalls = append(f.typeaheadCalls, q)
	if f.typeahead == nil {
		return nil, nil
	}
	return f.typeahead(q)
}

func (f *fakeBackend) Search(_ context.Context, filters model.SearchFilters) (model.PaginatedResults[model.OrganizationSearchResult], error) {
	f.searchCalls = append(f.searchCalls, filters)
	if f.search == nil {
		return model.PaginatedResults[model.OrganizationSearchResult]{Page: 1}, nil
	}
	return f.search(filters)
}

func (f *fakeBackend) Organization(_ context.Context, id string) (model.OrganizationProfile, error) {
	f.orgCalls = append(f.orgCalls, id)
	return f.organization(id)
}

func (f *fakeBackend) Me(context.Context) (model.User, error) {
	f.meCalls++
	return f.me()
}

func (f *fakeBackend) Health(context.Context) (model.Health, error) {
	if f.health == nil {
		return model.Health{Status: "ok", DB: "connected", Version: "0.1.0"}, nil
	}
	return f.health()
}

func (f *fakeBackend) UsageSummary(context.Context) (model.UsageSummary, error) {
	f.usageCalls++
	return f.usage()
}

func suggestions(names ...string) []model.TypeaheadResult {
	out := make([]model.TypeaheadResult, len(names))
	for i, n := range names {
		out[i] = model.TypeaheadResult{ID: "org-" + n, EIN: "00000000" + string(rune('0'+i)), Name: n}
	}
	return out
}

func onePage(items ...model.OrganizationSearchResult) model.PaginatedResults[model.OrganizationSearchResult] {
	return model.PaginatedResults[model.OrganizationSearchResult]{
		Items:      items,
		Total:      len(items),
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}
}

func newTestSearchBar(svc SearchService) SearchBarModel {
	m := NewSearchBarModel(context.Background(), svc, testDelay, themes.Default)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.Focus()
	return m
}

func newTestSearchPage(svc SearchService) SearchPageModel {
	m := NewSearchPageModel(context.Background(), svc, 20, testDelay, themes.Default)
	m.bar.input.Cursor.SetMode(cursor.CursorStatic)
	for i := range m.panel.inputs {
		m.panel.inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}
	m.Resize(100, 200)
	return m
}

func typeText(m SearchBarModel, text string) (SearchBarModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range tuitest.Typed(text) {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

// drainBar runs cmd and feeds the bar's own messages back into it until it
// goes quiet. Messages meant for other components are returned.
func drainBar(m SearchBarModel, cmd tea.Cmd) (SearchBarModel, []tea.Msg) {
	var emitted []tea.Msg
	queue := tuitest.Collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		switch msg.(type) {
		case debounce.Msg[string], typeaheadResultMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, tuitest.Collect(next)...)
		default:
			emitted = append(emitted, msg)
		}
	}
	return m, emitted
}

// drainPage is drainBar for the whole search screen.
func drainPage(m SearchPageModel, cmd tea.Cmd) (SearchPageModel, []tea.Msg) {
	var emitted []tea.Msg
	queue := tuitest.Collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		switch msg.(type) {
		case spinner.TickMsg:
		case debounce.Msg[string], typeaheadResultMsg, searchResultMsg,
			SearchSubmittedMsg, FiltersAppliedMsg, FiltersClearedMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, tuitest.Collect(next)...)
		default:
			emitted = append(emitted, msg)
		}
	}
	return m, emitted
}

func ctrlR() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyCtrlR}
}

func typePage(m SearchPageModel, text string) (SearchPageModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range tuitest.Typed(text) {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}
