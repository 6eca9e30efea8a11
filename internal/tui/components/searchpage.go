package components

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/michaelpawlus/990-beacon/internal/format"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

// searchFocus is the part of the search screen that receives keys.
type searchFocus int

const (
	focusInput searchFocus = iota
	focusFilters
	focusResults
	focusCount
)

// lines taken by one result card, including the gap below it
const resultCardHeight = 4

type searchPageKeyMap struct {
	FocusNext key.Binding
	FocusPrev key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Retry     key.Binding
	Back      key.Binding
}

var searchKeys = searchPageKeyMap{
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next section"),
	),
	FocusPrev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous section"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←/h", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→/l", "next page"),
	),
	Retry: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "retry"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// SearchPageModel coordinates the search bar, filter panel, result list and
// pagination. Every search carries a sequence number and only the response
// to the most recently issued search is applied.
type SearchPageModel struct {
	ctx         context.Context
	service     SearchService
	err         error
	results     *model.PaginatedResults[model.OrganizationSearchResult]
	theme       themes.Theme
	filters     model.SearchFilters
	spinner     spinner.Model
	paginator   paginator.Model
	panel       FilterPanelModel
	bar         SearchBarModel
	focus       searchFocus
	cursor      int
	seq         int
	width       int
	height      int
	loading     bool
	hasSearched bool
}

// NewSearchPageModel creates an idle search screen.
func NewSearchPageModel(ctx context.Context, service SearchService, pageSize int, delay time.Duration, theme themes.Theme) SearchPageModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = lipgloss.NewStyle().Foreground(theme.Primary).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(theme.Faint).Render("•")

	bar := NewSearchBarModel(ctx, service, delay, theme)
	bar.Focus()

	return SearchPageModel{
		ctx:       ctx,
		service:   service,
		theme:     theme,
		filters:   model.SearchFilters{PageSize: pageSize},
		spinner:   s,
		paginator: p,
		panel:     NewFilterPanelModel(theme),
		bar:       bar,
		width:     80,
		height:    24,
	}
}

// Init starts the cursor blinking in the search input.
func (m SearchPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Filters returns the filters of the most recent search.
func (m SearchPageModel) Filters() model.SearchFilters {
	return m.filters
}

// ViewState returns the derived display state of the results area.
func (m SearchPageModel) ViewState() viewmodel.SearchView {
	return viewmodel.SearchView{
		Err:         m.err,
		Results:     m.results,
		Query:       m.filters.Q,
		Loading:     m.loading,
		HasSearched: m.hasSearched,
	}
}

// SetOrigin records the screen position of the page's top-left corner.
func (m *SearchPageModel) SetOrigin(x, y int) {
	m.bar.SetOrigin(x, y)
}

// Resize sets the available area.
func (m *SearchPageModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Resize(width)
	m.panel.Resize(width)
}

// Query returns the text currently in the search input.
func (m SearchPageModel) Query() string {
	return m.bar.Query()
}

// SetQuery fills the search input without triggering a lookup.
func (m *SearchPageModel) SetQuery(q string) {
	m.bar.SetQuery(q)
}

// Stop cancels pending typeahead work. Call when the screen is left.
func (m *SearchPageModel) Stop() {
	m.bar.Stop()
}

// KeyBindings returns the bindings that apply to the focused section.
func (m SearchPageModel) KeyBindings() []key.Binding {
	bindings := []key.Binding{searchKeys.FocusNext}
	switch m.focus {
	case focusInput:
		bindings = append(bindings, searchBarKeys.Select, searchBarKeys.Next, searchBarKeys.Dismiss)
	case focusFilters:
		bindings = append(bindings, filterKeys.Toggle, filterKeys.Next, filterKeys.Left, filterKeys.Apply, filterKeys.Clear)
	case focusResults:
		bindings = append(bindings, searchKeys.Down, searchKeys.Open, searchKeys.PrevPage, searchKeys.NextPage)
	}
	if m.err != nil {
		bindings = append(bindings, searchKeys.Retry)
	}
	return bindings
}

// Update handles messages.
func (m SearchPageModel) Update(msg tea.Msg) (SearchPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case SearchSubmittedMsg:
		return m, m.runSearch(m.filters.WithQuery(msg.Query))

	case FiltersAppliedMsg:
		f := msg.Filters
		f.Q = m.filters.Q
		f.PageSize = m.filters.PageSize
		return m, m.applyFilters(f)

	case FiltersClearedMsg:
		return m, m.applyFilters(m.filters.Cleared())

	case searchResultMsg:
		m.handleResult(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var barCmd, panelCmd tea.Cmd
	m.bar, barCmd = m.bar.Update(msg)
	m.panel, panelCmd = m.panel.Update(msg)
	return m, tea.Batch(barCmd, panelCmd)
}

func (m SearchPageModel) handleKey(msg tea.KeyMsg) (SearchPageModel, tea.Cmd) {
	switch {
	case key.Matches(msg, searchKeys.FocusNext):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, searchKeys.FocusPrev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, searchKeys.Retry):
		if m.err != nil && !m.loading {
			return m, m.runSearch(m.filters)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		if key.Matches(msg, searchKeys.Back) && !m.bar.SuggestionsVisible() {
			return m, func() tea.Msg { return BackMsg{} }
		}
		m.bar, cmd = m.bar.Update(msg)

	case focusFilters:
		if key.Matches(msg, searchKeys.Back) {
			return m, m.setFocus(focusInput)
		}
		m.panel, cmd = m.panel.Update(msg)

	case focusResults:
		return m.handleResultsKey(msg)
	}
	return m, cmd
}

func (m SearchPageModel) handleResultsKey(msg tea.KeyMsg) (SearchPageModel, tea.Cmd) {
	if key.Matches(msg, searchKeys.Back) {
		return m, m.setFocus(focusInput)
	}
	if m.results == nil || m.loading {
		return m, nil
	}

	items := m.results.Items
	pv := viewmodel.NewPaginationView(*m.results)

	switch {
	case key.Matches(msg, searchKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, searchKeys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, searchKeys.Open):
		if m.cursor >= 0 && m.cursor < len(items) {
			id := items[m.cursor].ID
			return m, func() tea.Msg { return OpenOrganizationMsg{ID: id} }
		}
	case key.Matches(msg, searchKeys.PrevPage):
		if pv.Visible() && pv.CanPrev() {
			return m, m.runSearch(m.filters.WithPage(pv.Page - 1))
		}
	case key.Matches(msg, searchKeys.NextPage):
		if pv.Visible() && pv.CanNext() {
			return m, m.runSearch(m.filters.WithPage(pv.Page + 1))
		}
	}
	return m, nil
}

// GoToPage searches for the given page of the current filters.
func (m SearchPageModel) GoToPage(page int) (SearchPageModel, tea.Cmd) {
	return m, m.runSearch(m.filters.WithPage(page))
}

func (m *SearchPageModel) setFocus(f searchFocus) tea.Cmd {
	m.focus = f
	m.bar.Blur()
	m.panel.Blur()

	switch f {
	case focusInput:
		return m.bar.Focus()
	case focusFilters:
		return m.panel.Focus()
	}
	return nil
}

// applyFilters stores f and searches only when there is something to search for.
func (m *SearchPageModel) applyFilters(f model.SearchFilters) tea.Cmd {
	f.Page = 1
	m.filters = f
	if !m.hasSearched && f.Q == "" {
		return nil
	}
	return m.runSearch(f)
}

func (m *SearchPageModel) runSearch(f model.SearchFilters) tea.Cmd {
	m.filters = f
	m.hasSearched = true
	m.loading = true
	m.seq++

	ctx, svc, seq := m.ctx, m.service, m.seq
	fetch := func() tea.Msg {
		results, err := svc.Search(ctx, f)
		return searchResultMsg{results: results, err: err, filters: f, seq: seq}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *SearchPageModel) handleResult(msg searchResultMsg) {
	if msg.seq != m.seq {
		slog.Debug("dropping stale search response", "seq", msg.seq, "latest", m.seq)
		return
	}

	m.loading = false
	if msg.err != nil {
		slog.Warn("search failed", "query", msg.filters.Q, "error", msg.err)
		m.results = nil
		m.err = msg.err
		return
	}

	results := msg.results
	m.results = &results
	m.err = nil
	m.cursor = 0
	m.paginator.TotalPages = max(results.TotalPages, 1)
	m.paginator.Page = min(max(results.Page-1, 0), m.paginator.TotalPages-1)
}

// View renders the search screen.
func (m SearchPageModel) View() string {
	sections := []string{
		m.bar.View(),
		m.panel.View(),
		"",
		m.resultsView(),
	}
	return strings.Join(sections, "\n")
}

func (m SearchPageModel) resultsView() string {
	sv := m.ViewState()

	switch sv.Phase() {
	case viewmodel.PhaseLoading:
		return m.loadingView()

	case viewmodel.PhaseError:
		return strings.Join([]string{
			m.theme.StatusError.Render("Search failed"),
			m.theme.Muted.Render(sv.Err.Error()),
			"",
			m.theme.Subtitle.Render("Press ctrl+r to retry."),
		}, "\n")

	case viewmodel.PhaseResults:
		return m.listView()
	}

	es, _ := sv.EmptyState()
	box := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Padding(1, 0)
	return box.Render(m.theme.Title.Render(es.Title) + "\n" + m.theme.Subtitle.Render(es.Body))
}

func (m SearchPageModel) loadingView() string {
	lines := []string{m.spinner.View() + " " + m.theme.Muted.Render("Searching...")}
	bar := m.theme.Skeleton.Render(strings.Repeat("░", max(m.width-4, 10)))
	short := m.theme.Skeleton.Render(strings.Repeat("░", max(m.width/2, 5)))
	for i := 0; i < 3; i++ {
		lines = append(lines, "", bar, short)
	}
	return strings.Join(lines, "\n")
}

func (m SearchPageModel) listView() string {
	items := m.results.Items
	lines := []string{m.theme.Muted.Render(viewmodel.ResultCountLabel(m.results.Total)), ""}

	start, end := m.visibleRange(len(items))
	for i := start; i < end; i++ {
		lines = append(lines, m.resultCard(items[i], i == m.cursor && m.focus == focusResults), "")
	}

	if p := m.paginationView(); p != "" {
		lines = append(lines, p)
	}
	return strings.Join(lines, "\n")
}

// visibleRange picks the window of result cards that fits the screen
// while keeping the cursor in view.
func (m SearchPageModel) visibleRange(n int) (int, int) {
	used := m.bar.Height() + lipgloss.Height(m.panel.View()) + 6
	fit := max((m.height-used)/resultCardHeight, 1)
	if n <= fit {
		return 0, n
	}
	start := min(max(m.cursor-fit/2, 0), n-fit)
	return start, start + fit
}

func (m SearchPageModel) resultCard(r model.OrganizationSearchResult, selected bool) string {
	name := m.theme.Bold.Render(r.Name)
	if selected {
		name = m.theme.Selected.Render(r.Name)
	}

	var badges []string
	if r.NTEECode != nil && *r.NTEECode != "" {
		badges = append(badges, m.theme.Badge.Render(*r.NTEECode))
	}
	if r.LatestTaxYear != nil {
		badges = append(badges, m.theme.OutlineBadge.Render(strconv.Itoa(*r.LatestTaxYear)))
	}

	header := name
	if len(badges) > 0 {
		right := strings.Join(badges, " ")
		gap := max(m.width-lipgloss.Width(name)-lipgloss.Width(right), 1)
		header = name + strings.Repeat(" ", gap) + right
	}

	lines := []string{header, m.theme.Muted.Render(viewmodel.ResultSubtitle(r.EIN, r.Location()))}
	if r.LatestRevenue != nil {
		lines = append(lines, m.theme.Muted.Render("Revenue: "+format.CompactNumber(r.LatestRevenue)))
	}
	return strings.Join(lines, "\n")
}

func (m SearchPageModel) paginationView() string {
	pv := viewmodel.NewPaginationView(*m.results)
	if !pv.Visible() {
		return ""
	}

	prev := m.theme.Muted.Render("‹ Previous")
	if pv.CanPrev() {
		prev = m.theme.Normal.Render("‹ Previous")
	}
	next := m.theme.Muted.Render("Next ›")
	if pv.CanNext() {
		next = m.theme.Normal.Render("Next ›")
	}

	line := prev + "   " + pv.Label() + "   " + next
	if pv.TotalPages <= 12 {
		line += "   " + m.paginator.View()
	}
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(line)
}
