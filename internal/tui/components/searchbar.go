package components

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/michaelpawlus/990-beacon/internal/debounce"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

const (
	// DefaultTypeaheadDelay is how long typing must pause before suggestions are fetched.
	DefaultTypeaheadDelay = 200 * time.Millisecond
	// MinTypeaheadLength is the shortest query that produces suggestions.
	MinTypeaheadLength = 2

	// rows taken by the bordered input above the dropdown
	inputHeight = 3
)

type searchBarKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Select  key.Binding
	Dismiss key.Binding
}

var searchBarKeys = searchBarKeyMap{
	Next: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next suggestion"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous suggestion"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search / open"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "hide suggestions"),
	),
}

// SearchBarModel is the query input with a typeahead dropdown.
type SearchBarModel struct {
	ctx             context.Context
	service         SearchService
	debouncer       *debounce.Debouncer[string]
	theme           themes.Theme
	suggestions     []model.TypeaheadResult
	input           textinput.Model
	highlighted     int
	seq             int
	width           int
	originX         int
	originY         int
	showSuggestions bool
}

// NewSearchBarModel creates a search bar that fetches suggestions from service
// once typing has paused for delay.
func NewSearchBarModel(ctx context.Context, service SearchService, delay time.Duration, theme themes.Theme) SearchBarModel {
	ti := textinput.New()
	ti.Placeholder = "Search by organization name or EIN..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 200

	if delay <= 0 {
		delay = DefaultTypeaheadDelay
	}

	return SearchBarModel{
		ctx:         ctx,
		service:     service,
		debouncer:   debounce.New[string](delay),
		theme:       theme,
		input:       ti,
		highlighted: -1,
		width:       60,
	}
}

// Query returns the current input text.
func (m SearchBarModel) Query() string {
	return m.input.Value()
}

// SetQuery replaces the input text without triggering a lookup.
func (m *SearchBarModel) SetQuery(q string) {
	m.input.SetValue(q)
}

// Suggestions returns the current suggestion list.
func (m SearchBarModel) Suggestions() []model.TypeaheadResult {
	return m.suggestions
}

// SuggestionsVisible reports whether the dropdown is open.
func (m SearchBarModel) SuggestionsVisible() bool {
	return m.showSuggestions && len(m.suggestions) > 0
}

// Highlighted returns the highlighted suggestion index, or -1.
func (m SearchBarModel) Highlighted() int {
	return m.highlighted
}

// Focused reports whether the input has keyboard focus.
func (m SearchBarModel) Focused() bool {
	return m.input.Focused()
}

// Focus gives the input keyboard focus and re-opens any suggestions
// left over from before it lost focus.
func (m *SearchBarModel) Focus() tea.Cmd {
	if len(m.suggestions) > 0 {
		m.showSuggestions = true
	}
	return m.input.Focus()
}

// Blur removes keyboard focus and closes the dropdown.
func (m *SearchBarModel) Blur() {
	m.input.Blur()
	m.showSuggestions = false
}

// Stop cancels any pending lookup. Responses already in flight are ignored.
func (m *SearchBarModel) Stop() {
	m.debouncer.Stop()
	m.seq++
}

// SetOrigin records where the bar is drawn on screen, for mouse hit tests.
func (m *SearchBarModel) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Resize sets the rendered width.
func (m *SearchBarModel) Resize(width int) {
	m.width = max(width, 20)
	m.input.Width = m.width - 4 - lipgloss.Width(m.input.Prompt)
}

// Height returns the number of rows the bar currently occupies.
func (m SearchBarModel) Height() int {
	if !m.SuggestionsVisible() {
		return inputHeight
	}
	return inputHeight + len(m.suggestions) + 2
}

// Update handles messages.
func (m SearchBarModel) Update(msg tea.Msg) (SearchBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case debounce.Msg[string]:
		q, ok := m.debouncer.Settled(msg)
		if !ok {
			return m, nil
		}
		return m, m.lookup(q)

	case typeaheadResultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.highlighted = -1
		if msg.err != nil {
			slog.Debug("typeahead failed", "query", msg.query, "error", msg.err)
			m.suggestions = nil
			m.showSuggestions = false
			return m, nil
		}
		m.suggestions = msg.results
		m.showSuggestions = len(msg.results) > 0
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchBarModel) handleKey(msg tea.KeyMsg) (SearchBarModel, tea.Cmd) {
	n := len(m.suggestions)

	switch {
	case key.Matches(msg, searchBarKeys.Next):
		if m.showSuggestions && n > 0 {
			m.highlighted = (m.highlighted + 1) % n
		}
		return m, nil

	case key.Matches(msg, searchBarKeys.Prev):
		if m.showSuggestions && n > 0 {
			if m.highlighted <= 0 {
				m.highlighted = n - 1
			} else {
				m.highlighted--
			}
		}
		return m, nil

	case key.Matches(msg, searchBarKeys.Select):
		if m.showSuggestions && m.highlighted >= 0 && m.highlighted < n {
			return m.open(m.suggestions[m.highlighted])
		}
		m.showSuggestions = false
		m.Stop()
		q := m.input.Value()
		return m, func() tea.Msg {
			return SearchSubmittedMsg{Query: q}
		}

	case key.Matches(msg, searchBarKeys.Dismiss):
		m.showSuggestions = false
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.highlighted = -1
	return m, tea.Batch(cmd, m.debouncer.Push(m.input.Value()))
}

func (m SearchBarModel) handleMouse(msg tea.MouseMsg) (SearchBarModel, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.SuggestionsVisible() {
		return m, nil
	}

	if msg.X < m.originX || msg.X >= m.originX+m.width {
		m.showSuggestions = false
		return m, nil
	}

	row := msg.Y - m.originY
	switch {
	case row >= 0 && row < inputHeight:
		return m, nil
	case row > inputHeight && row <= inputHeight+len(m.suggestions):
		return m.open(m.suggestions[row-inputHeight-1])
	case row == inputHeight || row == inputHeight+len(m.suggestions)+1:
		// dropdown border
		return m, nil
	}

	m.showSuggestions = false
	return m, nil
}

func (m SearchBarModel) open(s model.TypeaheadResult) (SearchBarModel, tea.Cmd) {
	m.showSuggestions = false
	m.highlighted = -1
	m.Stop()
	id := s.ID
	return m, func() tea.Msg {
		return OpenOrganizationMsg{ID: id}
	}
}

func (m *SearchBarModel) lookup(q string) tea.Cmd {
	m.seq++
	if utf8.RuneCountInString(q) < MinTypeaheadLength {
		m.suggestions = nil
		m.showSuggestions = false
		m.highlighted = -1
		return nil
	}

	ctx, svc, seq := m.ctx, m.service, m.seq
	return func() tea.Msg {
		results, err := svc.Typeahead(ctx, q)
		return typeaheadResultMsg{query: q, results: results, err: err, seq: seq}
	}
}

// View renders the input and, when open, the suggestion dropdown.
func (m SearchBarModel) View() string {
	box := m.theme.Input
	if m.input.Focused() {
		box = m.theme.InputFocused
	}
	input := box.Width(m.width - 2).Render(m.input.View())

	if !m.SuggestionsVisible() {
		return input
	}

	inner := m.width - 2
	lines := make([]string, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		name := viewmodel.TruncateString(s.Name, inner)
		sub := viewmodel.ResultSubtitle(s.EIN, s.Location())
		line := name
		if room := inner - lipgloss.Width(name) - 2; room > 4 {
			line += "  " + m.theme.Muted.Render(viewmodel.TruncateString(sub, room))
		}

		style := m.theme.Normal
		if i == m.highlighted {
			style = m.theme.Highlighted
		}
		lines = append(lines, style.Width(inner).Render(line))
	}

	dropdown := m.theme.Dropdown.Width(inner).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, input, dropdown)
}
