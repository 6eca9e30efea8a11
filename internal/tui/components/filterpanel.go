package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
)

// filterField is a focusable row of the filter panel.
type filterField int

const (
	fieldState filterField = iota
	fieldNTEE
	fieldYear
	fieldMinRevenue
	fieldMaxRevenue
	fieldMinAssets
	fieldMaxAssets
	fieldApply
	fieldClear
	fieldCount
)

type filterInputSpec struct {
	label       string
	placeholder string
	limit       int
	numeric     bool
}

var filterInputs = []filterInputSpec{
	{label: "NTEE Code", placeholder: "e.g. P20", limit: 10},
	{label: "Filing Year", placeholder: "e.g. 2023", limit: 4, numeric: true},
	{label: "Min Revenue", placeholder: "0", limit: 15, numeric: true},
	{label: "Max Revenue", placeholder: "No limit", limit: 15, numeric: true},
	{label: "Min Assets", placeholder: "0", limit: 15, numeric: true},
	{label: "Max Assets", placeholder: "No limit", limit: 15, numeric: true},
}

type filterPanelKeyMap struct {
	Toggle key.Binding
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Apply  key.Binding
	Clear  key.Binding
}

var filterKeys = filterPanelKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "show/hide filters"),
	),
	Next: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←/→", "change state"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "clear filters"),
	),
}

// FilterPanelModel edits the non-query search filters. It starts collapsed.
type FilterPanelModel struct {
	theme    themes.Theme
	inputs   []textinput.Model
	field    filterField
	stateIdx int
	width    int
	expanded bool
	focused  bool
}

// NewFilterPanelModel creates a collapsed filter panel with no filters set.
func NewFilterPanelModel(theme themes.Theme) FilterPanelModel {
	inputs := make([]textinput.Model, len(filterInputs))
	for i, def := range filterInputs {
		ti := textinput.New()
		ti.Placeholder = def.placeholder
		ti.CharLimit = def.limit
		ti.Prompt = ""
		ti.Width = 16
		inputs[i] = ti
	}

	return FilterPanelModel{
		theme:    theme,
		inputs:   inputs,
		stateIdx: -1,
		width:    60,
	}
}

// Expanded reports whether the fields are shown.
func (m FilterPanelModel) Expanded() bool {
	return m.expanded
}

// Focused reports whether the panel has keyboard focus.
func (m FilterPanelModel) Focused() bool {
	return m.focused
}

// Focus gives the panel keyboard focus.
func (m *FilterPanelModel) Focus() tea.Cmd {
	m.focused = true
	return m.focusField()
}

// Blur removes keyboard focus.
func (m *FilterPanelModel) Blur() {
	m.focused = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// Resize sets the rendered width.
func (m *FilterPanelModel) Resize(width int) {
	m.width = max(width, 30)
}

// Values returns the filters as currently entered. Q and Page are left unset.
func (m FilterPanelModel) Values() model.SearchFilters {
	var f model.SearchFilters
	if m.stateIdx >= 0 && m.stateIdx < len(model.USStates) {
		f.State = model.USStates[m.stateIdx]
	}
	f.NTEECode = strings.TrimSpace(m.inputs[fieldNTEE-1].Value())
	f.FilingYear = parseAmount(m.inputs[fieldYear-1].Value())
	f.MinRevenue = parseAmount(m.inputs[fieldMinRevenue-1].Value())
	f.MaxRevenue = parseAmount(m.inputs[fieldMaxRevenue-1].Value())
	f.MinAssets = parseAmount(m.inputs[fieldMinAssets-1].Value())
	f.MaxAssets = parseAmount(m.inputs[fieldMaxAssets-1].Value())
	return f
}

func parseAmount(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Reset clears every field.
func (m *FilterPanelModel) Reset() {
	m.stateIdx = -1
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}

// Update handles messages.
func (m FilterPanelModel) Update(msg tea.Msg) (FilterPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if in := m.activeInput(); in >= 0 {
			var cmd tea.Cmd
			m.inputs[in], cmd = m.inputs[in].Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if !m.focused {
		return m, nil
	}

	if key.Matches(keyMsg, filterKeys.Toggle) {
		m.expanded = !m.expanded
		return m, m.focusField()
	}

	if !m.expanded {
		if keyMsg.String() == "enter" || keyMsg.String() == " " {
			m.expanded = true
			return m, m.focusField()
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, filterKeys.Next):
		m.field = (m.field + 1) % fieldCount
		return m, m.focusField()

	case key.Matches(keyMsg, filterKeys.Prev):
		m.field = (m.field + fieldCount - 1) % fieldCount
		return m, m.focusField()

	case key.Matches(keyMsg, filterKeys.Clear):
		return m.clear()

	case key.Matches(keyMsg, filterKeys.Apply):
		if m.field == fieldClear {
			return m.clear()
		}
		f := m.Values()
		return m, func() tea.Msg {
			return FiltersAppliedMsg{Filters: f}
		}
	}

	if m.field == fieldState {
		switch {
		case key.Matches(keyMsg, filterKeys.Left):
			m.stateIdx--
			if m.stateIdx < -1 {
				m.stateIdx = len(model.USStates) - 1
			}
		case key.Matches(keyMsg, filterKeys.Right):
			m.stateIdx++
			if m.stateIdx >= len(model.USStates) {
				m.stateIdx = -1
			}
		}
		return m, nil
	}

	in := m.activeInput()
	if in < 0 {
		return m, nil
	}
	if filterInputs[in].numeric && keyMsg.Type == tea.KeyRunes && !allDigits(keyMsg.Runes) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[in], cmd = m.inputs[in].Update(keyMsg)
	return m, cmd
}

func (m FilterPanelModel) clear() (FilterPanelModel, tea.Cmd) {
	m.Reset()
	return m, func() tea.Msg {
		return FiltersClearedMsg{}
	}
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// activeInput returns the index into inputs of the focused field, or -1.
func (m FilterPanelModel) activeInput() int {
	if m.field >= fieldNTEE && m.field <= fieldMaxAssets {
		return int(m.field - 1)
	}
	return -1
}

func (m *FilterPanelModel) focusField() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	in := m.activeInput()
	if !m.focused || !m.expanded || in < 0 {
		return nil
	}
	return m.inputs[in].Focus()
}

// View renders the panel header and, when expanded, its fields.
func (m FilterPanelModel) View() string {
	title := m.theme.Bold
	if m.focused && !m.expanded {
		title = m.theme.Selected
	}
	header := title.Render("Filters")
	if m.Values().HasActiveFilters() {
		header += " " + m.theme.Muted.Render("(active)")
	}
	if m.expanded {
		header += " ▴"
	} else {
		header += " ▾"
	}

	if !m.expanded {
		return m.theme.Panel.Width(m.width - 2).Render(header)
	}

	label := lipgloss.NewStyle().Width(14)
	rows := []string{header, ""}

	state := "All States"
	if m.stateIdx >= 0 {
		state = model.USStates[m.stateIdx]
	}
	rows = append(rows, m.row(fieldState, label.Render("State"), "‹ "+state+" ›"))

	for i, def := range filterInputs {
		rows = append(rows, m.row(filterField(i+1), label.Render(def.label), m.inputs[i].View()))
	}

	rows = append(rows, "", m.button(fieldApply, "Apply")+"  "+m.button(fieldClear, "Clear"))
	return m.theme.Panel.Width(m.width - 2).Render(strings.Join(rows, "\n"))
}

func (m FilterPanelModel) row(f filterField, label, value string) string {
	marker := "  "
	if m.focused && m.field == f {
		marker = "› "
	}
	return marker + label + value
}

func (m FilterPanelModel) button(f filterField, caption string) string {
	if m.focused && m.field == f {
		return m.theme.Selected.Render(" " + caption + " ")
	}
	return m.theme.OutlineBadge.Render("[" + caption + "]")
}
