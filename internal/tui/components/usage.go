package components

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/michaelpawlus/990-beacon/internal/format"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

const usageFailedText = "Unable to load usage data."

var usageKeys = struct {
	Refresh key.Binding
	Back    key.Binding
}{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
}

// UsageModel shows the user's search and profile view counters.
type UsageModel struct {
	ctx     context.Context
	service UsageService
	err     error
	summary *model.UsageSummary
	theme   themes.Theme
	spinner spinner.Model
	width   int
	loading bool
}

// NewUsageModel creates a usage screen.
func NewUsageModel(ctx context.Context, service UsageService, theme themes.Theme) UsageModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return UsageModel{
		ctx:     ctx,
		service: service,
		theme:   theme,
		spinner: s,
		width:   80,
		loading: true,
	}
}

// Init starts loading the counters.
func (m UsageModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

func (m UsageModel) load() tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		summary, err := svc.UsageSummary(ctx)
		return usageLoadedMsg{summary: summary, err: err}
	}
}

// Resize sets the rendered width.
func (m *UsageModel) Resize(width int) {
	m.width = width
}

// KeyBindings returns the bindings that currently apply.
func (m UsageModel) KeyBindings() []key.Binding {
	if m.loading {
		return []key.Binding{usageKeys.Back}
	}
	return []key.Binding{usageKeys.Refresh, usageKeys.Back}
}

// Update handles messages.
func (m UsageModel) Update(msg tea.Msg) (UsageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usageLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.summary = nil
			return m, nil
		}
		summary := msg.summary
		m.summary = &summary
		m.err = nil
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, usageKeys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, usageKeys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		}
	}
	return m, nil
}

// View renders the usage screen.
func (m UsageModel) View() string {
	lines := []string{m.theme.Title.Render("Usage"), ""}

	switch {
	case m.loading:
		lines = append(lines, m.spinner.View()+" "+m.theme.Muted.Render("Loading usage..."))

	case m.err != nil || m.summary == nil:
		lines = append(lines, m.theme.Muted.Render(usageFailedText))

	default:
		w := max(m.width/4-2, 16)
		var cards []string
		for _, item := range viewmodel.UsageItems(*m.summary) {
			cards = append(cards, m.theme.Card.Width(w).Render(
				m.theme.CardLabel.Render(item.Label)+"\n"+m.theme.CardValue.Render(format.Count(item.Value)),
			))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return strings.Join(lines, "\n")
}
