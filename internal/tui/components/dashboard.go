package components

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

var dashboardKeys = struct {
	Retry key.Binding
	Nav   key.Binding
}{
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Nav: key.NewBinding(
		key.WithKeys("s", "u"),
		key.WithHelp("s/u", "search/usage"),
	),
}

// UserCardModel shows the signed-in user's name, email and plan.
type UserCardModel struct {
	ctx     context.Context
	service AccountService
	err     error
	user    *model.User
	theme   themes.Theme
	width   int
	loading bool
}

// NewUserCardModel creates a user card that loads on Init.
func NewUserCardModel(ctx context.Context, service AccountService, theme themes.Theme) UserCardModel {
	return UserCardModel{
		ctx:     ctx,
		service: service,
		theme:   theme,
		width:   40,
		loading: true,
	}
}

// Init starts loading the user.
func (m UserCardModel) Init() tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		user, err := svc.Me(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

// Update handles messages.
func (m UserCardModel) Update(msg tea.Msg) (UserCardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.user = nil
			return m, nil
		}
		user := msg.user
		m.user = &user
		m.err = nil

	case tea.KeyMsg:
		if m.err != nil && !m.loading && key.Matches(msg, dashboardKeys.Retry) {
			m.loading = true
			m.err = nil
			return m, m.Init()
		}
	}
	return m, nil
}

// View renders the card.
func (m UserCardModel) View() string {
	var body string
	switch {
	case m.loading:
		body = m.theme.Muted.Render("Loading...")
	case m.err != nil:
		body = m.theme.StatusError.Render(m.err.Error()) + "\n" + m.theme.Muted.Render("[r] Retry")
	case m.user != nil:
		body = strings.Join([]string{
			m.theme.Bold.Render(m.user.DisplayName()),
			m.theme.Muted.Render(m.user.Email),
			"",
			m.theme.Muted.Render("Plan: ") + m.theme.Bold.Render(viewmodel.PlanLabel(m.user.PlanTier)),
		}, "\n")
	}
	return m.theme.Card.Width(m.width).Render(body)
}

// DashboardModel is the landing screen.
type DashboardModel struct {
	ctx       context.Context
	service   AccountService
	healthErr error
	health    *model.Health
	theme     themes.Theme
	card      UserCardModel
	width     int
}

// NewDashboardModel creates the landing screen.
func NewDashboardModel(ctx context.Context, service AccountService, theme themes.Theme) DashboardModel {
	return DashboardModel{
		ctx:     ctx,
		service: service,
		theme:   theme,
		card:    NewUserCardModel(ctx, service, theme),
		width:   80,
	}
}

// Init loads the user card and backend health.
func (m DashboardModel) Init() tea.Cmd {
	ctx, svc := m.ctx, m.service
	health := func() tea.Msg {
		h, err := svc.Health(ctx)
		return healthLoadedMsg{health: h, err: err}
	}
	return tea.Batch(m.card.Init(), health)
}

// Resize sets the rendered width.
func (m *DashboardModel) Resize(width int) {
	m.width = width
	m.card.width = min(max(width/2, 30), 60)
}

// KeyBindings returns the bindings that currently apply.
func (m DashboardModel) KeyBindings() []key.Binding {
	if m.card.err != nil {
		return []key.Binding{dashboardKeys.Nav, dashboardKeys.Retry}
	}
	return []key.Binding{dashboardKeys.Nav}
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case healthLoadedMsg:
		if msg.err != nil {
			m.healthErr = msg.err
			m.health = nil
			return m, nil
		}
		h := msg.health
		m.health = &h
		m.healthErr = nil
		return m, nil

	case tea.KeyMsg:
		for _, item := range viewmodel.NavItems() {
			if msg.String() == item.Key {
				screen := item.Screen
				return m, func() tea.Msg { return NavigateMsg{Screen: screen} }
			}
		}
	}

	var cmd tea.Cmd
	m.card, cmd = m.card.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	lines := []string{
		m.theme.Title.Render("Welcome to 990 Beacon"),
		m.theme.Subtitle.Render("Your nonprofit intelligence dashboard."),
		"",
		m.card.View(),
		"",
	}

	var menu []string
	for _, item := range viewmodel.NavItems() {
		menu = append(menu, m.theme.Card.Width(min(max(m.width/2, 30), 60)).Render(
			m.theme.Badge.Render(item.Key)+" "+m.theme.Bold.Render(item.Label)+"\n"+m.theme.Muted.Render(item.Description),
		))
	}
	lines = append(lines, lipgloss.JoinVertical(lipgloss.Left, menu...), "", m.healthView())
	return strings.Join(lines, "\n")
}

func (m DashboardModel) healthView() string {
	switch {
	case m.healthErr != nil:
		return m.theme.StatusError.Render("API unreachable: " + m.healthErr.Error())
	case m.health == nil:
		return m.theme.Muted.Render("Checking API...")
	case m.health.OK():
		return m.theme.StatusSuccess.Render("●") + " " + m.theme.Muted.Render(viewmodel.HealthLine(*m.health))
	default:
		return m.theme.StatusWarning.Render("●") + " " + m.theme.Muted.Render(viewmodel.HealthLine(*m.health))
	}
}
