package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/michaelpawlus/990-beacon/internal/tui/components"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

const (
	headerHeight = 2
	footerHeight = 2
)

// Model holds the main TUI state. The dashboard lives for the whole session;
// the other screens are created on navigation and dropped when left via back.
type Model struct {
	ctx         context.Context
	backend     components.Backend
	theme       themes.Theme
	help        help.Model
	keymap      KeyMap
	config      Config
	stack       []viewmodel.Screen
	dashboard   components.DashboardModel
	search      components.SearchPageModel
	profile     components.ProfileModel
	usage       components.UsageModel
	screen      viewmodel.Screen
	width       int
	height      int
	searchLive  bool
	profileLive bool
	usageLive   bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	h := help.New()
	h.Styles.ShortKey = cfg.Theme.Bold
	h.Styles.ShortDesc = cfg.Theme.Muted
	h.Styles.ShortSeparator = cfg.Theme.Muted

	m := Model{
		ctx:       ctx,
		backend:   cfg.Backend,
		theme:     cfg.Theme,
		help:      h,
		keymap:    DefaultKeyMap(),
		config:    cfg,
		dashboard: components.NewDashboardModel(ctx, cfg.Backend, cfg.Theme),
		screen:    viewmodel.ScreenDashboard,
		width:     cfg.Width,
		height:    cfg.Height,
	}

	switch cfg.StartScreen {
	case viewmodel.ScreenSearch:
		m.stack = []viewmodel.Screen{viewmodel.ScreenDashboard}
		m.screen = viewmodel.ScreenSearch
		m.search = m.newSearch()
		m.search.SetQuery(cfg.StartQuery)
		m.searchLive = true
	case viewmodel.ScreenProfile:
		m.stack = []viewmodel.Screen{viewmodel.ScreenDashboard}
		m.screen = viewmodel.ScreenProfile
		m.profile = components.NewProfileModel(ctx, cfg.Backend, cfg.StartOrgID, cfg.Theme)
		m.profileLive = true
	case viewmodel.ScreenUsage:
		m.stack = []viewmodel.Screen{viewmodel.ScreenDashboard}
		m.screen = viewmodel.ScreenUsage
		m.usage = components.NewUsageModel(ctx, cfg.Backend, cfg.Theme)
		m.usageLive = true
	}

	m.resize()
	return m
}

// Init loads the dashboard and whichever screen the session starts on.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.dashboard.Init()}

	switch m.screen {
	case viewmodel.ScreenSearch:
		cmds = append(cmds, m.search.Init(), m.mouseOn())
		if q := m.config.StartQuery; q != "" {
			cmds = append(cmds, func() tea.Msg {
				return components.SearchSubmittedMsg{Query: q}
			})
		}
	case viewmodel.ScreenProfile:
		cmds = append(cmds, m.profile.Init())
	case viewmodel.ScreenUsage:
		cmds = append(cmds, m.usage.Init())
	}

	return tea.Batch(cmds...)
}

// Screen returns the active screen.
func (m Model) Screen() viewmodel.Screen {
	return m.screen
}

// Stack returns the screens a back action returns through, oldest first.
func (m Model) Stack() []viewmodel.Screen {
	return m.stack
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
		return m.updateActive(msg)

	case tea.MouseMsg:
		return m.updateActive(msg)

	case components.NavigateMsg:
		cmd := m.navigate(msg.Screen)
		return m, cmd

	case components.OpenOrganizationMsg:
		cmd := m.openOrganization(msg.ID)
		return m, cmd

	case components.BackMsg:
		cmd := m.back()
		return m, cmd
	}

	return m.broadcast(msg)
}

// handleGlobalKeys handles keys that work on any screen.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		return m.quit(), true
	case key.Matches(msg, m.keymap.Quit) && m.screen == viewmodel.ScreenDashboard:
		return m.quit(), true
	case key.Matches(msg, m.keymap.Home) && m.screen != viewmodel.ScreenDashboard:
		return m.goHome(), true
	case key.Matches(msg, m.keymap.ClearScreen):
		return tea.ClearScreen, true
	}
	return nil, false
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.searchLive {
		m.search.Stop()
	}
	return tea.Quit
}

// updateActive delivers input to the visible screen only.
func (m Model) updateActive(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case viewmodel.ScreenDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case viewmodel.ScreenSearch:
		m.search, cmd = m.search.Update(msg)
	case viewmodel.ScreenProfile:
		m.profile, cmd = m.profile.Update(msg)
	case viewmodel.ScreenUsage:
		m.usage, cmd = m.usage.Update(msg)
	}
	return m, cmd
}

// broadcast delivers async results and ticks to every live screen so that
// a response landing after navigation still updates its owner.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.dashboard, cmd = m.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	if m.searchLive {
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.profileLive {
		m.profile, cmd = m.profile.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.usageLive {
		m.usage, cmd = m.usage.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// resize adjusts component sizes when the terminal resizes.
func (m *Model) resize() {
	body := m.bodyHeight()
	m.help.Width = m.width
	m.dashboard.Resize(m.width)
	m.search.Resize(m.width, body)
	m.search.SetOrigin(0, headerHeight)
	m.profile.Resize(m.width, body)
	m.usage.Resize(m.width)
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight
	if m.config.ShowHelp {
		h -= footerHeight
	}
	return max(h, 1)
}

// keyBindings returns the help entries for the active screen.
func (m Model) keyBindings() screenHelp {
	h := screenHelp{global: []key.Binding{m.keymap.ForceQuit}}
	switch m.screen {
	case viewmodel.ScreenDashboard:
		h.screen = m.dashboard.KeyBindings()
		h.global = []key.Binding{m.keymap.Quit}
	case viewmodel.ScreenSearch:
		h.screen = m.search.KeyBindings()
		h.global = append(h.global, m.keymap.Home)
	case viewmodel.ScreenProfile:
		h.screen = m.profile.KeyBindings()
		h.global = append(h.global, m.keymap.Home)
	case viewmodel.ScreenUsage:
		h.screen = m.usage.KeyBindings()
		h.global = append(h.global, m.keymap.Home)
	}
	return h
}
