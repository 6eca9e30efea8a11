package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/michaelpawlus/990-beacon/internal/tui/components"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

func (m Model) newSearch() components.SearchPageModel {
	s := components.NewSearchPageModel(m.ctx, m.backend, m.config.PageSize, m.config.Debounce, m.theme)
	s.Resize(m.width, m.bodyHeight())
	s.SetOrigin(0, headerHeight)
	return s
}

// navigate opens a top-level screen on top of the current one.
func (m *Model) navigate(screen viewmodel.Screen) tea.Cmd {
	if screen == m.screen {
		return nil
	}
	switch screen {
	case viewmodel.ScreenDashboard:
		return m.goHome()
	case viewmodel.ScreenSearch, viewmodel.ScreenUsage:
	default:
		// profiles are opened by id
		return nil
	}

	leave := m.leave()
	m.stack = append(m.stack, m.screen)
	m.screen = screen

	var enter tea.Cmd
	switch screen {
	case viewmodel.ScreenSearch:
		if m.searchLive {
			m.search.Stop()
		}
		m.search = m.newSearch()
		m.searchLive = true
		enter = tea.Batch(m.search.Init(), m.mouseOn())
	case viewmodel.ScreenUsage:
		m.usage = components.NewUsageModel(m.ctx, m.backend, m.theme)
		m.usage.Resize(m.width)
		m.usageLive = true
		enter = m.usage.Init()
	}

	return tea.Batch(leave, enter)
}

// openOrganization pushes a profile screen for id.
func (m *Model) openOrganization(id string) tea.Cmd {
	if m.screen == viewmodel.ScreenProfile && m.profile.ID() == id {
		return nil
	}

	leave := m.leave()
	if m.screen != viewmodel.ScreenProfile {
		m.stack = append(m.stack, m.screen)
	}
	m.screen = viewmodel.ScreenProfile
	m.profile = components.NewProfileModel(m.ctx, m.backend, id, m.theme)
	m.profile.Resize(m.width, m.bodyHeight())
	m.profileLive = true

	return tea.Batch(leave, m.profile.Init())
}

// back drops the active screen and returns to the one below it.
func (m *Model) back() tea.Cmd {
	if len(m.stack) == 0 {
		return nil
	}

	leave := m.leave()
	m.discard(m.screen)
	m.screen = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	if m.screen == viewmodel.ScreenSearch {
		return tea.Batch(leave, m.mouseOn())
	}
	return leave
}

// goHome drops every screen above the dashboard.
func (m *Model) goHome() tea.Cmd {
	leave := m.leave()
	m.discard(m.screen)
	for _, s := range m.stack {
		m.discard(s)
	}
	m.stack = nil
	m.screen = viewmodel.ScreenDashboard
	return leave
}

// leave runs when the active screen stops being visible.
func (m *Model) leave() tea.Cmd {
	if m.screen != viewmodel.ScreenSearch {
		return nil
	}
	m.search.Stop()
	if !m.config.MouseSupport {
		return nil
	}
	return tea.DisableMouse
}

func (m *Model) discard(screen viewmodel.Screen) {
	switch screen {
	case viewmodel.ScreenSearch:
		if m.searchLive {
			m.search.Stop()
		}
		m.searchLive = false
	case viewmodel.ScreenProfile:
		m.profileLive = false
	case viewmodel.ScreenUsage:
		m.usageLive = false
	}
}

func (m Model) mouseOn() tea.Cmd {
	if !m.config.MouseSupport {
		return nil
	}
	return tea.EnableMouseCellMotion
}
