package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := lipgloss.NewStyle().
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		MaxWidth(m.width).
		Render(m.activeView())

	parts := []string{m.renderHeader(), body}
	if m.config.ShowHelp {
		parts = append(parts, "", m.help.View(m.keyBindings()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) activeView() string {
	switch m.screen {
	case viewmodel.ScreenSearch:
		return m.search.View()
	case viewmodel.ScreenProfile:
		return m.profile.View()
	case viewmodel.ScreenUsage:
		return m.usage.View()
	default:
		return m.dashboard.View()
	}
}

// renderHeader renders the brand and the breadcrumb trail.
func (m Model) renderHeader() string {
	crumbs := make([]string, 0, len(m.stack)+1)
	for _, s := range m.stack {
		crumbs = append(crumbs, m.theme.Muted.Render(s.String()))
	}
	crumbs = append(crumbs, m.theme.Bold.Render(m.currentTitle()))

	brand := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render("990 Beacon")
	line := brand + m.theme.Muted.Render("  ·  ") + strings.Join(crumbs, m.theme.Muted.Render(" › "))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line) + "\n"
}

// currentTitle names the active screen, using the organization's name once
// its profile has loaded.
func (m Model) currentTitle() string {
	if m.screen == viewmodel.ScreenProfile {
		if p := m.profile.Profile(); p != nil {
			return viewmodel.TruncateString(viewmodel.SanitizeForDisplay(p.Name), 40)
		}
	}
	return m.screen.String()
}
