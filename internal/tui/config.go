package tui

import (
	"time"

	"github.com/michaelpawlus/990-beacon/internal/tui/components"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	Backend       components.Backend
	StartScreen   viewmodel.Screen
	Width         int
	Height        int
	PageSize      int
	Debounce      time.Duration
	MouseSupport  bool
	ShowHelp      bool
	StartOrgID    string
	StartQuery    string
	AltScreen     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		StartScreen:  viewmodel.ScreenDashboard,
		Width:        80,
		Height:       24,
		PageSize:     20,
		Debounce:     components.DefaultTypeaheadDelay,
		MouseSupport: true,
		ShowHelp:     true,
		AltScreen:    true,
	}
}

// WithBackend sets the API the screens read from.
func WithBackend(backend components.Backend) Option {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithPageSize sets how many search results are requested per page.
func WithPageSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PageSize = n
		}
	}
}

// WithDebounce sets the typeahead delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Debounce = d
		}
	}
}

// WithMouse toggles mouse support on the search screen.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}

// WithHelp toggles the key help footer.
func WithHelp(enabled bool) Option {
	return func(c *Config) {
		c.ShowHelp = enabled
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithStartSearch opens the search screen first, optionally submitting query.
func WithStartSearch(query string) Option {
	return func(c *Config) {
		c.StartScreen = viewmodel.ScreenSearch
		c.StartQuery = query
	}
}

// WithStartOrganization opens an organization profile first.
func WithStartOrganization(id string) Option {
	return func(c *Config) {
		c.StartScreen = viewmodel.ScreenProfile
		c.StartOrgID = id
	}
}
