package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoBackend is returned by Run when no API backend was configured.
var ErrNoBackend = errors.New("tui: backend is required")

// New builds the root model without starting a program. It is what Run
// drives and what tests exercise directly.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == nil {
		return Model{}, ErrNoBackend
	}
	return newModel(ctx, cfg), nil
}

// Run starts the interactive client and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(ctx, opts...)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	slog.Debug("starting tui", "screen", m.screen.String(), "mouse", m.config.MouseSupport)
	final, err := tea.NewProgram(m, programOpts...).Run()
	if fm, ok := final.(Model); ok && fm.searchLive {
		fm.search.Stop()
	}

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
