package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shortcuts that work on every screen.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Home        key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Home: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "dashboard"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "redraw"),
		),
	}
}

// screenHelp adapts a screen's bindings to help.KeyMap.
type screenHelp struct {
	screen []key.Binding
	global []key.Binding
}

// ShortHelp returns the screen's bindings followed by the global ones.
func (h screenHelp) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(h.screen)+len(h.global))
	out = append(out, h.screen...)
	return append(out, h.global...)
}

// FullHelp returns the screen and global bindings as two columns.
func (h screenHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.screen, h.global}
}
