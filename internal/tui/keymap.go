package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application-wide bindings. Everything else is routed to
// the current mode.
type KeyMap struct {
	Help         key.Binding
	Quit         key.Binding
	ItemFind     key.Binding
	DismissAlert key.Binding
}

// DefaultKeyMap returns the default bindings. Function keys are used so
// they never collide with text typed into mode forms.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ItemFind: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "item find"),
		),
		DismissAlert: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "dismiss alert"),
		),
	}
}
