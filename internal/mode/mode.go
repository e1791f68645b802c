// Package mode implements the checkout's mode state machine: a registry of
// named mode factories, the switcher that keeps exactly one mode current
// and drives its enter/exit lifecycle, and the shared display container the
// current mode renders into.
package mode

import (
	"kassa/internal/alert"
	"kassa/internal/api"
	"kassa/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is a full-screen interactive state of the checkout.
type Mode interface {
	// Enter takes over the display. It must reset env.Display and append the
	// mode's own views. The returned command is run by the event loop.
	Enter(env *Env) (tea.Cmd, error)
	// Exit releases whatever Enter acquired. A failing Exit aborts the
	// transition and keeps the mode current.
	Exit() error
	// Title is the human-readable label shown in the chrome.
	Title() string
	// Glyph is an optional icon for the chrome.
	Glyph() string
	// Update handles a message addressed to the current mode.
	Update(msg tea.Msg) tea.Cmd
}

// Base supplies the optional parts of Mode.
type Base struct{}

func (Base) Exit() error   { return nil }
func (Base) Glyph() string { return "" }

// Factory constructs a mode instance from the arguments given to SwitchTo.
type Factory func(args ...any) (Mode, error)

// SwitchFunc requests a transition to the named mode.
type SwitchFunc func(name string, args ...any) (tea.Cmd, error)

// Env is the shared configuration handed to a mode on Enter.
type Env struct {
	Display  *Display
	API      api.Service
	Alert    *alert.Channel
	Settings *config.Config

	// Epoch identifies this activation. Asynchronous results must carry it
	// so results arriving after a switch can be recognized and dropped.
	Epoch uint64

	// Switch moves to another mode. Calling it while a transition is in
	// progress fails; use Defer from inside Enter or Exit.
	Switch SwitchFunc
	// Defer queues a transition to run after the one in progress. Outside
	// a transition it does nothing.
	Defer func(name string, args ...any)
}

// Epoched is implemented by messages that belong to one activation.
type Epoched interface {
	ModeEpoch() uint64
}
