package mode

import (
	"kassa/internal/errors"
	"kassa/internal/log"

	tea "github.com/charmbracelet/bubbletea"
)

// maxChained bounds how many deferred transitions one SwitchTo may run, so
// a mode that defers to itself on every Enter cannot loop forever.
const maxChained = 8

type pendingSwitch struct {
	name string
	args []any
}

// Switcher owns the current mode and drives its lifecycle. It is not safe
// for concurrent use; all calls happen on the event loop.
type Switcher struct {
	registry *Registry
	env      Env

	current Mode
	name    string
	epoch   uint64

	switching bool
	pending   *pendingSwitch
}

// NewSwitcher creates a switcher with no current mode. env is the template
// handed to every mode on Enter; Epoch, Switch and Defer are filled in per
// activation.
func NewSwitcher(registry *Registry, env Env) *Switcher {
	if env.Display == nil {
		env.Display = NewDisplay()
	}
	return &Switcher{registry: registry, env: env}
}

// SwitchTo exits the current mode and enters the named one. See Mode for
// the hook contract. A call made while another transition runs fails with
// ErrTransitionInProgress.
func (s *Switcher) SwitchTo(name string, args ...any) (tea.Cmd, error) {
	if s.switching {
		log.LogWithFields(log.F("mode", name), log.F("current", s.name)).
			Warn("Rejected re-entrant mode switch")
		return nil, errors.ErrTransitionInProgress
	}

	cmd, err := s.transition(name, args)
	cmds := []tea.Cmd{cmd}
	for chained := 0; err == nil && s.pending != nil; chained++ {
		if chained == maxChained {
			s.pending = nil
			return tea.Batch(cmds...), errors.Newf("too many chained mode switches after %q", name)
		}
		next := s.pending
		s.pending = nil
		cmd, err = s.transition(next.name, next.args)
		cmds = append(cmds, cmd)
	}
	if err != nil {
		s.pending = nil
	}
	return tea.Batch(cmds...), err
}

// Defer queues a transition to run once the one in progress completes.
// Only the last deferred request is kept. Outside a transition the request
// is dropped; use SwitchTo there.
func (s *Switcher) Defer(name string, args ...any) {
	if !s.switching {
		log.LogWithFields(log.F("mode", name), log.F("current", s.name)).
			Warn("Dropped deferred mode switch outside a transition")
		return
	}
	s.pending = &pendingSwitch{name: name, args: args}
}

func (s *Switcher) transition(name string, args []any) (tea.Cmd, error) {
	s.switching = true
	defer func() { s.switching = false }()

	factory, err := s.registry.Lookup(name)
	if err != nil {
		log.LogWithError(err).Warn("Mode switch failed")
		return nil, err
	}

	if s.current != nil {
		if err := s.current.Exit(); err != nil {
			hookErr := errors.NewLifecycleError(s.name, "exit", err)
			log.LogWithError(hookErr).Error("Mode switch aborted")
			return nil, hookErr
		}
		log.Debug("Exited mode", s.name)
	}
	previous := s.name
	s.current = nil
	s.name = ""
	s.epoch++

	m, err := factory(args...)
	if err != nil {
		log.LogWithError(err).WithField("mode", name).Error("Mode construction failed")
		return nil, errors.Wrapf(err, "construct mode %q", name)
	}

	s.current = m
	s.name = name

	env := s.env
	env.Epoch = s.epoch
	env.Switch = s.SwitchTo
	env.Defer = s.Defer

	cmd, err := m.Enter(&env)
	if err != nil {
		hookErr := errors.NewLifecycleError(name, "enter", err)
		log.LogWithError(hookErr).Error("Mode entered with errors")
		return cmd, hookErr
	}

	log.LogWithFields(
		log.F("from", previous),
		log.F("to", name),
		log.F("epoch", s.epoch),
	).Info("Switched mode")
	return cmd, nil
}

// Current returns the current mode, nil before the first activation.
func (s *Switcher) Current() Mode {
	return s.current
}

// CurrentName returns the registry key of the current mode.
func (s *Switcher) CurrentName() string {
	return s.name
}

// Epoch returns the generation of the current activation.
func (s *Switcher) Epoch() uint64 {
	return s.epoch
}

// Stale reports whether a message tagged with epoch was issued by a mode
// that is no longer current.
func (s *Switcher) Stale(epoch uint64) bool {
	return s.current == nil || epoch != s.epoch
}

// Display returns the shared display container.
func (s *Switcher) Display() *Display {
	return s.env.Display
}

// Update forwards msg to the current mode. Epoched messages from earlier
// activations are dropped.
func (s *Switcher) Update(msg tea.Msg) tea.Cmd {
	if s.current == nil {
		return nil
	}
	if e, ok := msg.(Epoched); ok && s.Stale(e.ModeEpoch()) {
		log.Debugf("Dropped stale %T (epoch %d, current %d)", msg, e.ModeEpoch(), s.epoch)
		return nil
	}
	return s.current.Update(msg)
}
