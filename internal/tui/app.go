// Package tui hosts the checkout application model: it owns the mode
// switcher and the alert channel and routes every message on the
// bubbletea event loop.
package tui

import (
	"os"

	"kassa/internal/alert"
	"kassa/internal/api"
	"kassa/internal/config"
	"kassa/internal/errors"
	"kassa/internal/log"
	"kassa/internal/mode"
	"kassa/internal/tui/components"
	"kassa/internal/tui/messages"
	"kassa/internal/tui/modes"
	"kassa/internal/tui/styles"
	"kassa/internal/tui/views"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures an App.
type Options struct {
	Config *config.Config
	API    api.Service
	// Registry defaults to one holding every mode of package modes.
	Registry *mode.Registry
	// StartMode defaults to Config.UI.StartMode.
	StartMode string
	StartArgs []any
	// Sound defaults to the terminal bell when alert sound is enabled.
	Sound alert.Sounder
}

// App is the root tea.Model.
type App struct {
	cfg      *config.Config
	registry *mode.Registry
	switcher *mode.Switcher
	alert    *alert.Channel
	alertBar *components.AlertBar
	keys     KeyMap
	sound    alert.Sounder

	startMode string
	startArgs []any

	showHelp bool
	width    int
	height   int
}

// New wires an App. The start mode is entered by Init.
func New(opts Options) (*App, error) {
	if opts.Config == nil || opts.API == nil {
		return nil, errors.NewInvalidInputError("config and api are required", nil)
	}

	reg := opts.Registry
	if reg == nil {
		reg = mode.NewRegistry()
		if err := modes.Register(reg); err != nil {
			return nil, err
		}
	}

	start := opts.StartMode
	if start == "" {
		start = opts.Config.UI.StartMode
	}
	if _, err := reg.Lookup(start); err != nil {
		return nil, err
	}

	sound := opts.Sound
	if sound == nil {
		sound = alert.Bell{W: os.Stdout}
	}

	styles.Apply(opts.Config)

	a := &App{
		cfg:       opts.Config,
		registry:  reg,
		keys:      DefaultKeyMap(),
		sound:     sound,
		startMode: start,
		startArgs: opts.StartArgs,
	}
	a.alert = alert.New(alert.Options{
		BlinkCount: opts.Config.Alert.BlinkCount,
		Interval:   opts.Config.BlinkInterval(),
	})
	a.applySound()
	a.alertBar = components.NewAlertBar(a.alert)
	a.switcher = mode.NewSwitcher(reg, mode.Env{
		Display:  mode.NewDisplay(),
		API:      opts.API,
		Alert:    a.alert,
		Settings: opts.Config,
	})
	return a, nil
}

func (a *App) applySound() {
	if a.cfg.Alert.Sound {
		a.alert.SetSound(a.sound)
	} else {
		a.alert.SetSound(nil)
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.switchTo(a.startMode, a.startArgs...)
}

// switchTo changes mode and reports failures on the alert line.
func (a *App) switchTo(name string, args ...any) tea.Cmd {
	cmd, err := a.switcher.SwitchTo(name, args...)
	if err != nil {
		log.LogWithError(err).Error("Mode switch failed")
		return tea.Batch(cmd, a.alert.Raise(errors.UserMessage(err), true))
	}
	return cmd
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case alert.BlinkMsg:
		return a, a.alert.Update(msg)

	case messages.ConfigUpdateMsg:
		return a, a.applyConfig(msg)

	case messages.ErrorMsg:
		log.LogWithError(msg.Err).Error("Application error")
		return a, a.alert.Raise(errors.UserMessage(msg.Err), true)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.showHelp = !a.showHelp
			return a, nil
		case key.Matches(msg, a.keys.DismissAlert):
			a.alert.Clear()
			return a, nil
		case key.Matches(msg, a.keys.ItemFind):
			if a.switcher.CurrentName() == modes.ItemFindName {
				return a, nil
			}
			return a, a.switchTo(modes.ItemFindName)
		}
	}

	return a, a.switcher.Update(msg)
}

// applyConfig copies a reloaded configuration into the shared one so every
// mode sees it, then updates styles and alert settings.
func (a *App) applyConfig(msg messages.ConfigUpdateMsg) tea.Cmd {
	if msg.Config == nil {
		return nil
	}
	*a.cfg = *msg.Config
	styles.Apply(a.cfg)
	a.alert.Configure(a.cfg.Alert.BlinkCount, a.cfg.BlinkInterval())
	a.applySound()
	log.LogWithFields(
		log.F("blink_count", a.cfg.Alert.BlinkCount),
		log.F("rounded", a.cfg.Price.Rounded),
	).Info("Configuration reloaded")
	return a.switcher.Update(messages.ConfigUpdateMsg{Config: a.cfg})
}

// View implements tea.Model
func (a *App) View() string {
	return views.RenderMainView(a)
}

// Switcher exposes the mode switcher.
func (a *App) Switcher() *mode.Switcher { return a.switcher }

// Alert exposes the alert channel.
func (a *App) Alert() *alert.Channel { return a.alert }

func (a *App) ModeNames() []string { return a.registry.Names() }
func (a *App) CurrentMode() string { return a.switcher.CurrentName() }
func (a *App) Body() string        { return a.switcher.Display().View() }
func (a *App) AlertView() string   { return a.alertBar.View() }
func (a *App) ShowHelp() bool      { return a.showHelp }
func (a *App) Width() int          { return a.width }

func (a *App) Title() string {
	if m := a.switcher.Current(); m != nil {
		return m.Title()
	}
	return ""
}

func (a *App) Glyph() string {
	if m := a.switcher.Current(); m != nil {
		return m.Glyph()
	}
	return ""
}
