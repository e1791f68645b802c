package styles

import (
	"kassa/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the core UI styles
var Theme = struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Muted      lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Alert      lipgloss.Style
	AlertLit   lipgloss.Style
	Dialog     lipgloss.Style
	Border     lipgloss.Style
}{}

func init() {
	Apply(config.New())
}

// Apply rebuilds Theme from the configured colors.
func Apply(cfg *config.Config) {
	primary := lipgloss.Color(cfg.Theme.Primary)
	errColor := lipgloss.Color(cfg.Theme.Error)
	border := lipgloss.Color(cfg.Theme.Border)

	Theme.App = lipgloss.NewStyle().
		Padding(1, 2)
	Theme.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primary).
		Padding(0, 1)
	Theme.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(primary)
	Theme.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color(cfg.Theme.Emphasis)).
		Bold(true)
	Theme.Unselected = lipgloss.NewStyle()
	Theme.Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))
	Theme.Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color(cfg.Theme.Info))
	Theme.Error = lipgloss.NewStyle().
		Foreground(errColor)
	Theme.Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color(cfg.Theme.Success))
	Theme.Alert = lipgloss.NewStyle().
		Bold(true).
		Foreground(errColor).
		Padding(0, 1)
	Theme.AlertLit = Theme.Alert.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(errColor)
	Theme.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	Theme.Border = lipgloss.NewStyle().
		Foreground(border)
}
