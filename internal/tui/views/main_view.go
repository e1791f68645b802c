package views

import (
	"strings"

	"kassa/internal/tui/common"
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView composes the chrome around the current mode's display:
// banner with the mode title, mode tabs, the display, the alert line and
// key hints.
func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(renderBanner(m))
	sb.WriteString("\n")
	sb.WriteString(renderTabs(m))
	sb.WriteString("\n\n")

	if body := m.Body(); body != "" {
		sb.WriteString(body)
	} else {
		sb.WriteString(styles.Theme.Muted.Render("No mode active."))
	}

	if alert := m.AlertView(); alert != "" {
		sb.WriteString("\n\n" + alert)
	}

	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp())
	}
	sb.WriteString("\n" + RenderKeyCommands())

	return styles.Theme.App.Render(sb.String())
}

func RenderKeyCommands() string {
	return styles.Theme.Help.Render(`
[F1] Help  [F2] Item Find  [Ctrl+L] Dismiss alert  [Ctrl+C] Quit
`)
}

func RenderHelp() string {
	return styles.Theme.Help.Render(`
Item Find:
  Tab/Shift+Tab: Move between fields
  Enter: Search (form) / Edit item (results)
  Esc: Switch between form and results
  ↑/k, ↓/j: Move in results
  v: Vendor report of the item's vendor
  y: Copy item code
  Ctrl+S: Save edit dialog

Vendor Report:
  /: Filter by code or name (glob)
  r: Reload
  Esc: Back to Item Find
`)
}

func renderBanner(m common.ModelReader) string {
	title := m.Title()
	if title == "" {
		title = "Kassa"
	}
	if g := m.Glyph(); g != "" {
		title = g + " " + title
	}
	banner := styles.Theme.Title.Render(title)
	if w := m.Width(); w > 0 {
		return lipgloss.PlaceHorizontal(w-4, lipgloss.Left, banner)
	}
	return banner
}

func renderTabs(m common.ModelReader) string {
	tabs := make([]string, 0, len(m.ModeNames()))
	for _, name := range m.ModeNames() {
		if name == m.CurrentMode() {
			tabs = append(tabs, styles.Theme.Selected.Render("["+name+"]"))
		} else {
			tabs = append(tabs, styles.Theme.Muted.Render(" "+name+" "))
		}
	}
	return strings.Join(tabs, " ")
}
