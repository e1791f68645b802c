package components

import (
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows a status line with a spinner while requests are pending.
type StatusBar struct {
	text    string
	style   lipgloss.Style
	spinner spinner.Model
	pending int
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Help

	return &StatusBar{
		style:   styles.Theme.Help,
		spinner: s,
	}
}

// Begin marks one more request in flight and starts the spinner.
func (s *StatusBar) Begin() tea.Cmd {
	s.pending++
	if s.pending == 1 {
		return s.spinner.Tick
	}
	return nil
}

// Done marks a request finished.
func (s *StatusBar) Done() {
	if s.pending > 0 {
		s.pending--
	}
}

func (s *StatusBar) Loading() bool {
	return s.pending > 0
}

func (s *StatusBar) SetText(text string) {
	s.text = text
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !s.Loading() {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *StatusBar) View() string {
	if s.text == "" && !s.Loading() {
		return ""
	}

	if s.Loading() {
		return s.style.Render(s.spinner.View() + " " + s.text)
	}
	return s.style.Render(s.text)
}
