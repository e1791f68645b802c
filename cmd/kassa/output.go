package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
)

func successText(s string) string { return successStyle.Render(s) }
func errorText(s string) string   { return errorStyle.Render(s) }
func infoText(s string) string    { return infoStyle.Render(s) }
func headerText(s string) string  { return headerStyle.Render(s) }
