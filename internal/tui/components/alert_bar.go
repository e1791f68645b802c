package components

import (
	"kassa/internal/alert"
	"kassa/internal/tui/styles"
)

// AlertBar renders the alert channel, inverted during the lit blink phase.
type AlertBar struct {
	channel *alert.Channel
}

func NewAlertBar(c *alert.Channel) *AlertBar {
	return &AlertBar{channel: c}
}

func (a *AlertBar) View() string {
	if !a.channel.Active() {
		return ""
	}
	if a.channel.Lit() {
		return styles.Theme.AlertLit.Render("! " + a.channel.Text())
	}
	return styles.Theme.Alert.Render("! " + a.channel.Text())
}
