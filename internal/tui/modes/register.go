// Package modes contains the concrete checkout modes and their wiring into
// a mode.Registry.
package modes

import (
	"context"

	"kassa/internal/mode"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry keys.
const (
	ItemFindName     = "item_find"
	VendorReportName = "vendor_report"
)

// Register adds every concrete mode to reg.
func Register(reg *mode.Registry) error {
	factories := []struct {
		name    string
		factory mode.Factory
	}{
		{ItemFindName, NewItemFind},
		{VendorReportName, NewVendorReport},
	}
	for _, f := range factories {
		if err := reg.Register(f.name, f.factory); err != nil {
			return err
		}
	}
	return nil
}

// request runs fn off the event loop and delivers its message.
func request(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return fn(context.Background())
	}
}
