package main

import (
	"context"
	"fmt"

	"kassa/internal/api"
	"kassa/internal/config"
	"kassa/internal/log"
	"kassa/internal/tui"
	"kassa/internal/tui/messages"
	"kassa/internal/tui/modes"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// tuiCmd represents the TUI command
func tuiCmd() *cobra.Command {
	var (
		startMode string
		vendor    int
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the checkout terminal",
		Long:  `Start the interactive checkout. The configuration file is watched and reloaded while it runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, closeLog, err := openLogFile()
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer closeLog()
			configureLogging(out)

			client, err := newClient()
			if err != nil {
				return err
			}

			opts := tui.Options{Config: cfg, API: client, StartMode: startMode}
			switch {
			case startMode == modes.VendorReportName:
				opts.StartArgs = []any{vendor}
			case vendor > 0:
				if opts.StartMode == "" {
					opts.StartMode = modes.ItemFindName
				}
				opts.StartArgs = []any{api.SearchInput{Vendor: fmt.Sprint(vendor)}}
			}

			app, err := tui.New(opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(app, tea.WithAltScreen())

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if watch {
				go watchConfig(ctx, p)
			}

			log.Infof("Starting checkout against %s", client.Root())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&startMode, "mode", "m", "", "mode to start in (default from config)")
	cmd.Flags().IntVar(&vendor, "vendor", 0, "vendor id for the vendor report or as search preset")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the config file when it changes")

	return cmd
}

// watchConfig forwards config file changes to the running program.
func watchConfig(ctx context.Context, p *tea.Program) {
	path, err := configPath()
	if err != nil {
		log.LogWithError(err).Warn("Config watch disabled")
		return
	}
	err = config.Watch(ctx, path, func(c *config.Config) {
		p.Send(messages.ConfigUpdateMsg{Config: c})
	})
	if err != nil && ctx.Err() == nil {
		log.LogWithError(err).Warn("Config watch stopped")
	}
}
