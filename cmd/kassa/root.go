package main

import (
	"io"
	"os"
	"path/filepath"

	"kassa/internal/api"
	"kassa/internal/config"
	"kassa/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "kassa",
		Short:   "Checkout terminal for event marketplaces",
		Long:    `Kassa searches, edits and reports on consigned items through the event's checkout API.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				if cmd.Name() != "setup" {
					return err
				}
				cfg = config.New()
			}

			configureLogging(os.Stderr)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/kassa/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(modesCmd())
	rootCmd.AddCommand(setupCmd())

	return rootCmd
}

// configureLogging points the package logger at w with the configured
// level and format.
func configureLogging(w io.Writer) {
	opts := []log.Option{log.WithOutput(w), log.WithLevel(cfg.Log.Level)}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	log.Configure(opts...)
	if debug {
		log.SetDebug(true)
	}
}

// openLogFile opens the configured log file for the TUI, which owns the
// terminal. It returns io.Discard when no file is configured.
func openLogFile() (io.Writer, func(), error) {
	if cfg.Log.File == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultPath()
}

func newClient() (*api.Client, error) {
	return api.NewClient(cfg.Server.URL, cfg.Server.Event, api.WithTimeout(cfg.Timeout()))
}
