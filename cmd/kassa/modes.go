package main

import (
	"fmt"

	"kassa/internal/mode"
	"kassa/internal/tui/modes"

	"github.com/spf13/cobra"
)

// modesCmd lists the registered modes.
func modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the available checkout modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := mode.NewRegistry()
			if err := modes.Register(reg); err != nil {
				return err
			}
			for _, name := range reg.Names() {
				marker := " "
				if name == cfg.UI.StartMode {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}
