package main

import (
	"fmt"
	"os"
	"strconv"

	"kassa/internal/config"
	"kassa/internal/tui/modes"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// setupCmd creates the setup command
func setupCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive configuration",
		Long:  `Ask for the server, event and alert settings and write the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			next := *cfg
			blinks := strconv.Itoa(next.Alert.BlinkCount)

			themes := make([]huh.Option[string], 0)
			for _, name := range config.ListThemes() {
				themes = append(themes, huh.NewOption(name, name))
			}

			form := newForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Server URL").
						Value(&next.Server.URL),
					huh.NewInput().
						Title("Event").
						Description("Event slug, empty for a single-event server").
						Value(&next.Server.Event),
				),
				huh.NewGroup(
					huh.NewInput().
						Title("Alert blink count").
						Value(&blinks).
						Validate(func(s string) error {
							if n, err := strconv.Atoi(s); err != nil || n < 0 {
								return fmt.Errorf("enter a number >= 0")
							}
							return nil
						}),
					huh.NewConfirm().
						Title("Ring the terminal bell on alerts?").
						Value(&next.Alert.Sound),
					huh.NewConfirm().
						Title("Show prices rounded to 5 cents?").
						Value(&next.Price.Rounded),
				),
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Start mode").
						Options(huh.NewOption("Item find", modes.ItemFindName)).
						Value(&next.UI.StartMode),
					huh.NewSelect[string]().
						Title("Theme").
						Options(themes...).
						Value(&next.UI.Theme),
				),
			)

			if err := form.Run(); err != nil {
				return err
			}

			next.Alert.BlinkCount, _ = strconv.Atoi(blinks)
			next.ApplyTheme(next.UI.Theme)
			if err := next.Validate(); err != nil {
				return err
			}

			if dryRun {
				fmt.Println(infoText("Dry run: configuration would be saved to " + path))
				return nil
			}
			if err := config.SaveConfig(&next, path); err != nil {
				return err
			}
			fmt.Println(successText("Configuration saved to " + path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be saved without writing")
	return cmd
}
