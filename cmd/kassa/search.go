package main

import (
	"fmt"

	"kassa/internal/api"
	"kassa/internal/errors"
	"kassa/internal/format"
	"kassa/internal/tui/components"
	"kassa/internal/tui/styles"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// searchCmd runs one item search and prints the results.
func searchCmd() *cobra.Command {
	var (
		in      api.SearchInput
		rounded bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search items",
		Long:  `Search items the same way the item find mode does and print a numbered result table.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				in.Query = args[0]
			}
			client, err := newClient()
			if err != nil {
				return err
			}

			criteria := api.NewSearchCriteria(in)
			items, err := client.ItemSearch(cmd.Context(), criteria)
			if err != nil {
				return fmt.Errorf("search failed: %s", errors.UserMessage(err))
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			styles.Apply(cfg)
			list := components.NewResultList(cfg.Currency(), rounded || cfg.Price.Rounded)
			list.SetItems(items)
			fmt.Fprintln(cmd.OutOrStdout(), list.View())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Code, "code", "", "item code (case-insensitive)")
	f.StringVar(&in.Vendor, "vendor", "", "vendor id")
	f.StringVar(&in.MinPrice, "min", "", "minimum price")
	f.StringVar(&in.MaxPrice, "max", "", "maximum price")
	f.StringSliceVar(&in.ItemTypes, "type", nil, "item types, repeatable")
	f.StringSliceVar(&in.ItemStates, "state", nil, "item states, repeatable (e.g. BR,ST)")
	f.BoolVar(&in.ShowHidden, "hidden", false, "include hidden items")
	f.BoolVar(&rounded, "rounded", false, "show prices rounded to 5 cents")
	f.BoolVar(&asJSON, "json", false, "print raw JSON")

	cmd.RegisterFlagCompletionFunc("state", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return stateCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func stateCompletions() []string {
	out := make([]string, 0, len(format.States))
	for _, code := range format.States {
		label, _ := format.StateLabel(code)
		out = append(out, code+"\t"+label)
	}
	return out
}
