package main

import (
	"fmt"

	"kassa/internal/api"
	"kassa/internal/errors"
	"kassa/internal/tui/modes"
	"kassa/internal/tui/styles"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type reportBucket struct {
	Name  string     `json:"name"`
	Items []api.Item `json:"items"`
}

// reportCmd prints a vendor report.
func reportCmd() *cobra.Command {
	var (
		vendor  int
		filter  string
		rounded bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a vendor report",
		Long: `Print a vendor's items grouped into Compensable, Returnable and Other.
Items in states outside these groups are not listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if vendor <= 0 {
				return errors.NewInvalidInputError("--vendor is required", nil)
			}
			g, err := modes.CompileFilter(filter)
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}

			v, items, err := modes.LoadReport(cmd.Context(), client, vendor)
			if err != nil {
				return fmt.Errorf("report failed: %s", errors.UserMessage(err))
			}
			items = modes.FilterItems(items, g)

			if asJSON {
				groups := modes.Classify(items)
				out := make([]reportBucket, len(groups))
				for i, grp := range groups {
					out[i] = reportBucket{Name: grp.Name, Items: grp.Items}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"vendor": v, "buckets": out})
			}

			styles.Apply(cfg)
			name := v.Name
			if name == "" {
				name = fmt.Sprintf("Vendor %d", vendor)
			}
			fmt.Fprintln(cmd.OutOrStdout(), headerText(name))
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), modes.RenderReport(items, cfg.Currency(), rounded || cfg.Price.Rounded))
			return nil
		},
	}

	cmd.Flags().IntVar(&vendor, "vendor", 0, "vendor id (required)")
	cmd.Flags().StringVar(&filter, "filter", "", "glob over item code or name")
	cmd.Flags().BoolVar(&rounded, "rounded", false, "show prices rounded to 5 cents")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.MarkFlagRequired("vendor")

	return cmd
}
