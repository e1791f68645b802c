package components

import (
	"kassa/internal/api"
	"kassa/internal/format"
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ReportTable renders one titled bucket of a vendor report with a total
// row. Only integer prices count toward the total.
func ReportTable(title string, items []api.Item, cur format.Currency, rounded bool) string {
	rows := make([][]string, 0, len(items)+1)
	var total int64
	for _, it := range items {
		state, _ := format.StateLabel(it.State)
		if c, ok := it.Price.Int(); ok {
			total += c
		}
		rows = append(rows, []string{it.Code, it.Name, it.Price.Format(cur, rounded), state})
	}
	rows = append(rows, []string{"", "Total", format.Cents(total).Format(cur, rounded), ""})
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Theme.Border).
		Headers("Code", "Item", "Price", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch row {
			case table.HeaderRow:
				return styles.Theme.Header.Padding(0, 1)
			case last:
				return s.Bold(true)
			}
			return s
		})

	return styles.Theme.Header.Render(title) + "\n" + t.String()
}
