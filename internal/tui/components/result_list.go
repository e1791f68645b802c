package components

import (
	"strconv"

	"kassa/internal/api"
	"kassa/internal/format"
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoResults is shown instead of an empty result table.
const NoResults = "No results."

// ResultList shows search results numbered from 1 in response order.
type ResultList struct {
	items    []api.Item
	searched bool
	cursor   int
	focused  bool

	currency format.Currency
	rounded  bool
}

func NewResultList(cur format.Currency, rounded bool) *ResultList {
	return &ResultList{currency: cur, rounded: rounded}
}

// SetItems replaces the list with a new response.
func (l *ResultList) SetItems(items []api.Item) {
	l.items = items
	l.searched = true
	if l.cursor >= len(items) {
		l.cursor = max(len(items)-1, 0)
	}
}

func (l *ResultList) Items() []api.Item { return l.items }
func (l *ResultList) Len() int          { return len(l.items) }
func (l *ResultList) Cursor() int       { return l.cursor }
func (l *ResultList) Focused() bool     { return l.focused }
func (l *ResultList) Focus()            { l.focused = true }
func (l *ResultList) Blur()             { l.focused = false }

// SetPriceFormat changes how prices render.
func (l *ResultList) SetPriceFormat(cur format.Currency, rounded bool) {
	l.currency = cur
	l.rounded = rounded
}

// Selected returns the item under the cursor.
func (l *ResultList) Selected() (api.Item, bool) {
	if len(l.items) == 0 {
		return api.Item{}, false
	}
	return l.items[l.cursor], true
}

func (l *ResultList) Up() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *ResultList) Down() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

func (l *ResultList) View() string {
	if !l.searched {
		return ""
	}
	if len(l.items) == 0 {
		return styles.Theme.Muted.Render(NoResults)
	}

	rows := make([][]string, len(l.items))
	for i, it := range l.items {
		state, ok := format.StateLabel(it.State)
		if !ok {
			state = it.State
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			it.Code,
			it.Name,
			it.Price.Format(l.currency, l.rounded),
			state,
			vendorLabel(it.Vendor.Vendor),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Theme.Border).
		Headers("#", "Code", "Name", "Price", "State", "Vendor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Theme.Header.Padding(0, 1)
			case l.focused && row == l.cursor:
				return styles.Theme.Selected.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}

func vendorLabel(v api.Vendor) string {
	if v.Name != "" {
		return v.Name
	}
	if v.ID != 0 {
		return strconv.Itoa(v.ID)
	}
	return ""
}
