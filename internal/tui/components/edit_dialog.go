package components

import (
	"fmt"
	"strings"

	"kassa/internal/api"
	"kassa/internal/format"
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	editPrice = iota
	editState
)

// EditDialog edits the price and state of one item. It stays open after a
// save so the server's answer, or its error, can be shown in place.
type EditDialog struct {
	item   api.Item
	inputs []textinput.Model
	cursor int
	err    string
	saving bool
	saved  bool

	currency format.Currency
}

func NewEditDialog(item api.Item, cur format.Currency) *EditDialog {
	d := &EditDialog{currency: cur}
	for i := 0; i < 2; i++ {
		in := textinput.New()
		in.Prompt = ""
		in.Width = 20
		d.inputs = append(d.inputs, in)
	}
	d.inputs[editState].CharLimit = 2
	d.SetItem(item)
	d.inputs[editPrice].Focus()
	return d
}

// SetItem replaces the edited item, e.g. with the server's saved copy.
func (d *EditDialog) SetItem(item api.Item) {
	d.item = item
	d.inputs[editPrice].SetValue(item.Price.Decimal())
	d.inputs[editState].SetValue(item.State)
}

// Item returns the original record with the edited fields applied.
func (d *EditDialog) Item() api.Item {
	out := d.item
	out.Price = format.ParseCents(d.inputs[editPrice].Value())
	out.State = strings.ToUpper(strings.TrimSpace(d.inputs[editState].Value()))
	return out
}

// Original returns the record the dialog was last seeded with.
func (d *EditDialog) Original() api.Item { return d.item }

func (d *EditDialog) SetError(msg string) {
	d.err = msg
	d.saved = false
}

func (d *EditDialog) Error() string { return d.err }

// SetSaving marks a save request in flight.
func (d *EditDialog) SetSaving(on bool) {
	d.saving = on
	if on {
		d.err = ""
		d.saved = false
	}
}

func (d *EditDialog) Saving() bool { return d.saving }

// MarkSaved records a successful save.
func (d *EditDialog) MarkSaved() {
	d.saving = false
	d.saved = true
	d.err = ""
}

func (d *EditDialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "tab", "shift+tab", "up", "down":
		d.cursor = 1 - d.cursor
		for i := range d.inputs {
			d.inputs[i].Blur()
		}
		return d.inputs[d.cursor].Focus()
	}
	var cmd tea.Cmd
	d.inputs[d.cursor], cmd = d.inputs[d.cursor].Update(msg)
	return cmd
}

func (d *EditDialog) View() string {
	var b strings.Builder
	b.WriteString(styles.Theme.Header.Render(fmt.Sprintf("Edit %s", d.item.Code)))
	b.WriteString("\n")
	b.WriteString(d.item.Name)
	if d.item.Vendor.ID != 0 {
		b.WriteString(styles.Theme.Muted.Render(fmt.Sprintf("  (vendor %s)", vendorLabel(d.item.Vendor.Vendor))))
	}
	b.WriteString("\n\n")

	labels := []string{"Price", "State"}
	for i, in := range d.inputs {
		label := styles.Theme.Unselected
		if i == d.cursor {
			label = styles.Theme.Selected
		}
		b.WriteString(label.Render(padRight(labels[i], 6)) + " " + in.View())
		if i == editPrice {
			b.WriteString(styles.Theme.Muted.Render("  " + d.item.Price.Format(d.currency, false)))
		}
		if i == editState {
			if l, ok := format.StateLabel(d.Item().State); ok {
				b.WriteString(styles.Theme.Muted.Render("  " + l))
			}
		}
		b.WriteString("\n")
	}

	switch {
	case d.err != "":
		b.WriteString("\n" + styles.Theme.Error.Render(d.err))
	case d.saving:
		b.WriteString("\n" + styles.Theme.Muted.Render("Saving..."))
	case d.saved:
		b.WriteString("\n" + styles.Theme.Success.Render("Saved."))
	}
	b.WriteString("\n" + styles.Theme.Help.Render("ctrl+s save • esc close"))

	return styles.Theme.Dialog.Render(b.String())
}
