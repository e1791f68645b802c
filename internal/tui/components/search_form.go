package components

import (
	"strings"

	"kassa/internal/api"
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldQuery = iota
	fieldCode
	fieldVendor
	fieldMinPrice
	fieldMaxPrice
	fieldTypes
	fieldStates
	fieldHidden // checkbox, not a text input
)

var fieldLabels = []string{"Search", "Code", "Vendor", "Min price", "Max price", "Types", "States"}

// SearchForm is the item search form. It tracks whether the query input
// has focus so a search response can re-select the query for the next one.
type SearchForm struct {
	inputs     []textinput.Model
	cursor     int
	focused    bool
	showHidden bool

	queryFocused  bool
	querySelected bool
}

func NewSearchForm() *SearchForm {
	f := &SearchForm{inputs: make([]textinput.Model, len(fieldLabels))}
	placeholders := []string{"name or code", "", "id", "", "", "book game ...", "BR ST ..."}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.Width = 30
		f.inputs[i] = in
	}
	f.inputs[fieldMinPrice].Width = 10
	f.inputs[fieldMaxPrice].Width = 10
	return f
}

// Focus gives the form keyboard focus, on the field last used.
func (f *SearchForm) Focus() tea.Cmd {
	f.focused = true
	return f.focusField(f.cursor)
}

// FocusQuery moves focus to the query input.
func (f *SearchForm) FocusQuery() tea.Cmd {
	f.focused = true
	return f.focusField(fieldQuery)
}

// Blur removes keyboard focus from the whole form.
func (f *SearchForm) Blur() {
	f.focused = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.setQueryFocus(false)
}

func (f *SearchForm) Focused() bool {
	return f.focused
}

// QueryFocused reports whether the query input holds focus.
func (f *SearchForm) QueryFocused() bool {
	return f.queryFocused
}

// SelectQuery selects the query text; the next typed character replaces it.
func (f *SearchForm) SelectQuery() {
	if f.inputs[fieldQuery].Value() != "" {
		f.querySelected = true
	}
}

// QuerySelected reports whether the query text is selected.
func (f *SearchForm) QuerySelected() bool {
	return f.querySelected
}

func (f *SearchForm) setQueryFocus(on bool) {
	f.queryFocused = on
	if !on {
		f.querySelected = false
	}
}

func (f *SearchForm) focusField(i int) tea.Cmd {
	f.cursor = i
	f.setQueryFocus(f.focused && i == fieldQuery)
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i && f.focused {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// SetQuery and SetVendor preset fields, e.g. from command line flags.
func (f *SearchForm) SetQuery(q string)  { f.inputs[fieldQuery].SetValue(q) }
func (f *SearchForm) SetVendor(v string) { f.inputs[fieldVendor].SetValue(v) }

// Input returns the raw form content.
func (f *SearchForm) Input() api.SearchInput {
	return api.SearchInput{
		Query:      f.inputs[fieldQuery].Value(),
		Code:       f.inputs[fieldCode].Value(),
		Vendor:     f.inputs[fieldVendor].Value(),
		MinPrice:   f.inputs[fieldMinPrice].Value(),
		MaxPrice:   f.inputs[fieldMaxPrice].Value(),
		ItemTypes:  splitTokens(f.inputs[fieldTypes].Value()),
		ItemStates: splitTokens(f.inputs[fieldStates].Value()),
		ShowHidden: f.showHidden,
	}
}

func splitTokens(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

// Update handles field navigation and editing. Submission is left to the
// owner.
func (f *SearchForm) Update(msg tea.Msg) tea.Cmd {
	if !f.focused {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "tab", "down":
		return f.focusField((f.cursor + 1) % (fieldHidden + 1))
	case "shift+tab", "up":
		return f.focusField((f.cursor + fieldHidden) % (fieldHidden + 1))
	}

	if f.cursor == fieldHidden {
		if key.String() == " " || key.String() == "x" {
			f.showHidden = !f.showHidden
		}
		return nil
	}

	if f.cursor == fieldQuery && f.querySelected {
		f.querySelected = false
		switch key.Type {
		case tea.KeyRunes, tea.KeySpace:
			f.inputs[fieldQuery].SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			f.inputs[fieldQuery].SetValue("")
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.cursor], cmd = f.inputs[f.cursor].Update(msg)
	return cmd
}

func (f *SearchForm) View() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := styles.Theme.Unselected
		if f.focused && f.cursor == i {
			label = styles.Theme.Selected
		}
		b.WriteString(label.Render(padRight(fieldLabels[i], 10)))
		b.WriteString(" ")
		if i == fieldQuery && f.querySelected {
			b.WriteString(styles.Theme.Title.Render(in.Value()))
		} else {
			b.WriteString(in.View())
		}
		b.WriteString("\n")
	}

	label := styles.Theme.Unselected
	if f.focused && f.cursor == fieldHidden {
		label = styles.Theme.Selected
	}
	box := "[ ]"
	if f.showHidden {
		box = "[x]"
	}
	b.WriteString(label.Render(padRight("Hidden", 10)) + " " + box)
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
