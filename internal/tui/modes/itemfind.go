package modes

import (
	"context"
	"fmt"

	"kassa/internal/api"
	"kassa/internal/errors"
	"kassa/internal/log"
	"kassa/internal/mode"
	"kassa/internal/tui/components"
	"kassa/internal/tui/messages"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// ItemFind searches items, lists the results and edits single items.
type ItemFind struct {
	mode.Base

	env    *mode.Env
	preset api.SearchInput

	form    *components.SearchForm
	results *components.ResultList
	dialog  *components.EditDialog
	status  *components.StatusBar

	// last is the most recent submitted search, repeated after a save.
	last     api.SearchCriteria
	searched bool
}

// NewItemFind builds the mode. An optional api.SearchInput presets the form
// and runs a search on Enter.
func NewItemFind(args ...any) (mode.Mode, error) {
	f := &ItemFind{}
	if len(args) > 0 {
		in, ok := args[0].(api.SearchInput)
		if !ok {
			return nil, errors.NewInvalidInputError("item find expects a search preset", nil).
				WithContext("arg", fmt.Sprintf("%T", args[0]))
		}
		f.preset = in
	}
	return f, nil
}

func (f *ItemFind) Title() string { return "Item Find" }
func (f *ItemFind) Glyph() string { return "⌕" }

func (f *ItemFind) Enter(env *mode.Env) (tea.Cmd, error) {
	f.env = env
	f.form = components.NewSearchForm()
	f.results = components.NewResultList(env.Settings.Currency(), env.Settings.Price.Rounded)
	f.status = components.NewStatusBar()

	env.Display.Reset(env.Epoch)
	env.Display.Append(env.Epoch, f.form)
	env.Display.Append(env.Epoch, f.results)
	env.Display.Append(env.Epoch, mode.ViewFunc(f.dialogView))
	env.Display.Append(env.Epoch, f.status)

	cmds := []tea.Cmd{f.form.FocusQuery()}
	if f.preset.Query != "" || f.preset.Vendor != "" {
		f.form.SetQuery(f.preset.Query)
		f.form.SetVendor(f.preset.Vendor)
		cmds = append(cmds, f.search(api.NewSearchCriteria(f.preset), false))
	}
	return tea.Batch(cmds...), nil
}

func (f *ItemFind) dialogView() string {
	if f.dialog == nil {
		return ""
	}
	return f.dialog.View()
}

// Form, Results and Dialog expose the sub-views.
func (f *ItemFind) Form() *components.SearchForm    { return f.form }
func (f *ItemFind) Results() *components.ResultList { return f.results }
func (f *ItemFind) Dialog() *components.EditDialog  { return f.dialog }

// LastCriteria returns the search repeated after a save, if any.
func (f *ItemFind) LastCriteria() (api.SearchCriteria, bool) { return f.last, f.searched }

func (f *ItemFind) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case messages.SearchResultMsg:
		return f.handleSearchResult(msg)
	case messages.EditResultMsg:
		return f.handleEditResult(msg)
	case messages.ClipboardMsg:
		if msg.Err != nil {
			return f.env.Alert.Raise("Copy failed: "+msg.Err.Error(), true)
		}
		f.status.SetText("Copied " + msg.Text)
	case messages.ConfigUpdateMsg:
		f.results.SetPriceFormat(msg.Config.Currency(), msg.Config.Price.Rounded)
	case spinner.TickMsg:
		return f.status.Update(msg)
	case tea.KeyMsg:
		return f.handleKey(msg)
	}
	return nil
}

func (f *ItemFind) handleKey(msg tea.KeyMsg) tea.Cmd {
	if f.dialog != nil {
		switch msg.String() {
		case "esc":
			f.dialog = nil
			f.results.Focus()
			return nil
		case "ctrl+s":
			return f.save()
		}
		return f.dialog.Update(msg)
	}

	if f.form.Focused() {
		switch msg.String() {
		case "enter":
			return f.search(api.NewSearchCriteria(f.form.Input()), false)
		case "esc":
			if f.results.Len() > 0 {
				f.form.Blur()
				f.results.Focus()
			}
			return nil
		}
		return f.form.Update(msg)
	}

	switch msg.String() {
	case "up", "k":
		f.results.Up()
	case "down", "j":
		f.results.Down()
	case "enter":
		if it, ok := f.results.Selected(); ok {
			f.dialog = components.NewEditDialog(it, f.env.Settings.Currency())
		}
	case "v":
		return f.openVendorReport()
	case "y":
		return f.copyCode()
	case "/", "esc":
		f.results.Blur()
		return f.form.FocusQuery()
	}
	return nil
}

// search issues criteria and remembers them for the refresh after a save.
func (f *ItemFind) search(c api.SearchCriteria, background bool) tea.Cmd {
	f.last = c
	f.searched = true
	if !background {
		f.status.SetText("Searching...")
	}

	epoch, svc := f.env.Epoch, f.env.API
	log.LogWithFields(log.F("query", c.Query()), log.F("code", c.Code()), log.F("background", background)).
		Debug("Item search")
	return tea.Batch(f.status.Begin(), request(func(ctx context.Context) tea.Msg {
		items, err := svc.ItemSearch(ctx, c)
		return messages.SearchResultMsg{Epoch: epoch, Criteria: c, Items: items, Err: err, Background: background}
	}))
}

func (f *ItemFind) handleSearchResult(msg messages.SearchResultMsg) tea.Cmd {
	f.status.Done()
	if msg.Err != nil {
		log.LogWithError(msg.Err).WithField("background", msg.Background).Warn("Item search failed")
		if msg.Background {
			return nil
		}
		f.status.SetText("Search failed")
		return f.env.Alert.Raise(errors.UserMessage(msg.Err), true)
	}

	f.results.SetItems(msg.Items)
	if !msg.Background {
		f.status.SetText(fmt.Sprintf("%d items", len(msg.Items)))
		f.env.Alert.Clear()
	}
	if f.form.QueryFocused() {
		f.form.SelectQuery()
	}
	return nil
}

func (f *ItemFind) save() tea.Cmd {
	if f.dialog.Saving() {
		return nil
	}
	item := f.dialog.Item()
	f.dialog.SetSaving(true)

	epoch, svc := f.env.Epoch, f.env.API
	return tea.Batch(f.status.Begin(), request(func(ctx context.Context) tea.Msg {
		saved, err := svc.ItemEdit(ctx, item)
		return messages.EditResultMsg{Epoch: epoch, Code: item.Code, Item: saved, Err: err}
	}))
}

func (f *ItemFind) handleEditResult(msg messages.EditResultMsg) tea.Cmd {
	f.status.Done()
	current := f.dialog != nil && f.dialog.Original().Code == msg.Code
	if msg.Err != nil {
		log.LogWithError(msg.Err).WithField("code", msg.Code).Warn("Item edit failed")
		if !current {
			return f.env.Alert.Raise("Saving "+msg.Code+" failed: "+errors.UserMessage(msg.Err), true)
		}
		f.dialog.SetSaving(false)
		f.dialog.SetError(errors.UserMessage(msg.Err))
		return nil
	}

	if current {
		f.dialog.SetItem(msg.Item)
		f.dialog.MarkSaved()
	}
	f.status.SetText("Saved " + msg.Code)
	if !f.searched {
		return nil
	}
	return f.search(f.last, true)
}

func (f *ItemFind) openVendorReport() tea.Cmd {
	it, ok := f.results.Selected()
	if !ok {
		return nil
	}
	if it.Vendor.ID == 0 {
		return f.env.Alert.Raise("Item "+it.Code+" has no vendor", true)
	}
	cmd, err := f.env.Switch(VendorReportName, it.Vendor.ID)
	if err != nil {
		return tea.Batch(cmd, f.env.Alert.Raise(errors.UserMessage(err), true))
	}
	return cmd
}

func (f *ItemFind) copyCode() tea.Cmd {
	it, ok := f.results.Selected()
	if !ok {
		return nil
	}
	epoch, code := f.env.Epoch, it.Code
	return func() tea.Msg {
		return messages.ClipboardMsg{Epoch: epoch, Text: code, Err: writeClipboard(code)}
	}
}
