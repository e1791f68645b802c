package modes

import (
	"fmt"
	"strings"
	"testing"

	"kassa/internal/alert"
	"kassa/internal/api"
	"kassa/internal/config"
	"kassa/internal/errors"
	"kassa/internal/format"
	"kassa/internal/mode"
	"kassa/internal/tui/components"
	"kassa/internal/tui/messages"
	"kassa/pkg/testutils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t        *testing.T
	api      *testutils.FakeService
	alert    *alert.Channel
	switcher *mode.Switcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	reg := mode.NewRegistry()
	require.NoError(t, Register(reg))

	h := &harness{
		t:     t,
		api:   &testutils.FakeService{},
		alert: alert.New(alert.Options{BlinkCount: 2, Interval: 0}),
	}
	h.switcher = mode.NewSwitcher(reg, mode.Env{
		Display:  mode.NewDisplay(),
		API:      h.api,
		Alert:    h.alert,
		Settings: config.NewTestConfig(),
	})
	return h
}

func (h *harness) switchTo(name string, args ...any) []tea.Msg {
	h.t.Helper()
	cmd, err := h.switcher.SwitchTo(name, args...)
	require.NoError(h.t, err)
	return testutils.Collect(cmd)
}

// press sends keys and returns the messages of the resulting commands.
func (h *harness) press(keys ...tea.KeyMsg) []tea.Msg {
	var out []tea.Msg
	for _, k := range keys {
		out = append(out, testutils.Collect(h.switcher.Update(k))...)
	}
	return out
}

func (h *harness) typeText(s string) {
	h.press(testutils.Type(s)...)
}

// deliver feeds request results back and returns follow-up messages.
func (h *harness) deliver(msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, m := range msgs {
		switch m.(type) {
		case messages.SearchResultMsg, messages.EditResultMsg, messages.ReportLoadedMsg, messages.ClipboardMsg:
			out = append(out, testutils.Collect(h.switcher.Update(m))...)
		}
	}
	return out
}

func (h *harness) itemFind() *ItemFind {
	h.t.Helper()
	f, ok := h.switcher.Current().(*ItemFind)
	require.True(h.t, ok, "current mode is %T", h.switcher.Current())
	return f
}

func (h *harness) view() string {
	return testutils.StripANSI(h.switcher.Display().View())
}

func only[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	var found []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			found = append(found, v)
		}
	}
	require.Len(t, found, 1, "messages: %#v", msgs)
	return found[0]
}

func items() []api.Item {
	return []api.Item{
		{Code: "A1", Name: "Manga vol 1", Price: format.Cents(1233), State: "BR", Vendor: api.VendorRef{Vendor: api.Vendor{ID: 7, Name: "Alice"}}},
		{Code: "B2", Name: "Poster", Price: format.Opaque("ask"), State: "SO", Vendor: api.VendorRef{Vendor: api.Vendor{ID: 7}}},
	}
}

func TestRegisterModes(t *testing.T) {
	reg := mode.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Equal(t, []string{ItemFindName, VendorReportName}, reg.Names())
	assert.True(t, errors.Is(Register(reg), errors.ErrDuplicateMode))
}

func TestItemFindUpperCasesCode(t *testing.T) {
	h := newHarness(t)
	h.switchTo(ItemFindName)

	h.typeText("x")
	h.press(testutils.Key("tab"))
	h.typeText("ab")
	msgs := h.press(testutils.Key("enter"))

	res := only[messages.SearchResultMsg](t, msgs)
	assert.Equal(t, "AB", res.Criteria.Code())
	require.Len(t, h.api.Searches(), 1)
	assert.Equal(t, "x", h.api.Searches()[0].Query())
	assert.Equal(t, "AB", h.api.Searches()[0].Code())
}

func TestItemFindEmptyResults(t *testing.T) {
	h := newHarness(t)
	h.switchTo(ItemFindName)

	h.deliver(h.press(testutils.Key("enter")))
	assert.Contains(t, h.view(), components.NoResults)
}

func TestItemFindRendersNumberedRows(t *testing.T) {
	h := newHarness(t)
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) { return items(), nil }
	h.switchTo(ItemFindName)

	h.deliver(h.press(testutils.Key("enter")))
	view := h.view()
	assert.NotContains(t, view, components.NoResults)
	assert.Contains(t, view, "A1")
	assert.Contains(t, view, "12.33 €")
	assert.Equal(t, 2, h.itemFind().Results().Len())
}

func TestItemFindReselectsFocusedQuery(t *testing.T) {
	h := newHarness(t)
	h.switchTo(ItemFindName)
	h.typeText("manga")

	h.deliver(h.press(testutils.Key("enter")))
	f := h.itemFind()
	assert.True(t, f.Form().QueryFocused())
	assert.True(t, f.Form().QuerySelected())

	h.typeText("z")
	assert.Equal(t, "z", f.Form().Input().Query, "typing replaces the selected query")
}

func TestItemFindNoReselectAfterBlur(t *testing.T) {
	h := newHarness(t)
	h.switchTo(ItemFindName)
	h.typeText("manga")

	pending := h.press(testutils.Key("enter"))
	h.press(testutils.Key("tab"))
	h.deliver(pending)

	f := h.itemFind()
	assert.False(t, f.Form().QueryFocused())
	assert.False(t, f.Form().QuerySelected())
}

func TestItemFindSearchFailureRaisesAlert(t *testing.T) {
	h := newHarness(t)
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) {
		return nil, testutils.Fail(api.OpItemSearch, 502, "bad gateway")
	}
	h.switchTo(ItemFindName)

	h.deliver(h.press(testutils.Key("enter")))
	assert.True(t, h.alert.Active())
	assert.Equal(t, "502: bad gateway", h.alert.Text())
}

// openDialog searches, focuses the results and opens the first row.
func openDialog(h *harness) *ItemFind {
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) { return items(), nil }
	h.switchTo(ItemFindName)
	h.typeText("manga")
	h.deliver(h.press(testutils.Key("enter")))
	h.press(testutils.Key("esc"), testutils.Key("enter"))

	f := h.itemFind()
	require.NotNil(h.t, f.Dialog())
	return f
}

func TestItemFindEditSuccessRefreshesSearch(t *testing.T) {
	h := newHarness(t)
	f := openDialog(h)
	assert.Equal(t, "A1", f.Dialog().Original().Code)

	h.api.EditFunc = func(it api.Item) (api.Item, error) {
		it.Price = format.Cents(1500)
		it.Name = "Manga vol 1 (server)"
		return it, nil
	}

	edit := h.press(testutils.Key("ctrl+s"))
	require.Len(t, h.api.Edits(), 1)
	assert.Equal(t, "A1", h.api.Edits()[0].Code)

	refresh := h.deliver(edit)
	require.NotNil(t, f.Dialog(), "the dialog stays open")
	assert.Equal(t, "Manga vol 1 (server)", f.Dialog().Original().Name)
	assert.Equal(t, format.Cents(1500), f.Dialog().Item().Price)
	assert.Empty(t, f.Dialog().Error())

	bg := only[messages.SearchResultMsg](t, refresh)
	assert.True(t, bg.Background)
	searches := h.api.Searches()
	require.Len(t, searches, 2)
	assert.Equal(t, searches[0], searches[1], "the last criteria are repeated verbatim")

	h.deliver(refresh)
	assert.NotNil(t, f.Dialog())
}

func TestItemFindEditFailureShowsStatusAndBody(t *testing.T) {
	h := newHarness(t)
	f := openDialog(h)
	h.api.EditFunc = func(api.Item) (api.Item, error) {
		return api.Item{}, testutils.Fail(api.OpItemEdit, 400, "Invalid price")
	}

	follow := h.deliver(h.press(testutils.Key("ctrl+s")))
	assert.Empty(t, follow, "no refresh after a failed save")
	require.NotNil(t, f.Dialog())
	assert.Equal(t, "400: Invalid price", f.Dialog().Error())
	assert.False(t, f.Dialog().Saving())
	assert.Contains(t, h.view(), "400: Invalid price")
	assert.Len(t, h.api.Searches(), 1)

	h.press(testutils.Key("esc"))
	assert.Nil(t, f.Dialog())
}

func TestItemFindLateEditFailureStaysWithItsItem(t *testing.T) {
	h := newHarness(t)
	f := openDialog(h)
	h.api.EditFunc = func(api.Item) (api.Item, error) {
		return api.Item{}, testutils.Fail(api.OpItemEdit, 400, "Invalid price")
	}

	pending := h.press(testutils.Key("ctrl+s"))
	h.press(testutils.Key("esc"), testutils.Key("down"), testutils.Key("enter"))
	require.NotNil(t, f.Dialog())
	require.Equal(t, "B2", f.Dialog().Original().Code)

	h.deliver(pending)
	assert.Empty(t, f.Dialog().Error(), "the answer for A1 does not touch the B2 dialog")
	assert.True(t, h.alert.Active())
	assert.Contains(t, h.alert.Text(), "A1")
	assert.Contains(t, h.alert.Text(), "400: Invalid price")
}

func TestItemFindEditFailureWithDialogClosedRaisesAlert(t *testing.T) {
	h := newHarness(t)
	f := openDialog(h)
	h.api.EditFunc = func(api.Item) (api.Item, error) {
		return api.Item{}, testutils.Fail(api.OpItemEdit, 409, "Item sold")
	}

	pending := h.press(testutils.Key("ctrl+s"))
	h.press(testutils.Key("esc"))
	require.Nil(t, f.Dialog())

	h.deliver(pending)
	assert.True(t, h.alert.Active())
	assert.Equal(t, "Saving A1 failed: 409: Item sold", h.alert.Text())
}

func TestItemFindBackgroundRefreshFailureIsSilent(t *testing.T) {
	h := newHarness(t)
	openDialog(h)
	h.api.EditFunc = func(it api.Item) (api.Item, error) { return it, nil }
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) {
		return nil, testutils.Fail(api.OpItemSearch, 502, "bad gateway")
	}

	refresh := h.deliver(h.press(testutils.Key("ctrl+s")))
	bg := only[messages.SearchResultMsg](t, refresh)
	require.True(t, bg.Background)
	require.Error(t, bg.Err)

	h.deliver(refresh)
	assert.False(t, h.alert.Active())
	assert.Contains(t, h.view(), "Saved A1")
	assert.NotContains(t, h.view(), "Search failed")
}

func TestItemFindOpensVendorReport(t *testing.T) {
	h := newHarness(t)
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) { return items(), nil }
	h.switchTo(ItemFindName)
	h.deliver(h.press(testutils.Key("enter")))

	msgs := h.press(testutils.Key("esc"), testutils.Key("v"))
	assert.Equal(t, VendorReportName, h.switcher.CurrentName())
	loaded := only[messages.ReportLoadedMsg](t, msgs)
	assert.Equal(t, h.switcher.Epoch(), loaded.Epoch)
	assert.Equal(t, []int{7}, h.api.Lists())
}

func TestItemFindStaleResponseIsDropped(t *testing.T) {
	h := newHarness(t)
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) { return items(), nil }
	h.switchTo(ItemFindName)
	f := h.itemFind()

	pending := h.press(testutils.Key("enter"))
	h.switchTo(VendorReportName, 7)
	h.deliver(pending)

	assert.Equal(t, 0, f.Results().Len(), "the old mode never sees its late response")
	assert.NotContains(t, h.view(), "Manga vol 1")
}

func TestItemFindCopiesCode(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	h := newHarness(t)
	h.api.SearchFunc = func(api.SearchCriteria) ([]api.Item, error) { return items(), nil }
	h.switchTo(ItemFindName)
	h.deliver(h.press(testutils.Key("enter")))

	h.deliver(h.press(testutils.Key("esc"), testutils.Key("y")))
	assert.Equal(t, "A1", copied)
	assert.Contains(t, h.view(), "Copied A1")
}

func TestItemFindPreset(t *testing.T) {
	h := newHarness(t)
	msgs := h.switchTo(ItemFindName, api.SearchInput{Vendor: "7"})
	only[messages.SearchResultMsg](t, msgs)
	require.Len(t, h.api.Searches(), 1)
	assert.Equal(t, "7", h.api.Searches()[0].Vendor())

	_, err := NewItemFind(42)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestClassify(t *testing.T) {
	in := []api.Item{
		{Code: "S", State: "SO"},
		{Code: "B", State: "BR"},
		{Code: "T", State: "ST"},
		{Code: "X", State: "XX"},
	}
	groups := Classify(in)
	require.Len(t, groups, 2, "the empty Other bucket is omitted")

	assert.Equal(t, "Compensable", groups[0].Name)
	assert.Equal(t, []string{"S"}, codes(groups[0].Items))
	assert.Equal(t, "Returnable", groups[1].Name)
	assert.Equal(t, []string{"B", "T"}, codes(groups[1].Items))

	for _, g := range groups {
		assert.NotContains(t, codes(g.Items), "X")
	}

	groups = Classify([]api.Item{{Code: "C", State: "CO"}, {Code: "A", State: "AD"}})
	require.Len(t, groups, 1)
	assert.Equal(t, "Other", groups[0].Name)
}

func codes(items []api.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Code
	}
	return out
}

func TestFilterItems(t *testing.T) {
	g, err := CompileFilter("MANGA*")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, codes(FilterItems(items(), g)))

	g, err = CompileFilter("b?")
	require.NoError(t, err)
	assert.Equal(t, []string{"B2"}, codes(FilterItems(items(), g)), "codes match too")

	g, err = CompileFilter("  ")
	require.NoError(t, err)
	assert.Len(t, FilterItems(items(), g), 2)

	_, err = CompileFilter("[")
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestVendorReportLoads(t *testing.T) {
	h := newHarness(t)
	h.api.VendorFunc = func(id int) (api.Vendor, error) { return api.Vendor{ID: id, Name: "Alice"}, nil }
	h.api.ListFunc = func(int) ([]api.Item, error) { return items(), nil }

	h.deliver(h.switchTo(VendorReportName, 7))
	view := h.view()
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Compensable")
	assert.Contains(t, view, "Returnable")
	assert.NotContains(t, view, "Other")
	assert.Equal(t, "Vendor Report: Alice", h.switcher.Current().Title())
	assert.Less(t, strings.Index(view, "Compensable"), strings.Index(view, "Returnable"))
}

func TestVendorReportFilterKey(t *testing.T) {
	h := newHarness(t)
	h.api.ListFunc = func(int) ([]api.Item, error) { return items(), nil }
	h.deliver(h.switchTo(VendorReportName, "7"))
	r := h.switcher.Current().(*VendorReport)

	h.press(testutils.Key("/"))
	h.typeText("poster")
	h.press(testutils.Key("enter"))
	assert.Equal(t, []string{"B2"}, codes(r.Items()))

	view := h.view()
	assert.Contains(t, view, "Compensable")
	assert.NotContains(t, view, "Returnable")
}

func TestVendorReportFailure(t *testing.T) {
	h := newHarness(t)
	h.api.VendorFunc = func(int) (api.Vendor, error) {
		return api.Vendor{}, testutils.Fail(api.OpVendorGet, 404, "not found")
	}
	h.deliver(h.switchTo(VendorReportName, 9))
	assert.Equal(t, "404: not found", h.alert.Text())
	assert.Contains(t, h.view(), "404: not found")
}

func TestVendorReportEscReturnsToItemFind(t *testing.T) {
	h := newHarness(t)
	h.switchTo(VendorReportName, 7)
	h.press(testutils.Key("esc"))
	assert.Equal(t, ItemFindName, h.switcher.CurrentName())
}

func TestNewVendorReportArgs(t *testing.T) {
	for _, args := range [][]any{nil, {0}, {"abc"}, {3.5}} {
		_, err := NewVendorReport(args...)
		assert.Error(t, err, fmt.Sprint(args))
	}
	_, err := NewVendorReport(7, "[")
	assert.Error(t, err)

	m, err := NewVendorReport(7, "manga*")
	require.NoError(t, err)
	assert.Equal(t, 7, m.(*VendorReport).VendorID())
}
