package modes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kassa/internal/api"
	"kassa/internal/errors"
	"kassa/internal/format"
	"kassa/internal/log"
	"kassa/internal/mode"
	"kassa/internal/tui/components"
	"kassa/internal/tui/messages"
	"kassa/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// Bucket is a fixed group of item states in a vendor report.
type Bucket struct {
	Name        string
	Description string
	States      []string
}

// Buckets is the closed classification of the report. A state listed in
// none of them is left out of the report.
var Buckets = []Bucket{
	{Name: "Compensable", Description: "Sold, owed to the vendor", States: []string{format.StateSold}},
	{Name: "Returnable", Description: "On display or about to be sold", States: []string{format.StateBrought, format.StateStaged}},
	{Name: "Other", Description: "Compensated, missing, returned or not brought", States: []string{
		format.StateCompensated, format.StateMissing, format.StateReturned, format.StateAdvertised,
	}},
}

// BucketGroup is one bucket with its items in list order.
type BucketGroup struct {
	Bucket
	Items []api.Item
}

// Classify sorts items into Buckets. Empty buckets are omitted.
func Classify(items []api.Item) []BucketGroup {
	index := make(map[string]int)
	for i, b := range Buckets {
		for _, s := range b.States {
			index[s] = i
		}
	}

	grouped := make([][]api.Item, len(Buckets))
	for _, it := range items {
		if i, ok := index[it.State]; ok {
			grouped[i] = append(grouped[i], it)
		}
	}

	var out []BucketGroup
	for i, b := range Buckets {
		if len(grouped[i]) > 0 {
			out = append(out, BucketGroup{Bucket: b, Items: grouped[i]})
		}
	}
	return out
}

// CompileFilter compiles a case-insensitive glob matched against item code
// and name. An empty pattern matches everything.
func CompileFilter(pattern string) (glob.Glob, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, errors.NewInvalidInputError("invalid filter pattern", err).WithContext("pattern", pattern)
	}
	return g, nil
}

// FilterItems keeps the items whose code or name matches g.
func FilterItems(items []api.Item, g glob.Glob) []api.Item {
	if g == nil {
		return items
	}
	out := make([]api.Item, 0, len(items))
	for _, it := range items {
		if g.Match(strings.ToLower(it.Code)) || g.Match(strings.ToLower(it.Name)) {
			out = append(out, it)
		}
	}
	return out
}

// LoadReport fetches the vendor and its items concurrently.
func LoadReport(ctx context.Context, svc api.Service, vendorID int) (api.Vendor, []api.Item, error) {
	var (
		vendor api.Vendor
		items  []api.Item
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := svc.VendorGet(ctx, vendorID)
		vendor = v
		return err
	})
	g.Go(func() error {
		list, err := svc.ItemList(ctx, vendorID)
		items = list
		return err
	})
	if err := g.Wait(); err != nil {
		return api.Vendor{}, nil, err
	}
	return vendor, items, nil
}

// RenderReport renders the bucket tables of a report.
func RenderReport(items []api.Item, cur format.Currency, rounded bool) string {
	groups := Classify(items)
	if len(groups) == 0 {
		return styles.Theme.Muted.Render("No items.")
	}
	tables := make([]string, len(groups))
	for i, g := range groups {
		tables[i] = components.ReportTable(g.Name, g.Items, cur, rounded)
	}
	return strings.Join(tables, "\n\n")
}

// VendorReport shows a vendor's items grouped by state.
type VendorReport struct {
	mode.Base

	env      *mode.Env
	vendorID int

	vendor api.Vendor
	items  []api.Item
	loaded bool
	err    error

	pattern   string
	filter    glob.Glob
	input     textinput.Model
	filtering bool

	status *components.StatusBar
}

// NewVendorReport builds the report for a vendor id (int or numeric
// string) with an optional filter pattern as second argument.
func NewVendorReport(args ...any) (mode.Mode, error) {
	if len(args) == 0 {
		return nil, errors.NewInvalidInputError("vendor report needs a vendor id", nil)
	}
	id, err := vendorArg(args[0])
	if err != nil {
		return nil, err
	}
	r := &VendorReport{vendorID: id}
	if len(args) > 1 {
		pattern, _ := args[1].(string)
		if r.filter, err = CompileFilter(pattern); err != nil {
			return nil, err
		}
		r.pattern = pattern
	}
	return r, nil
}

func vendorArg(v any) (int, error) {
	switch id := v.(type) {
	case int:
		if id > 0 {
			return id, nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(id)); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, errors.NewInvalidInputError("invalid vendor id", nil).WithContext("vendor", v)
}

func (r *VendorReport) Title() string {
	if r.vendor.Name != "" {
		return "Vendor Report: " + r.vendor.Name
	}
	return fmt.Sprintf("Vendor Report #%d", r.vendorID)
}

func (r *VendorReport) Glyph() string { return "▤" }

func (r *VendorReport) Enter(env *mode.Env) (tea.Cmd, error) {
	r.env = env
	r.status = components.NewStatusBar()
	r.input = textinput.New()
	r.input.Prompt = "/"
	r.input.Placeholder = "glob over code or name"
	r.input.SetValue(r.pattern)

	env.Display.Reset(env.Epoch)
	env.Display.Append(env.Epoch, mode.ViewFunc(r.header))
	env.Display.Append(env.Epoch, mode.ViewFunc(r.body))
	env.Display.Append(env.Epoch, r.status)

	return r.load(), nil
}

// Items returns the loaded items after filtering.
func (r *VendorReport) Items() []api.Item {
	return FilterItems(r.items, r.filter)
}

func (r *VendorReport) VendorID() int { return r.vendorID }

func (r *VendorReport) load() tea.Cmd {
	r.status.SetText("Loading report...")
	epoch, svc, id := r.env.Epoch, r.env.API, r.vendorID
	return tea.Batch(r.status.Begin(), request(func(ctx context.Context) tea.Msg {
		vendor, items, err := LoadReport(ctx, svc, id)
		return messages.ReportLoadedMsg{Epoch: epoch, Vendor: vendor, Items: items, Err: err}
	}))
}

func (r *VendorReport) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case messages.ReportLoadedMsg:
		r.status.Done()
		if msg.Err != nil {
			r.err = msg.Err
			r.status.SetText("")
			log.LogWithError(msg.Err).WithField("vendor", r.vendorID).Warn("Vendor report failed")
			return r.env.Alert.Raise(errors.UserMessage(msg.Err), true)
		}
		r.err = nil
		r.vendor = msg.Vendor
		r.items = msg.Items
		r.loaded = true
		r.status.SetText(fmt.Sprintf("%d items", len(msg.Items)))
	case spinner.TickMsg:
		return r.status.Update(msg)
	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return nil
}

func (r *VendorReport) handleKey(msg tea.KeyMsg) tea.Cmd {
	if r.filtering {
		switch msg.String() {
		case "enter":
			g, err := CompileFilter(r.input.Value())
			if err != nil {
				return r.env.Alert.Raise(errors.UserMessage(err), true)
			}
			r.filter, r.pattern = g, r.input.Value()
			r.filtering = false
			r.input.Blur()
			return nil
		case "esc":
			r.filtering = false
			r.input.SetValue(r.pattern)
			r.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "/":
		r.filtering = true
		return r.input.Focus()
	case "r":
		return r.load()
	case "esc":
		cmd, err := r.env.Switch(ItemFindName)
		if err != nil {
			return r.env.Alert.Raise(errors.UserMessage(err), true)
		}
		return cmd
	}
	return nil
}

func (r *VendorReport) header() string {
	var b strings.Builder
	if r.vendor.Name != "" {
		b.WriteString(styles.Theme.Header.Render(r.vendor.Name))
		if r.vendor.Email != "" || r.vendor.Phone != "" {
			b.WriteString(styles.Theme.Muted.Render("  " + strings.TrimSpace(r.vendor.Email+" "+r.vendor.Phone)))
		}
	} else {
		b.WriteString(styles.Theme.Header.Render(fmt.Sprintf("Vendor %d", r.vendorID)))
	}
	if r.filtering || r.pattern != "" {
		b.WriteString("\n" + r.input.View())
	}
	return b.String()
}

func (r *VendorReport) body() string {
	if r.err != nil {
		return styles.Theme.Error.Render(errors.UserMessage(r.err))
	}
	if !r.loaded {
		return ""
	}
	cfg := r.env.Settings
	return RenderReport(r.Items(), cfg.Currency(), cfg.Price.Rounded)
}
