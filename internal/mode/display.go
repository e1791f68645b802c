package mode

import "strings"

// Viewer is a renderable section of the display.
type Viewer interface {
	View() string
}

// ViewFunc adapts a function to Viewer.
type ViewFunc func() string

func (f ViewFunc) View() string { return f() }

// Display is the shared container modes render into. Exactly one epoch
// owns it at a time; appends from any other epoch are ignored.
type Display struct {
	owner    uint64
	sections []Viewer
}

// NewDisplay creates an empty, unowned display.
func NewDisplay() *Display {
	return &Display{}
}

// Reset clears the display and hands it to epoch.
func (d *Display) Reset(epoch uint64) {
	d.owner = epoch
	d.sections = nil
}

// Append adds a section if epoch owns the display.
func (d *Display) Append(epoch uint64, v Viewer) bool {
	if epoch != d.owner || v == nil {
		return false
	}
	d.sections = append(d.sections, v)
	return true
}

// Owner returns the owning epoch, 0 before any mode entered.
func (d *Display) Owner() uint64 {
	return d.owner
}

// Len returns the number of sections.
func (d *Display) Len() int {
	return len(d.sections)
}

// View renders every section separated by blank lines. Empty sections are
// skipped.
func (d *Display) View() string {
	parts := make([]string, 0, len(d.sections))
	for _, s := range d.sections {
		if v := s.View(); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n\n")
}
