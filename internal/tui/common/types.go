package common

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	ModeNames() []string
	CurrentMode() string
	Title() string
	Glyph() string
	Body() string
	AlertView() string
	ShowHelp() bool
	Width() int
}
