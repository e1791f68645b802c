// Package alert serializes the checkout's single alert surface: a text
// line that can blink a fixed number of times and ring an audio cue.
//
// All methods must be called from the bubbletea event loop. Blink ticks are
// delivered back to the loop as BlinkMsg values and fed to Update.
package alert

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Sounder plays the audio cue of an alert.
type Sounder interface {
	Play()
}

// Bell rings the terminal bell on W.
type Bell struct {
	W io.Writer
}

// Play writes BEL.
func (b Bell) Play() {
	if b.W != nil {
		_, _ = b.W.Write([]byte{'\a'})
	}
}

// BlinkMsg is one scheduled toggle of a blink chain.
type BlinkMsg struct {
	chain uint64
}

// Options configures a Channel.
type Options struct {
	BlinkCount int
	Interval   time.Duration
	Sound      Sounder
}

// Channel is the alert surface. At most one blink chain runs at a time;
// each chain has an id and ticks carrying any other id are ignored.
type Channel struct {
	opts Options

	text    string
	visible bool
	lit     bool

	chain        uint64
	lastChain    uint64
	remaining    int
	pendingClear bool
}

// New creates an idle channel.
func New(opts Options) *Channel {
	return &Channel{opts: opts}
}

// Configure changes blink settings for chains started afterwards.
func (c *Channel) Configure(count int, interval time.Duration) {
	c.opts.BlinkCount = count
	c.opts.Interval = interval
}

// SetSound replaces the audio cue; nil silences alerts.
func (c *Channel) SetSound(s Sounder) {
	c.opts.Sound = s
}

// Raise plays the cue and shows message. With blink set and no chain
// running it starts a new chain and returns its first tick. While a chain
// runs, only the text changes and the running chain keeps its remaining
// toggles.
func (c *Channel) Raise(message string, blink bool) tea.Cmd {
	if c.opts.Sound != nil {
		c.opts.Sound.Play()
	}
	c.text = message
	c.visible = true
	c.pendingClear = false

	if !blink || c.chain != 0 || c.opts.BlinkCount <= 0 {
		return nil
	}
	c.lastChain++
	c.chain = c.lastChain
	c.remaining = c.opts.BlinkCount
	return c.tick(c.chain)
}

// Clear hides the alert. While a chain is running the call only records
// the request; the chain hides the alert when it finishes.
func (c *Channel) Clear() {
	if c.chain != 0 {
		c.pendingClear = true
		return
	}
	c.hide()
}

// Cancel stops any running chain immediately and hides the alert.
func (c *Channel) Cancel() {
	c.chain = 0
	c.remaining = 0
	c.hide()
}

// Update advances the running chain by one toggle. Ticks from cancelled or
// finished chains are dropped. It returns the next tick, if any.
func (c *Channel) Update(msg tea.Msg) tea.Cmd {
	blink, ok := msg.(BlinkMsg)
	if !ok || blink.chain == 0 || blink.chain != c.chain {
		return nil
	}

	c.lit = !c.lit
	c.remaining--
	if c.remaining > 0 {
		return c.tick(c.chain)
	}

	c.chain = 0
	c.lit = false
	if c.pendingClear {
		c.hide()
	}
	return nil
}

func (c *Channel) hide() {
	c.text = ""
	c.visible = false
	c.lit = false
	c.pendingClear = false
}

func (c *Channel) tick(chain uint64) tea.Cmd {
	return tea.Tick(c.opts.Interval, func(time.Time) tea.Msg {
		return BlinkMsg{chain: chain}
	})
}

// Text returns the displayed message.
func (c *Channel) Text() string { return c.text }

// Active reports whether the alert is shown.
func (c *Channel) Active() bool { return c.visible }

// Blinking reports whether a chain is in progress.
func (c *Channel) Blinking() bool { return c.chain != 0 }

// Lit reports the current blink phase.
func (c *Channel) Lit() bool { return c.lit }

// Remaining returns the toggles left in the running chain.
func (c *Channel) Remaining() int { return c.remaining }
