package alert

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSound struct{ plays int }

func (s *countingSound) Play() { s.plays++ }

func newTestChannel(count int) (*Channel, *countingSound) {
	snd := &countingSound{}
	return New(Options{BlinkCount: count, Interval: time.Millisecond, Sound: snd}), snd
}

// drain runs a blink chain to completion and returns how many ticks fired.
func drain(t *testing.T, c *Channel, cmd tea.Cmd) int {
	t.Helper()
	ticks := 0
	for cmd != nil {
		msg := cmd()
		_, ok := msg.(BlinkMsg)
		require.True(t, ok, "expected BlinkMsg, got %T", msg)
		ticks++
		cmd = c.Update(msg)
		require.Less(t, ticks, 100, "chain did not terminate")
	}
	return ticks
}

func TestRaiseBlinksConfiguredCount(t *testing.T) {
	c, snd := newTestChannel(6)

	cmd := c.Raise("boom", true)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, snd.plays)
	assert.True(t, c.Active())
	assert.True(t, c.Blinking())

	assert.Equal(t, 6, drain(t, c, cmd))
	assert.False(t, c.Blinking())
	assert.False(t, c.Lit(), "blink styling is removed when the chain ends")
	assert.True(t, c.Active(), "the alert text stays after blinking")
	assert.Equal(t, "boom", c.Text())
}

func TestRaiseWithoutBlink(t *testing.T) {
	c, snd := newTestChannel(6)

	assert.Nil(t, c.Raise("quiet", false))
	assert.Equal(t, 1, snd.plays)
	assert.Equal(t, "quiet", c.Text())
	assert.False(t, c.Blinking())
}

func TestSecondRaiseCollapsesOntoRunningChain(t *testing.T) {
	c, snd := newTestChannel(4)

	first := c.Raise("boom", true)
	require.NotNil(t, first)

	// One toggle of the first chain has fired.
	next := c.Update(first())
	require.NotNil(t, next)
	assert.Equal(t, 3, c.Remaining())

	second := c.Raise("boom2", true)
	assert.Nil(t, second, "no second chain is scheduled")
	assert.Equal(t, 2, snd.plays)
	assert.Equal(t, "boom2", c.Text())
	assert.Equal(t, 3, c.Remaining(), "leftover toggles are not reset")

	assert.Equal(t, 3, drain(t, c, next))
	assert.False(t, c.Blinking())
	assert.Equal(t, "boom2", c.Text())
}

func TestClearDeferredWhileBlinking(t *testing.T) {
	c, _ := newTestChannel(3)

	cmd := c.Raise("boom", true)
	c.Clear()
	assert.True(t, c.Active(), "clear must not hide a blinking alert")
	assert.Equal(t, "boom", c.Text())

	drain(t, c, cmd)
	assert.False(t, c.Active(), "the chain applies the deferred clear")
	assert.Empty(t, c.Text())
}

func TestClearWhenIdle(t *testing.T) {
	c, _ := newTestChannel(3)

	c.Raise("boom", false)
	c.Clear()
	assert.False(t, c.Active())
	assert.Empty(t, c.Text())
}

func TestRaiseAfterDeferredClearKeepsNewAlert(t *testing.T) {
	c, _ := newTestChannel(2)

	cmd := c.Raise("boom", true)
	c.Clear()
	c.Raise("boom2", true)

	drain(t, c, cmd)
	assert.True(t, c.Active())
	assert.Equal(t, "boom2", c.Text())
}

func TestCancelDropsPendingTicks(t *testing.T) {
	c, _ := newTestChannel(5)

	cmd := c.Raise("boom", true)
	tick := cmd()
	c.Cancel()

	assert.Nil(t, c.Update(tick), "ticks of a cancelled chain are ignored")
	assert.False(t, c.Active())
	assert.False(t, c.Blinking())

	// A new chain starts fresh and ignores ticks of the old one.
	fresh := c.Raise("again", true)
	require.NotNil(t, fresh)
	assert.Nil(t, c.Update(tick))
	assert.Equal(t, 5, c.Remaining())
	assert.Equal(t, 5, drain(t, c, fresh))
}

func TestZeroBlinkCount(t *testing.T) {
	c, _ := newTestChannel(0)
	assert.Nil(t, c.Raise("boom", true))
	assert.False(t, c.Blinking())
	assert.True(t, c.Active())
}

func TestConfigureAffectsNextChain(t *testing.T) {
	c, _ := newTestChannel(6)
	c.Configure(2, time.Millisecond)
	assert.Equal(t, 2, drain(t, c, c.Raise("boom", true)))
}

func TestUpdateIgnoresOtherMessages(t *testing.T) {
	c, _ := newTestChannel(2)
	c.Raise("boom", true)
	assert.Nil(t, c.Update(tea.KeyMsg{}))
	assert.Equal(t, 2, c.Remaining())
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	Bell{W: &buf}.Play()
	assert.Equal(t, "\a", buf.String())
	Bell{}.Play()
}
