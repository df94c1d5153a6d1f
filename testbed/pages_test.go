package testbed

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/systems"
)

var colorRed = color.NRGBA{R: 0xff, A: 0xff}

func TestPageLabel(t *testing.T) {
	tests := []struct {
		number  int
		spread  bool
		title   string
		caption string
	}{
		{number: 1, title: "1", caption: firstPageCaption},
		{number: 0, title: "0", caption: firstPageCaption},
		{number: 4, title: "4"},
		{number: 8, title: "8", caption: lastPageCaption},
		{number: 0, spread: true, title: prefaceLabel},
		{number: 1, spread: true, title: "1", caption: firstPageCaption},
		{number: 5, spread: true, title: "5"},
		{number: 8, spread: true, title: "8", caption: lastPageCaption},
		{number: 9, spread: true, title: endLabel},
	}
	for _, tt := range tests {
		title, caption := PageLabel(tt.number, 8, tt.spread)
		assert.Equal(t, tt.title, title, "page %d spread %v", tt.number, tt.spread)
		assert.Equal(t, tt.caption, caption, "page %d spread %v", tt.number, tt.spread)
	}
}

func TestPaint(t *testing.T) {
	p, err := NewPagePainter(8, nil)
	require.NoError(t, err)

	pb := p.Paint(3, 120, 160, false)
	require.NoError(t, pb.Validate())
	assert.Equal(t, 120, pb.Width)
	assert.Equal(t, 160, pb.Height)
	assert.Equal(t, uint8(0xff), pb.At(5, 5).A)
	// the number is drawn in white near the bottom
	white := false
	for y := 100; y < 160 && !white; y++ {
		for x := 0; x < 120; x++ {
			c := pb.At(x, y)
			if c.R > 0xf0 && c.G > 0xf0 && c.B > 0xf0 {
				white = true
				break
			}
		}
	}
	assert.True(t, white)
}

func TestPaintUsesBackground(t *testing.T) {
	bg := metadata.NewPixelBuffer(2, 2, metadata.PixelFormatRGBA32)
	for i := range bg.Data {
		bg.Data[i] = 0xff
	}
	bg.Set(0, 0, colorRed)
	p, err := NewPagePainter(8, []*metadata.PixelBuffer{bg})
	require.NoError(t, err)

	pb := p.Paint(2, 40, 40, false)
	c := pb.At(1, 1)
	assert.Greater(t, c.R, c.B, "background is scaled over the page")
}

func TestPageCache(t *testing.T) {
	p, err := NewPagePainter(8, nil)
	require.NoError(t, err)
	jobs, err := systems.NewJobSystem(2, 4)
	require.NoError(t, err)
	defer jobs.Shutdown()

	c := NewPageCache(p, jobs, 3)
	first := c.Get(1, 30, 40, false)
	assert.Same(t, first, c.Get(1, 30, 40, false))
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	c.Prefetch([]int{2, 3}, 30, 40, false)
	assert.Eventually(t, func() bool { return c.Len() == 3 }, 5*time.Second, 10*time.Millisecond)

	// the farthest page goes first
	c.Get(4, 30, 40, false)
	assert.Equal(t, 3, c.Len())
	_, misses = c.Stats()
	c.Get(1, 30, 40, false)
	_, after := c.Stats()
	assert.Equal(t, misses+1, after)

	c.Reset()
	assert.Zero(t, c.Len())
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript("forward, click-backward ,wait", 600, 800, 250)
	require.NoError(t, err)
	require.Len(t, s, len(DragForward(600, 800, 250))+3+1)
	assert.Equal(t, StepPress, s[0].Kind)
	assert.Equal(t, StepWait, s[len(s)-1].Kind)

	_, err = ParseScript("forward,jump", 600, 800, 250)
	assert.ErrorContains(t, err, "jump")
}

func TestPlayerWaitsForAnimation(t *testing.T) {
	bus := core.NewEventBus()
	in := core.NewInput(bus)
	var presses, releases int
	bus.Register(core.EVENT_CODE_POINTER_PRESSED, t, func(core.EventContext) bool {
		presses++
		return true
	})
	bus.Register(core.EVENT_CODE_POINTER_RELEASED, t, func(ctx core.EventContext) bool {
		releases++
		assert.Equal(t, 200, ctx.Data.(*core.PointerEvent).Duration)
		return true
	})

	p := NewPlayer(Click(10, 10, 200))
	p.Advance(in, false)
	p.Advance(in, false)
	assert.Equal(t, 1, presses)
	assert.Equal(t, 1, releases)

	p.Advance(in, true)
	p.Advance(in, true)
	assert.False(t, p.Done())
	p.Advance(in, false)
	p.Advance(in, false)
	assert.True(t, p.Done())
}
