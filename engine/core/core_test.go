package core

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusErr(t *testing.T) {
	assert.Nil(t, StatusOK.Err())
	assert.ErrorIs(t, StatusInvalidParameter.Err(), ErrInvalidParameter)
	assert.ErrorIs(t, StatusNullPage.Err(), ErrNullPage)
	assert.ErrorIs(t, Status(-99).Err(), ErrUnknown)
	assert.Equal(t, "ok", StatusOK.String())
	assert.ErrorIs(t, StatusError.Err(), ErrGeneric)
	assert.Equal(t, "error", StatusError.String())
}

func TestErrorUnwrap(t *testing.T) {
	err := NewError(StatusUnsupportedPixelFormat, "format %d", 7)
	assert.True(t, errors.Is(err, ErrUnsupportedPixelFormat))
	assert.Contains(t, err.Error(), "format 7")

	var target *Error
	require.True(t, errors.As(fmt.Errorf("upload: %w", err), &target))
	assert.Equal(t, StatusUnsupportedPixelFormat, target.Status)
}

func TestLastError(t *testing.T) {
	var le LastError
	assert.NoError(t, le.Err())

	s := le.Set(StatusInvalidParameter, "ratio %.1f out of range", 1.5)
	assert.Equal(t, StatusInvalidParameter, s)
	assert.Equal(t, StatusInvalidParameter, le.Status())
	assert.Equal(t, "ratio 1.5 out of range", le.Message())
	assert.ErrorIs(t, le.Err(), ErrInvalidParameter)

	le.Clear()
	assert.Equal(t, StatusOK, le.Status())
	assert.Empty(t, le.Message())
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{" warn ", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"", LogLevelInfo, false},
		{"verbose", LogLevelInfo, true},
	}
	for _, c := range cases {
		got, err := ParseLogLevel(c.in)
		if c.wantErr {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestLogOutput(t *testing.T) {
	var sb strings.Builder
	SetLogOutput(&sb)
	SetLogLevel(LogLevelDebug)
	defer func() {
		SetLogOutput(io.Discard)
		SetLogLevel(LogLevelInfo)
	}()

	LogDebug("state %s", "BEGIN")
	assert.Contains(t, sb.String(), "state BEGIN")
}

func TestClockWithManualTime(t *testing.T) {
	mt := NewManualTime(100)
	c := NewClock(mt)
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	mt.Advance(1500)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	mt.Advance(1000)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 61; i++ {
		m.Update(1.0 / 60.0)
	}
	assert.InDelta(t, 16.666, m.FrameTime(), 0.01)
	assert.InDelta(t, 60, m.FPS(), 1)
	assert.Equal(t, uint64(61), m.TotalFrames())
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var got []EventCode
	listener := &struct{}{}
	require.True(t, bus.Register(EVENT_CODE_POINTER_PRESSED, listener, func(ctx EventContext) bool {
		got = append(got, ctx.Type)
		return true
	}))
	assert.False(t, bus.Register(EVENT_CODE_POINTER_PRESSED, listener, func(EventContext) bool { return false }))

	assert.True(t, bus.Fire(EventContext{Type: EVENT_CODE_POINTER_PRESSED}))
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_POINTER_MOVED}))
	assert.Equal(t, []EventCode{EVENT_CODE_POINTER_PRESSED}, got)

	assert.True(t, bus.Unregister(EVENT_CODE_POINTER_PRESSED, listener))
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_POINTER_PRESSED}))
}

func TestInputFiresPointerEvents(t *testing.T) {
	bus := NewEventBus()
	var events []PointerEvent
	var codes []EventCode
	record := func(ctx EventContext) bool {
		codes = append(codes, ctx.Type)
		events = append(events, *ctx.Data.(*PointerEvent))
		return true
	}
	bus.Register(EVENT_CODE_POINTER_PRESSED, nil, record)
	bus.Register(EVENT_CODE_POINTER_MOVED, nil, record)
	bus.Register(EVENT_CODE_POINTER_RELEASED, nil, record)

	in := NewInput(bus)
	assert.False(t, in.ProcessMove(10, 10), "move without press")
	assert.True(t, in.ProcessButton(BUTTON_LEFT, true, 10, 10, 0))
	assert.False(t, in.ProcessButton(BUTTON_LEFT, true, 10, 10, 0), "no state change")
	assert.True(t, in.ProcessMove(20, 12))
	assert.False(t, in.ProcessMove(20, 12), "same position")
	assert.True(t, in.ProcessButton(BUTTON_LEFT, false, 30, 14, 800))

	assert.Equal(t, []EventCode{EVENT_CODE_POINTER_PRESSED, EVENT_CODE_POINTER_MOVED, EVENT_CODE_POINTER_RELEASED}, codes)
	assert.Equal(t, 800, events[2].Duration)

	in.Update()
	x, y := in.PreviousPosition()
	assert.Equal(t, float32(30), x)
	assert.Equal(t, float32(14), y)
	assert.False(t, in.WasButtonDown(BUTTON_LEFT))
}

func TestIdentifiers(t *testing.T) {
	a := NewTextureName("page")
	b := NewTextureName("page")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "page-"))
	assert.NotEqual(t, IdentifierAquireNewID(), IdentifierAquireNewID())
}
