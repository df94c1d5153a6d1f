package core

import "time"

// TimeSource yields a monotonic millisecond timestamp.
type TimeSource interface {
	NowMillis() int64
}

type systemTime struct {
	origin time.Time
}

// SystemTime returns a TimeSource backed by the monotonic wall clock.
func SystemTime() TimeSource {
	return &systemTime{origin: time.Now()}
}

func (s *systemTime) NowMillis() int64 {
	return time.Since(s.origin).Milliseconds()
}

// ManualTime is a TimeSource that only moves when told to.
type ManualTime struct {
	now int64
}

func NewManualTime(start int64) *ManualTime {
	return &ManualTime{now: start}
}

func (m *ManualTime) NowMillis() int64 {
	return m.now
}

// Advance moves the time forward by ms milliseconds.
func (m *ManualTime) Advance(ms int64) {
	m.now += ms
}

func (m *ManualTime) Set(ms int64) {
	m.now = ms
}

// Clock measures elapsed seconds between Start and the last Update.
type Clock struct {
	source    TimeSource
	startTime int64
	started   bool
	elapsed   float64
}

func NewClock(source TimeSource) *Clock {
	if source == nil {
		source = SystemTime()
	}
	return &Clock{source: source}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.started {
		c.elapsed = float64(c.source.NowMillis()-c.startTime) / 1000.0
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.source.NowMillis()
	c.started = true
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.started = false
}

// Elapsed returns seconds since Start as of the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

func (c *Clock) Source() TimeSource {
	return c.source
}
