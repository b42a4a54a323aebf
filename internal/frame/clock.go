package frame

import (
	"sync"
	"time"
)

// TimeSource provides the current time. The real source is monotonic; tests use MockTimeSource.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the system clock, including its monotonic reading.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time { return time.Now() }

// MockTimeSource is a controllable TimeSource for tests. It may be moved backwards.
type MockTimeSource struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeSource returns a mock starting at start.
func NewMockTimeSource(start time.Time) *MockTimeSource {
	return &MockTimeSource{now: start}
}

// Now returns the mocked time.
func (m *MockTimeSource) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time by d. Negative d moves it backwards.
func (m *MockTimeSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Clock tracks seconds elapsed since construction and the delta between ticks.
// Elapsed never decreases: a source that steps backwards yields delta 0.
type Clock struct {
	src      TimeSource
	start    time.Time
	previous float64
}

// NewClock starts a clock on src. A nil src uses SystemTime.
func NewClock(src TimeSource) *Clock {
	if src == nil {
		src = SystemTime{}
	}
	return &Clock{src: src, start: src.Now()}
}

// Tick reads the source and returns elapsed seconds and the delta since the previous Tick.
func (c *Clock) Tick() (elapsed, delta float64) {
	elapsed = c.src.Now().Sub(c.start).Seconds()
	if elapsed < c.previous {
		elapsed = c.previous
	}
	delta = elapsed - c.previous
	c.previous = elapsed
	return elapsed, delta
}

// Elapsed returns the elapsed time recorded by the last Tick.
func (c *Clock) Elapsed() float64 { return c.previous }

// Resync moves the previous-tick mark to now, so the next Tick reports only the time since this
// call. Elapsed keeps counting through the gap.
func (c *Clock) Resync() {
	if now := c.src.Now().Sub(c.start).Seconds(); now > c.previous {
		c.previous = now
	}
}
