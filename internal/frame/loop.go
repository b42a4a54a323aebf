package frame

import "log/slog"

// Scheduler runs a callback once before the next repaint, like requestAnimationFrame.
type Scheduler interface {
	RequestFrame(cb func())
}

// Loop chains ticks through a Scheduler: every tick re-requests the next one until Stop.
// Start, Stop and the ticks all run on the loop goroutine.
type Loop struct {
	sched   Scheduler
	pipe    *Pipeline
	fc      *FrameContext
	running bool
	gen     uint64
}

// NewLoop returns a stopped loop.
func NewLoop(sched Scheduler, pipe *Pipeline, fc *FrameContext) *Loop {
	if pipe == nil {
		pipe = NewPipeline(nil)
	}
	return &Loop{sched: sched, pipe: pipe, fc: fc}
}

// Start validates the context, resyncs the clock, applies the current viewport size and requests
// the first tick. Time spent stopped never shows up as a frame delta. Starting a running loop is a no-op.
func (l *Loop) Start() error {
	if l.running {
		return nil
	}
	if err := l.fc.Validate(); err != nil {
		return err
	}
	l.running = true
	l.gen++
	l.fc.Clock.Resync()
	l.pipe.Resize(l.fc)
	l.pipe.log.Info("frame loop started", slog.Int("objects", len(l.fc.Scene.Objects)))
	l.request(l.gen)
	return nil
}

// Stop prevents any further tick from running or being requested. A callback already handed to
// the scheduler returns without ticking.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.pipe.log.Info("frame loop stopped", slog.Uint64("ticks", l.fc.Stats.Ticks))
}

// Redraw renders the scene as the last tick left it, without reading the clock or draining input.
// It does nothing while the loop is running or before the context is ready.
func (l *Loop) Redraw() {
	if l.running || l.fc.Validate() != nil {
		return
	}
	l.fc.Renderer.Render(l.fc.Scene, l.fc.Scene.Camera)
}

// Running reports whether the loop is scheduling ticks.
func (l *Loop) Running() bool { return l.running }

// Context returns the frame context the loop ticks.
func (l *Loop) Context() *FrameContext { return l.fc }

func (l *Loop) request(gen uint64) {
	l.sched.RequestFrame(func() {
		if !l.running || gen != l.gen {
			return
		}
		l.pipe.Tick(l.fc)
		if l.running && gen == l.gen {
			l.request(gen)
		}
	})
}

// ManualScheduler queues callbacks until Step runs them. It stands in for the display in tests
// and headless runs.
type ManualScheduler struct {
	pending []func()
}

// RequestFrame queues cb for the next Step.
func (m *ManualScheduler) RequestFrame(cb func()) {
	m.pending = append(m.pending, cb)
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int { return len(m.pending) }

// Step runs the callbacks queued before the call; callbacks they request wait for the next Step.
// It returns how many ran.
func (m *ManualScheduler) Step() int {
	batch := m.pending
	m.pending = nil
	for _, cb := range batch {
		cb()
	}
	return len(batch)
}
