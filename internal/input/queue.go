package input

// Event is a tracker update delivered by a window event source.
type Event interface {
	apply(t *Trackers) bool
}

// ResizeEvent carries a new viewport size and the window's device pixel ratio.
type ResizeEvent struct {
	Width, Height int
	PixelRatio    float32
}

func (e ResizeEvent) apply(t *Trackers) bool {
	return t.Viewport.Resize(e.Width, e.Height, e.PixelRatio)
}

// ScrollEvent carries the absolute vertical scroll offset.
type ScrollEvent struct {
	Offset float64
}

func (e ScrollEvent) apply(t *Trackers) bool {
	t.Scroll.Set(e.Offset)
	return true
}

// PointerEvent carries absolute pointer coordinates in pixels.
type PointerEvent struct {
	X, Y float64
}

func (e PointerEvent) apply(t *Trackers) bool {
	return t.Pointer.Move(e.X, e.Y, t.Viewport)
}

// Summary reports what a Drain changed.
type Summary struct {
	Applied  int
	Rejected int
	Resized  bool
}

// Queue buffers events between ticks. Push and Drain must run on the same goroutine as the frame loop.
// It holds at most one pending value per tracker, plus one earlier resize when a pointer event
// arrived between two resizes, so its length stays bounded however long nothing drains it.
// A pointer event is still normalized against the viewport that was current when it arrived.
type Queue struct {
	// before is applied ahead of pointer, after behind it.
	before  *ResizeEvent
	pointer *PointerEvent
	after   *ResizeEvent
	scroll  *ScrollEvent
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push records e, replacing any pending event of the same kind.
func (q *Queue) Push(e Event) {
	switch e := e.(type) {
	case ResizeEvent:
		if e.Width <= 0 || e.Height <= 0 {
			// A minimized window must not discard a usable pending size.
			if q.before != nil || q.after != nil {
				return
			}
		}
		if q.pointer == nil {
			q.before = &e
		} else {
			q.after = &e
		}
	case PointerEvent:
		if q.after != nil {
			q.before, q.after = q.after, nil
		}
		q.pointer = &e
	case ScrollEvent:
		q.scroll = &e
	}
}

// Len returns the number of events waiting for the next drain.
func (q *Queue) Len() int {
	n := 0
	for _, ok := range []bool{q.before != nil, q.pointer != nil, q.after != nil, q.scroll != nil} {
		if ok {
			n++
		}
	}
	return n
}

// Drain applies all pending events to t and empties the queue.
// Events a tracker refuses (zero-sized resize, pointer before any viewport) count as rejected.
func (q *Queue) Drain(t *Trackers) Summary {
	var s Summary
	apply := func(e Event) {
		if e.apply(t) {
			s.Applied++
			if _, ok := e.(ResizeEvent); ok {
				s.Resized = true
			}
		} else {
			s.Rejected++
		}
	}
	if q.before != nil {
		apply(*q.before)
	}
	if q.pointer != nil {
		apply(*q.pointer)
	}
	if q.after != nil {
		apply(*q.after)
	}
	if q.scroll != nil {
		apply(*q.scroll)
	}
	*q = Queue{}
	return s
}
