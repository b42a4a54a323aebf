package graphics

import (
	"log/slog"

	"scroll-scene/internal/input"
	"scroll-scene/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// wheelLinePixels is how far one mouse wheel notch scrolls the page.
const wheelLinePixels = 120

// Options configure the window.
type Options struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
	// Sections is the number of stacked objects; it bounds the emulated page scroll.
	Sections int
}

// Window owns the raylib window and drives the frame loop. It implements frame.Scheduler:
// callbacks requested during one frame run inside the next BeginDrawing/EndDrawing pair.
type Window struct {
	opts     Options
	log      *slog.Logger
	queue    *input.Queue
	scroller *input.Scroller
	pending  []func()
	width    int
	height   int
	dpr      float32
	mouse    rl.Vector2
	// KeysBlocked, when set and true, stops keyboard scrolling (e.g. while the console has focus).
	KeysBlocked func() bool
	// Idle draws frames that have no requested callback, such as while the frame loop is stopped.
	// Nil clears to the background.
	Idle func()
}

// Open creates the window. Must be called from the main goroutine with the OS thread locked.
// Window is resizable and vsync-paced. ESC is left to the console; close via window button.
func Open(opts Options, queue *input.Queue, log *slog.Logger) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetExitKey(rl.KeyNull)
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}
	w := &Window{
		opts:     opts,
		log:      logger.OrDiscard(log),
		queue:    queue,
		scroller: input.NewScroller(opts.Sections, wheelLinePixels),
		mouse:    rl.NewVector2(-1, -1),
	}
	w.pushSize()
	w.log.Info("window opened", "w", w.width, "h", w.height, "dpr", w.dpr)
	return w
}

// RequestFrame implements frame.Scheduler.
func (w *Window) RequestFrame(cb func()) {
	w.pending = append(w.pending, cb)
}

// Size returns the current window size in screen pixels.
func (w *Window) Size() (int, int) { return w.width, w.height }

// PollEvents turns raylib's per-frame input state into tracker events.
func (w *Window) PollEvents() {
	if rl.IsWindowResized() {
		w.pushSize()
		if w.height > 0 {
			if v, changed := w.scroller.Refit(w.height); changed {
				w.queue.Push(input.ScrollEvent{Offset: v})
			}
		}
	}

	if notches := rl.GetMouseWheelMove(); notches != 0 {
		if v, changed := w.scroller.Wheel(float64(notches), w.height); changed {
			w.queue.Push(input.ScrollEvent{Offset: v})
		}
	}
	if w.KeysBlocked == nil || !w.KeysBlocked() {
		pages := 0
		if rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeyDown) {
			pages++
		}
		if rl.IsKeyPressed(rl.KeyPageUp) || rl.IsKeyPressed(rl.KeyUp) {
			pages--
		}
		if pages != 0 {
			if v, changed := w.scroller.Page(pages, w.height); changed {
				w.queue.Push(input.ScrollEvent{Offset: v})
			}
		}
	}

	if m := rl.GetMousePosition(); m != w.mouse {
		w.mouse = m
		w.queue.Push(input.PointerEvent{X: float64(m.X), Y: float64(m.Y)})
	}
}

func (w *Window) pushSize() {
	w.width, w.height = rl.GetScreenWidth(), rl.GetScreenHeight()
	w.dpr = rl.GetWindowScaleDPI().X
	w.queue.Push(input.ResizeEvent{Width: w.width, Height: w.height, PixelRatio: w.dpr})
}

// Run is the main loop. Each frame it polls input, calls update (e.g. console keys), runs the
// requested frame callbacks, then calls overlay for 2D drawing on top. It returns when the window
// closes or done is closed.
func (w *Window) Run(update, overlay func(), done <-chan struct{}) {
	for !rl.WindowShouldClose() {
		select {
		case <-done:
			w.log.Info("main loop cancelled")
			return
		default:
		}
		w.PollEvents()
		if update != nil {
			update()
		}

		rl.BeginDrawing()
		batch := w.pending
		w.pending = nil
		if len(batch) == 0 {
			if w.Idle != nil {
				w.Idle()
			} else {
				rl.ClearBackground(background)
			}
		}
		for _, cb := range batch {
			cb()
		}
		if overlay != nil {
			overlay()
		}
		rl.EndDrawing()
	}
}

// Close closes the window.
func (w *Window) Close() {
	rl.CloseWindow()
	w.log.Info("window closed")
}
