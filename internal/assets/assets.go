// Package assets decodes textures off the render loop. The loop starts a load, keeps drawing,
// and picks up finished images with Poll; GPU upload stays on the loop goroutine.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"scroll-scene/internal/logger"
)

// ErrClosed is returned by handles whose load was cancelled by Close.
var ErrClosed = errors.New("assets: loader closed")

const resultBuffer = 16

// Result is one finished load as seen by Poll.
type Result struct {
	Path  string
	Image image.Image
	Err   error
}

// Handle is a pending load. It resolves exactly once.
type Handle struct {
	Path string
	done chan struct{}
	img  image.Image
	err  error
}

// Done is closed once the handle has resolved.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Result returns the outcome and whether the load has finished. It never blocks.
func (h *Handle) Result() (Result, bool) {
	select {
	case <-h.done:
		return Result{Path: h.Path, Image: h.img, Err: h.err}, true
	default:
		return Result{Path: h.Path}, false
	}
}

// Wait blocks until the handle resolves or ctx ends.
func (h *Handle) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-h.done:
		return h.img, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Handle) resolve(img image.Image, err error) {
	h.img, h.err = img, err
	close(h.done)
}

// Loader runs one goroutine per Load and hands results back through a buffered channel.
type Loader struct {
	ctx     context.Context
	cancel  context.CancelFunc
	log     *slog.Logger
	results chan Result
	wg      sync.WaitGroup
	decode  func(path string) (image.Image, error)
}

// NewLoader returns a loader whose pending loads end when ctx is cancelled or Close is called.
func NewLoader(ctx context.Context, log *slog.Logger) *Loader {
	ctx, cancel := context.WithCancel(ctx)
	return &Loader{
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.OrDiscard(log),
		results: make(chan Result, resultBuffer),
		decode:  Decode,
	}
}

// Load starts decoding path in the background and returns immediately.
func (l *Loader) Load(path string) *Handle {
	h := &Handle{Path: path, done: make(chan struct{})}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.ctx.Err(); err != nil {
			h.resolve(nil, ErrClosed)
			return
		}
		img, err := l.decode(path)
		if err != nil {
			l.log.Warn("texture load failed, material stays untextured", "path", path, "err", err)
		} else {
			b := img.Bounds()
			l.log.Debug("texture decoded", "path", path, "w", b.Dx(), "h", b.Dy())
		}
		select {
		case l.results <- Result{Path: path, Image: img, Err: err}:
			h.resolve(img, err)
		case <-l.ctx.Done():
			h.resolve(nil, ErrClosed)
		}
	}()
	return h
}

// Poll returns every result that finished since the last call without blocking.
func (l *Loader) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Close cancels pending loads and waits for their goroutines to exit.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}

// Decode reads and decodes an image file. JPEG, PNG, BMP and WebP are supported.
func Decode(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// GradientRamp flattens a toon gradient map to a single row, one texel per band, using nearest
// sampling so band edges stay hard. A nil or empty image returns nil.
func GradientRamp(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	return transform.Resize(img, b.Dx(), 1, transform.NearestNeighbor)
}
