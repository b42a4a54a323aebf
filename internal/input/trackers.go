// Package input holds the latest observed viewport, scroll and pointer values.
// Mutators run when an event is applied; the frame pipeline only reads.
package input

// Viewport is the drawable size in pixels plus the device pixel ratio reported by the window.
type Viewport struct {
	width, height int
	pixelRatio    float32
}

// NewViewport returns a viewport of the given size with pixel ratio 1.
func NewViewport(width, height int) *Viewport {
	v := &Viewport{pixelRatio: 1}
	v.Resize(width, height, 1)
	return v
}

// Resize stores a new size. Non-positive sizes are ignored and reported as false.
// A non-positive pixel ratio is stored as 1.
func (v *Viewport) Resize(width, height int, pixelRatio float32) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if !(pixelRatio > 0) {
		pixelRatio = 1
	}
	v.width, v.height, v.pixelRatio = width, height, pixelRatio
	return true
}

// Size returns width and height in pixels.
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// Height returns the height in pixels.
func (v *Viewport) Height() int { return v.height }

// PixelRatio returns the device pixel ratio as reported, unclamped.
func (v *Viewport) PixelRatio() float32 { return v.pixelRatio }

// Aspect returns width/height, or 0 before the first valid resize.
func (v *Viewport) Aspect() float32 {
	if v.height == 0 {
		return 0
	}
	return float32(v.width) / float32(v.height)
}

// Scroll is the absolute vertical scroll offset in pixels.
type Scroll struct {
	offset float64
}

// Set stores the offset as delivered.
func (s *Scroll) Set(offset float64) { s.offset = offset }

// Offset returns the latest offset.
func (s *Scroll) Offset() float64 { return s.offset }

// Pointer is the pointer position relative to the viewport center, in [-0.5, 0.5] on both axes.
// Y keeps the screen convention (down is positive); the frame pipeline flips it once when it builds the rig target.
type Pointer struct {
	x, y float32
}

// Move normalizes absolute pixel coordinates against vp and stores them.
// The viewport used is the one current when the event is applied, not when the pipeline reads.
// With no valid viewport the pointer is left unchanged.
func (p *Pointer) Move(px, py float64, vp *Viewport) bool {
	w, h := vp.Size()
	if w <= 0 || h <= 0 {
		return false
	}
	p.x = clampHalf(float32(px/float64(w) - 0.5))
	p.y = clampHalf(float32(py/float64(h) - 0.5))
	return true
}

// Position returns the normalized pointer position.
func (p *Pointer) Position() (x, y float32) { return p.x, p.y }

func clampHalf(v float32) float32 {
	if v < -0.5 {
		return -0.5
	}
	if v > 0.5 {
		return 0.5
	}
	return v
}

// Trackers bundles the three trackers the frame pipeline reads.
type Trackers struct {
	Viewport *Viewport
	Scroll   *Scroll
	Pointer  *Pointer
}

// NewTrackers returns trackers for a viewport of the given size, scroll at the top and pointer centered.
func NewTrackers(width, height int) *Trackers {
	return &Trackers{
		Viewport: NewViewport(width, height),
		Scroll:   &Scroll{},
		Pointer:  &Pointer{},
	}
}
