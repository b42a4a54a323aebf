package frame

import (
	"errors"
	"fmt"
	"log/slog"

	"scroll-scene/internal/input"
	"scroll-scene/internal/logger"
	"scroll-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotReady is returned when a FrameContext is missing a collaborator the pipeline needs.
var ErrNotReady = errors.New("frame: context not ready")

const (
	// Rotation rates in radians per elapsed second, applied to every object.
	rotationRateX = 0.1
	rotationRateY = 0.12
	// maxPixelRatio caps the device pixel ratio handed to the renderer.
	maxPixelRatio = 2
)

// Renderer draws a scene. Both calls are assumed to succeed.
type Renderer interface {
	Render(s *scene.Scene, cam *scene.Camera)
	SetSize(width, height int, pixelRatio float32)
}

// Stats is what the last tick computed, for the debug overlay.
type Stats struct {
	Ticks   uint64
	Elapsed float64
	Delta   float64
	Scroll  float64
	Section int
	Rig     mgl32.Vec3
	Target  mgl32.Vec3
}

// FrameContext is all the state a tick reads and writes. It is owned by the loop goroutine.
type FrameContext struct {
	Clock    *Clock
	Input    *input.Trackers
	Events   *input.Queue // optional; drained at the start of each tick
	Scene    *scene.Scene
	Renderer Renderer
	Smoother Smoother
	// Amplitude scales the pointer offset into world units. Zero means 1.
	Amplitude float32
	Stats     Stats
}

// Validate reports ErrNotReady when a required field is nil.
func (fc *FrameContext) Validate() error {
	switch {
	case fc == nil:
		return fmt.Errorf("%w: nil context", ErrNotReady)
	case fc.Clock == nil:
		return fmt.Errorf("%w: no clock", ErrNotReady)
	case fc.Input == nil || fc.Input.Viewport == nil || fc.Input.Scroll == nil || fc.Input.Pointer == nil:
		return fmt.Errorf("%w: no input trackers", ErrNotReady)
	case fc.Scene == nil || fc.Scene.Camera == nil || fc.Scene.Rig == nil:
		return fmt.Errorf("%w: no scene or camera", ErrNotReady)
	case fc.Renderer == nil:
		return fmt.Errorf("%w: no renderer", ErrNotReady)
	case fc.Smoother == nil:
		return fmt.Errorf("%w: no smoother", ErrNotReady)
	}
	return nil
}

// Pipeline is the per-tick update. It holds no scene state of its own.
type Pipeline struct {
	log *slog.Logger
}

// NewPipeline returns a pipeline. A nil logger discards.
func NewPipeline(log *slog.Logger) *Pipeline {
	return &Pipeline{log: logger.OrDiscard(log)}
}

// Tick runs one frame: clock, pending input, camera depth, rig parallax, object rotation, render.
// A nil object in the scene is a programming error and panics.
func (p *Pipeline) Tick(fc *FrameContext) {
	elapsed, delta := fc.Clock.Tick()

	if fc.Events != nil && fc.Events.Len() > 0 {
		sum := fc.Events.Drain(fc.Input)
		if sum.Rejected > 0 {
			p.log.Debug("input events rejected", "count", sum.Rejected)
		}
		if sum.Resized {
			p.Resize(fc)
		}
	}

	sc := fc.Scene
	scroll := fc.Input.Scroll.Offset()
	sc.Camera.Position[1] = CameraDepth(scroll, fc.Input.Viewport.Height(), sc.Spacing)

	target := ParallaxTarget(fc.Input.Pointer, fc.Amplitude)
	target[2] = sc.Rig.Position.Z()
	sc.Rig.Position = fc.Smoother.Step(sc.Rig.Position, target, float32(delta))

	rx, ry := float32(elapsed*rotationRateX), float32(elapsed*rotationRateY)
	for i, o := range sc.Objects {
		if o == nil {
			panic(fmt.Sprintf("frame: scene object %d is nil", i))
		}
		o.Rotation[0] = rx
		o.Rotation[1] = ry
	}

	fc.Renderer.Render(sc, sc.Camera)

	fc.Stats = Stats{
		Ticks:   fc.Stats.Ticks + 1,
		Elapsed: elapsed,
		Delta:   delta,
		Scroll:  scroll,
		Section: sc.Section(),
		Rig:     sc.Rig.Position,
		Target:  target,
	}
}

// Resize updates the camera aspect from the viewport and resizes the renderer surface
// with the pixel ratio capped at 2.
func (p *Pipeline) Resize(fc *FrameContext) {
	w, h := fc.Input.Viewport.Size()
	if w <= 0 || h <= 0 {
		return
	}
	fc.Scene.Camera.Aspect = float32(w) / float32(h)
	fc.Renderer.SetSize(w, h, ClampPixelRatio(fc.Input.Viewport.PixelRatio()))
	p.log.Debug("viewport resized", "width", w, "height", h, "aspect", fc.Scene.Camera.Aspect)
}

// CameraDepth maps a scroll offset to camera y: one viewport height of scroll moves the camera down one spacing.
func CameraDepth(scroll float64, viewportHeight int, spacing float32) float32 {
	if viewportHeight <= 0 {
		return 0
	}
	return -float32(scroll/float64(viewportHeight)) * spacing
}

// ParallaxTarget returns the rig target for the pointer: x follows the pointer, y is flipped from screen to world.
func ParallaxTarget(ptr *input.Pointer, amplitude float32) mgl32.Vec3 {
	if amplitude == 0 {
		amplitude = 1
	}
	x, y := ptr.Position()
	return mgl32.Vec3{x * amplitude, -y * amplitude, 0}
}

// ClampPixelRatio returns min(ratio, 2).
func ClampPixelRatio(ratio float32) float32 {
	if ratio > maxPixelRatio {
		return maxPixelRatio
	}
	return ratio
}
