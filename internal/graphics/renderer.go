package graphics

import (
	"log/slog"

	"scroll-scene/internal/assets"
	"scroll-scene/internal/logger"
	"scroll-scene/internal/primitives"
	"scroll-scene/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// background is the page color behind the scene.
var background = rl.NewColor(0x1e, 0x1a, 0x20, 0xff)

// Renderer draws a scene.Scene with raylib. It implements frame.Renderer.
// The gradient map is decoded in the background and uploaded on the first Render after it arrives.
type Renderer struct {
	reg       *primitives.Registry
	loader    *assets.Loader
	log       *slog.Logger
	requested string
	width     int
	height    int
	ratio     float32
}

// NewRenderer returns a renderer that loads textures through loader.
func NewRenderer(loader *assets.Loader, log *slog.Logger) *Renderer {
	return &Renderer{
		reg:    primitives.NewRegistry(),
		loader: loader,
		log:    logger.OrDiscard(log),
		ratio:  1,
	}
}

// SetSize records the drawable size. raylib resizes its own framebuffer; the ratio is the clamped
// device pixel ratio the window reports.
func (r *Renderer) SetSize(width, height int, pixelRatio float32) {
	r.width, r.height, r.ratio = width, height, pixelRatio
	r.log.Debug("renderer resized", "w", width, "h", height, "ratio", pixelRatio)
}

// Render clears the frame and draws the objects and the particle field from cam's point of view.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera) {
	r.syncTextures(s.Material)

	rl.ClearBackground(background)
	eye := s.Rig.WorldPosition()
	target := s.Rig.WorldTarget()
	camera := rl.Camera3D{
		Position:   rl.NewVector3(eye[0], eye[1], eye[2]),
		Target:     rl.NewVector3(target[0], target[1], target[2]),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(camera)
	if cam.Aspect > 0 && cam.Near > 0 && cam.Far > cam.Near {
		rl.SetMatrixProjection(rl.MatrixPerspective(cam.Fovy*rl.Deg2rad, cam.Aspect, cam.Near, cam.Far))
	}
	r.reg.SetView(primitives.View{
		LightDir:       s.Light.Position,
		LightColor:     s.Light.Color,
		LightIntensity: s.Light.Intensity,
	})
	for _, o := range s.Objects {
		r.reg.Draw(o, s.Material.Color)
	}
	drawParticles(s.Particles)
	rl.EndMode3D()
}

// syncTextures starts the gradient load once per path and uploads it when it has decoded.
func (r *Renderer) syncTextures(m *scene.Material) {
	if r.loader == nil {
		return
	}
	if m.GradientPath != "" && m.GradientPath != r.requested {
		r.requested = m.GradientPath
		r.loader.Load(m.GradientPath)
	}
	for _, res := range r.loader.Poll() {
		if res.Err != nil || res.Path != r.requested {
			continue
		}
		ramp := assets.GradientRamp(res.Image)
		if ramp == nil {
			continue
		}
		r.reg.SetGradient(ramp)
		r.log.Info("gradient map ready", "path", res.Path, "bands", ramp.Bounds().Dx())
	}
}

func drawParticles(p *scene.ParticleField) {
	if p == nil || p.Count() == 0 {
		return
	}
	size := p.Material.Size
	if size <= 0 {
		size = 0.03
	}
	c := toColor(p.Material.Color)
	for i := 0; i < p.Count(); i++ {
		pt := p.Point(i)
		rl.DrawCube(rl.NewVector3(pt[0], pt[1], pt[2]), size, size, size, c)
	}
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 0xff)
}

// Unload frees GPU resources.
func (r *Renderer) Unload() {
	r.reg.Unload()
}
