package primitives

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// View is the per-frame lighting state the toon shader reads.
type View struct {
	LightDir       mgl32.Vec3 // direction to the light, not normalized
	LightColor     colorful.Color
	LightIntensity float32
}
