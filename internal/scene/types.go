package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// GeometryKind names a procedural mesh the renderer knows how to build.
type GeometryKind string

const (
	Torus     GeometryKind = "torus"
	Cone      GeometryKind = "cone"
	TorusKnot GeometryKind = "torus_knot"
)

// Geometry describes a mesh by kind and construction parameters. The renderer caches one mesh per distinct value.
// Torus: Radius, Tube, RadialSegments, TubularSegments.
// Cone: Radius, Height, RadialSegments.
// TorusKnot: Radius, Tube, TubularSegments, RadialSegments.
type Geometry struct {
	Kind            GeometryKind
	Radius          float32
	Tube            float32
	Height          float32
	RadialSegments  int
	TubularSegments int
}

// Material is the toon material every object shares. GradientPath points at the gradient map;
// until the renderer has it loaded the material draws with banded fallback shading.
type Material struct {
	Color        colorful.Color
	GradientPath string
}

// PointsMaterial draws the particle field.
type PointsMaterial struct {
	Color colorful.Color
	Size  float32
}

// Object is one stacked mesh. Position is fixed at composition; Rotation is rewritten every tick.
type Object struct {
	Name     string
	Geometry Geometry
	Material *Material
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     colorful.Color
	Intensity float32
	Position  mgl32.Vec3
}

// Camera is a perspective camera parented to a Rig. Position is relative to the rig.
// It looks down -Z with +Y up.
type Camera struct {
	Position mgl32.Vec3
	Fovy     float32
	Near     float32
	Far      float32
	Aspect   float32
}

// Rig is the parent transform carrying the parallax offset.
type Rig struct {
	Position mgl32.Vec3
	Camera   *Camera
}

// WorldPosition returns the camera position in world space (rig offset plus camera offset).
func (r *Rig) WorldPosition() mgl32.Vec3 {
	return r.Position.Add(r.Camera.Position)
}

// WorldTarget returns a point one unit in front of the camera in world space.
func (r *Rig) WorldTarget() mgl32.Vec3 {
	return r.WorldPosition().Add(mgl32.Vec3{0, 0, -1})
}

// ParticleField is the registered points node. Positions is a flat xyz buffer.
type ParticleField struct {
	Positions []float32
	Material  *PointsMaterial
}

// Count returns the number of particles in the current buffer.
func (p *ParticleField) Count() int { return len(p.Positions) / 3 }

// Point returns particle i.
func (p *ParticleField) Point(i int) mgl32.Vec3 {
	j := i * 3
	return mgl32.Vec3{p.Positions[j], p.Positions[j+1], p.Positions[j+2]}
}
