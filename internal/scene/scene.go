package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrAlreadyRegistered is returned when a node is added to the graph twice.
var ErrAlreadyRegistered = errors.New("scene: node already registered")

// lateralPattern is the repeating x offset pattern, scaled by Options.LateralScale.
var lateralPattern = [...]float32{1, 0, -1}

// geometries cycles when there are more objects than shapes.
var geometries = [...]Geometry{
	{Kind: Torus, Radius: 1, Tube: 0.4, RadialSegments: 16, TubularSegments: 60},
	{Kind: Cone, Radius: 1, Height: 2, RadialSegments: 32},
	{Kind: TorusKnot, Radius: 0.8, Tube: 0.35, TubularSegments: 100, RadialSegments: 16},
}

// Graph is the render scene membership: an ordered set of nodes, each registered once.
type Graph struct {
	nodes []any
	index map[any]struct{}
}

func newGraph() *Graph {
	return &Graph{index: make(map[any]struct{})}
}

// Add registers node. Nodes are compared by pointer identity.
func (g *Graph) Add(node any) error {
	if _, ok := g.index[node]; ok {
		return fmt.Errorf("%w: %T", ErrAlreadyRegistered, node)
	}
	g.index[node] = struct{}{}
	g.nodes = append(g.nodes, node)
	return nil
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Contains reports whether node is registered.
func (g *Graph) Contains(node any) bool {
	_, ok := g.index[node]
	return ok
}

// Options are the composition parameters. ObjectCount is fixed for the life of the scene.
type Options struct {
	ObjectCount  int
	Spacing      float32
	LateralScale float32

	Color        colorful.Color
	GradientPath string
	ParticleSize float32

	LightPosition  mgl32.Vec3
	LightIntensity float32

	CameraZ float32
	Fovy    float32
	Near    float32
	Far     float32
	Aspect  float32
}

// Scene holds the fixed object stack, the light, the camera rig and the particle field.
// Membership is set once by Compose; later updates mutate attributes only.
type Scene struct {
	Objects   []*Object
	Material  *Material
	Light     *DirectionalLight
	Rig       *Rig
	Camera    *Camera
	Particles *ParticleField
	Palette   *Palette
	Graph     *Graph
	Spacing   float32
}

// Compose builds the stack and registers every node with the graph exactly once.
// positions becomes the particle field's initial buffer.
func Compose(opts Options, positions []float32) (*Scene, error) {
	if opts.ObjectCount <= 0 {
		return nil, fmt.Errorf("scene: object count must be positive, got %d", opts.ObjectCount)
	}
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("scene: particle buffer length %d is not a multiple of 3", len(positions))
	}

	solid := &Material{GradientPath: opts.GradientPath}
	points := &PointsMaterial{Size: opts.ParticleSize}
	cam := &Camera{
		Position: mgl32.Vec3{0, 0, opts.CameraZ},
		Fovy:     opts.Fovy,
		Near:     opts.Near,
		Far:      opts.Far,
		Aspect:   opts.Aspect,
	}
	s := &Scene{
		Material: solid,
		Light: &DirectionalLight{
			Color:     colorful.Color{R: 1, G: 1, B: 1},
			Intensity: opts.LightIntensity,
			Position:  opts.LightPosition,
		},
		Rig:       &Rig{Camera: cam},
		Camera:    cam,
		Particles: &ParticleField{Positions: positions, Material: points},
		Palette:   NewPalette(solid, points, opts.Color),
		Graph:     newGraph(),
		Spacing:   opts.Spacing,
	}

	s.Objects = make([]*Object, opts.ObjectCount)
	for i := range s.Objects {
		geo := geometries[i%len(geometries)]
		s.Objects[i] = &Object{
			Name:     fmt.Sprintf("%s-%d", geo.Kind, i),
			Geometry: geo,
			Material: solid,
			Position: ObjectPosition(i, opts.Spacing, opts.LateralScale),
		}
	}

	if err := s.Graph.Add(s.Light); err != nil {
		return nil, err
	}
	if err := s.Graph.Add(s.Rig); err != nil {
		return nil, err
	}
	for _, o := range s.Objects {
		if err := s.Graph.Add(o); err != nil {
			return nil, err
		}
	}
	if err := s.Graph.Add(s.Particles); err != nil {
		return nil, err
	}
	return s, nil
}

// ObjectPosition returns the fixed position of object i: y steps down by spacing, x follows +1, 0, -1.
func ObjectPosition(i int, spacing, lateralScale float32) mgl32.Vec3 {
	return mgl32.Vec3{
		lateralPattern[i%len(lateralPattern)] * lateralScale,
		-spacing * float32(i),
		0,
	}
}

// SetParticles replaces the particle field's position buffer. The node itself stays registered.
func (s *Scene) SetParticles(positions []float32) error {
	if len(positions)%3 != 0 {
		return fmt.Errorf("scene: particle buffer length %d is not a multiple of 3", len(positions))
	}
	s.Particles.Positions = positions
	return nil
}

// SetLightX moves the light along X.
func (s *Scene) SetLightX(x float32) {
	s.Light.Position[0] = x
}

// Section returns the index of the object nearest the camera's scroll depth, clamped to the stack.
func (s *Scene) Section() int {
	if s.Spacing <= 0 || len(s.Objects) == 0 {
		return 0
	}
	i := int(-s.Camera.Position.Y()/s.Spacing + 0.5)
	if i < 0 {
		return 0
	}
	if i >= len(s.Objects) {
		return len(s.Objects) - 1
	}
	return i
}
