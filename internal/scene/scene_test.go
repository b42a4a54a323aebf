package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func testOptions(n int) Options {
	pink, _ := colorful.Hex("#ff80f4")
	return Options{
		ObjectCount:    n,
		Spacing:        4,
		LateralScale:   2,
		Color:          pink,
		ParticleSize:   0.03,
		LightPosition:  mgl32.Vec3{1, 1, 0},
		LightIntensity: 1,
		CameraZ:        6,
		Fovy:           35,
		Near:           0.1,
		Far:            100,
		Aspect:         800.0 / 600.0,
	}
}

func TestComposeLayout(t *testing.T) {
	s, err := Compose(testOptions(6), make([]float32, 30))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	wantX := []float32{2, 0, -2, 2, 0, -2}
	for i, o := range s.Objects {
		if o.Position.Y() != -4*float32(i) {
			t.Errorf("object %d y = %v, want %v", i, o.Position.Y(), -4*float32(i))
		}
		if o.Position.X() != wantX[i] {
			t.Errorf("object %d x = %v, want %v", i, o.Position.X(), wantX[i])
		}
		if o.Geometry != geometries[i%3] {
			t.Errorf("object %d geometry = %+v", i, o.Geometry)
		}
	}
}

func TestComposeSharesOneMaterial(t *testing.T) {
	s, err := Compose(testOptions(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, o := range s.Objects {
		if o.Material != s.Material {
			t.Errorf("object %d has its own material", i)
		}
	}
}

func TestComposeRegistersOnce(t *testing.T) {
	s, err := Compose(testOptions(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	// light + rig + 3 objects + particles
	if s.Graph.Len() != 6 {
		t.Errorf("Graph.Len() = %d, want 6", s.Graph.Len())
	}
	if err := s.Graph.Add(s.Objects[0]); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second Add() error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestComposeRejectsBadInput(t *testing.T) {
	if _, err := Compose(testOptions(0), nil); err == nil {
		t.Error("Compose() with zero objects should fail")
	}
	if _, err := Compose(testOptions(3), make([]float32, 4)); err == nil {
		t.Error("Compose() with a ragged particle buffer should fail")
	}
}

func TestSetParticlesKeepsNode(t *testing.T) {
	s, err := Compose(testOptions(3), make([]float32, 600))
	if err != nil {
		t.Fatal(err)
	}
	node := s.Particles
	before := s.Graph.Len()

	if err := s.SetParticles(make([]float32, 150)); err != nil {
		t.Fatalf("SetParticles() error = %v", err)
	}
	if s.Particles != node || !s.Graph.Contains(node) {
		t.Error("SetParticles() replaced the registered node")
	}
	if s.Graph.Len() != before {
		t.Errorf("Graph.Len() = %d, want %d", s.Graph.Len(), before)
	}
	if s.Particles.Count() != 50 || len(s.Particles.Positions) != 150 {
		t.Errorf("Count() = %d, len = %d", s.Particles.Count(), len(s.Particles.Positions))
	}
}

func TestPaletteUpdatesBothMaterials(t *testing.T) {
	s, err := Compose(testOptions(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Material.Color != s.Particles.Material.Color {
		t.Fatal("materials differ after Compose")
	}
	if err := s.Palette.SetHex("#00ffaa"); err != nil {
		t.Fatalf("SetHex() error = %v", err)
	}
	if s.Material.Color != s.Particles.Material.Color {
		t.Errorf("solid %v != points %v", s.Material.Color, s.Particles.Material.Color)
	}
	if s.Palette.Hex() != "#00ffaa" {
		t.Errorf("Hex() = %q", s.Palette.Hex())
	}
	if err := s.Palette.SetHex("nope"); err == nil {
		t.Error("SetHex(nope) should fail")
	}
	if s.Palette.Hex() != "#00ffaa" {
		t.Error("failed SetHex changed the color")
	}
}

func TestRigWorldPosition(t *testing.T) {
	s, err := Compose(testOptions(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Rig.Position = mgl32.Vec3{0.25, -0.1, 0}
	s.Camera.Position[1] = -4
	got := s.Rig.WorldPosition()
	want := mgl32.Vec3{0.25, -4.1, 6}
	if !got.ApproxEqual(want) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}
	if tgt := s.Rig.WorldTarget(); !tgt.ApproxEqual(want.Add(mgl32.Vec3{0, 0, -1})) {
		t.Errorf("WorldTarget() = %v", tgt)
	}
}

func TestSection(t *testing.T) {
	s, err := Compose(testOptions(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		y    float32
		want int
	}{{0, 0}, {-1.9, 0}, {-2.1, 1}, {-8, 2}, {-30, 2}, {5, 0}} {
		s.Camera.Position[1] = tt.y
		if got := s.Section(); got != tt.want {
			t.Errorf("Section() at y=%v = %d, want %d", tt.y, got, tt.want)
		}
	}
}
