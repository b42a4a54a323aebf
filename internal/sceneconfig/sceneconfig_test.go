package sceneconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFrom() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("layout:\n  object_count: 5\nmaterial:\n  color: \"#00ff00\"\nparallax:\n  mode: spring\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path, nil)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Layout.ObjectCount != 5 {
		t.Errorf("ObjectCount = %d, want 5", cfg.Layout.ObjectCount)
	}
	if cfg.Layout.Spacing != 4 {
		t.Errorf("Spacing = %v, want default 4", cfg.Layout.Spacing)
	}
	if cfg.Material.Color != "#00ff00" {
		t.Errorf("Color = %q", cfg.Material.Color)
	}
	if cfg.Parallax.Mode != SmoothingSpring {
		t.Errorf("Mode = %q", cfg.Parallax.Mode)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("layout: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path, nil)
	if err == nil {
		t.Fatal("LoadFrom() expected error for malformed YAML")
	}
	if cfg != Default() {
		t.Error("LoadFrom() should return defaults alongside the error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "scene.yaml")
	want := Default()
	want.Particles.Count = 400
	want.Light.X = -2.5
	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	got, err := LoadFrom(path, nil)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		check func(Config) bool
	}{
		{"negative particles", func(c *Config) { c.Particles.Count = -3 }, func(c Config) bool { return c.Particles.Count == 0 }},
		{"too many particles", func(c *Config) { c.Particles.Count = 9000 }, func(c Config) bool { return c.Particles.Count == ParticleCountMax }},
		{"particle step", func(c *Config) { c.Particles.Count = 207 }, func(c Config) bool { return c.Particles.Count == 210 }},
		{"light out of range", func(c *Config) { c.Light.X = 12 }, func(c Config) bool { return c.Light.X == LightXMax }},
		{"bad color", func(c *Config) { c.Material.Color = "pink" }, func(c Config) bool { return c.Material.Color == "#ff80f4" }},
		{"bad mode", func(c *Config) { c.Parallax.Mode = "bouncy" }, func(c Config) bool { return c.Parallax.Mode == SmoothingExponential }},
		{"zero objects", func(c *Config) { c.Layout.ObjectCount = 0 }, func(c Config) bool { return c.Layout.ObjectCount == 3 }},
		{"near past far", func(c *Config) { c.Camera.Near = 200 }, func(c Config) bool { return c.Camera.Near == 0.1 && c.Camera.Far == 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.edit(&c)
			adj := c.Validate()
			if len(adj) != 1 {
				t.Errorf("Validate() adjustments = %+v, want 1", adj)
			}
			if !tt.check(c) {
				t.Errorf("Validate() left %+v", c)
			}
		})
	}
}

func TestValidateDefaultsUntouched(t *testing.T) {
	c := Default()
	if adj := c.Validate(); len(adj) != 0 {
		t.Errorf("Validate(Default()) = %+v, want none", adj)
	}
}

func TestSnapFloat(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{1, 1},
		{1.234, 1.23},
		{-7, -5},
		{4.999, 5},
		{0.120005, 0.12},
		{-2.5, -2.5},
		{3.0004, 3},
	}
	for _, tt := range tests {
		got := SnapFloat(tt.in, LightXMin, LightXMax, LightXStep)
		if got != tt.want {
			t.Errorf("SnapFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Material.Color = "#000000"
	b.Layout.ObjectCount = 9
	if a.Material.Color != "#ff80f4" || a.Layout.ObjectCount != 3 {
		t.Errorf("Clone shares state with the original: %+v", a)
	}
	if b.Particles != a.Particles {
		t.Errorf("Clone() particles = %+v, want %+v", b.Particles, a.Particles)
	}
}
