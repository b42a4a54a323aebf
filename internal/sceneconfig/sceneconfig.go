package sceneconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the scene config file, relative to the process working directory.
const ConfigPath = "config/scene.yaml"

// Knob bounds shared with the control surface. Values loaded from disk are clamped to them.
const (
	ParticleCountMin  = 0
	ParticleCountMax  = 5000
	ParticleCountStep = 10
	LightXMin         = -5
	LightXMax         = 5
	LightXStep        = 0.01
)

// Smoothing modes for the camera rig.
const (
	SmoothingLinear      = "linear"
	SmoothingExponential = "exponential"
	SmoothingSpring      = "spring"
)

// Window describes the raylib window.
type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

// Layout is the fixed stack of objects. Count is fixed for the lifetime of the process.
type Layout struct {
	ObjectCount  int     `yaml:"object_count"`
	Spacing      float32 `yaml:"spacing"`
	LateralScale float32 `yaml:"lateral_scale"`
}

// Camera holds the perspective camera parameters. Z is the camera's fixed forward offset inside the rig.
type Camera struct {
	Fovy float32 `yaml:"fovy"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	Z    float32 `yaml:"z"`
}

// Material is the shared toon material. Gradient is the gradient map texture path.
type Material struct {
	Color    string `yaml:"color"`
	Gradient string `yaml:"gradient,omitempty"`
}

// Particles configures the ambient particle field. Seed 0 uses a time-based seed.
type Particles struct {
	Count     int     `yaml:"count"`
	HalfWidth float32 `yaml:"half_width"`
	Size      float32 `yaml:"size"`
	Seed      int64   `yaml:"seed"`
}

// Light is the directional light. Only X is exposed as a knob.
type Light struct {
	X         float32 `yaml:"x"`
	Y         float32 `yaml:"y"`
	Z         float32 `yaml:"z"`
	Intensity float32 `yaml:"intensity"`
}

// Parallax configures the rig smoothing toward the pointer target.
type Parallax struct {
	Mode      string  `yaml:"mode"`
	Rate      float32 `yaml:"rate"`
	Amplitude float32 `yaml:"amplitude"`
}

// Debug holds overlay toggles.
type Debug struct {
	ShowFPS   bool `yaml:"show_fps"`
	ShowStats bool `yaml:"show_stats"`
}

// Config is the whole startup configuration.
type Config struct {
	Window    Window    `yaml:"window"`
	Layout    Layout    `yaml:"layout"`
	Camera    Camera    `yaml:"camera"`
	Material  Material  `yaml:"material"`
	Particles Particles `yaml:"particles"`
	Light     Light     `yaml:"light"`
	Parallax  Parallax  `yaml:"parallax"`
	Debug     Debug     `yaml:"debug"`
}

// Default returns the default scene: three objects four units apart, pink toon material, 200 particles.
func Default() Config {
	return Config{
		Window:    Window{Width: 1280, Height: 720, Title: "scroll scene", TargetFPS: 60},
		Layout:    Layout{ObjectCount: 3, Spacing: 4, LateralScale: 2},
		Camera:    Camera{Fovy: 35, Near: 0.1, Far: 100, Z: 6},
		Material:  Material{Color: "#ff80f4", Gradient: "assets/textures/gradients/5.png"},
		Particles: Particles{Count: 200, HalfWidth: 5, Size: 0.03},
		Light:     Light{X: 1, Y: 1, Z: 0, Intensity: 1},
		Parallax:  Parallax{Mode: SmoothingExponential, Rate: 1, Amplitude: 1},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		// Config holds only plain values; a failure here is a programming error.
		panic(fmt.Sprintf("sceneconfig: clone: %v", err))
	}
	return out
}

// Load reads the config from ConfigPath. See LoadFrom.
func Load(log *slog.Logger) (Config, error) {
	return LoadFrom(ConfigPath, log)
}

// LoadFrom reads the config at path over the defaults. A missing file returns Default() and does not create a file.
// A malformed file is an error. Out-of-range values are clamped by Validate and each adjustment is logged.
func LoadFrom(path string, log *slog.Logger) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("sceneconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("sceneconfig: parse %s: %w", path, err)
	}
	for _, adj := range cfg.Validate() {
		if log != nil {
			log.Warn("config value adjusted", "field", adj.Field, "from", adj.From, "to", adj.To)
		}
	}
	return cfg, nil
}

// Save writes the config to ConfigPath. See SaveTo.
func Save(c Config) error {
	return SaveTo(ConfigPath, c)
}

// SaveTo writes c as YAML to path, creating the directory if needed.
func SaveTo(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
