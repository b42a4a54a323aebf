package sceneconfig

import (
	"fmt"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Adjustment records one value Validate changed.
type Adjustment struct {
	Field string
	From  string
	To    string
}

// Validate clamps every field to a usable value in place and reports what changed.
// Invalid values fall back to the default for that field.
func (c *Config) Validate() []Adjustment {
	d := Default()
	var adj []Adjustment
	note := func(field string, from, to any) {
		adj = append(adj, Adjustment{Field: field, From: fmt.Sprint(from), To: fmt.Sprint(to)})
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		note("window", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height), fmt.Sprintf("%dx%d", d.Window.Width, d.Window.Height))
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Window.TargetFPS < 0 {
		note("window.target_fps", c.Window.TargetFPS, d.Window.TargetFPS)
		c.Window.TargetFPS = d.Window.TargetFPS
	}
	if c.Layout.ObjectCount <= 0 {
		note("layout.object_count", c.Layout.ObjectCount, d.Layout.ObjectCount)
		c.Layout.ObjectCount = d.Layout.ObjectCount
	}
	if !(c.Layout.Spacing > 0) {
		note("layout.spacing", c.Layout.Spacing, d.Layout.Spacing)
		c.Layout.Spacing = d.Layout.Spacing
	}
	if !(c.Camera.Fovy > 0 && c.Camera.Fovy < 180) {
		note("camera.fovy", c.Camera.Fovy, d.Camera.Fovy)
		c.Camera.Fovy = d.Camera.Fovy
	}
	if !(c.Camera.Near > 0) || c.Camera.Far <= c.Camera.Near {
		note("camera.near/far", fmt.Sprintf("%v/%v", c.Camera.Near, c.Camera.Far), fmt.Sprintf("%v/%v", d.Camera.Near, d.Camera.Far))
		c.Camera.Near, c.Camera.Far = d.Camera.Near, d.Camera.Far
	}
	if _, err := colorful.Hex(c.Material.Color); err != nil {
		note("material.color", c.Material.Color, d.Material.Color)
		c.Material.Color = d.Material.Color
	}
	if n := SnapInt(c.Particles.Count, ParticleCountMin, ParticleCountMax, ParticleCountStep); n != c.Particles.Count {
		note("particles.count", c.Particles.Count, n)
		c.Particles.Count = n
	}
	if !(c.Particles.HalfWidth > 0) {
		note("particles.half_width", c.Particles.HalfWidth, d.Particles.HalfWidth)
		c.Particles.HalfWidth = d.Particles.HalfWidth
	}
	if !(c.Particles.Size > 0) {
		note("particles.size", c.Particles.Size, d.Particles.Size)
		c.Particles.Size = d.Particles.Size
	}
	if x := SnapFloat(c.Light.X, LightXMin, LightXMax, LightXStep); x != c.Light.X {
		note("light.x", c.Light.X, x)
		c.Light.X = x
	}
	if c.Light.Intensity < 0 {
		note("light.intensity", c.Light.Intensity, d.Light.Intensity)
		c.Light.Intensity = d.Light.Intensity
	}
	switch c.Parallax.Mode {
	case SmoothingLinear, SmoothingExponential, SmoothingSpring:
	default:
		note("parallax.mode", c.Parallax.Mode, d.Parallax.Mode)
		c.Parallax.Mode = d.Parallax.Mode
	}
	if !(c.Parallax.Rate > 0) {
		note("parallax.rate", c.Parallax.Rate, d.Parallax.Rate)
		c.Parallax.Rate = d.Parallax.Rate
	}
	return adj
}

// SnapInt clamps v to [lo, hi] and rounds it to the nearest multiple of step above lo.
func SnapInt(v, lo, hi, step int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if step > 1 {
		v = lo + ((v-lo+step/2)/step)*step
		if v > hi {
			v -= step
		}
	}
	return v
}

// SnapFloat clamps v to [lo, hi] and rounds it to the step grid anchored at lo.
// NaN maps to lo.
func SnapFloat(v, lo, hi, step float32) float32 {
	if v != v {
		return lo
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if step > 0 {
		lo64, step64 := decimal(lo), decimal(step)
		n := math.Round((float64(v) - lo64) / step64)
		v = float32(lo64 + n*step64)
		if v > hi {
			v = hi
		}
	}
	return v
}

// decimal widens f to the float64 nearest its shortest decimal form, so 0.01 stays 0.01
// instead of 0.009999999776.
func decimal(f float32) float64 {
	d, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return d
}
