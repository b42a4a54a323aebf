package frame

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Smoother moves a position toward a target over one tick of length delta seconds.
type Smoother interface {
	Step(pos, target mgl32.Vec3, delta float32) mgl32.Vec3
}

// Linear applies pos += (target-pos) * Rate*delta. With Rate 1 this is the plain
// "ease by delta" formula. The factor is not clamped, so Rate*delta > 1 overshoots
// and Rate*delta > 2 diverges; that is kept as-is for Linear.
type Linear struct {
	Rate float32
}

// Step implements Smoother.
func (l Linear) Step(pos, target mgl32.Vec3, delta float32) mgl32.Vec3 {
	return pos.Add(target.Sub(pos).Mul(l.Rate * delta))
}

// Exponential applies pos += (target-pos) * (1 - exp(-Rate*delta)), which is frame-rate
// independent and never overshoots for any delta >= 0.
type Exponential struct {
	Rate float32
}

// Step implements Smoother.
func (e Exponential) Step(pos, target mgl32.Vec3, delta float32) mgl32.Vec3 {
	f := 1 - math32.Exp(-e.Rate*delta)
	return pos.Add(target.Sub(pos).Mul(f))
}

// Spring follows the target with a critically damped spring of angular frequency Rate.
// It keeps per-axis velocity between ticks.
type Spring struct {
	Rate float32
	vel  [3]float64
}

// Step implements Smoother.
func (s *Spring) Step(pos, target mgl32.Vec3, delta float32) mgl32.Vec3 {
	if delta <= 0 {
		return pos
	}
	sp := harmonica.NewSpring(float64(delta), float64(s.Rate), 1.0)
	var out mgl32.Vec3
	for i := range out {
		p, v := sp.Update(float64(pos[i]), s.vel[i], float64(target[i]))
		out[i] = float32(p)
		s.vel[i] = v
	}
	return out
}

// NewSmoother returns the smoother for mode ("linear", "exponential" or "spring").
func NewSmoother(mode string, rate float32) (Smoother, error) {
	if !(rate > 0) {
		return nil, fmt.Errorf("frame: smoothing rate must be positive, got %v", rate)
	}
	switch mode {
	case "linear":
		return Linear{Rate: rate}, nil
	case "exponential":
		return Exponential{Rate: rate}, nil
	case "spring":
		return &Spring{Rate: rate}, nil
	}
	return nil, fmt.Errorf("frame: unknown smoothing mode %q", mode)
}
