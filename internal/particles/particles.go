package particles

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidCount is returned for a negative particle count. The control surface rejects
// such values before they get here; seeing it means a caller skipped validation.
var ErrInvalidCount = errors.New("particles: count must be non-negative")

// Bounds is the axis-aligned volume particles are scattered in.
// X and Z span [-HalfWidth, HalfWidth]; Y spans [MinY, MaxY].
type Bounds struct {
	MinY, MaxY float32
	HalfWidth  float32
}

// LayoutBounds returns the volume covering a stack of objectCount objects spaced spacing apart
// (object i at y = -spacing*i) with half a spacing of margin above the first and below the last.
func LayoutBounds(spacing float32, objectCount int, halfWidth float32) Bounds {
	top := spacing * 0.5
	return Bounds{
		MaxY:      top,
		MinY:      top - spacing*float32(objectCount),
		HalfWidth: halfWidth,
	}
}

// Contains reports whether (x, y, z) lies inside b, edges included.
func (b Bounds) Contains(x, y, z float32) bool {
	return x >= -b.HalfWidth && x <= b.HalfWidth &&
		z >= -b.HalfWidth && z <= b.HalfWidth &&
		y >= b.MinY && y <= b.MaxY
}

// Generate returns a flat xyz buffer of length 3*count with every point uniform in b.
// count 0 yields an empty, non-nil buffer.
func Generate(count int, b Bounds, rng *rand.Rand) ([]float32, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	span := b.MaxY - b.MinY
	buf := make([]float32, count*3)
	for i := 0; i < count; i++ {
		j := i * 3
		buf[j] = (rng.Float32() - 0.5) * 2 * b.HalfWidth
		buf[j+1] = b.MaxY - rng.Float32()*span
		buf[j+2] = (rng.Float32() - 0.5) * 2 * b.HalfWidth
	}
	return buf, nil
}

// Generator regenerates the field for a fixed bounds and random stream.
type Generator struct {
	bounds Bounds
	rng    *rand.Rand
}

// NewGenerator returns a Generator for b. Seed 0 uses a time-based seed.
func NewGenerator(b Bounds, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{bounds: b, rng: rand.New(rand.NewSource(seed))}
}

// Bounds returns the generator's volume.
func (g *Generator) Bounds() Bounds { return g.bounds }

// Generate returns a fresh buffer for count particles. The previous buffer is not reused.
func (g *Generator) Generate(count int) ([]float32, error) {
	return Generate(count, g.bounds, g.rng)
}
