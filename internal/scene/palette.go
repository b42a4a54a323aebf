package scene

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the single source of truth for the scene color. It writes every change to both
// the solid material and the particle material.
type Palette struct {
	solid  *Material
	points *PointsMaterial
	color  colorful.Color
}

// NewPalette binds the two materials and applies c to both.
func NewPalette(solid *Material, points *PointsMaterial, c colorful.Color) *Palette {
	p := &Palette{solid: solid, points: points}
	p.SetColor(c)
	return p
}

// SetColor applies c to both materials.
func (p *Palette) SetColor(c colorful.Color) {
	p.color = c
	p.solid.Color = c
	p.points.Color = c
}

// SetHex parses a #rrggbb or #rgb string and applies it.
func (p *Palette) SetHex(s string) error {
	c, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("scene: color %q: %w", s, err)
	}
	p.SetColor(c)
	return nil
}

// Color returns the current color.
func (p *Palette) Color() colorful.Color { return p.color }

// Hex returns the current color as #rrggbb.
func (p *Palette) Hex() string { return p.color.Hex() }
