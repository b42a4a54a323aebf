package commands

import (
	"errors"
	"fmt"
	"strconv"

	"scroll-scene/internal/frame"
	"scroll-scene/internal/particles"
	"scroll-scene/internal/scene"
	"scroll-scene/internal/sceneconfig"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// SceneBindings are the components the scene knobs push values into.
type SceneBindings struct {
	Scene     *scene.Scene
	Particles *particles.Generator
	Frame     *frame.FrameContext
	// Defaults are the values "reset" restores.
	Defaults sceneconfig.Config
}

// BindScene adds the material color, particle count and light position knobs, and the
// "smoothing" and "reset" commands.
func BindScene(p *Panel, b SceneBindings) error {
	if b.Scene == nil || b.Particles == nil || b.Frame == nil {
		return errors.New("commands: scene bindings incomplete")
	}
	sc := b.Scene

	p.Add(NewColorKnob("color", "Material", sc.Palette.Color, sc.Palette.SetColor))
	p.Add(NewIntKnob("particles", "Particles",
		sceneconfig.ParticleCountMin, sceneconfig.ParticleCountMax, sceneconfig.ParticleCountStep,
		sc.Particles.Count,
		func(n int) error {
			buf, err := b.Particles.Generate(n)
			if err != nil {
				return err
			}
			return sc.SetParticles(buf)
		}))
	p.Add(NewFloatKnob("light.x", "Directional Light",
		sceneconfig.LightXMin, sceneconfig.LightXMax, sceneconfig.LightXStep,
		func() float32 { return sc.Light.Position.X() },
		sc.SetLightX))

	mode := b.Defaults.Parallax.Mode
	rate := b.Defaults.Parallax.Rate
	fs := NewFlagSet("smoothing")
	modeFlag := fs.String("mode", "", "linear, exponential or spring")
	rateFlag := fs.Float64("rate", 0, "convergence rate per second")
	p.Registry().Register("smoothing", "smoothing [-mode linear|exponential|spring] [-rate r]: rig smoothing", fs, func() error {
		nextMode, nextRate := mode, rate
		if *modeFlag != "" {
			nextMode = *modeFlag
		}
		if *rateFlag != 0 {
			nextRate = float32(*rateFlag)
		}
		*modeFlag, *rateFlag = "", 0
		s, err := frame.NewSmoother(nextMode, nextRate)
		if err != nil {
			return err
		}
		mode, rate = nextMode, nextRate
		b.Frame.Smoother = s
		p.echo(fmt.Sprintf("smoothing = %s rate %s", mode, strconv.FormatFloat(float64(rate), 'f', -1, 32)))
		return nil
	})

	defaults := b.Defaults.Clone()
	p.Registry().Register("reset", "reset: restore startup values", NewFlagSet("reset"), func() error {
		c, err := colorful.Hex(defaults.Material.Color)
		if err != nil {
			return err
		}
		sc.Palette.SetColor(c)
		if err := p.Set("particles", strconv.Itoa(defaults.Particles.Count)); err != nil {
			return err
		}
		sc.SetLightX(defaults.Light.X)
		s, err := frame.NewSmoother(defaults.Parallax.Mode, defaults.Parallax.Rate)
		if err != nil {
			return err
		}
		mode, rate = defaults.Parallax.Mode, defaults.Parallax.Rate
		b.Frame.Smoother = s
		p.echo("reset to startup values")
		return nil
	})
	return nil
}
