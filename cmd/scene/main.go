package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"scroll-scene/internal/assets"
	"scroll-scene/internal/commands"
	"scroll-scene/internal/debug"
	"scroll-scene/internal/frame"
	"scroll-scene/internal/graphics"
	"scroll-scene/internal/input"
	"scroll-scene/internal/logger"
	"scroll-scene/internal/particles"
	"scroll-scene/internal/scene"
	"scroll-scene/internal/sceneconfig"
	"scroll-scene/internal/terminal"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func init() {
	// raylib calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", sceneconfig.ConfigPath, "scene config file (YAML)")
	initConfig := flag.Bool("init-config", false, "write the default config to -config and exit")
	verbose := flag.Bool("v", false, "log debug records")
	flag.Parse()

	if *initConfig {
		if err := sceneconfig.SaveTo(*configPath, sceneconfig.Default()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("wrote", *configPath)
		return
	}

	lines := logger.New()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := lines.Slog(level)

	cfg, err := sceneconfig.LoadFrom(*configPath, log)
	if err != nil {
		log.Error("config unreadable, using defaults", "path", *configPath, "err", err)
	}
	if err := run(cfg, lines, log); err != nil {
		log.Error("scene stopped", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg sceneconfig.Config, lines *logger.Logger, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := particles.NewGenerator(
		particles.LayoutBounds(cfg.Layout.Spacing, cfg.Layout.ObjectCount, cfg.Particles.HalfWidth),
		cfg.Particles.Seed)
	positions, err := gen.Generate(cfg.Particles.Count)
	if err != nil {
		return err
	}
	color, err := colorful.Hex(cfg.Material.Color)
	if err != nil {
		return fmt.Errorf("material color: %w", err)
	}

	queue := input.NewQueue()
	win := graphics.Open(graphics.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		TargetFPS: cfg.Window.TargetFPS,
		Sections:  cfg.Layout.ObjectCount,
	}, queue, log)
	defer win.Close()
	w, h := win.Size()

	sc, err := scene.Compose(scene.Options{
		ObjectCount:    cfg.Layout.ObjectCount,
		Spacing:        cfg.Layout.Spacing,
		LateralScale:   cfg.Layout.LateralScale,
		Color:          color,
		GradientPath:   cfg.Material.Gradient,
		ParticleSize:   cfg.Particles.Size,
		LightPosition:  mgl32.Vec3{cfg.Light.X, cfg.Light.Y, cfg.Light.Z},
		LightIntensity: cfg.Light.Intensity,
		CameraZ:        cfg.Camera.Z,
		Fovy:           cfg.Camera.Fovy,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
		Aspect:         float32(w) / float32(h),
	}, positions)
	if err != nil {
		return err
	}

	loader := assets.NewLoader(ctx, log)
	defer loader.Close()
	renderer := graphics.NewRenderer(loader, log)
	defer renderer.Unload()

	smoother, err := frame.NewSmoother(cfg.Parallax.Mode, cfg.Parallax.Rate)
	if err != nil {
		return err
	}
	fc := &frame.FrameContext{
		Clock:     frame.NewClock(frame.SystemTime{}),
		Input:     input.NewTrackers(w, h),
		Events:    queue,
		Scene:     sc,
		Renderer:  renderer,
		Smoother:  smoother,
		Amplitude: cfg.Parallax.Amplitude,
	}
	loop := frame.NewLoop(win, frame.NewPipeline(log), fc)

	dbg := debug.New(func() frame.Stats { return fc.Stats }, cfg.Layout.ObjectCount)
	dbg.SetShowFPS(cfg.Debug.ShowFPS)
	dbg.SetShowStats(cfg.Debug.ShowStats)

	panel := commands.NewPanel(lines.Log)
	if err := commands.BindScene(panel, commands.SceneBindings{
		Scene:     sc,
		Particles: gen,
		Frame:     fc,
		Defaults:  cfg,
	}); err != nil {
		return err
	}
	panel.Add(commands.NewBoolKnob("fps", "Debug", func() bool { return dbg.ShowFPS }, dbg.SetShowFPS))
	panel.Add(commands.NewBoolKnob("stats", "Debug", func() bool { return dbg.ShowStats }, dbg.SetShowStats))
	panel.Add(commands.NewBoolKnob("running", "Loop", loop.Running, func(on bool) {
		if !on {
			loop.Stop()
			return
		}
		if err := loop.Start(); err != nil {
			log.Error("loop restart failed", "err", err)
		}
	}))

	term := terminal.New(lines, panel)
	win.KeysBlocked = term.IsOpen
	win.Idle = loop.Redraw

	if err := loop.Start(); err != nil {
		return err
	}
	defer loop.Stop()

	win.Run(term.Update, func() {
		term.Draw()
		dbg.Draw()
	}, ctx.Done())
	return nil
}
