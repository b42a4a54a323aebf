package commands

import (
	"errors"
	"strings"
	"testing"
	"time"

	"scroll-scene/internal/frame"
	"scroll-scene/internal/input"
	"scroll-scene/internal/particles"
	"scroll-scene/internal/scene"
	"scroll-scene/internal/sceneconfig"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestParse(t *testing.T) {
	if _, ok := Parse("   "); ok {
		t.Error("Parse(blank) ok = true")
	}
	args, ok := Parse("particles  400 ")
	if !ok || len(args) != 2 || args[0] != "particles" || args[1] != "400" {
		t.Errorf("Parse() = %q, %v", args, ok)
	}
}

func TestExecuteUnknownAndMissing(t *testing.T) {
	r := NewRegistry()
	if err := r.Execute(nil); err == nil {
		t.Error("Execute(nil) should fail")
	}
	if err := r.Execute([]string{"nope"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("Execute(nope) = %v", err)
	}
}

func TestExecuteNegativeNumberIsPositional(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("light.x")
	var got []string
	r.Register("light.x", "", fs, func() error {
		got = fs.Args()
		return nil
	})
	if err := r.Execute([]string{"light.x", "-2.5"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) != 1 || got[0] != "-2.5" {
		t.Errorf("Args() = %q, want [-2.5]", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"#ff80f4", "#ff80f4", false},
		{"ff80f4", "#ff80f4", false},
		{"#fff", "#ffffff", false},
		{"255,128,244", "#ff80f4", false},
		{"255, 0, 0", "#ff0000", false},
		{"256,0,0", "", true},
		{"1,2", "", true},
		{"pink", "", true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if tt.err {
			if !errors.Is(err, ErrBadColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrBadColor", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if c.Hex() != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
		}
	}
}

func TestIntKnobValidation(t *testing.T) {
	var applied []int
	k := NewIntKnob("particles", "Particles", 0, 5000, 10,
		func() int { return 0 },
		func(n int) error { applied = append(applied, n); return nil })

	tests := []struct {
		raw string
		err error
	}{
		{"2.5", ErrNotInteger},
		{"abc", ErrNotInteger},
		{"-10", ErrOutOfRange},
		{"5001", ErrOutOfRange},
	}
	for _, tt := range tests {
		if err := k.Set(tt.raw); !errors.Is(err, tt.err) {
			t.Errorf("Set(%q) = %v, want %v", tt.raw, err, tt.err)
		}
	}
	if len(applied) != 0 {
		t.Fatalf("invalid values reached the component: %v", applied)
	}
	if err := k.Set("347"); err != nil {
		t.Fatalf("Set(347) error = %v", err)
	}
	if len(applied) != 1 || applied[0] != 350 {
		t.Errorf("applied = %v, want [350]", applied)
	}
}

func TestFloatKnobValidation(t *testing.T) {
	var got float32 = 99
	k := NewFloatKnob("light.x", "Directional Light", -5, 5, 0.01,
		func() float32 { return got },
		func(v float32) { got = v })

	if err := k.Set("6"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Set(6) = %v, want ErrOutOfRange", err)
	}
	if err := k.Set("NaN"); !errors.Is(err, ErrNotNumber) {
		t.Errorf("Set(NaN) = %v, want ErrNotNumber", err)
	}
	if got != 99 {
		t.Fatalf("invalid value reached the component: %v", got)
	}
	if err := k.Set("-1.234"); err != nil {
		t.Fatalf("Set(-1.234) error = %v", err)
	}
	if d := got + 1.23; d > 1e-5 || d < -1e-5 {
		t.Errorf("got = %v, want -1.23", got)
	}
	if err := k.Set("0.120005"); err != nil {
		t.Fatalf("Set(0.120005) error = %v", err)
	}
	if v := k.Value(); v != "0.12" {
		t.Errorf("Value() = %q after an off-grid set, want \"0.12\"", v)
	}
}

func TestBoolKnob(t *testing.T) {
	on := false
	k := NewBoolKnob("fps", "Debug", func() bool { return on }, func(v bool) { on = v })
	if err := k.Set("on"); err != nil || !on {
		t.Errorf("Set(on) = %v, on = %v", err, on)
	}
	if err := k.Set("maybe"); err == nil {
		t.Error("Set(maybe) should fail")
	}
	if err := k.Set("0"); err != nil || on {
		t.Errorf("Set(0) = %v, on = %v", err, on)
	}
}

type nopRenderer struct{}

func (nopRenderer) Render(*scene.Scene, *scene.Camera) {}
func (nopRenderer) SetSize(int, int, float32)           {}

func newBoundPanel(t *testing.T) (*Panel, *scene.Scene, *frame.FrameContext, *[]string) {
	t.Helper()
	cfg := sceneconfig.Default()
	gen := particles.NewGenerator(particles.LayoutBounds(cfg.Layout.Spacing, cfg.Layout.ObjectCount, cfg.Particles.HalfWidth), 1)
	buf, err := gen.Generate(cfg.Particles.Count)
	if err != nil {
		t.Fatal(err)
	}
	pink, _ := colorful.Hex(cfg.Material.Color)
	sc, err := scene.Compose(scene.Options{
		ObjectCount:   cfg.Layout.ObjectCount,
		Spacing:       cfg.Layout.Spacing,
		LateralScale:  cfg.Layout.LateralScale,
		Color:         pink,
		LightPosition: mgl32.Vec3{cfg.Light.X, cfg.Light.Y, cfg.Light.Z},
		CameraZ:       cfg.Camera.Z,
	}, buf)
	if err != nil {
		t.Fatal(err)
	}
	fc := &frame.FrameContext{
		Clock:    frame.NewClock(frame.NewMockTimeSource(time.Unix(0, 0))),
		Input:    input.NewTrackers(800, 600),
		Scene:    sc,
		Renderer: nopRenderer{},
		Smoother: frame.Exponential{Rate: 1},
	}
	var echoed []string
	p := NewPanel(func(s string) { echoed = append(echoed, s) })
	if err := BindScene(p, SceneBindings{Scene: sc, Particles: gen, Frame: fc, Defaults: cfg}); err != nil {
		t.Fatalf("BindScene() error = %v", err)
	}
	return p, sc, fc, &echoed
}

func TestColorKnobUpdatesBothMaterials(t *testing.T) {
	p, sc, _, _ := newBoundPanel(t)
	if err := p.Exec("color #00ffaa"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if sc.Material.Color != sc.Particles.Material.Color {
		t.Errorf("solid %v != points %v", sc.Material.Color, sc.Particles.Material.Color)
	}
	if sc.Material.Color.Hex() != "#00ffaa" {
		t.Errorf("color = %s", sc.Material.Color.Hex())
	}
}

func TestParticlesKnobRegeneratesField(t *testing.T) {
	p, sc, _, _ := newBoundPanel(t)
	node := sc.Particles
	if err := p.Exec("particles 500"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if sc.Particles != node {
		t.Error("particle node replaced")
	}
	if len(sc.Particles.Positions) != 500*3 {
		t.Errorf("len = %d, want %d", len(sc.Particles.Positions), 500*3)
	}
	if err := p.Exec("particles 2.5"); !errors.Is(err, ErrNotInteger) {
		t.Errorf("Exec(particles 2.5) = %v, want ErrNotInteger", err)
	}
	if err := p.Exec("particles -10"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Exec(particles -10) = %v, want ErrOutOfRange", err)
	}
	if sc.Particles.Count() != 500 {
		t.Errorf("Count() = %d after rejected values, want 500", sc.Particles.Count())
	}
}

func TestLightKnob(t *testing.T) {
	p, sc, _, _ := newBoundPanel(t)
	if err := p.Exec("light.x -2.5"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if x := sc.Light.Position.X(); x != -2.5 {
		t.Errorf("light x = %v, want -2.5", x)
	}
	if v, _ := p.Value("light.x"); v != "-2.5" {
		t.Errorf("Value(light.x) = %q", v)
	}
}

func TestSmoothingCommand(t *testing.T) {
	p, _, fc, _ := newBoundPanel(t)
	if err := p.Exec("smoothing -mode spring -rate 3"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	s, ok := fc.Smoother.(*frame.Spring)
	if !ok || s.Rate != 3 {
		t.Errorf("Smoother = %#v, want spring rate 3", fc.Smoother)
	}
	if err := p.Exec("smoothing -mode linear"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if l, ok := fc.Smoother.(frame.Linear); !ok || l.Rate != 3 {
		t.Errorf("Smoother = %#v, want linear keeping rate 3", fc.Smoother)
	}
	if err := p.Exec("smoothing -mode wobbly"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestResetRestoresStartup(t *testing.T) {
	p, sc, fc, _ := newBoundPanel(t)
	for _, line := range []string{"color #000000", "particles 20", "light.x 3", "smoothing -mode linear"} {
		if err := p.Exec(line); err != nil {
			t.Fatalf("Exec(%q) error = %v", line, err)
		}
	}
	if err := p.Exec("reset"); err != nil {
		t.Fatalf("reset error = %v", err)
	}
	if sc.Palette.Hex() != "#ff80f4" || sc.Particles.Material.Color.Hex() != "#ff80f4" {
		t.Errorf("color = %s", sc.Palette.Hex())
	}
	if sc.Particles.Count() != 200 {
		t.Errorf("particles = %d, want 200", sc.Particles.Count())
	}
	if sc.Light.Position.X() != 1 {
		t.Errorf("light x = %v, want 1", sc.Light.Position.X())
	}
	if _, ok := fc.Smoother.(frame.Exponential); !ok {
		t.Errorf("Smoother = %T, want Exponential", fc.Smoother)
	}
}

func TestKnobsListing(t *testing.T) {
	p, _, _, echoed := newBoundPanel(t)
	if err := p.Exec("knobs"); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(*echoed, "\n")
	for _, want := range []string{"[Material]", "[Particles]", "[Directional Light]", "particles = 200", "color = #ff80f4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("knobs output missing %q:\n%s", want, joined)
		}
	}
}

func TestKnobWithoutValuePrintsIt(t *testing.T) {
	p, _, _, echoed := newBoundPanel(t)
	if err := p.Exec("particles"); err != nil {
		t.Fatal(err)
	}
	if len(*echoed) != 1 || !strings.HasPrefix((*echoed)[0], "particles = 200") {
		t.Errorf("echoed = %q", *echoed)
	}
}

func TestExecEchoesErrors(t *testing.T) {
	p, _, _, echoed := newBoundPanel(t)
	if err := p.Exec("teleport"); err == nil {
		t.Fatal("Exec(teleport) should fail")
	}
	if len(*echoed) != 1 || !strings.Contains((*echoed)[0], "unknown command") {
		t.Errorf("echoed = %q", *echoed)
	}
}
