package commands

import (
	"fmt"
	"strings"
)

// Panel is the debug control surface: a set of knobs, each reachable as a console command
// ("particles 400", "color #00ffaa", "light.x -1.5"), plus any extra commands registered on Registry.
type Panel struct {
	reg    *Registry
	knobs  []Knob
	byName map[string]Knob
	echo   func(string)
}

// NewPanel returns a panel that reports results through echo (e.g. the console logger). echo may be nil.
func NewPanel(echo func(string)) *Panel {
	if echo == nil {
		echo = func(string) {}
	}
	p := &Panel{reg: NewRegistry(), byName: make(map[string]Knob), echo: echo}
	p.reg.Register("knobs", "knobs: list every knob and its value", NewFlagSet("knobs"), func() error {
		for _, line := range p.Describe() {
			p.echo(line)
		}
		return nil
	})
	p.reg.Register("help", "help: list commands", NewFlagSet("help"), func() error {
		for _, n := range p.reg.Names() {
			p.echo(p.reg.Usage(n))
		}
		return nil
	})
	return p
}

// Registry returns the underlying command registry for non-knob commands.
func (p *Panel) Registry() *Registry { return p.reg }

// Add registers k as a command of the same name. Without an argument the command prints the current value.
func (p *Panel) Add(k Knob) {
	p.knobs = append(p.knobs, k)
	p.byName[k.Name()] = k
	fs := NewFlagSet(k.Name())
	p.reg.Register(k.Name(), k.Name()+" <value>: "+k.Describe(), fs, func() error {
		if fs.NArg() == 0 {
			p.echo(k.Describe())
			return nil
		}
		if err := k.Set(strings.Join(fs.Args(), "")); err != nil {
			return err
		}
		p.echo(k.Name() + " = " + k.Value())
		return nil
	})
}

// Set validates and applies raw to the named knob.
func (p *Panel) Set(name, raw string) error {
	k, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("unknown knob: %s", name)
	}
	return k.Set(raw)
}

// Value returns the named knob's current value.
func (p *Panel) Value(name string) (string, bool) {
	k, ok := p.byName[name]
	if !ok {
		return "", false
	}
	return k.Value(), true
}

// Knobs returns the knobs in registration order.
func (p *Panel) Knobs() []Knob {
	out := make([]Knob, len(p.knobs))
	copy(out, p.knobs)
	return out
}

// Describe returns one line per knob, grouped under "[group]" headings in registration order.
func (p *Panel) Describe() []string {
	var lines []string
	group := ""
	for i, k := range p.knobs {
		if i == 0 || k.Group() != group {
			group = k.Group()
			lines = append(lines, "["+group+"]")
		}
		lines = append(lines, "  "+k.Describe())
	}
	return lines
}

// Exec parses and runs one console line. Errors are echoed and returned.
func (p *Panel) Exec(line string) error {
	args, ok := Parse(line)
	if !ok {
		return nil
	}
	if err := p.reg.Execute(args); err != nil {
		p.echo(err.Error())
		return err
	}
	return nil
}
