package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"scroll-scene/internal/sceneconfig"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Errors returned by knob Set methods, wrapped with the knob name.
var (
	// ErrOutOfRange reports a number outside the knob's [Min, Max].
	ErrOutOfRange = errors.New("value out of range")

	// ErrNotInteger reports input an IntKnob could not parse.
	ErrNotInteger = errors.New("value is not an integer")

	// ErrNotNumber reports input a FloatKnob could not parse, including NaN and infinities.
	ErrNotNumber = errors.New("value is not a number")

	// ErrBadColor reports input ParseColor rejected.
	ErrBadColor = errors.New("value is not a hex or rgb color")
)

// Knob is one named, typed control. Set validates raw before anything reaches the bound component.
type Knob interface {
	Name() string
	Group() string
	Set(raw string) error
	Value() string
	Describe() string
}

// ColorKnob accepts "#rrggbb", "#rgb", "rrggbb" or "r,g,b" with 0-255 channels.
type ColorKnob struct {
	name, group string
	get         func() colorful.Color
	apply       func(colorful.Color)
}

// NewColorKnob binds a color knob to get/apply.
func NewColorKnob(name, group string, get func() colorful.Color, apply func(colorful.Color)) *ColorKnob {
	return &ColorKnob{name: name, group: group, get: get, apply: apply}
}

// Name returns the console name of the knob.
func (k *ColorKnob) Name() string { return k.name }

// Group returns the help section the knob is listed under.
func (k *ColorKnob) Group() string { return k.group }

// Value returns the current color as "#rrggbb".
func (k *ColorKnob) Value() string { return k.get().Hex() }

// Describe returns one help line: name, value and accepted formats.
func (k *ColorKnob) Describe() string {
	return fmt.Sprintf("%s = %s (hex or r,g,b)", k.name, k.Value())
}

// Set parses raw and applies it.
func (k *ColorKnob) Set(raw string) error {
	c, err := ParseColor(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", k.name, err)
	}
	k.apply(c)
	return nil
}

// ParseColor parses a hex color (with or without '#') or an "r,g,b" triple of 0-255 integers.
func ParseColor(raw string) (colorful.Color, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrBadColor, raw)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, fmt.Errorf("%w: %q", ErrBadColor, raw)
			}
			ch[i] = uint8(v)
		}
		return colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}, nil
	}
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	c, err := colorful.Hex(raw)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrBadColor, raw)
	}
	return c, nil
}

// IntKnob accepts integers in [Min, Max] and snaps them to Step.
type IntKnob struct {
	name, group    string
	Min, Max, Step int
	get            func() int
	apply          func(int) error
}

// NewIntKnob binds an integer knob. apply may still fail (e.g. a component error); that error is returned from Set.
func NewIntKnob(name, group string, min, max, step int, get func() int, apply func(int) error) *IntKnob {
	return &IntKnob{name: name, group: group, Min: min, Max: max, Step: step, get: get, apply: apply}
}

// Name returns the console name of the knob.
func (k *IntKnob) Name() string { return k.name }

// Group returns the help section the knob is listed under.
func (k *IntKnob) Group() string { return k.group }

// Value returns the current value in base 10.
func (k *IntKnob) Value() string { return strconv.Itoa(k.get()) }

// Describe returns one help line: name, value, range and step.
func (k *IntKnob) Describe() string {
	return fmt.Sprintf("%s = %d [%d..%d step %d]", k.name, k.get(), k.Min, k.Max, k.Step)
}

// Set rejects non-integers and out-of-range values, snaps to Step, then applies.
func (k *IntKnob) Set(raw string) error {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w: %q", k.name, ErrNotInteger, raw)
	}
	if v < k.Min || v > k.Max {
		return fmt.Errorf("%s: %w: %d not in [%d, %d]", k.name, ErrOutOfRange, v, k.Min, k.Max)
	}
	return k.apply(sceneconfig.SnapInt(v, k.Min, k.Max, k.Step))
}

// FloatKnob accepts numbers in [Min, Max] and snaps them to Step.
type FloatKnob struct {
	name, group    string
	Min, Max, Step float32
	get            func() float32
	apply          func(float32)
}

// NewFloatKnob binds a float knob.
func NewFloatKnob(name, group string, min, max, step float32, get func() float32, apply func(float32)) *FloatKnob {
	return &FloatKnob{name: name, group: group, Min: min, Max: max, Step: step, get: get, apply: apply}
}

// Name returns the console name of the knob.
func (k *FloatKnob) Name() string { return k.name }

// Group returns the help section the knob is listed under.
func (k *FloatKnob) Group() string { return k.group }

// Value returns the current value in its shortest decimal form.
func (k *FloatKnob) Value() string { return strconv.FormatFloat(float64(k.get()), 'f', -1, 32) }

// Describe returns one help line: name, value, range and step.
func (k *FloatKnob) Describe() string {
	return fmt.Sprintf("%s = %s [%g..%g step %g]", k.name, k.Value(), k.Min, k.Max, k.Step)
}

// Set rejects non-numbers and out-of-range values, snaps to Step, then applies.
func (k *FloatKnob) Set(raw string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%s: %w: %q", k.name, ErrNotNumber, raw)
	}
	v := float32(f)
	if v < k.Min || v > k.Max {
		return fmt.Errorf("%s: %w: %v not in [%v, %v]", k.name, ErrOutOfRange, v, k.Min, k.Max)
	}
	k.apply(sceneconfig.SnapFloat(v, k.Min, k.Max, k.Step))
	return nil
}

// BoolKnob accepts on/off, true/false, 1/0.
type BoolKnob struct {
	name, group string
	get         func() bool
	apply       func(bool)
}

// NewBoolKnob binds a toggle.
func NewBoolKnob(name, group string, get func() bool, apply func(bool)) *BoolKnob {
	return &BoolKnob{name: name, group: group, get: get, apply: apply}
}

// Name returns the console name of the knob.
func (k *BoolKnob) Name() string { return k.name }

// Group returns the help section the knob is listed under.
func (k *BoolKnob) Group() string { return k.group }

// Value returns "true" or "false".
func (k *BoolKnob) Value() string { return strconv.FormatBool(k.get()) }

// Describe returns one help line: name and value.
func (k *BoolKnob) Describe() string { return fmt.Sprintf("%s = %s (on/off)", k.name, k.Value()) }

// Set parses raw as a toggle and applies it.
func (k *BoolKnob) Set(raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		k.apply(true)
	case "off", "false", "0", "no":
		k.apply(false)
	default:
		return fmt.Errorf("%s: expected on or off, got %q", k.name, raw)
	}
	return nil
}
