package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig wraps every validation failure returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid field config")

// Integrator selects the spring used to move energy toward its target.
type Integrator string

const (
	// IntegratorDecay adds stiffness*dt to a velocity that decays by Damping
	// every step, then adds the velocity to energy.
	IntegratorDecay Integrator = "decay"
	// IntegratorHarmonic uses a critically damped harmonica spring.
	IntegratorHarmonic Integrator = "harmonic"
)

// Range is an inclusive [Min, Max] interval used for per-line jitter.
type Range struct {
	Min float64
	Max float64
}

func (r Range) at(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Config holds the immutable tunables of a field.
type Config struct {
	Lines int

	BaseAmplitude  float64
	BaseFrequency  float64
	BaseSpeed      float64
	HoverAmplitude float64
	HoverRadius    float64

	Coupling   float64
	Stiffness  float64
	Damping    float64
	Integrator Integrator

	// SequentialCoupling updates lines top to bottom in place, so each line
	// sees its upper neighbour's energy from the current step. Otherwise
	// every line reads the previous step's energies.
	SequentialCoupling bool

	Samples  int
	Overscan float64

	BreatheAmplitude float64
	BreatheRate      float64
	SpeedBoost       float64

	HorizontalWeight float64
	FalloffExponent  float64
	BandPadding      float64

	MaxDelta float64

	FrequencyJitter Range
	SpeedJitter     Range
	PhaseSpread     float64
	Seed            uint64

	Modifiers []Modifier
}

// DefaultConfig returns the tunables of the classic three-line animation.
func DefaultConfig() Config {
	return Config{
		Lines:            3,
		BaseAmplitude:    5,
		BaseFrequency:    0.010,
		BaseSpeed:        0.30,
		HoverAmplitude:   85,
		HoverRadius:      190,
		Coupling:         0.30,
		Stiffness:        8.0,
		Damping:          0.86,
		Integrator:       IntegratorDecay,
		Samples:          240,
		BreatheAmplitude: 0.35,
		BreatheRate:      0.55,
		SpeedBoost:       0.9,
		HorizontalWeight: 0.35,
		FalloffExponent:  2,
		BandPadding:      0.30,
		MaxDelta:         0.033,
		FrequencyJitter:  Range{Min: 0.85, Max: 1.30},
		SpeedJitter:      Range{Min: 1, Max: 1},
		PhaseSpread:      0.9,
		Seed:             1,
		Modifiers:        []Modifier{DefaultLocalBoost()},
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Lines < 1 {
		bad("line count must be at least 1, got %d", c.Lines)
	}
	if c.Samples < 1 {
		bad("sample count must be at least 1, got %d", c.Samples)
	}
	if !finite(c.BaseAmplitude) || c.BaseAmplitude < 0 {
		bad("base amplitude must be >= 0, got %v", c.BaseAmplitude)
	}
	if !finite(c.HoverAmplitude) || c.HoverAmplitude < 0 {
		bad("hover amplitude must be >= 0, got %v", c.HoverAmplitude)
	}
	if !finite(c.BaseFrequency) || c.BaseFrequency < 0 {
		bad("base frequency must be >= 0, got %v", c.BaseFrequency)
	}
	if !finite(c.BaseSpeed) {
		bad("base speed must be finite")
	}
	if !finite(c.HoverRadius) || c.HoverRadius <= 0 {
		bad("hover radius must be > 0, got %v", c.HoverRadius)
	}
	if !(c.Coupling >= 0 && c.Coupling <= 1) {
		bad("coupling must be in [0,1], got %v", c.Coupling)
	}
	if !(c.Damping >= 0 && c.Damping < 1) {
		bad("damping must be in [0,1), got %v", c.Damping)
	}
	if !finite(c.Stiffness) || c.Stiffness <= 0 {
		bad("stiffness must be > 0, got %v", c.Stiffness)
	}
	switch c.Integrator {
	case IntegratorDecay, IntegratorHarmonic, "":
	default:
		bad("unknown integrator %q", c.Integrator)
	}
	if !finite(c.Overscan) || c.Overscan < 0 {
		bad("overscan must be >= 0, got %v", c.Overscan)
	}
	if !(c.BreatheAmplitude >= 0 && c.BreatheAmplitude <= 1) {
		bad("breathe amplitude must be in [0,1], got %v", c.BreatheAmplitude)
	}
	if !finite(c.BreatheRate) {
		bad("breathe rate must be finite")
	}
	if !finite(c.SpeedBoost) || c.SpeedBoost < 0 {
		bad("speed boost must be >= 0, got %v", c.SpeedBoost)
	}
	if !finite(c.HorizontalWeight) || c.HorizontalWeight < 0 {
		bad("horizontal weight must be >= 0, got %v", c.HorizontalWeight)
	}
	if !finite(c.FalloffExponent) || c.FalloffExponent <= 0 {
		bad("falloff exponent must be > 0, got %v", c.FalloffExponent)
	}
	if !(c.BandPadding >= 0 && c.BandPadding < 0.5) {
		bad("band padding must be in [0,0.5), got %v", c.BandPadding)
	}
	if !finite(c.MaxDelta) || c.MaxDelta <= 0 {
		bad("max delta must be > 0, got %v", c.MaxDelta)
	}
	if err := c.FrequencyJitter.validate("frequency jitter"); err != nil {
		errs = append(errs, err)
	}
	if err := c.SpeedJitter.validate("speed jitter"); err != nil {
		errs = append(errs, err)
	}
	for i, m := range c.Modifiers {
		if m == nil {
			bad("modifier %d is nil", i)
			continue
		}
		if v, ok := m.(interface{ validate() error }); ok {
			if err := v.validate(); err != nil {
				errs = append(errs, fmt.Errorf("modifier %s: %w", m.Name(), err))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (r Range) validate(name string) error {
	if !finite(r.Min) || !finite(r.Max) || r.Min <= 0 {
		return fmt.Errorf("%s must be positive, got [%v, %v]", name, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s min %v exceeds max %v", name, r.Min, r.Max)
	}
	return nil
}

// Scaled returns a copy of c with its spatial tunables expressed in a unit k
// times the original one: lengths are multiplied by k and the frequency is
// divided by it, so the same number of wave periods fit the same surface.
func (c Config) Scaled(k float64) Config {
	if k <= 0 || !finite(k) {
		return c
	}
	out := c
	out.BaseAmplitude *= k
	out.HoverAmplitude *= k
	out.HoverRadius *= k
	out.Overscan *= k
	out.BaseFrequency /= k
	out.Modifiers = append([]Modifier(nil), c.Modifiers...)
	return out
}

func (c Config) integrator() Integrator {
	if c.Integrator == "" {
		return IntegratorDecay
	}
	return c.Integrator
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
