package field

import (
	"errors"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// SampleContext is what a modifier sees at one sample of one line.
type SampleContext struct {
	Line     int
	X        float64 // surface x of the sample
	U        float64 // X / viewport width
	Time     float64 // field clock, seconds
	Energy   float64
	Phase    float64
	Freq     float64 // the line's spatial frequency
	Pointer  Pointer
	Viewport Viewport
	Radius   float64 // the config's hover radius
}

// Modifier rescales a line's amplitude at one sample. Modifiers run in
// order; each receives the previous one's output.
type Modifier interface {
	Name() string
	Apply(amp float64, sc SampleContext) float64
}

// LocalBoost swells the line around the pointer's x position, scaled by the
// line's energy. This is independent of the whole-line excitation and moves
// with the cursor along the line.
type LocalBoost struct {
	Gain        float64
	RadiusScale float64
	Exponent    float64
}

// DefaultLocalBoost returns the boost used by the classic animation.
func DefaultLocalBoost() LocalBoost {
	return LocalBoost{Gain: 0.95, RadiusScale: 1.15, Exponent: 2}
}

func (LocalBoost) Name() string { return "local" }

func (b LocalBoost) Apply(amp float64, sc SampleContext) float64 {
	if !sc.Pointer.Inside {
		return amp
	}
	d := math.Abs(sc.X - sc.Pointer.X)
	m := 1 - math.Min(1, d/(sc.Radius*b.RadiusScale))
	return amp * (1 + b.Gain*falloff(m, b.Exponent)*sc.Energy)
}

func (b LocalBoost) validate() error {
	if !allFinite(b.Gain, b.RadiusScale, b.Exponent) {
		return errors.New("parameters must be finite")
	}
	if b.Gain < 0 || b.RadiusScale <= 0 || b.Exponent <= 0 {
		return errors.New("gain must be >= 0, radius and exponent > 0")
	}
	return nil
}

// Harmonics layers sines at multiples of the line frequency onto the
// amplitude. Each harmonic k contributes Weights[k]*sin(x*f*Ratios[k] +
// phase*Speeds[k]).
type Harmonics struct {
	Ratios  []float64
	Weights []float64
	Speeds  []float64
}

// DefaultHarmonics returns two soft overtones.
func DefaultHarmonics() Harmonics {
	return Harmonics{
		Ratios:  []float64{2.1, 3.3},
		Weights: []float64{0.22, 0.12},
		Speeds:  []float64{1.6, -0.7},
	}
}

func (Harmonics) Name() string { return "harmonics" }

func (h Harmonics) Apply(amp float64, sc SampleContext) float64 {
	sum := 0.0
	for k := range h.Ratios {
		sum += h.Weights[k] * math.Sin(sc.X*sc.Freq*h.Ratios[k]+sc.Phase*h.Speeds[k])
	}
	return amp * (1 + sum)
}

func (h Harmonics) validate() error {
	if len(h.Ratios) != len(h.Weights) || len(h.Ratios) != len(h.Speeds) {
		return errors.New("ratios, weights and speeds must have the same length")
	}
	if !allFinite(h.Ratios...) || !allFinite(h.Weights...) || !allFinite(h.Speeds...) {
		return errors.New("parameters must be finite")
	}
	total := 0.0
	for _, w := range h.Weights {
		if w < 0 {
			return errors.New("weights must be >= 0")
		}
		total += w
	}
	if total >= 1 {
		return errors.New("weights must sum to less than 1")
	}
	return nil
}

// Envelope is a slow travelling envelope over the line's width. Depth 0
// leaves the amplitude alone, depth 1 pinches it to zero at the troughs.
type Envelope struct {
	Depth  float64
	Cycles float64
	Rate   float64
}

// DefaultEnvelope returns a gentle single-hump drift.
func DefaultEnvelope() Envelope {
	return Envelope{Depth: 0.45, Cycles: 0.8, Rate: 0.35}
}

func (Envelope) Name() string { return "envelope" }

func (e Envelope) Apply(amp float64, sc SampleContext) float64 {
	dip := 0.5 - 0.5*math.Sin(2*math.Pi*e.Cycles*sc.U-sc.Time*e.Rate+float64(sc.Line)*0.7)
	return amp * (1 - e.Depth*dip)
}

func (e Envelope) validate() error {
	if !allFinite(e.Depth, e.Cycles, e.Rate) {
		return errors.New("parameters must be finite")
	}
	if e.Depth < 0 || e.Depth > 1 {
		return errors.New("depth must be in [0,1]")
	}
	return nil
}

// Noise modulates amplitude with 2D OpenSimplex noise over (x, time), so
// every line wanders on its own without a visible period.
type Noise struct {
	Depth float64
	Scale float64
	Rate  float64
	Seed  int64

	noise opensimplex.Noise
}

// NewNoise returns a noise modifier with its generator seeded.
func NewNoise(depth, scale, rate float64, seed int64) *Noise {
	return &Noise{
		Depth: depth,
		Scale: scale,
		Rate:  rate,
		Seed:  seed,
		noise: opensimplex.NewNormalized(seed),
	}
}

// DefaultNoise returns the organic preset's noise.
func DefaultNoise() *Noise {
	return NewNoise(0.5, 2.5, 0.25, 7)
}

func (*Noise) Name() string { return "noise" }

func (n *Noise) Apply(amp float64, sc SampleContext) float64 {
	v := n.noise.Eval2(sc.U*n.Scale+float64(sc.Line)*11.3, sc.Time*n.Rate)
	// v is in [0,1]; centre it so depth swings both ways.
	return amp * (1 + n.Depth*(v*2-1))
}

func (n *Noise) validate() error {
	if n.noise == nil {
		return errors.New("generator not seeded, build it with NewNoise")
	}
	if !allFinite(n.Depth, n.Scale, n.Rate) {
		return errors.New("parameters must be finite")
	}
	if n.Depth < 0 || n.Depth > 1 {
		return errors.New("depth must be in [0,1]")
	}
	return nil
}

func allFinite(vs ...float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}

// applyModifiers runs mods over amp in order.
func applyModifiers(mods []Modifier, amp float64, sc SampleContext) float64 {
	for _, m := range mods {
		amp = m.Apply(amp, sc)
	}
	return amp
}
