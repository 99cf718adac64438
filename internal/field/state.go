package field

import (
	"math"
	"math/rand/v2"
)

// Viewport is the size of the drawing surface in surface units.
type Viewport struct {
	Width  float64
	Height float64
}

// normalized returns v with both sides at least 1.
func (v Viewport) normalized() Viewport {
	if !(v.Width >= 1) {
		v.Width = 1
	}
	if !(v.Height >= 1) {
		v.Height = 1
	}
	return v
}

// Pointer is the latest pointer position in viewport coordinates.
type Pointer struct {
	X      float64
	Y      float64
	Inside bool
}

// Point is one polyline vertex.
type Point struct {
	X float64
	Y float64
}

// LineState is the per-line state carried across frames.
type LineState struct {
	Energy   float64
	Velocity float64
	Phase    float64

	// Fixed for the lifetime of the line.
	FrequencyJitter float64
	SpeedJitter     float64
}

// State is the complete mutable state of a field. Step returns a new State
// and never modifies the one it is given.
type State struct {
	Lines   []LineState
	Elapsed float64
}

// NewState seeds cfg.Lines lines from cfg.Seed. The same config always
// yields the same initial state.
func NewState(cfg Config) State {
	n := cfg.Lines
	if n < 1 {
		n = 1
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	lines := make([]LineState, n)
	for i := range lines {
		lines[i] = LineState{
			Phase:           rng.Float64()*2*math.Pi + float64(i)*cfg.PhaseSpread,
			FrequencyJitter: cfg.FrequencyJitter.at(rng.Float64()),
			SpeedJitter:     cfg.SpeedJitter.at(rng.Float64()),
		}
	}
	return State{Lines: lines}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Lines:   append([]LineState(nil), s.Lines...),
		Elapsed: s.Elapsed,
	}
}

// Energies returns the current energy of every line.
func (s State) Energies() []float64 {
	out := make([]float64, len(s.Lines))
	for i, l := range s.Lines {
		out[i] = l.Energy
	}
	return out
}

// LineY returns the resting y coordinate of line i out of n. Lines are
// spread evenly over the central band left by padding*height on each side;
// a single line sits on the top edge of the band.
func LineY(i, n int, height, padding float64) float64 {
	top := height * padding
	den := n - 1
	if den < 1 {
		den = 1
	}
	gap := (height - top*2) / float64(den)
	return top + gap*float64(i)
}
