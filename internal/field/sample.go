package field

import "math"

// Breathe is the slow global modulation in [0.3, 1] applied to the base
// amplitude of every line.
func Breathe(t, rate float64) float64 {
	return 0.65 + 0.35*math.Sin(t*rate)
}

// Amplitude is a line's whole-line amplitude before modifiers. It never
// exceeds BaseAmplitude*(1+BreatheAmplitude) + HoverAmplitude.
func Amplitude(cfg Config, energy, t float64) float64 {
	return cfg.BaseAmplitude*(1+cfg.BreatheAmplitude*Breathe(t, cfg.BreatheRate)) +
		cfg.HoverAmplitude*clamp01(energy)
}

// Sample appends the polyline of line i to dst[:0] and returns it. It is a
// pure function of its arguments: sampling the same state twice yields the
// same points.
func Sample(cfg Config, s State, i int, p Pointer, vp Viewport, dst []Point) []Point {
	dst = dst[:0]
	if i < 0 || i >= len(s.Lines) {
		return dst
	}
	vp = vp.normalized()
	l := s.Lines[i]

	samples := cfg.Samples
	if samples < 1 {
		samples = 1
	}
	baseY := LineY(i, len(s.Lines), vp.Height, cfg.BandPadding)
	amp := Amplitude(cfg, l.Energy, s.Elapsed)
	freq := cfg.BaseFrequency * l.FrequencyJitter
	span := vp.Width + cfg.Overscan*2

	sc := SampleContext{
		Line:     i,
		Time:     s.Elapsed,
		Energy:   l.Energy,
		Phase:    l.Phase,
		Freq:     freq,
		Pointer:  p,
		Viewport: vp,
		Radius:   cfg.HoverRadius,
	}

	for k := 0; k <= samples; k++ {
		x := -cfg.Overscan + float64(k)/float64(samples)*span
		sc.X = x
		sc.U = x / vp.Width
		a := applyModifiers(cfg.Modifiers, amp, sc)
		dst = append(dst, Point{X: x, Y: baseY + math.Sin(x*freq+l.Phase)*a})
	}
	return dst
}

// Frame samples every line of s. buf is reused when it has the right shape.
func Frame(cfg Config, s State, p Pointer, vp Viewport, buf [][]Point) [][]Point {
	if len(buf) != len(s.Lines) {
		buf = make([][]Point, len(s.Lines))
	}
	for i := range s.Lines {
		buf[i] = Sample(cfg, s, i, p, vp, buf[i])
	}
	return buf
}
