package field

import "math"

// ClampDelta bounds a frame delta to [0, max]. NaN becomes 0.
func ClampDelta(dt, max float64) float64 {
	if !(dt > 0) {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// Target returns the raw excitation target of line i: 0 when the pointer is
// outside, otherwise an elliptical falloff around the line's reference point
// (viewport centre, resting y) with horizontal distance down-weighted.
func Target(cfg Config, i int, p Pointer, vp Viewport) float64 {
	if !p.Inside {
		return 0
	}
	vp = vp.normalized()
	dy := math.Abs(p.Y - LineY(i, cfg.Lines, vp.Height, cfg.BandPadding))
	dx := math.Abs(p.X-vp.Width*0.5) * cfg.HorizontalWeight
	dist := math.Sqrt(dy*dy + dx*dx)
	n := 1 - math.Min(1, dist/cfg.HoverRadius)
	return falloff(n, cfg.FalloffExponent)
}

// Targets returns Target for every line.
func Targets(cfg Config, p Pointer, vp Viewport) []float64 {
	out := make([]float64, cfg.Lines)
	for i := range out {
		out[i] = Target(cfg, i, p, vp)
	}
	return out
}

// Step advances s by dt seconds and returns the new state. dt is clamped to
// [0, cfg.MaxDelta]. Energies are updated from the previous frame's energies
// (neighbor means never see values written in the same step) unless
// cfg.SequentialCoupling is set, then each line's phase advances at a speed
// raised by its new energy.
func Step(cfg Config, s State, p Pointer, vp Viewport, dt float64) State {
	dt = ClampDelta(dt, cfg.MaxDelta)
	next := s.Clone()
	n := len(s.Lines)
	if n == 0 {
		return next
	}
	sp := newSpring(cfg)

	for i := range next.Lines {
		left, right := s.Lines[i].Energy, s.Lines[i].Energy
		if i > 0 {
			left = s.Lines[i-1].Energy
			if cfg.SequentialCoupling {
				left = next.Lines[i-1].Energy
			}
		}
		if i < n-1 {
			right = s.Lines[i+1].Energy
		}
		neighborMean := (left + right) * 0.5

		target := 0.0
		if i < cfg.Lines {
			target = Target(cfg, i, p, vp)
		}
		coupled := lerp(target, neighborMean, cfg.Coupling)

		l := &next.Lines[i]
		e, v := sp.step(l.Energy, l.Velocity, coupled, dt)
		if !finite(e) || !finite(v) {
			e, v = l.Energy, 0
		}
		l.Energy = clamp01(e)
		l.Velocity = v

		l.Phase += dt * cfg.BaseSpeed * l.SpeedJitter * (1 + l.Energy*cfg.SpeedBoost)
	}

	next.Elapsed += dt
	return next
}

func falloff(n, exp float64) float64 {
	if exp == 2 {
		return n * n
	}
	return math.Pow(n, exp)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
