package field

import (
	"math"
	"testing"
)

func TestAmplitudeIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	bound := cfg.BaseAmplitude*(1+cfg.BreatheAmplitude) + cfg.HoverAmplitude
	for _, e := range []float64{0, 0.25, 0.5, 1, 7} {
		for ts := 0.0; ts < 120; ts += 0.1 {
			if a := Amplitude(cfg, e, ts); a > bound+1e-9 {
				t.Fatalf("energy %v t %v: amplitude %v exceeds bound %v", e, ts, a, bound)
			}
		}
	}
}

func TestBreatheRange(t *testing.T) {
	for ts := 0.0; ts < 60; ts += 0.05 {
		b := Breathe(ts, 0.55)
		if b < 0.3-1e-12 || b > 1+1e-12 {
			t.Fatalf("breathe(%v) = %v, want within [0.3, 1]", ts, b)
		}
	}
}

func TestSampleIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Modifiers = []Modifier{DefaultLocalBoost(), DefaultHarmonics(), DefaultEnvelope(), DefaultNoise()}
	s := NewState(cfg)
	p := Pointer{X: 320, Y: 90, Inside: true}
	for range 10 {
		s = Step(cfg, s, p, testViewport, 0.016)
	}

	for i := range s.Lines {
		a := Sample(cfg, s, i, p, testViewport, nil)
		b := Sample(cfg, s, i, p, testViewport, nil)
		if len(a) != len(b) {
			t.Fatalf("line %d: lengths differ %d vs %d", i, len(a), len(b))
		}
		for k := range a {
			if a[k] != b[k] {
				t.Fatalf("line %d sample %d: %+v vs %+v", i, k, a[k], b[k])
			}
		}
	}
}

func TestSampleSpansViewport(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg)
	pts := Sample(cfg, s, 0, Pointer{}, testViewport, nil)

	if len(pts) != cfg.Samples+1 {
		t.Fatalf("expected %d points, got %d", cfg.Samples+1, len(pts))
	}
	if pts[0].X != 0 || pts[len(pts)-1].X != testViewport.Width {
		t.Fatalf("expected x from 0 to %v, got %v..%v", testViewport.Width, pts[0].X, pts[len(pts)-1].X)
	}

	cfg.Overscan = 10
	pts = Sample(cfg, s, 0, Pointer{}, testViewport, pts)
	if pts[0].X != -10 || pts[len(pts)-1].X != testViewport.Width+10 {
		t.Fatalf("expected overscan range, got %v..%v", pts[0].X, pts[len(pts)-1].X)
	}
}

func TestIdleLinesOscillateAroundBase(t *testing.T) {
	cfg := DefaultConfig()
	s := Step(cfg, NewState(cfg), Pointer{}, testViewport, 0.016)

	lo := 2 * cfg.BaseAmplitude * (1 - cfg.BreatheAmplitude)
	hi := 2 * cfg.BaseAmplitude * (1 + cfg.BreatheAmplitude)
	for i := range s.Lines {
		base := LineY(i, cfg.Lines, testViewport.Height, cfg.BandPadding)
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, pt := range Sample(cfg, s, i, Pointer{}, testViewport, nil) {
			minY = math.Min(minY, pt.Y-base)
			maxY = math.Max(maxY, pt.Y-base)
		}
		p2p := maxY - minY
		if p2p < lo || p2p > hi {
			t.Fatalf("line %d: peak-to-peak %v outside [%v, %v]", i, p2p, lo, hi)
		}
		if mid := (maxY + minY) / 2; math.Abs(mid) > 0.1 {
			t.Fatalf("line %d: expected oscillation centred on base y, offset %v", i, mid)
		}
	}
}

func TestFrameReusesBuffer(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg)
	buf := Frame(cfg, s, Pointer{}, testViewport, nil)
	if len(buf) != cfg.Lines {
		t.Fatalf("expected %d lines, got %d", cfg.Lines, len(buf))
	}
	first := &buf[0][0]
	buf = Frame(cfg, s, Pointer{}, testViewport, buf)
	if &buf[0][0] != first {
		t.Fatal("expected frame buffer to be reused")
	}
}

func TestSampleOutOfRangeLine(t *testing.T) {
	cfg := DefaultConfig()
	if pts := Sample(cfg, NewState(cfg), 9, Pointer{}, testViewport, nil); len(pts) != 0 {
		t.Fatalf("expected no points for a missing line, got %d", len(pts))
	}
}
