package field

import (
	"math"
	"testing"
)

func TestHarmonicSpringUsesStiffnessAsAngularFrequency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = IntegratorHarmonic
	cfg.Stiffness = 8
	const dt = 0.1

	// Critically damped from rest at 0 toward 1:
	// x(t) = x0*(1+wt)*exp(-wt), v(t) = -x0*w²*t*exp(-wt), x0 = -1.
	w := cfg.Stiffness
	decay := math.Exp(-w * dt)
	wantE := 1 - (1+w*dt)*decay
	wantV := w * w * dt * decay

	e, v := newSpring(cfg).step(0, 0, 1, dt)
	if math.Abs(e-wantE) > 1e-9 || math.Abs(v-wantV) > 1e-9 {
		t.Fatalf("step = (%v, %v), want (%v, %v)", e, v, wantE, wantV)
	}

	cfg.Damping = 0.2
	e2, v2 := newSpring(cfg).step(0, 0, 1, dt)
	if e2 != e || v2 != v {
		t.Fatalf("expected Damping ignored by the harmonic integrator, got (%v, %v) vs (%v, %v)", e2, v2, e, v)
	}
}

func TestHarmonicSpringHoldsAtZeroDelta(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = IntegratorHarmonic
	e, v := newSpring(cfg).step(0.4, 0.1, 1, 0)
	if e != 0.4 || v != 0.1 {
		t.Fatalf("got (%v, %v), want (0.4, 0.1)", e, v)
	}
}

func TestDecaySpringStep(t *testing.T) {
	cfg := DefaultConfig()
	e, v := newSpring(cfg).step(0, 0, 1, 0.016)
	wantV := 1 * cfg.Stiffness * 0.016 * cfg.Damping
	if math.Abs(v-wantV) > 1e-12 || math.Abs(e-wantV) > 1e-12 {
		t.Fatalf("got (%v, %v), want (%v, %v)", e, v, wantV, wantV)
	}
}
