package field

import "github.com/charmbracelet/harmonica"

// spring moves one line's energy toward target over dt seconds.
type spring interface {
	step(energy, velocity, target, dt float64) (float64, float64)
}

// decaySpring integrates acceleration into a per-step velocity that loses
// (1-damping) of its magnitude every step. With the default damping the
// motion is overdamped and never overshoots meaningfully.
type decaySpring struct {
	stiffness float64
	damping   float64
}

func (s decaySpring) step(e, v, target, dt float64) (float64, float64) {
	accel := (target - e) * s.stiffness
	v += accel * dt
	v *= s.damping
	return e + v, v
}

// harmonicSpring is a critically damped harmonica spring rebuilt for each
// step's dt, so variable frame times integrate correctly. Stiffness is the
// spring's angular frequency.
type harmonicSpring struct {
	angular float64
}

func (s harmonicSpring) step(e, v, target, dt float64) (float64, float64) {
	if dt <= 0 {
		return e, v
	}
	return harmonica.NewSpring(dt, s.angular, 1.0).Update(e, v, target)
}

func newSpring(cfg Config) spring {
	if cfg.integrator() == IntegratorHarmonic {
		return harmonicSpring{angular: cfg.Stiffness}
	}
	return decaySpring{stiffness: cfg.Stiffness, damping: cfg.Damping}
}
