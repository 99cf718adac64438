package wave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olivier-w/wavefield/internal/field"
)

var (
	// ErrNotConfigured is returned by Render before Configure succeeded.
	ErrNotConfigured = errors.New("animator not configured")
	// ErrNoSurface is returned by Render when nothing is attached.
	ErrNoSurface = errors.New("no drawing surface attached")
)

// DefaultFPS is the rate of the animator's own frame loop.
const DefaultFPS = 60

// Option customises an Animator.
type Option func(*Animator)

// WithLogger sets the animator's logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFPS sets the rate used by Start.
func WithFPS(fps int) Option {
	return func(a *Animator) {
		if fps > 0 {
			a.fps = fps
		}
	}
}

// Animator owns a field and draws it on a Surface once per frame.
//
// Exactly one goroutine may call Render at a time: either the loop started by
// Start, or a frontend that schedules frames itself. Pointer updates may come
// from any goroutine; each frame reads the latest pointer once.
type Animator struct {
	inputMu sync.Mutex
	pointer field.Pointer

	mu         sync.Mutex
	cfg        field.Config
	style      Style
	state      field.State
	configured bool
	surface    Surface
	last       time.Time
	frame      [][]field.Point
	frames     uint64
	stats      *frameStats

	fps    int
	logger *log.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns an unconfigured animator.
func New(opts ...Option) *Animator {
	a := &Animator{
		fps:    DefaultFPS,
		logger: log.New(io.Discard),
		stats:  newFrameStats(120),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configure validates cfg and resets every line from cfg.Seed.
func (a *Animator) Configure(cfg field.Config, style Style) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configure animator: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.style = style
	a.state = field.NewState(cfg)
	a.configured = true
	a.last = time.Time{}
	a.frame = nil
	a.stats.reset()
	a.logger.Debug("configured", "lines", cfg.Lines, "samples", cfg.Samples,
		"integrator", cfg.Integrator, "modifiers", field.FormatModifiers(cfg.Modifiers))
	return nil
}

// Tune applies fn to a copy of the current config and keeps the line state
// when the line count is unchanged, so the animation continues smoothly.
func (a *Animator) Tune(fn func(*field.Config)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.configured {
		return ErrNotConfigured
	}
	cfg := a.cfg
	cfg.Modifiers = append([]field.Modifier(nil), a.cfg.Modifiers...)
	fn(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("tune animator: %w", err)
	}
	if cfg.Lines != a.cfg.Lines || cfg.Seed != a.cfg.Seed {
		a.state = field.NewState(cfg)
		a.frame = nil
	}
	a.cfg = cfg
	return nil
}

// Attach sets the surface frames are drawn on. A nil surface detaches.
func (a *Animator) Attach(s Surface) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.surface = s
}

// SetPointer records the latest pointer state.
func (a *Animator) SetPointer(p field.Pointer) {
	a.inputMu.Lock()
	a.pointer = p
	a.inputMu.Unlock()
}

// Leave marks the pointer as outside the surface, keeping its position.
func (a *Animator) Leave() {
	a.inputMu.Lock()
	a.pointer.Inside = false
	a.inputMu.Unlock()
}

// Pointer returns the latest pointer state.
func (a *Animator) Pointer() field.Pointer {
	a.inputMu.Lock()
	defer a.inputMu.Unlock()
	return a.pointer
}

// Render draws one frame stamped now. The delta from the previous frame is
// clamped by the field; the first frame after Configure uses a delta of 0.
func (a *Animator) Render(now time.Time) error {
	p := a.Pointer()

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.configured {
		return ErrNotConfigured
	}
	if a.surface == nil {
		return ErrNoSurface
	}

	w, h := a.surface.Size()
	vp := field.Viewport{Width: w, Height: h}
	dt := 0.0
	if !a.last.IsZero() {
		dt = now.Sub(a.last).Seconds()
	}
	a.last = now

	a.state = field.Step(a.cfg, a.state, p, vp, dt)
	a.frame = field.Frame(a.cfg, a.state, p, vp, a.frame)

	a.surface.Clear(a.style.Background)
	var strokeErr error
	for i, pts := range a.frame {
		if err := a.surface.Stroke(pts, a.style.Line(a.state.Lines[i].Energy)); err != nil && strokeErr == nil {
			strokeErr = fmt.Errorf("stroke line %d: %w", i, err)
		}
	}
	a.frames++
	a.stats.record(now)
	if strokeErr != nil {
		a.logger.Warn("frame incomplete", "err", strokeErr)
	}
	return strokeErr
}

// Start runs a frame loop at the configured rate until ctx is done or Stop
// is called. Without a configured field and an attached surface it does not
// start and returns false. Calling Start on a running animator is a no-op.
func (a *Animator) Start(ctx context.Context) bool {
	a.mu.Lock()
	if !a.configured || a.surface == nil {
		configured, attached := a.configured, a.surface != nil
		a.mu.Unlock()
		a.logger.Warn("not starting", "configured", configured, "surface", attached)
		return false
	}
	if a.cancel != nil {
		a.mu.Unlock()
		return true
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel, a.done = cancel, done
	interval := time.Second / time.Duration(a.fps)
	a.mu.Unlock()

	a.logger.Info("frame loop started", "fps", a.fps)
	go a.loop(ctx, interval, done)
	return true
}

func (a *Animator) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	defer a.loopExited(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := a.Render(now); errors.Is(err, ErrNoSurface) || errors.Is(err, ErrNotConfigured) {
				a.logger.Warn("frame loop stopping", "err", err)
				return
			}
		}
	}
}

// loopExited forgets the loop identified by done unless Stop or a newer
// Start already replaced it, so a loop that ended on its own can be started
// again.
func (a *Animator) loopExited(done chan struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done != done {
		return
	}
	a.cancel()
	a.cancel, a.done = nil, nil
}

// Stop ends the frame loop and waits for it to exit.
func (a *Animator) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	a.logger.Info("frame loop stopped")
}

// Running reports whether the animator's own loop is active.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Snapshot returns a copy of the current field state.
func (a *Animator) Snapshot() field.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Clone()
}

// Config returns the current field config.
func (a *Animator) Config() field.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Stats reports the number of frames drawn and the recent frame rate.
func (a *Animator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{Frames: a.frames, FPS: a.stats.fps()}
}
