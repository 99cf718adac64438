package wave

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/olivier-w/wavefield/internal/field"
)

type recordingSurface struct {
	mu      sync.Mutex
	w, h    float64
	clears  int
	strokes [][]field.Point
	styles  []LineStyle
	err     error
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }

func (s *recordingSurface) Clear(color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.strokes = s.strokes[:0]
	s.styles = s.styles[:0]
}

func (s *recordingSurface) Stroke(points []field.Point, style LineStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokes = append(s.strokes, append([]field.Point(nil), points...))
	s.styles = append(s.styles, style)
	return s.err
}

func (s *recordingSurface) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func TestRenderStrokesEveryLine(t *testing.T) {
	a := New()
	if err := a.Configure(field.DefaultConfig(), DefaultStyle()); err != nil {
		t.Fatalf("configure: %v", err)
	}
	s := &recordingSurface{w: 800, h: 200}
	a.Attach(s)

	if err := a.Render(time.Unix(0, 0)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(s.strokes) != 3 {
		t.Fatalf("expected 3 strokes, got %d", len(s.strokes))
	}
	if got := len(s.strokes[0]); got != 241 {
		t.Fatalf("expected 241 points, got %d", got)
	}
	if s.clears != 1 {
		t.Fatalf("expected one clear, got %d", s.clears)
	}
}

func TestRenderFirstFrameHasZeroDelta(t *testing.T) {
	a := New()
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	a.Attach(&recordingSurface{w: 800, h: 200})

	start := time.Unix(100, 0)
	_ = a.Render(start)
	if got := a.Snapshot().Elapsed; got != 0 {
		t.Fatalf("expected first frame elapsed 0, got %v", got)
	}
	_ = a.Render(start.Add(16 * time.Millisecond))
	if got := a.Snapshot().Elapsed; got < 0.0159 || got > 0.0161 {
		t.Fatalf("expected elapsed 0.016, got %v", got)
	}
	// A backgrounded tab resumes with a clamped delta.
	_ = a.Render(start.Add(10 * time.Second))
	if got := a.Snapshot().Elapsed; got > 0.016+0.033+1e-9 {
		t.Fatalf("expected clamped delta, elapsed %v", got)
	}
}

func TestRenderPointerExcitesLines(t *testing.T) {
	a := New()
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	a.Attach(&recordingSurface{w: 800, h: 200})
	a.SetPointer(field.Pointer{X: 400, Y: 100, Inside: true})

	start := time.Unix(0, 0)
	for i := range 60 {
		_ = a.Render(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	if e := a.Snapshot().Lines[1].Energy; e < 0.5 {
		t.Fatalf("expected middle line excited, got %v", e)
	}

	a.Leave()
	if a.Pointer().Inside {
		t.Fatal("expected pointer outside after Leave")
	}
	if a.Pointer().X != 400 {
		t.Fatal("expected Leave to keep the last position")
	}
}

func TestRenderErrors(t *testing.T) {
	a := New()
	if err := a.Render(time.Now()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	if err := a.Render(time.Now()); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}

	boom := errors.New("boom")
	s := &recordingSurface{w: 10, h: 10, err: boom}
	a.Attach(s)
	if err := a.Render(time.Now()); !errors.Is(err, boom) {
		t.Fatalf("expected stroke error, got %v", err)
	}
	if len(s.strokes) != 3 {
		t.Fatalf("expected every line attempted despite errors, got %d", len(s.strokes))
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	cfg := field.DefaultConfig()
	cfg.Lines = 0
	if err := New().Configure(cfg, DefaultStyle()); !errors.Is(err, field.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStartWithoutSurfaceDoesNotRun(t *testing.T) {
	a := New()
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	if a.Start(context.Background()) {
		t.Fatal("expected Start to refuse without a surface")
	}
	if a.Running() {
		t.Fatal("expected animator not running")
	}
	a.Stop()
}

func TestStartStop(t *testing.T) {
	a := New(WithFPS(200))
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	s := &recordingSurface{w: 320, h: 120}
	a.Attach(s)

	if !a.Start(context.Background()) {
		t.Fatal("expected Start to run")
	}
	if !a.Start(context.Background()) {
		t.Fatal("expected second Start to report running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.clearCount() < 3 && time.Now().Before(deadline) {
		a.SetPointer(field.Pointer{X: 160, Y: 60, Inside: true})
		time.Sleep(5 * time.Millisecond)
	}
	a.Stop()

	if a.Running() {
		t.Fatal("expected animator stopped")
	}
	n := s.clearCount()
	if n < 3 {
		t.Fatalf("expected at least 3 frames, got %d", n)
	}
	time.Sleep(30 * time.Millisecond)
	if s.clearCount() != n {
		t.Fatal("expected no frames after Stop")
	}
	if st := a.Stats(); st.Frames != uint64(n) {
		t.Fatalf("expected %d frames in stats, got %d", n, st.Frames)
	}
}

func TestRestartAfterSurfaceDetached(t *testing.T) {
	a := New(WithFPS(200))
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	s := &recordingSurface{w: 320, h: 120}
	a.Attach(s)
	if !a.Start(context.Background()) {
		t.Fatal("expected Start to run")
	}
	defer a.Stop()

	a.Attach(nil)
	deadline := time.Now().Add(2 * time.Second)
	for a.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if a.Running() {
		t.Fatal("expected the loop to end once the surface was detached")
	}

	before := s.clearCount()
	a.Attach(s)
	if !a.Start(context.Background()) {
		t.Fatal("expected Start to run again")
	}
	deadline = time.Now().Add(2 * time.Second)
	for s.clearCount() < before+3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := s.clearCount() - before; got < 3 {
		t.Fatalf("expected frames after restart, got %d", got)
	}
	if !a.Running() {
		t.Fatal("expected animator running after restart")
	}
}

func TestTuneKeepsState(t *testing.T) {
	a := New()
	_ = a.Configure(field.DefaultConfig(), DefaultStyle())
	a.Attach(&recordingSurface{w: 800, h: 200})
	_ = a.Render(time.Unix(0, 0))
	_ = a.Render(time.Unix(0, int64(16*time.Millisecond)))
	before := a.Snapshot()

	if err := a.Tune(func(c *field.Config) { c.Coupling = 0.8 }); err != nil {
		t.Fatalf("tune: %v", err)
	}
	if a.Config().Coupling != 0.8 {
		t.Fatalf("expected coupling 0.8, got %v", a.Config().Coupling)
	}
	if a.Snapshot().Elapsed != before.Elapsed {
		t.Fatal("expected state kept when line count is unchanged")
	}

	if err := a.Tune(func(c *field.Config) { c.Coupling = 2 }); err == nil {
		t.Fatal("expected invalid tune to fail")
	}
	if a.Config().Coupling != 0.8 {
		t.Fatal("expected failed tune to leave config alone")
	}

	if err := a.Tune(func(c *field.Config) { c.Lines = 2 }); err != nil {
		t.Fatalf("tune lines: %v", err)
	}
	if got := len(a.Snapshot().Lines); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
}

func TestStatsFPS(t *testing.T) {
	s := newFrameStats(4)
	start := time.Unix(0, 0)
	for i := range 10 {
		s.record(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	if got := s.fps(); got < 49.9 || got > 50.1 {
		t.Fatalf("expected 50 fps, got %v", got)
	}
	s.reset()
	if s.fps() != 0 {
		t.Fatal("expected 0 fps after reset")
	}
}
