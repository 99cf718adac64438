package window

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/wave"
)

// Game runs an animator inside an ebiten window. Update samples the
// pointer and Draw renders one frame, both on ebiten's game goroutine.
type Game struct {
	anim    *wave.Animator
	surface *Surface
	logger  *log.Logger

	width   int
	height  int
	paused  bool
	touches []ebiten.TouchID
	failed  bool
}

// NewGame attaches a fresh Surface to anim.
func NewGame(anim *wave.Animator, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := NewSurface()
	anim.Attach(s)
	return &Game{anim: anim, surface: s, logger: logger}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.anim.Tune(func(c *field.Config) { c.Seed++ }); err != nil {
			g.logger.Warn("reseed failed", "err", err)
		}
	}
	g.anim.SetPointer(g.pointer())
	return nil
}

// pointer prefers the first active touch, then the mouse cursor. The
// cursor only counts while the window has focus.
func (g *Game) pointer() field.Pointer {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y := ebiten.TouchPosition(g.touches[0])
		return pointerAt(x, y, g.width, g.height, true)
	}
	x, y := ebiten.CursorPosition()
	return pointerAt(x, y, g.width, g.height, ebiten.IsFocused())
}

func pointerAt(x, y, width, height int, focused bool) field.Pointer {
	inside := focused && x >= 0 && y >= 0 && x < width && y < height
	return field.Pointer{X: float64(x), Y: float64(y), Inside: inside}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	if g.paused {
		return
	}
	if err := g.anim.Render(time.Now()); err != nil && !g.failed {
		// Logged once; a broken frame repeats every tick.
		g.logger.Error("render failed", "err", err)
		g.failed = true
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
