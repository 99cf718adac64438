package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/preset"
	"github.com/olivier-w/wavefield/internal/util"
	"github.com/olivier-w/wavefield/internal/visualizer"
	"github.com/olivier-w/wavefield/internal/wave"
)

const (
	marginLeft = 2
	// Rows above the wave: blank, header, blank.
	waveTop = 3
)

// Settings configure a Model.
type Settings struct {
	Preset string
	Config field.Config // in dot units, already scaled
	Style  wave.Style
	// Scale converts presets chosen at runtime from pixels to dots.
	Scale  float64
	FPS    int
	Term   string // client TERM for colour detection; empty uses the local env
	Logger *log.Logger
}

// Model is the Bubbletea model for the wavefield TUI.
type Model struct {
	anim     *wave.Animator
	canvas   *visualizer.Braille
	meters   []progress.Model
	settings Settings

	preset   string
	width    int
	height   int
	paused   bool
	quitting bool
	mode     PointerMode

	statusMsg  string    // transient status message
	statusTime time.Time // when statusMsg was set
}

// New creates a Model running s.Config.
func New(s Settings) (Model, error) {
	if s.FPS <= 0 {
		s.FPS = wave.DefaultFPS
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.Preset == "" {
		s.Preset = preset.Default
	}

	anim := wave.New(wave.WithLogger(s.Logger), wave.WithFPS(s.FPS))
	if err := anim.Configure(s.Config, s.Style); err != nil {
		return Model{}, err
	}
	canvas := visualizer.NewBraille(76, 12)
	if s.Term != "" {
		canvas.UseTerm(s.Term)
	}
	anim.Attach(canvas)

	return Model{
		anim:     anim,
		canvas:   canvas,
		meters:   makeMeters(s.Config.Lines),
		settings: s,
		preset:   s.Preset,
	}, nil
}

func makeMeters(n int) []progress.Model {
	meters := make([]progress.Model, n)
	for i := range meters {
		meters[i] = newMeter()
	}
	return meters
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.settings.FPS), tea.SetWindowTitle(windowTitle(m.preset, false)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.BlurMsg:
		if m.mode == PointerLive {
			m.anim.Leave()
		}
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if m.statusMsg != "" && time.Since(m.statusTime) > 3*time.Second {
			m.statusMsg = ""
		}
		if !m.paused {
			if m.mode == PointerAuto {
				m.anim.SetPointer(m.orbitPointer())
			}
			if err := m.anim.Render(time.Time(msg)); err != nil {
				m.settings.Logger.Warn("render failed", "err", err)
			}
		}
		return m, frameCmd(m.settings.FPS)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCanvas()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	switch msg.String() {
	case " ":
		m.paused = !m.paused
		return m, tea.SetWindowTitle(windowTitle(m.preset, m.paused))
	case "a":
		m.mode = m.mode.Next()
		if m.mode == PointerLive {
			m.anim.Leave()
		}
	case "+", "=":
		m.tune(func(c *field.Config) { c.Coupling = math.Min(1, c.Coupling+0.05) })
	case "-", "_":
		m.tune(func(c *field.Config) { c.Coupling = math.Max(0, c.Coupling-0.05) })
	case "s":
		m.tune(func(c *field.Config) { c.Seed++ })
	case "tab":
		m.nextPreset()
		return m, tea.SetWindowTitle(windowTitle(m.preset, m.paused))
	}
	return m, nil
}

func (m *Model) tune(fn func(*field.Config)) {
	if err := m.anim.Tune(fn); err != nil {
		m.setStatus(err.Error())
	}
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

// nextPreset switches to the preset after the current one, keeping the seed.
func (m *Model) nextPreset() {
	all := preset.All()
	next := all[0]
	for i, p := range all {
		if p.Name == m.preset {
			next = all[(i+1)%len(all)]
			break
		}
	}
	cfg := next.Config().Scaled(m.settings.Scale)
	cfg.Seed = m.anim.Config().Seed
	if err := m.anim.Configure(cfg, m.settings.Style); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.preset = next.Name
	m.meters = makeMeters(cfg.Lines)
	m.resizeCanvas()
	m.setStatus(next.Description)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch m.mode {
	case PointerAuto:
		return
	case PointerPinned:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return
		}
	}
	m.anim.SetPointer(m.pointerAt(msg.X, msg.Y))
}

// pointerAt maps a terminal cell to the dot at its centre.
func (m Model) pointerAt(x, y int) field.Pointer {
	col, row := x-marginLeft, y-waveTop
	cols, rows := m.canvas.Cells()
	px, py := visualizer.CellCenter(col, row)
	return field.Pointer{
		X:      px,
		Y:      py,
		Inside: col >= 0 && row >= 0 && col < cols && row < rows,
	}
}

// orbitPointer traces a slow figure-eight over the wave area.
func (m Model) orbitPointer() field.Pointer {
	t := m.anim.Snapshot().Elapsed
	w, h := m.canvas.Size()
	return field.Pointer{
		X:      w*0.5 + w*0.38*math.Sin(t*0.37),
		Y:      h*0.5 + h*0.32*math.Sin(t*0.74),
		Inside: true,
	}
}

func (m Model) chromeRows() int {
	// header block, blank, meters, blank, status, help
	return waveTop + 1 + len(m.meters) + 1 + 1 + 1
}

func (m *Model) resizeCanvas() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	cols := m.width - marginLeft*2
	rows := m.height - m.chromeRows()
	m.canvas.Resize(max(cols, 10), max(rows, 3))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 80
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(spaces(marginLeft) + headerStyle.Render("wavefield") + "  " + presetStyle.Render(m.preset) + "\n")
	b.WriteString("\n")
	b.WriteString(indentBlock(m.canvas.View(), spaces(marginLeft)))
	b.WriteString("\n\n")

	state := m.anim.Snapshot()
	b.WriteString(renderMeters(m.meters, state.Energies(), w))
	b.WriteString("\n")

	b.WriteString(spaces(marginLeft) + m.statusLine(w) + "\n")
	if m.statusMsg != "" {
		b.WriteString(spaces(marginLeft) + errorStyle.Render(m.statusMsg) + "\n")
	} else {
		b.WriteString(spaces(marginLeft) + helpStyle.Render(helpText(w < 70)) + "\n")
	}
	return padToHeight(b.String(), m.height)
}

// padToHeight appends blank lines so the alt screen is fully overwritten.
func padToHeight(view string, height int) string {
	if n := height - strings.Count(view, "\n"); n > 0 {
		view += strings.Repeat("\n", n)
	}
	return view
}

func (m Model) statusLine(w int) string {
	icon, text := "▶", "running"
	if m.paused {
		icon, text = "❚❚", "paused"
	}
	cfg := m.anim.Config()
	stats := m.anim.Stats()

	left := fmt.Sprintf("%s  %s  %s %s", icon, text, m.mode.Icon(), m.mode)
	elapsed := util.FormatDuration(util.Seconds(m.anim.Snapshot().Elapsed))
	right := fmt.Sprintf("%s  %s  seed %d  %s", elapsed, renderCoupling(cfg.Coupling), cfg.Seed, util.FormatFPS(stats.FPS))
	gap := w - len([]rune(left)) - len(right) - marginLeft*2
	if gap < 2 {
		gap = 2
	}
	return statusStyle.Render(left) + spaces(gap) + statusStyle.Render(right)
}

// Animator exposes the model's animator.
func (m Model) Animator() *wave.Animator {
	return m.anim
}

// Preset returns the name of the running preset.
func (m Model) Preset() string {
	return m.preset
}

func windowTitle(preset string, paused bool) string {
	if paused {
		return "⏸ " + preset + " — wavefield"
	}
	return "≈ " + preset + " — wavefield"
}
