package visualizer

import (
	"image/color"
	"math"
	"strings"

	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/wave"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Braille is a terminal drawing surface. Each character cell is a 2x4 grid
// of braille dots, so a cols x rows area is addressed as (2*cols) x (4*rows)
// dots. Strokes are one dot wide whatever their requested width.
type Braille struct {
	cols    int
	rows    int
	cells   []uint8
	ink     []colorRGB
	profile colorProfile
}

// NewBraille returns a surface covering cols x rows cells.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{profile: currentColorProfile()}
	b.Resize(cols, rows)
	return b
}

// Resize changes the cell area. A new area starts empty.
func (b *Braille) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if cols == b.cols && rows == b.rows {
		return
	}
	b.cols, b.rows = cols, rows
	b.cells = make([]uint8, cols*rows)
	b.ink = make([]colorRGB, cols*rows)
}

// Cells returns the cell area.
func (b *Braille) Cells() (cols, rows int) {
	return b.cols, b.rows
}

// Size implements wave.Surface in dot units.
func (b *Braille) Size() (float64, float64) {
	return float64(b.cols * 2), float64(b.rows * 4)
}

// Clear empties every cell. The terminal's own background shows through, so
// bg is ignored.
func (b *Braille) Clear(color.Color) {
	clear(b.cells)
}

// Stroke draws straight dot segments between consecutive points. Each
// segment is clipped to the grid first, so far off-grid points cost no more
// than near ones.
func (b *Braille) Stroke(points []field.Point, style wave.LineStyle) error {
	if len(points) == 0 {
		return nil
	}
	ink := colorRGB{R: style.Color.R, G: style.Color.G, B: style.Color.B}
	if len(points) == 1 {
		if x0, y0, _, _, ok := b.clip(points[0], points[0]); ok {
			b.plot(roundDot(x0), roundDot(y0), ink)
		}
		return nil
	}
	for i := 1; i < len(points); i++ {
		x0, y0, x1, y1, ok := b.clip(points[i-1], points[i])
		if !ok {
			continue
		}
		b.line(roundDot(x0), roundDot(y0), roundDot(x1), roundDot(y1), ink)
	}
	return nil
}

// clip trims the segment p→q to the dot grid (Liang-Barsky). It reports
// false when no part of the segment lies on the grid or a coordinate is
// not finite.
func (b *Braille) clip(p, q field.Point) (x0, y0, x1, y1 float64, ok bool) {
	x0, y0, x1, y1 = p.X, p.Y, q.X, q.Y
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	xmin, ymin := -0.5, -0.5
	xmax, ymax := float64(b.cols*2)-0.5, float64(b.rows*4)-0.5
	dx, dy := x1-x0, y1-y0

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := qe / pe
		if pe < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// Dot reports whether the dot at (x, y) is set.
func (b *Braille) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= b.cols*2 || y >= b.rows*4 {
		return false
	}
	return b.cells[(y/4)*b.cols+x/2]&(1<<brailleBits[x%2][y%4]) != 0
}

// CellCenter maps a character cell to the dot at its centre.
func CellCenter(col, row int) (float64, float64) {
	return float64(col*2) + 1, float64(row*4) + 2
}

func roundDot(v float64) int {
	return int(math.Round(v))
}

func (b *Braille) plot(x, y int, ink colorRGB) {
	if x < 0 || y < 0 || x >= b.cols*2 || y >= b.rows*4 {
		return
	}
	i := (y/4)*b.cols + x/2
	b.cells[i] |= 1 << brailleBits[x%2][y%4]
	b.ink[i] = ink
}

// line plots a Bresenham segment. Dots off the grid are dropped.
func (b *Braille) line(x0, y0, x1, y1 int, ink colorRGB) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		b.plot(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// View renders the grid as rows of braille characters.
func (b *Braille) View() string {
	var out strings.Builder
	out.Grow(b.rows * (b.cols*3 + 1))
	state := newANSIState(b.profile)
	for r := range b.rows {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c := range b.cols {
			i := r*b.cols + c
			pattern := b.cells[i]
			if pattern == 0 {
				out.WriteByte(' ')
				continue
			}
			state.set(&out, b.ink[i])
			out.WriteRune(rune(0x2800 + uint(pattern)))
		}
		state.reset(&out)
	}
	return out.String()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
