package wave

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/wavefield/internal/field"
)

// Surface is anything a frame can be drawn on. Size is queried at the start
// of every frame, so a surface that changes size is re-measured implicitly.
type Surface interface {
	Size() (width, height float64)
	Clear(bg color.Color)
	Stroke(points []field.Point, style LineStyle) error
}

// LineStyle is how one line is stroked for one frame. Caps and joins are
// always round.
type LineStyle struct {
	Color  color.NRGBA
	Width  float64
	Energy float64
}

// Style is the look of the whole animation.
type Style struct {
	Color      color.NRGBA
	HoverColor color.NRGBA
	Width      float64
	Background color.Color // nil keeps the surface transparent
}

// DefaultStyle is white at 85% opacity on a transparent background.
func DefaultStyle() Style {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 217}
	return Style{Color: white, HoverColor: white, Width: 2}
}

// Line returns the stroke style of a line at the given energy. The colour
// moves from Color to HoverColor as energy rises, blended in Lab space.
func (s Style) Line(energy float64) LineStyle {
	c := s.Color
	switch {
	case s.HoverColor == s.Color || energy <= 0:
	case energy >= 1:
		c = s.HoverColor
	default:
		a, _ := colorful.MakeColor(opaque(s.Color))
		b, _ := colorful.MakeColor(opaque(s.HoverColor))
		r, g, bl := a.BlendLab(b, clamp01(energy)).Clamped().RGB255()
		alpha := float64(s.Color.A) + (float64(s.HoverColor.A)-float64(s.Color.A))*clamp01(energy)
		c = color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
	}
	return LineStyle{Color: c, Width: s.Width, Energy: energy}
}

// ParseColor reads "#rgb", "#rrggbb", "#rrggbbaa" or "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" || s == "none" {
		return color.NRGBA{}, nil
	}
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 255
	return c
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
