// Package window shows the wave in a desktop window with ebiten.
package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/wave"
)

// Surface strokes lines onto the screen image of the current Draw call.
type Surface struct {
	target *ebiten.Image
	width  float64
	height float64

	white    *ebiten.Image
	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSurface returns a surface with nothing to draw on until Bind.
func NewSurface() *Surface {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Surface{
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Bind directs the following strokes at dst.
func (s *Surface) Bind(dst *ebiten.Image) {
	s.target = dst
	b := dst.Bounds()
	s.width, s.height = float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Size() (float64, float64) {
	return s.width, s.height
}

func (s *Surface) Clear(bg color.Color) {
	if s.target == nil {
		return
	}
	if bg == nil {
		s.target.Clear()
		return
	}
	s.target.Fill(bg)
}

func (s *Surface) Stroke(points []field.Point, style wave.LineStyle) error {
	if s.target == nil || len(points) < 2 {
		return nil
	}

	s.path = vector.Path{}
	s.path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}

	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(style.Width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	})

	r, g, b, a := float32(style.Color.R)/255, float32(style.Color.G)/255, float32(style.Color.B)/255, float32(style.Color.A)/255
	for i := range s.vertices {
		s.vertices[i].SrcX, s.vertices[i].SrcY = 1, 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	s.target.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
	return nil
}
