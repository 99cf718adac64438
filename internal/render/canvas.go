// Package render draws wave frames into images with gg and exports them as
// PNG files or animated GIFs.
package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/wave"
)

// ErrClosed is returned when drawing on a closed canvas.
var ErrClosed = errors.New("canvas closed")

// ClampDPR bounds a device pixel ratio to [1, 2]. Anything else, NaN
// included, falls back to 1.
func ClampDPR(dpr float64) float64 {
	if !(dpr >= 1) {
		return 1
	}
	if dpr > 2 {
		return 2
	}
	return dpr
}

// Canvas is a wave.Surface backed by a gg context. Coordinates are logical
// units; the backing image is dpr times larger.
type Canvas struct {
	dc     *gg.Context
	width  float64
	height float64
	dpr    float64
	closed bool
}

// NewCanvas returns a transparent canvas of width×height logical units.
func NewCanvas(width, height int, dpr float64) *Canvas {
	dpr = ClampDPR(dpr)
	width, height = max(width, 1), max(height, 1)
	return &Canvas{
		dc:     gg.NewContext(int(float64(width)*dpr+0.5), int(float64(height)*dpr+0.5)),
		width:  float64(width),
		height: float64(height),
		dpr:    dpr,
	}
}

// Size returns the logical size.
func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

// DPR returns the device pixel ratio of the backing image.
func (c *Canvas) DPR() float64 {
	return c.dpr
}

// Clear fills the canvas with bg, or makes it transparent when bg is nil.
func (c *Canvas) Clear(bg color.Color) {
	if c.closed {
		return
	}
	if bg == nil {
		c.dc.Clear()
		return
	}
	c.dc.ClearWithColor(gg.FromColor(bg))
}

// Stroke draws points as one open polyline with round caps and joins.
func (c *Canvas) Stroke(points []field.Point, style wave.LineStyle) error {
	if c.closed {
		return ErrClosed
	}
	if len(points) < 2 {
		return nil
	}
	col := style.Color
	c.dc.SetRGBA(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, float64(col.A)/255)
	c.dc.SetLineWidth(style.Width * c.dpr)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)

	c.dc.MoveTo(points[0].X*c.dpr, points[0].Y*c.dpr)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X*c.dpr, p.Y*c.dpr)
	}
	return c.dc.Stroke()
}

// Image returns the current pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the current pixels to path.
func (c *Canvas) SavePNG(path string) error {
	if c.closed {
		return ErrClosed
	}
	return c.dc.SavePNG(path)
}

// Close releases the context. It is safe to call more than once.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dc.Close()
}
