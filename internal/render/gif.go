package render

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"golang.org/x/image/draw"
)

// ErrNoFrames is returned when encoding an empty recording.
var ErrNoFrames = errors.New("no frames recorded")

// GIFRecorder collects frames for an animated GIF. Frames wider than the
// recorder's width are downscaled; every frame is flattened onto the
// background and dithered to a fixed palette.
type GIFRecorder struct {
	anim       gif.GIF
	width      int
	delay      int // hundredths of a second
	background color.Color
}

// NewGIFRecorder returns a recorder producing frames at most width pixels
// wide, played back at fps. A nil background flattens onto black.
func NewGIFRecorder(width, fps int, background color.Color) *GIFRecorder {
	if fps < 1 {
		fps = 1
	}
	if background == nil {
		background = color.Black
	}
	return &GIFRecorder{
		width:      width,
		delay:      max(100/fps, 2),
		background: background,
	}
}

// Add appends a copy of img.
func (r *GIFRecorder) Add(img image.Image) {
	src := img.Bounds()
	dst := src.Sub(src.Min)
	if r.width > 0 && src.Dx() > r.width {
		dst = image.Rect(0, 0, r.width, src.Dy()*r.width/src.Dx())
	}

	flat := image.NewRGBA(dst)
	draw.Draw(flat, dst, image.NewUniform(r.background), image.Point{}, draw.Src)
	if dst.Size() == src.Size() {
		draw.Draw(flat, dst, img, src.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(flat, dst, img, src, draw.Over, nil)
	}

	frame := image.NewPaletted(dst, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, dst, flat, image.Point{})

	r.anim.Image = append(r.anim.Image, frame)
	r.anim.Delay = append(r.anim.Delay, r.delay)
}

// Len returns the number of recorded frames.
func (r *GIFRecorder) Len() int {
	return len(r.anim.Image)
}

// Encode writes the recording as a looping GIF.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &r.anim)
}
