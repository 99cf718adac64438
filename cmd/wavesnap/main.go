// Command wavesnap renders the wave field without a screen: a scripted
// pointer sweep saved as PNG frames or an animated GIF, or a timed run of
// the animator's own frame loop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/olivier-w/wavefield/internal/config"
	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/render"
	"github.com/olivier-w/wavefield/internal/util"
	"github.com/olivier-w/wavefield/internal/wave"
)

type snapOptions struct {
	width    int
	height   int
	dpr      float64
	frames   int
	out      string
	gifWidth int
	live     time.Duration
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := config.Defaults()
	if err != nil {
		return err
	}
	opts.FPS = 30

	var so snapOptions
	fs := flag.NewFlagSet("wavesnap", flag.ContinueOnError)
	opts.Register(fs)
	fs.IntVar(&so.width, "w", 800, "surface width")
	fs.IntVar(&so.height, "h", 200, "surface height")
	fs.Float64Var(&so.dpr, "dpr", 1, "device pixel ratio, clamped to [1,2]")
	fs.IntVar(&so.frames, "frames", 90, "frames to render")
	fs.StringVar(&so.out, "out", "frames", "output directory for PNGs, or a .gif file")
	fs.IntVar(&so.gifWidth, "gif-width", 480, "maximum GIF width")
	fs.DurationVar(&so.live, "live", 0, "run the animator's own loop for this long and save the last frame")
	if err := opts.Parse(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := config.NewLogger(os.Stderr, opts.LogLevel)
	if err != nil {
		return err
	}
	gg.SetLogger(slog.New(logger))

	cfg, err := opts.FieldConfig()
	if err != nil {
		return err
	}
	style, err := opts.Style()
	if err != nil {
		return err
	}

	canvas := render.NewCanvas(so.width, so.height, so.dpr)
	defer canvas.Close()

	anim := wave.New(wave.WithLogger(logger), wave.WithFPS(opts.FPS))
	if err := anim.Configure(cfg, style); err != nil {
		return err
	}
	anim.Attach(canvas)

	if so.live > 0 {
		return runLive(anim, canvas, so, logger)
	}
	return runScripted(anim, canvas, so, opts.FPS, style, logger)
}

// sweep moves the pointer in from the left, through the centre and out on
// the right, crossing every line once. t runs from 0 to 1.
func sweep(t, width, height float64) field.Pointer {
	x := -0.1*width + t*1.2*width
	y := height * (0.2 + 0.6*t)
	return field.Pointer{X: x, Y: y, Inside: x >= 0 && x <= width}
}

func runScripted(anim *wave.Animator, canvas *render.Canvas, so snapOptions, fps int, style wave.Style, logger *log.Logger) error {
	if so.frames < 1 {
		return errors.New("-frames must be at least 1")
	}
	w, h := canvas.Size()
	asGIF := strings.EqualFold(filepath.Ext(so.out), ".gif")

	var rec *render.GIFRecorder
	if asGIF {
		rec = render.NewGIFRecorder(so.gifWidth, fps, style.Background)
	} else if err := os.MkdirAll(so.out, 0o755); err != nil {
		return err
	}

	start := time.Unix(0, 0)
	step := time.Second / time.Duration(fps)
	for i := range so.frames {
		anim.SetPointer(sweep(float64(i)/float64(max(so.frames-1, 1)), w, h))
		if err := anim.Render(start.Add(time.Duration(i) * step)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if asGIF {
			rec.Add(canvas.Image())
			continue
		}
		path := filepath.Join(so.out, fmt.Sprintf("frame_%04d.png", i))
		if err := canvas.SavePNG(path); err != nil {
			return err
		}
	}

	if asGIF {
		f, err := os.Create(so.out)
		if err != nil {
			return err
		}
		if err := rec.Encode(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	elapsed := util.FormatDuration(util.Seconds(anim.Snapshot().Elapsed))
	logger.Info("rendered", "frames", so.frames, "field time", elapsed, "out", so.out)
	return nil
}

// runLive starts the animator's loop and circles the pointer around the
// centre from another goroutine until the duration is up.
func runLive(anim *wave.Animator, canvas *render.Canvas, so snapOptions, logger *log.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), so.live)
	defer cancel()

	if !anim.Start(ctx) {
		return errors.New("animator did not start")
	}

	w, h := canvas.Size()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	begin := time.Now()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case now := <-ticker.C:
			t := now.Sub(begin).Seconds()
			anim.SetPointer(field.Pointer{
				X:      w*0.5 + w*0.3*math.Cos(t*1.3),
				Y:      h*0.5 + h*0.3*math.Sin(t*1.3),
				Inside: true,
			})
		}
	}
	anim.Stop()

	stats := anim.Stats()
	logger.Info("live run finished", "frames", stats.Frames, "rate", util.FormatFPS(stats.FPS))

	out := so.out
	if !strings.EqualFold(filepath.Ext(out), ".png") {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
		out = filepath.Join(out, "live.png")
	}
	return canvas.SavePNG(out)
}
