// Command wavewin shows the wave field in a desktop window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/olivier-w/wavefield/internal/config"
	"github.com/olivier-w/wavefield/internal/wave"
	"github.com/olivier-w/wavefield/internal/window"
)

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
	fs := flag.NewFlagSet("wavewin", flag.ContinueOnError)
	opts.Register(fs)
	width := fs.Int("window-width", 960, "initial window width")
	height := fs.Int("window-height", 320, "initial window height")
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
	cfg, err := opts.FieldConfig()
	if err != nil {
		return err
	}
	style, err := opts.Style()
	if err != nil {
		return err
	}

	anim := wave.New(wave.WithLogger(logger), wave.WithFPS(opts.FPS))
	if err := anim.Configure(cfg, style); err != nil {
		return err
	}
	game := window.NewGame(anim, logger)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("wavefield — " + opts.PresetName())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)
	// Paused frames keep the last picture.
	ebiten.SetScreenClearedEveryFrame(false)

	logger.Info("window open", "preset", opts.PresetName(), "lines", cfg.Lines)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
