package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/wavefield/internal/config"
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
	// A braille dot is roughly a quarter of a pixel-tuned unit.
	opts.Scale = 0.25

	fs := flag.NewFlagSet("wavefield", flag.ContinueOnError)
	opts.Register(fs)
	if err := opts.Parse(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	out, closeLog, err := config.LogOutput(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := config.NewLogger(out, opts.LogLevel)
	if err != nil {
		return err
	}

	var model tea.Model
	if opts.Preset == "" {
		model = newStartupModel(opts, logger)
	} else {
		m, err := buildModel(opts, logger)
		if err != nil {
			return err
		}
		model = m
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = program.Run()
	return err
}
