package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/preset"
	"github.com/olivier-w/wavefield/internal/wave"
)

// Options is what a frontend can be told on the command line. Field
// settings override the chosen preset only when their flag was given.
type Options struct {
	Preset      string
	Modifiers   string
	Lines       int
	Coupling    float64
	Sequential  bool
	HoverRadius float64
	Integrator  string
	Seed        uint64
	Scale       float64
	FPS         int

	Color      string
	HoverColor string
	Background string
	LineWidth  float64

	LogLevel string
	LogFile  string

	set map[string]bool
}

// Defaults returns Options with environment fallbacks applied.
func Defaults() (Options, error) {
	o := Options{
		Preset:     GetEnv(EnvPreset, ""),
		Scale:      1,
		FPS:        wave.DefaultFPS,
		Color:      "#ffffffd9",
		HoverColor: "",
		Background: "transparent",
		LineWidth:  2,
		LogLevel:   GetEnv(EnvLogLevel, "info"),
		set:        map[string]bool{},
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return o, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		o.Seed = seed
		o.set["seed"] = true
	}
	return o, nil
}

// Register binds o to fs. Current values become the flag defaults.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.StringVar(&o.Preset, "preset", o.Preset, "preset name: "+preset.NamesList())
	fs.StringVar(&o.Modifiers, "modifiers", o.Modifiers, `modifier chain, e.g. "local:gain=0.8;envelope" or "none"`)
	fs.IntVar(&o.Lines, "lines", o.Lines, "number of lines")
	fs.Float64Var(&o.Coupling, "coupling", o.Coupling, "neighbour coupling in [0,1]")
	fs.BoolVar(&o.Sequential, "sequential", o.Sequential, "couple lines in place, top to bottom")
	fs.Float64Var(&o.HoverRadius, "radius", o.HoverRadius, "hover radius in pixels")
	fs.StringVar(&o.Integrator, "integrator", o.Integrator, "energy integrator: decay or harmonic")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "random seed for per-line jitter")
	fs.Float64Var(&o.Scale, "scale", o.Scale, "surface units per preset pixel")
	fs.IntVar(&o.FPS, "fps", o.FPS, "frames per second")
	fs.StringVar(&o.Color, "color", o.Color, "line colour (#rrggbb or #rrggbbaa)")
	fs.StringVar(&o.HoverColor, "hover-color", o.HoverColor, "line colour at full energy (default: -color)")
	fs.StringVar(&o.Background, "background", o.Background, `background colour or "transparent"`)
	fs.Float64Var(&o.LineWidth, "width", o.LineWidth, "stroke width")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "debug, info, warn or error")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "append logs to this file")
}

// Parse parses args with fs and remembers which flags were given.
func (o *Options) Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if o.set == nil {
		o.set = map[string]bool{}
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return nil
}

// IsSet reports whether the named setting came from a flag or the
// environment rather than a default.
func (o Options) IsSet(name string) bool {
	return o.set[name]
}

// PresetName returns the preset to run, or the default.
func (o Options) PresetName() string {
	if o.Preset == "" {
		return preset.Default
	}
	return o.Preset
}

// FieldConfig returns the named preset's config with every given flag
// applied on top, scaled by o.Scale and validated.
func (o Options) FieldConfig() (field.Config, error) {
	p, ok := preset.Lookup(o.PresetName())
	if !ok {
		return field.Config{}, fmt.Errorf("unknown preset %q (available: %s)", o.Preset, preset.NamesList())
	}
	cfg := p.Config()

	if o.IsSet("modifiers") {
		mods, err := field.ParseModifiers(o.Modifiers)
		if err != nil {
			return field.Config{}, err
		}
		cfg.Modifiers = mods
	}
	if o.IsSet("lines") {
		cfg.Lines = o.Lines
	}
	if o.IsSet("coupling") {
		cfg.Coupling = o.Coupling
	}
	if o.IsSet("sequential") {
		cfg.SequentialCoupling = o.Sequential
	}
	if o.IsSet("radius") {
		cfg.HoverRadius = o.HoverRadius
	}
	if o.IsSet("integrator") {
		cfg.Integrator = field.Integrator(o.Integrator)
	}
	if o.IsSet("seed") {
		cfg.Seed = o.Seed
	}

	cfg = cfg.Scaled(o.Scale)
	if err := cfg.Validate(); err != nil {
		return field.Config{}, err
	}
	return cfg, nil
}

// Style parses the colour flags.
func (o Options) Style() (wave.Style, error) {
	s := wave.DefaultStyle()
	var errs []error

	c, err := wave.ParseColor(o.Color)
	if err != nil {
		errs = append(errs, fmt.Errorf("-color: %w", err))
	}
	s.Color = c
	s.HoverColor = c
	if o.HoverColor != "" {
		hc, err := wave.ParseColor(o.HoverColor)
		if err != nil {
			errs = append(errs, fmt.Errorf("-hover-color: %w", err))
		}
		s.HoverColor = hc
	}
	bg, err := wave.ParseColor(o.Background)
	if err != nil {
		errs = append(errs, fmt.Errorf("-background: %w", err))
	}
	if bg.A > 0 {
		s.Background = bg
	}
	if o.LineWidth > 0 {
		s.Width = o.LineWidth
	}
	return s, errors.Join(errs...)
}

// WithPreset returns a copy of o running the named preset. A non-empty
// modifier chain replaces the preset's own.
func (o Options) WithPreset(name, modifiers string) Options {
	set := make(map[string]bool, len(o.set)+1)
	for k, v := range o.set {
		set[k] = v
	}
	o.set = set
	o.Preset = name
	if modifiers != "" {
		o.Modifiers = modifiers
		o.set["modifiers"] = true
	}
	return o
}
