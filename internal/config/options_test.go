package config

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/olivier-w/wavefield/internal/field"
	"github.com/olivier-w/wavefield/internal/preset"
)

func parse(t *testing.T, args ...string) Options {
	t.Helper()
	o, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o.Register(fs)
	if err := o.Parse(fs, args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return o
}

func TestGetEnv(t *testing.T) {
	t.Setenv("WAVEFIELD_TEST_KEY", "set")
	if got := GetEnv("WAVEFIELD_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("got %q, want set", got)
	}
	if got := GetEnv("WAVEFIELD_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestFlagsOverrideOnlyWhatWasSet(t *testing.T) {
	o := parse(t, "-preset", "calm", "-coupling", "0.1")
	cfg, err := o.FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	want, _ := preset.Lookup("calm")
	base := want.Config()
	if cfg.Coupling != 0.1 {
		t.Errorf("coupling = %v, want 0.1", cfg.Coupling)
	}
	if cfg.Lines != base.Lines {
		t.Errorf("lines = %d, want preset's %d", cfg.Lines, base.Lines)
	}
	if cfg.Integrator != base.Integrator {
		t.Errorf("integrator = %q, want preset's %q", cfg.Integrator, base.Integrator)
	}
	if cfg.HoverAmplitude != base.HoverAmplitude {
		t.Errorf("hover amplitude = %v, want preset's %v", cfg.HoverAmplitude, base.HoverAmplitude)
	}
}

func TestSequentialFlag(t *testing.T) {
	cfg, err := parse(t).FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	if cfg.SequentialCoupling {
		t.Error("expected parallel coupling by default")
	}
	cfg, err = parse(t, "-sequential").FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	if !cfg.SequentialCoupling {
		t.Error("expected -sequential to enable in-place coupling")
	}
}

func TestZeroValuedFlagStillOverrides(t *testing.T) {
	o := parse(t, "-coupling", "0", "-modifiers", "none")
	cfg, err := o.FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	if cfg.Coupling != 0 {
		t.Errorf("coupling = %v, want 0", cfg.Coupling)
	}
	if len(cfg.Modifiers) != 0 {
		t.Errorf("modifiers = %v, want none", cfg.Modifiers)
	}
}

func TestScaleAppliesToPreset(t *testing.T) {
	o := parse(t, "-scale", "0.5", "-radius", "100")
	cfg, err := o.FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	if cfg.HoverRadius != 50 {
		t.Errorf("radius = %v, want 50", cfg.HoverRadius)
	}
	if want := field.DefaultConfig().BaseAmplitude * 0.5; cfg.BaseAmplitude != want {
		t.Errorf("base amplitude = %v, want %v", cfg.BaseAmplitude, want)
	}
}

func TestFieldConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"-preset", "nope"}},
		{"bad modifiers", []string{"-modifiers", "sparkle"}},
		{"zero lines", []string{"-lines", "0"}},
		{"bad integrator", []string{"-integrator", "euler"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(t, tt.args...).FieldConfig(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestInvalidConfigIsWrapped(t *testing.T) {
	_, err := parse(t, "-coupling", "2").FieldConfig()
	if !errors.Is(err, field.ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
}

func TestEnvironmentDefaults(t *testing.T) {
	t.Setenv(EnvPreset, "drift")
	t.Setenv(EnvSeed, "42")
	o := parse(t)
	if o.PresetName() != "drift" {
		t.Errorf("preset = %q, want drift", o.PresetName())
	}
	cfg, err := o.FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
}

func TestBadSeedEnvironment(t *testing.T) {
	t.Setenv(EnvSeed, "many")
	if _, err := Defaults(); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}

func TestStyle(t *testing.T) {
	s, err := parse(t, "-color", "#ff0000", "-hover-color", "#00ff00", "-background", "#000").Style()
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if s.Color.R != 255 || s.HoverColor.G != 255 || s.Background == nil {
		t.Fatalf("unexpected style %+v", s)
	}

	s, err = parse(t).Style()
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if s.Background != nil {
		t.Fatalf("default background should be transparent, got %v", s.Background)
	}

	if _, err := parse(t, "-color", "red", "-background", "blue").Style(); err == nil {
		t.Fatal("expected error for named colours")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(io.Discard, "debug"); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if _, err := NewLogger(io.Discard, "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLogOutputEmptyPathDiscards(t *testing.T) {
	w, closeFn, err := LogOutput("")
	if err != nil {
		t.Fatalf("LogOutput: %v", err)
	}
	defer closeFn()
	if w != io.Discard {
		t.Fatal("expected io.Discard")
	}
}

func TestWithPresetDoesNotShareOverrides(t *testing.T) {
	o := parse(t)
	custom := o.WithPreset("harmonic", "envelope")
	if o.IsSet("modifiers") {
		t.Fatal("original options should be untouched")
	}
	cfg, err := custom.FieldConfig()
	if err != nil {
		t.Fatalf("FieldConfig: %v", err)
	}
	if got := field.FormatModifiers(cfg.Modifiers); got != "envelope" {
		t.Fatalf("modifiers = %q, want envelope", got)
	}
}
