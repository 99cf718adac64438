package preset

import (
	"sort"
	"strings"

	"github.com/olivier-w/wavefield/internal/field"
)

// Preset is a named field configuration.
type Preset struct {
	Name        string
	Description string
	build       func() field.Config
}

// Config returns a fresh copy of the preset's configuration. Modifiers are
// rebuilt on every call so callers never share modifier state.
func (p Preset) Config() field.Config {
	return p.build()
}

// Default is the preset used when none is named.
const Default = "classic"

var presets = map[string]Preset{
	"classic": {
		Name:        "classic",
		Description: "three calm lines, dramatic swell under the cursor",
		build:       field.DefaultConfig,
	},
	"harmonic": {
		Name:        "harmonic",
		Description: "overtones ripple along each line",
		build: func() field.Config {
			c := field.DefaultConfig()
			c.Modifiers = []field.Modifier{field.DefaultHarmonics(), field.DefaultLocalBoost()}
			return c
		},
	},
	"drift": {
		Name:        "drift",
		Description: "a slow envelope travels across the lines",
		build: func() field.Config {
			c := field.DefaultConfig()
			local := field.DefaultLocalBoost()
			local.RadiusScale = 1.25
			c.Modifiers = []field.Modifier{field.DefaultEnvelope(), local}
			c.Overscan = 12
			return c
		},
	},
	"organic": {
		Name:        "organic",
		Description: "noise-driven swells, no two moments alike",
		build: func() field.Config {
			c := field.DefaultConfig()
			c.Modifiers = []field.Modifier{field.DefaultNoise(), field.DefaultLocalBoost()}
			c.SpeedJitter = field.Range{Min: 0.8, Max: 1.25}
			return c
		},
	},
	"calm": {
		Name:        "calm",
		Description: "two lines that share every touch",
		build: func() field.Config {
			c := field.DefaultConfig()
			c.Lines = 2
			c.Coupling = 0.6
			c.HoverAmplitude = 45
			c.Integrator = field.IntegratorHarmonic
			return c
		},
	},
}

// Lookup returns the preset called name, ignoring case.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// All returns every preset sorted by name, the default first.
func All() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == Default || out[j].Name == Default {
			return out[i].Name == Default
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// NamesList returns a human-readable list of preset names.
func NamesList() string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
