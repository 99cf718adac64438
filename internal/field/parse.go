package field

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseModifiers builds a modifier chain from its text form: modifiers are
// separated by ';', parameters follow a ':' as comma-separated key=value
// pairs. Unset parameters keep their defaults.
//
//	local:gain=0.95,radius=1.15;envelope:depth=0.4
func ParseModifiers(s string) ([]Modifier, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}

	var mods []Modifier
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawParams, _ := strings.Cut(part, ":")
		params, err := parseParams(rawParams)
		if err != nil {
			return nil, fmt.Errorf("modifier %q: %w", name, err)
		}
		m, err := buildModifier(strings.ToLower(strings.TrimSpace(name)), params)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// FormatModifiers returns the names of mods joined the way ParseModifiers
// reads them, without parameters.
func FormatModifiers(mods []Modifier) string {
	if len(mods) == 0 {
		return "none"
	}
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name()
	}
	return strings.Join(names, ";")
}

type params map[string]float64

func parseParams(s string) (params, error) {
	p := params{}
	s = strings.TrimSpace(s)
	if s == "" {
		return p, nil
	}
	for _, kv := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not key=value", kv)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		p[strings.ToLower(strings.TrimSpace(k))] = f
	}
	return p, nil
}

// take assigns p[key] to *dst when present and removes it from p.
func (p params) take(key string, dst *float64) {
	if v, ok := p[key]; ok {
		*dst = v
		delete(p, key)
	}
}

func (p params) leftover(name string) error {
	for k := range p {
		return fmt.Errorf("modifier %q: unknown parameter %q", name, k)
	}
	return nil
}

func buildModifier(name string, p params) (Modifier, error) {
	switch name {
	case "local":
		b := DefaultLocalBoost()
		p.take("gain", &b.Gain)
		p.take("radius", &b.RadiusScale)
		p.take("exp", &b.Exponent)
		return b, p.leftover(name)
	case "harmonics":
		h := DefaultHarmonics()
		scale := 1.0
		p.take("weight", &scale)
		for i := range h.Weights {
			h.Weights[i] *= scale
		}
		return h, p.leftover(name)
	case "envelope":
		e := DefaultEnvelope()
		p.take("depth", &e.Depth)
		p.take("cycles", &e.Cycles)
		p.take("rate", &e.Rate)
		return e, p.leftover(name)
	case "noise":
		d := DefaultNoise()
		seed := float64(d.Seed)
		p.take("depth", &d.Depth)
		p.take("scale", &d.Scale)
		p.take("rate", &d.Rate)
		p.take("seed", &seed)
		if err := p.leftover(name); err != nil {
			return nil, err
		}
		return NewNoise(d.Depth, d.Scale, d.Rate, int64(seed)), nil
	default:
		return nil, fmt.Errorf("unknown modifier %q (known: local, harmonics, envelope, noise)", name)
	}
}
