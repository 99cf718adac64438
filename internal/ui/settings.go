package ui

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/olivier-w/wavefield/internal/config"
)

// SettingsFrom resolves parsed options into model settings.
func SettingsFrom(o config.Options, logger *log.Logger) (Settings, error) {
	cfg, cfgErr := o.FieldConfig()
	style, styleErr := o.Style()
	if err := errors.Join(cfgErr, styleErr); err != nil {
		return Settings{}, err
	}
	return Settings{
		Preset: o.PresetName(),
		Config: cfg,
		Style:  style,
		Scale:  o.Scale,
		FPS:    o.FPS,
		Logger: logger,
	}, nil
}
