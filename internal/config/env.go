// Package config turns flags and environment variables into the settings
// shared by every wavefield frontend.
package config

import "os"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Environment variables read as flag defaults.
const (
	EnvPreset     = "WAVEFIELD_PRESET"
	EnvSeed       = "WAVEFIELD_SEED"
	EnvLogLevel   = "WAVEFIELD_LOG_LEVEL"
	EnvSSHHost    = "WAVEFIELD_SSH_HOST"
	EnvSSHPort    = "WAVEFIELD_SSH_PORT"
	EnvSSHHostKey = "WAVEFIELD_SSH_HOST_KEY"
)
