// Package config loads bridge configuration from the environment and codec
// priority tables from YAML files.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration for the bridge process.
type Config struct {
	// Adapter is the local Bluetooth adapter name.
	Adapter string `env:"A2DP_BRIDGE_ADAPTER" envDefault:"hci0"`

	// MaxConnectedDevices is the number of sink devices that may be
	// connected simultaneously.
	MaxConnectedDevices int `env:"A2DP_BRIDGE_MAX_CONNECTED_DEVICES" envDefault:"1"`

	// PrefsPath is the SQLite file holding per-device codec preferences.
	// Empty selects an in-memory store.
	PrefsPath string `env:"A2DP_BRIDGE_PREFS_DB"`

	// CodecPriorityPath is a YAML file with the codec priority ordering.
	// Empty leaves the stack defaults in place.
	CodecPriorityPath string `env:"A2DP_BRIDGE_CODEC_PRIORITIES"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
