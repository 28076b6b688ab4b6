// Package appcfg loads appliance configuration: an optional YAML file
// overlaid with WHAC_-prefixed environment variables. Timing constants
// and queue capacities are compile-time policy, not configuration.
package appcfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the appliance's deployment settings.
type Config struct {
	// DeviceID overrides the derived device identity (hex string).
	DeviceID string `yaml:"device_id" env:"WHAC_DEVICE_ID"`

	// Wire is the path of the remote-link device (serial port, PTY, or
	// FIFO). Empty means the process's stdin/stdout.
	Wire string `yaml:"wire" env:"WHAC_WIRE"`

	// Panel disables the interactive front-panel rendering when false.
	Panel bool `yaml:"panel" env:"WHAC_PANEL"`
}

func defaults() Config {
	return Config{Panel: true}
}

// Load reads the YAML file at path (missing file is fine when path is
// empty) and applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Optional file; fall through to env.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
