// Package config loads the simulator's settings from WORKBENCH_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/plus3/workbench/slot"
)

type Config struct {
	LogMode string `env:"LOG_MODE" envDefault:"dev"`

	Tick     time.Duration `env:"TICK" envDefault:"1ms"`
	Duration time.Duration `env:"DURATION" envDefault:"2s"`
	Bills    int           `env:"BILLS" envDefault:"200"`
	// LegacyShare is the fraction of starting bills created in the old
	// format, so migration runs on first lookup.
	LegacyShare float64 `env:"LEGACY_SHARE" envDefault:"0.25"`
	Seed        int64   `env:"SEED" envDefault:"1"`

	SaveName      string `env:"SAVE_NAME" envDefault:"colony"`
	AutosaveEvery int64  `env:"AUTOSAVE_EVERY" envDefault:"250"`
	SweepEvery    int64  `env:"SWEEP_EVERY" envDefault:"100"`

	Slot slot.Config `envPrefix:"SLOT_"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "WORKBENCH_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Bills < 0 {
		return Config{}, fmt.Errorf("parse env: WORKBENCH_BILLS must not be negative")
	}
	if cfg.LegacyShare < 0 || cfg.LegacyShare > 1 {
		return Config{}, fmt.Errorf("parse env: WORKBENCH_LEGACY_SHARE must be within [0, 1]")
	}
	return cfg, nil
}
