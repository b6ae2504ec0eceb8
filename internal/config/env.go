// Package config defines environment configuration structs and loaders.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	RunEnvConfig
	TrackerEnvConfig
	ScoreboardEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunEnvConfig holds run bookkeeping locations and reproducibility knobs.
type RunEnvConfig struct {
	Model       string `env:"MODEL"`
	Data        string `env:"DATA"`
	ConfigDir   string `env:"CONFIG_DIR" envDefault:"config"`
	RunDir      string `env:"RUN_DIR" envDefault:"runs"`
	Seed        int64  `env:"SEED" envDefault:"1"`
	EvalWorkers int    `env:"EVAL_WORKERS" envDefault:"0"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
}

// TrackerEnvConfig configures run tracker access. An empty URL disables
// pushing results.
type TrackerEnvConfig struct {
	TrackerURL     string        `env:"TRACKER_URL"`
	TrackerTimeout time.Duration `env:"TRACKER_TIMEOUT" envDefault:"15s"`
}

// ScoreboardEnvConfig configures the scoreboard server.
type ScoreboardEnvConfig struct {
	ScoreboardHost      string `env:"SCOREBOARD_HOST" envDefault:"0.0.0.0"`
	ScoreboardPort      int    `env:"SCOREBOARD_PORT" envDefault:"8600"`
	ScoreboardBodyLimit int    `env:"SCOREBOARD_BODY_LIMIT" envDefault:"4194304"`
}
