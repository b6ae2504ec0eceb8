// Package hyperparams loads per model and dataset training configuration
// from YAML files.
//
// Files follow the <dir>/<model>_<data>.yaml naming convention. Keys the
// Params struct does not model are kept in Extra so model specific knobs
// stay reachable.
package hyperparams

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tensorplex-labs/rankbench/internal/rng"
)

// Params holds the hyperparameters shared by every model family.
type Params struct {
	Model           string   `yaml:"model"`
	Data            string   `yaml:"data"`
	LearningRate    float64  `yaml:"lr"`
	L2              float64  `yaml:"l2"`
	BatchSize       int      `yaml:"batch_size"`
	Epochs          int      `yaml:"epochs"`
	TopKs           []int    `yaml:"topks"`
	Metrics         []string `yaml:"metrics"`
	Seed            int64    `yaml:"seed"`
	Workers         int      `yaml:"num_workers"`
	EvalEvery       int      `yaml:"eval_every"`
	EarlyStopWindow int      `yaml:"early_stop"`
	HitThreshold    float64  `yaml:"hit_threshold"`

	// Extra holds every top level key the struct does not model.
	Extra map[string]any `yaml:"-"`
}

var knownKeys = []string{
	"model", "data", "lr", "l2", "batch_size", "epochs", "topks", "metrics",
	"seed", "num_workers", "eval_every", "early_stop", "hit_threshold",
}

// Defaults returns the baseline parameters a file only needs to override.
func Defaults() Params {
	return Params{
		LearningRate:    1e-3,
		BatchSize:       256,
		Epochs:          100,
		TopKs:           []int{10},
		Metrics:         []string{"NDCG", "HIT"},
		Seed:            rng.DefaultSeed,
		Workers:         0,
		EvalEvery:       1,
		EarlyStopWindow: 10,
		HitThreshold:    1,
	}
}

// Load reads a hyperparameter file, applying its keys over Defaults.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hyperparams: %w", err)
	}

	params := Defaults()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse hyperparams %s: %w", path, err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse hyperparams %s: %w", path, err)
	}
	for _, key := range knownKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		params.Extra = raw
	}

	return &params, nil
}

// LoadFor resolves the conventional <dir>/<model>_<data>.yaml path and loads
// it.
func LoadFor(dir, model, data string) (*Params, error) {
	return Load(filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", model, data)))
}
