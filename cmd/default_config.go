package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/satnet-sim/mcsched/mcast"
	"github.com/satnet-sim/mcsched/mcast/workload"
)

// Paths groups the file locations of a run.
type Paths struct {
	FstateDir string `yaml:"fstate_dir"` // directory holding fstate_<ns>.txt files
	Output    string `yaml:"output"`     // schedule file to write
}

// Config represents the full config YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	mcast.Config `yaml:",inline"`
	Workload     workload.Spec `yaml:"workload"`
	Paths        Paths         `yaml:"paths"`
}

// defaultConfig returns the built-in configuration. The destination mean is
// left zero so that it follows the configured ground-station count.
func defaultConfig() Config {
	base := mcast.DefaultConfig()
	spec := workload.DefaultSpec(base.Topology)
	spec.MeanDestinations = 0
	return Config{
		Config:   base,
		Workload: spec,
		Paths:    Paths{Output: "multicast_schedule.csv"},
	}
}

// loadConfig parses the YAML at path over the built-in defaults.
// An empty path returns the defaults. Uses strict field checking: typos must cause errors.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if cfg.Workload.MeanDestinations == 0 {
		cfg.Workload.MeanDestinations = workload.DefaultSpec(cfg.Topology).MeanDestinations
	}
	if err := cfg.Config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
