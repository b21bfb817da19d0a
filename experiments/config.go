package experiments

import (
	"fmt"
	"os"

	"pegsolitaire/meta"

	"gopkg.in/yaml.v3"
)

// Config describes a batch of seeded random games.
type Config struct {
	Name string `yaml:"name"`
	// Seeds lists the seeds to play. When empty, Games seeds are used
	// starting at BaseSeed.
	Seeds      []uint64 `yaml:"seeds"`
	Games      int      `yaml:"games"`
	BaseSeed   uint64   `yaml:"base_seed"`
	OutDir     string   `yaml:"out_dir"`
	HoldCycles int      `yaml:"hold_cycles"`
	// WriteTraces stores one trace CSV per game next to the game records.
	WriteTraces bool `yaml:"write_traces"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Name:        "random_play",
		Games:       meta.DEFAULT_GAMES,
		BaseSeed:    meta.DEFAULT_SEED,
		OutDir:      meta.DEFAULT_OUT_DIR,
		WriteTraces: true,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the config for values no run can use.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	if len(c.Seeds) == 0 && c.Games <= 0 {
		return fmt.Errorf("config: games must be positive when no seeds are listed")
	}
	if c.HoldCycles < 0 {
		return fmt.Errorf("config: hold_cycles must not be negative")
	}
	return nil
}

// SeedList returns the seeds the run plays, in order.
func (c Config) SeedList() []uint64 {
	if len(c.Seeds) > 0 {
		return c.Seeds
	}
	seeds := make([]uint64, c.Games)
	for i := range seeds {
		seeds[i] = c.BaseSeed + uint64(i)
	}
	return seeds
}
