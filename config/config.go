// Package config loads the YAML configuration shared by every command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"slava0135/arraysum/logger"
)

type Search struct {
	Strategy string `yaml:"strategy"`
	MaxPaths int    `yaml:"max_paths"`
	Seed     int64  `yaml:"seed"`
}

type Output struct {
	Dir string `yaml:"dir"`
}

type Config struct {
	Log    logger.Config `yaml:"log"`
	Search Search        `yaml:"search"`
	Output Output        `yaml:"output"`
}

func Default() Config {
	return Config{
		Log:    logger.Config{Level: "info", Output: "stderr"},
		Search: Search{Strategy: "dfs", MaxPaths: 10000, Seed: 1},
		Output: Output{Dir: "."},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config '%s': %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Search.Strategy {
	case "dfs", "bfs", "random":
	default:
		return fmt.Errorf("unknown search strategy '%s'", c.Search.Strategy)
	}
	if c.Search.MaxPaths < 0 {
		return fmt.Errorf("max_paths must not be negative, got %d", c.Search.MaxPaths)
	}
	return nil
}
