// Package config loads interpreter settings from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings of the interpreter CLI. Color is a
// pointer so an absent key means "decide from the terminal" rather than
// forcing either state.
type Config struct {
	Prompt      string `yaml:"prompt"`
	Color       *bool  `yaml:"color"`
	DebugTokens bool   `yaml:"debug_tokens"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Prompt: "> "}
}

// Load reads a configuration file from an explicit path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data, path)
}

// Discover looks for a configuration file in the conventional places:
// .goloxrc.yaml in the current directory, then config.yaml under ~/.golox.
// When neither exists it returns the defaults; a file that exists but does
// not parse is an error.
func Discover() (Config, error) {
	candidates := []string{".goloxrc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".golox", "config.yaml"))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		return parse(data, path)
	}
	return Default(), nil
}

func parse(data []byte, path string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = Default().Prompt
	}
	return cfg, nil
}
