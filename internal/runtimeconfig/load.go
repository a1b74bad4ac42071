package runtimeconfig

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load starts from DefaultConfig, applies the file at path (yaml, json, toml
// or env, chosen by extension) and then environment overrides, and validates
// the result. An empty path reads the environment only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if trimmed := strings.TrimSpace(path); trimmed != "" {
		if err := cleanenv.ReadConfig(trimmed, &cfg); err != nil {
			return Config{}, fmt.Errorf("cms config: read %s: %w", trimmed, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("cms config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
