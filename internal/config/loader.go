package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.gotris/config.yaml -> ./configs/gotris.yaml -> embedded default
//
// Only an explicit customPath is allowed to fail; the other locations are
// skipped when missing or unreadable. Files are decoded over Default(), so a
// file may set only the keys it cares about.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "gotris.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	path, err := UserFile("config.yaml")
	if err != nil {
		return ""
	}
	return path
}
