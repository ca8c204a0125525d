package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// stackFile is the configuration file name looked up in the search path.
const stackFile = "stack.yaml"

// LoadStack loads the stacking game configuration.
// Search order: customPath -> ~/.stacktop/configs/stack.yaml -> ./configs/stack.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadStack(customPath string) (StackConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StackConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseStack(data)
		if err != nil {
			return StackConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(stackFile), filepath.Join("configs", stackFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseStack(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseStack(defaultStackYAML)
	if err != nil {
		return DefaultStackConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseStack decodes YAML over the hardcoded defaults and validates the result.
func parseStack(data []byte) (StackConfig, error) {
	cfg := DefaultStackConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StackConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return StackConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacktop", "configs", filename)
}
