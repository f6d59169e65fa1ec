package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPong loads the Pong configuration.
// Search order: customPath -> ~/.lazytick/configs/pong.yaml ->
// ./configs/pong.yaml -> embedded default.
func LoadPong(customPath string) (PongConfig, error) {
	var cfg PongConfig
	if err := loadLayered(customPath, "pong.yaml", defaultPongYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadChase loads the Chase configuration.
// Search order: customPath -> ~/.lazytick/configs/chase.yaml ->
// ./configs/chase.yaml -> embedded default.
func LoadChase(customPath string) (ChaseConfig, error) {
	var cfg ChaseConfig
	if err := loadLayered(customPath, "chase.yaml", defaultChaseYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadSessionSpec reads and validates a session spec document.
func LoadSessionSpec(path string) (SessionSpec, error) {
	var spec SessionSpec

	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("config: cannot read session spec %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("config: cannot parse session spec %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

// loadLayered resolves a config through the standard search order. A
// custom path is authoritative: failures there are reported rather than
// papered over with defaults.
func loadLayered(customPath, filename string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return nil
	}

	if userPath := userConfigPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	if err := yaml.Unmarshal(embedded, out); err != nil {
		return fmt.Errorf("config: embedded default %s is invalid: %w", filename, err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lazytick", "configs", filename)
}
