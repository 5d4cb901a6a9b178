package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat sendgate configuration
type Config struct {
	Version      string `json:"version"`
	DBPath       string `json:"db_path,omitempty"`       // overrides the default ~/.sendgate/sendgate.db
	DefaultActor string `json:"default_actor,omitempty"` // recorded in the audit log when no --actor is given
	WeightsPath  string `json:"weights_path,omitempty"`  // overrides the default ~/.sendgate/weights.yaml
}

// ConfigDir returns the sendgate configuration directory (~/.sendgate).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".sendgate"), nil
}

// LoadConfig reads config.json from the sendgate config directory.
// A missing file is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return loadConfigFrom(dir)
}

func loadConfigFrom(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Version: "1"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the sendgate config directory.
func SaveConfig(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return saveConfigTo(dir, cfg)
}

func saveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
