// ABOUTME: Config file round-trip for the singleton pipeline configuration
// ABOUTME: Reads and writes .forkyou/config.json with built-in defaults
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/forkyou/models"
)

const configFileName = "config.json"

// ReadConfig loads the pipeline configuration. When no config file
// exists the built-in default is returned.
func ReadConfig(root string) (models.Config, error) {
	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultConfig(), nil
		}
		return models.Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// WriteConfig persists the pipeline configuration as pretty-printed JSON.
func WriteConfig(root string, cfg models.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(root, configFileName), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
