// Package project handles persistence of building configurations,
// templates, and full-data backups as JSON files under the user's home
// directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gardenkit/roofsmith/internal/config"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.roofsmith/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roofsmith")
}

// DefaultBuildingPath returns the default path for the building file.
func DefaultBuildingPath() string {
	return filepath.Join(DefaultConfigDir(), "building.json")
}

// SaveBuilding persists a building configuration to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveBuilding(path string, b config.Building) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadBuilding reads a building configuration from the given path.
// If the file does not exist, it returns the default building with no error.
func LoadBuilding(path string) (config.Building, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.DefaultBuilding(), nil
		}
		return config.Building{}, err
	}
	var b config.Building
	if err := json.Unmarshal(data, &b); err != nil {
		return config.Building{}, err
	}
	if b.Roof.Style == "" {
		b.Roof.Style = config.StylePent
	}
	return b, nil
}
