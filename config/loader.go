package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"propscope/internal/models"
)

// LoadProfiles reads a profile set from a JSON file. The file replaces the
// built-in defaults entirely, so it must carry at least one city and one
// property type.
func LoadProfiles(path string) (models.ProfileSet, error) {
	var profiles models.ProfileSet

	absPath, err := filepath.Abs(path)
	if err != nil {
		return profiles, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return profiles, fmt.Errorf("failed to read profile file: %v", err)
	}

	if err := json.Unmarshal(data, &profiles); err != nil {
		return profiles, fmt.Errorf("failed to parse profile file: %v", err)
	}

	if len(profiles.Cities) == 0 {
		return profiles, fmt.Errorf("profile file %s defines no cities", path)
	}
	if len(profiles.PropertyTypes) == 0 {
		return profiles, fmt.Errorf("profile file %s defines no property types", path)
	}

	return profiles, nil
}

// SaveProfiles writes a profile set to a JSON file, pretty printed so the
// file stays hand-editable.
func SaveProfiles(path string, profiles models.ProfileSet) error {
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile file: %v", err)
	}

	return nil
}
