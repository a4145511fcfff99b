package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"review-analytics/models"
)

// WriteAppsJSON persists the canonical app metadata as a single indented
// JSON array, written atomically via a temporary file.
func WriteAppsJSON(path string, apps []models.App) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}

	if apps == nil {
		apps = []models.App{}
	}
	data, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal apps: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("json: write file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("json: rename %q: %w", tmp, err)
	}
	return nil
}

// ReadAppsJSON loads a canonical app metadata file written by WriteAppsJSON.
func ReadAppsJSON(path string) ([]models.App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json: read file %q: %w", path, err)
	}

	var apps []models.App
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("json: parse %q: %w", path, err)
	}
	return apps, nil
}
