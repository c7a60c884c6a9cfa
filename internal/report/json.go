package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"recap/internal/timeline"
)

// WriteJSON persists an export document with stable, human-diffable
// formatting.
func WriteJSON(path string, export timeline.Export) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ReadJSON loads a previously written export document.
func ReadJSON(path string) (timeline.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return timeline.Export{}, fmt.Errorf("read export: %w", err)
	}
	var export timeline.Export
	if err := json.Unmarshal(data, &export); err != nil {
		return timeline.Export{}, fmt.Errorf("parse export %s: %w", path, err)
	}
	return export, nil
}
