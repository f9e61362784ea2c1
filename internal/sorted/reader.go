package sorted

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"biblefetch/internal/canon"
	"biblefetch/internal/classify"
)

// LoadLanguageMetadata reads every metadata.json under sorted/{iso},
// optionally filtered to one canon. The result is keyed by fileset id.
func LoadLanguageMetadata(sortedDir, iso string, filter canon.Canon) (map[string]classify.Metadata, error) {
	result := make(map[string]classify.Metadata)

	langDir := filepath.Join(sortedDir, iso)
	entries, err := os.ReadDir(langDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("read language directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(langDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var meta classify.Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if filter != "" && meta.Canon != filter {
			continue
		}
		if meta.Fileset.ID == "" {
			continue
		}
		result[meta.Fileset.ID] = meta
	}

	return result, nil
}

// LoadSummary reads summary.json from a sorted tree.
func LoadSummary(sortedDir string) (Summary, error) {
	var summary Summary
	data, err := os.ReadFile(filepath.Join(sortedDir, "summary.json"))
	if err != nil {
		return summary, fmt.Errorf("read summary: %w", err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("decode summary: %w", err)
	}
	return summary, nil
}
