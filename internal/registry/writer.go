package registry

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Write serializes the registry to <root>/registry.json with stable key
// ordering and a trailing newline. The manifest is staged in a colocated
// temp file and renamed into place, so a failed write leaves any prior
// manifest intact.
func Write(root string, reg Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	data = append(data, '\n')

	tmp := filepath.Join(root, tempName)
	target := filepath.Join(root, ManifestName)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp registry %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename registry %s: %w", target, err)
	}
	return nil
}

// Load reads the manifest back from <root>/registry.json.
func Load(root string) (Registry, error) {
	target := filepath.Join(root, ManifestName)
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", target, err)
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", target, err)
	}
	return reg, nil
}
