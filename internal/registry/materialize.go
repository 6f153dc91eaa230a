package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coachpo/stratreg/internal/module"
)

// Materialize relocates mod into its canonical <root>/<name>/<version>/
// directory, replacing the original file. Already-canonical modules are
// left untouched. A failed removal leaves both copies on disk; the error
// names source and destination and the whole run is expected to abort.
func Materialize(root string, mod *module.Module) (string, error) {
	if mod.Canonical {
		return mod.Path, nil
	}

	targetDir := filepath.Join(root, mod.Name, mod.Version)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", targetDir, err)
	}

	target := filepath.Join(targetDir, mod.Name+module.Ext)
	if err := os.WriteFile(target, mod.Content, 0644); err != nil {
		return "", fmt.Errorf("move module %s -> %s: %w", mod.Path, target, err)
	}
	if err := os.Remove(mod.Path); err != nil {
		return "", fmt.Errorf("move module %s -> %s: remove original: %w", mod.Path, target, err)
	}
	return target, nil
}
