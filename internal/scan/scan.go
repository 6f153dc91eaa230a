// Package scan discovers strategy modules under a registry root.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coachpo/stratreg/internal/extractor"
	"github.com/coachpo/stratreg/internal/module"
	"github.com/coachpo/stratreg/internal/registry"
)

// Discover walks root for JavaScript modules, excluding the manifest file,
// and loads each in sorted path order. The first load failure aborts the
// scan; a manifest must never be built from a partial view. An empty
// result is legal here and left to the caller to reject.
func Discover(root string, ext extractor.Extractor) ([]*module.Module, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk %s: %w", path, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), module.Ext) {
			return nil
		}
		if d.Name() == registry.ManifestName {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover modules under %s: %w", root, err)
	}
	sort.Strings(paths)

	modules := make([]*module.Module, 0, len(paths))
	for _, path := range paths {
		mod, err := module.Load(root, path, ext)
		if err != nil {
			return nil, fmt.Errorf("load module %s: %w", path, err)
		}
		modules = append(modules, mod)
	}
	return modules, nil
}
