package registry

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/coachpo/stratreg/internal/module"
)

// Build folds modules into a registry in their given order. When write is
// true each module is materialized into its canonical location first and
// the resulting path is recorded; otherwise the current path is recorded,
// so a dry run previews the manifest against the untouched tree.
func Build(modules []*module.Module, root string, write bool, logger *log.Logger) (Registry, error) {
	reg := make(Registry)
	for _, mod := range modules {
		entry, ok := reg[mod.Name]
		if !ok {
			entry = Entry{
				Tags:   make(map[string]string),
				Hashes: make(map[string]Location),
			}
		}

		targetPath := mod.Path
		if write {
			target, err := Materialize(root, mod)
			if err != nil {
				return nil, err
			}
			targetPath = target
		}

		rel, err := filepath.Rel(root, targetPath)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", targetPath, err)
		}

		if prev, dup := entry.Tags[mod.Version]; dup && prev != mod.Hash {
			logger.Debug("tag overwritten by later module", "name", mod.Name, "tag", mod.Version)
		}
		entry.Tags[mod.Version] = mod.Hash
		entry.Hashes[mod.Hash] = Location{
			Tag:  mod.Version,
			Path: filepath.ToSlash(rel),
		}
		reg[mod.Name] = entry
	}

	for name, entry := range reg {
		if len(entry.Tags) == 0 {
			continue
		}
		entry.Tags[LatestTag] = pickLatestTag(entry.Tags)
		reg[name] = entry
	}
	return reg, nil
}

// pickLatestTag resolves the hash the latest tag should point at: the value
// of the lexicographically greatest non-latest tag, or an arbitrary
// existing hash when no such tag exists.
func pickLatestTag(tags map[string]string) string {
	candidates := make([]string, 0, len(tags))
	for tag := range tags {
		if tag == LatestTag {
			continue
		}
		candidates = append(candidates, tag)
	}
	if len(candidates) == 0 {
		for _, hash := range tags {
			return hash
		}
		return ""
	}
	sort.Strings(candidates)
	return tags[candidates[len(candidates)-1]]
}
