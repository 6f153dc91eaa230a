package module

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coachpo/stratreg/internal/extractor"
)

// Load reads the module at path, extracts its metadata and classifies its
// on-disk location against the canonical layout under root.
func Load(root, path string, ext extractor.Extractor) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	meta, err := ext.Extract(path)
	if err != nil {
		// Extractor failures propagate unchanged; they already name the file.
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(stringField(meta, "name")))
	if name == "" {
		return nil, fmt.Errorf("%s: metadata.name required", path)
	}
	version := strings.TrimSpace(stringField(meta, "version"))
	if version == "" {
		version = DefaultVersion
	}

	sum := sha256.Sum256(source)
	hash := "sha256:" + hex.EncodeToString(sum[:])

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("relative path for %s: %w", path, err)
	}

	return &Module{
		Name:      name,
		Version:   version,
		Path:      path,
		Content:   source,
		Metadata:  meta,
		Hash:      hash,
		Canonical: isCanonicalPath(rel, name, version),
	}, nil
}

func stringField(meta map[string]interface{}, key string) string {
	value, ok := meta[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
