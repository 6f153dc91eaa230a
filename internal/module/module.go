// Package module defines the strategy module record and its loader.
package module

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultVersion is used when a module's metadata omits a version.
	DefaultVersion = "v1.0.0"
	// Ext is the source extension modules are discovered by.
	Ext = ".js"
)

// Module is one discovered strategy source file. Instances are transient:
// they are rebuilt from the filesystem on every run.
type Module struct {
	Name     string                 // lowercased metadata.name
	Version  string                 // opaque tag, DefaultVersion when absent
	Path     string                 // absolute location at discovery time
	Content  []byte                 // raw bytes, used for hashing and moves
	Metadata map[string]interface{} // full metadata export
	Hash     string                 // "sha256:" + hex digest of Content

	// Canonical reports whether Path already matches the
	// <root>/<name>/<version>/<name>.js layout.
	Canonical bool
}

// CanonicalRelPath returns the canonical location of m relative to the root.
func (m *Module) CanonicalRelPath() string {
	return filepath.ToSlash(filepath.Join(m.Name, m.Version, m.Name+Ext))
}

// isCanonicalPath reports whether rel (a root-relative path) matches the
// canonical layout for the given name and version. Name and version
// segments compare case-insensitively; fewer than three segments is never
// canonical.
func isCanonicalPath(rel, name, version string) bool {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 {
		return false
	}
	if !strings.EqualFold(parts[0], name) {
		return false
	}
	if !strings.EqualFold(parts[1], version) {
		return false
	}
	return strings.EqualFold(parts[2], name+Ext)
}
