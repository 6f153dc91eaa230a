// Package registry builds and persists the content-addressed module
// manifest.
package registry

// ManifestName is the manifest filename at the registry root. Discovery
// must never treat it as a module.
const ManifestName = "registry.json"

// tempName is the colocated staging file used for atomic writes.
const tempName = ManifestName + ".tmp"

// LatestTag is the synthesized tag recomputed on every build.
const LatestTag = "latest"

// Location records where a content hash lives, relative to the root.
type Location struct {
	Tag  string `json:"tag"`
	Path string `json:"path"`
}

// Entry is the per-name registry record: version tags and a content-hash
// index. Every hash in Hashes is also the value of some tag in Tags.
type Entry struct {
	Tags   map[string]string   `json:"tags"`
	Hashes map[string]Location `json:"hashes"`
}

// Registry maps module name to its entry. It is rebuilt from scratch on
// every run; there is no incremental merge with a prior manifest.
type Registry map[string]Entry
