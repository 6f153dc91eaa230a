package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/coachpo/stratreg/internal/module"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testModule(t *testing.T, root, rel, name, version, content string) *module.Module {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	sum := sha256.Sum256([]byte(content))
	return &module.Module{
		Name:    name,
		Version: version,
		Path:    path,
		Content: []byte(content),
		Hash:    "sha256:" + hex.EncodeToString(sum[:]),
	}
}

func TestBuild_DryRun(t *testing.T) {
	root := t.TempDir()
	mod := testModule(t, root, "foo.js", "foo", "v2", `module.exports = {metadata: {name: "foo", version: "v2"}};`)

	reg, err := Build([]*module.Module{mod}, root, false, testLogger())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	entry, ok := reg["foo"]
	if !ok {
		t.Fatal("Build() missing entry for foo")
	}
	if entry.Tags["v2"] != mod.Hash {
		t.Errorf("tags[v2] = %q, want %q", entry.Tags["v2"], mod.Hash)
	}
	if entry.Tags[LatestTag] != mod.Hash {
		t.Errorf("tags[latest] = %q, want %q", entry.Tags[LatestTag], mod.Hash)
	}
	loc := entry.Hashes[mod.Hash]
	if loc.Tag != "v2" || loc.Path != "foo.js" {
		t.Errorf("hashes[%s] = %+v, want tag v2 path foo.js", mod.Hash, loc)
	}

	// Dry run must leave the tree untouched.
	if _, err := os.Stat(filepath.Join(root, "foo.js")); err != nil {
		t.Errorf("original file missing after dry run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "foo", "v2", "foo.js")); !os.IsNotExist(err) {
		t.Error("dry run created a canonical copy")
	}
}

func TestBuild_WriteRecordsCanonicalPath(t *testing.T) {
	root := t.TempDir()
	mod := testModule(t, root, "foo.js", "foo", "v2", `content`)

	reg, err := Build([]*module.Module{mod}, root, true, testLogger())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	loc := reg["foo"].Hashes[mod.Hash]
	if loc.Path != "foo/v2/foo.js" {
		t.Errorf("path = %q, want foo/v2/foo.js", loc.Path)
	}
	if _, err := os.Stat(filepath.Join(root, "foo", "v2", "foo.js")); err != nil {
		t.Errorf("canonical copy missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "foo.js")); !os.IsNotExist(err) {
		t.Error("original file still present after write")
	}
}

func TestBuild_LatestIsLexicographic(t *testing.T) {
	root := t.TempDir()
	v1 := testModule(t, root, "bar/v1/bar.js", "bar", "v1", `one`)
	v10 := testModule(t, root, "bar/v10/bar.js", "bar", "v10", `ten`)

	reg, err := Build([]*module.Module{v1, v10}, root, false, testLogger())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// "v10" > "v1" as strings; this is a tie-break, not semver.
	if got := reg["bar"].Tags[LatestTag]; got != v10.Hash {
		t.Errorf("tags[latest] = %q, want hash of v10 (%q)", got, v10.Hash)
	}
}

func TestBuild_DuplicateTagLastWriteWins(t *testing.T) {
	root := t.TempDir()
	first := testModule(t, root, "a/foo.js", "foo", "v1", `first`)
	second := testModule(t, root, "b/foo.js", "foo", "v1", `second`)

	reg, err := Build([]*module.Module{first, second}, root, false, testLogger())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	entry := reg["foo"]
	if entry.Tags["v1"] != second.Hash {
		t.Errorf("tags[v1] = %q, want later module's hash %q", entry.Tags["v1"], second.Hash)
	}
	// Both hashes stay tracked in the hash index.
	if len(entry.Hashes) != 2 {
		t.Errorf("hashes count = %d, want 2", len(entry.Hashes))
	}
}

func TestPickLatestTag(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{
			name: "greatest tag wins",
			tags: map[string]string{"v1": "h1", "v10": "h10", "v2": "h2"},
			want: "h2", // "v2" > "v10" > "v1" lexicographically
		},
		{
			name: "stale latest ignored",
			tags: map[string]string{"v1": "h1", "latest": "stale"},
			want: "h1",
		},
		{
			name: "only latest falls back to existing value",
			tags: map[string]string{"latest": "h1"},
			want: "h1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickLatestTag(tt.tags); got != tt.want {
				t.Errorf("pickLatestTag() = %q, want %q", got, tt.want)
			}
		})
	}
}
