package usage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coachpo/stratreg/internal/registry"
)

// UntaggedLabel stands in for a missing tag in the unused report.
const UntaggedLabel = "(untagged)"

// Revision identifies one tracked (name, tag, hash) triple with zero
// observed live usage.
type Revision struct {
	Name string
	Tag  string
	Hash string
}

// String renders the revision the way the usage report prints it.
func (r Revision) String() string {
	return fmt.Sprintf("%s %s [%s]", r.Name, r.Tag, r.Hash)
}

// Reconcile compares a built registry against usage records and returns
// the tracked revisions with no live consumers, sorted by (name, tag,
// hash). Records with a blank name or hash are skipped; duplicates for the
// same (name, hash) resolve to the last-seen record. A missing record or a
// non-positive count both mean unused. Read-only: neither input is
// mutated.
func Reconcile(records []Record, reg registry.Registry) []Revision {
	index := make(map[string]map[string]Record)
	for _, rec := range records {
		name := strings.ToLower(strings.TrimSpace(rec.Strategy))
		hash := strings.TrimSpace(rec.Hash)
		if name == "" || hash == "" {
			continue
		}
		if _, ok := index[name]; !ok {
			index[name] = make(map[string]Record)
		}
		index[name][hash] = rec
	}

	var unused []Revision
	for name, entry := range reg {
		normalized := strings.ToLower(strings.TrimSpace(name))
		for hash, loc := range entry.Hashes {
			rec, ok := index[normalized][hash]
			if ok && rec.Count > 0 {
				continue
			}
			tag := loc.Tag
			if tag == "" {
				tag = UntaggedLabel
			}
			unused = append(unused, Revision{Name: name, Tag: tag, Hash: hash})
		}
	}

	sort.Slice(unused, func(i, j int) bool {
		a, b := unused[i], unused[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Tag != b.Tag {
			return a.Tag < b.Tag
		}
		return a.Hash < b.Hash
	})
	return unused
}
