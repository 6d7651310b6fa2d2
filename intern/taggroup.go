package intern

import (
	"fmt"
	"sort"
	"strings"
)

// TagGroupID is an interned TagGroup's arena index; zero is invalid.
type TagGroupID uint32

// Valid reports whether id refers to an interned TagGroup.
func (id TagGroupID) Valid() bool { return id != 0 }

// TagGroupEntry is one live tag at a vertex/MinMax pair, alongside the
// index into that vertex's Path array search stores its arrival at (spec
// §4.5: "a TagGroup... bundles every Tag live at a vertex... with the
// index of its Path record").
type TagGroupEntry struct {
	Tag       TagID
	PathIndex int
}

// groupKey canonicalizes entries (sorted by Tag, ties by PathIndex) into a
// string so a []TagGroupEntry slice can dedup through a Go map even though
// slices aren't themselves comparable.
func groupKey(entries []TagGroupEntry) string {
	sorted := make([]TagGroupEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Tag != sorted[j].Tag {
			return sorted[i].Tag < sorted[j].Tag
		}
		return sorted[i].PathIndex < sorted[j].PathIndex
	})
	var b strings.Builder
	for _, e := range sorted {
		fmt.Fprintf(&b, "%d:%d;", e.Tag, e.PathIndex)
	}
	return b.String()
}

func (in *Interner) ensureGroupArena() {
	if in.grp == nil {
		in.grp = newAtomicArena[[]TagGroupEntry](1)
	}
}

// InternTagGroup returns the id of the canonical (sorted by Tag, then
// PathIndex; duplicate entries are kept) form of entries, allocating a new entry the first time this exact set is
// seen.
func (in *Interner) InternTagGroup(entries []TagGroupEntry) (TagGroupID, error) {
	in.grpMu.Lock()
	defer in.grpMu.Unlock()
	in.ensureGroupArena()
	if in.grpByKey == nil {
		in.grpByKey = make(map[string]TagGroupID)
	}

	sorted := make([]TagGroupEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Tag != sorted[j].Tag {
			return sorted[i].Tag < sorted[j].Tag
		}
		return sorted[i].PathIndex < sorted[j].PathIndex
	})

	key := groupKey(sorted)
	if id, ok := in.grpByKey[key]; ok {
		return id, nil
	}

	next := int64(in.grp.length())
	if err := in.capacityCheck("taggroup", next, in.cfg.MaxTagGroupIndex); err != nil {
		return 0, err
	}
	id := TagGroupID(in.grp.appendLocked(sorted))
	in.grpByKey[key] = id
	return id, nil
}

// TagGroup returns the interned entry slice at id, or nil if id is invalid
// or unknown. The returned slice is a snapshot copy; mutating it has no
// effect on the interned value.
func (in *Interner) TagGroup(id TagGroupID) []TagGroupEntry {
	in.ensureGroupArena()
	entries := in.grp.get(int(id))
	if entries == nil {
		return nil
	}
	out := make([]TagGroupEntry, len(entries))
	copy(out, entries)
	return out
}
