package intern

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"

// TagID is an interned Tag's arena index; zero is invalid. Two sibling
// tags (same key but opposite RF) are always allocated as an adjacent
// pair, so SiblingTagID is index^1 — O(1) index arithmetic (spec §4.5).
type TagID uint32

// Valid reports whether id refers to an interned Tag.
func (id TagID) Valid() bool { return id != 0 }

// SiblingTagID returns the opposite-RF sibling of id, allocated alongside
// it at InternTag time.
func SiblingTagID(id TagID) TagID { return id ^ 1 }

// InputDelayRef is an opaque handle to an sdc set_input_delay object. sdc
// owns the actual InputDelay data; intern only needs a comparable id so
// Tag can carry a reference without depending on sdc.
type InputDelayRef struct {
	ID uint32
}

// ExceptionStateID is an opaque handle to an sdc ExceptionState — "the
// next -thru an edge is waiting for" (spec §3). A tag carries at most one
// at a time: the original tracks exception progress per edge as a single
// pending state, so a tag's exception bookkeeping collapses to the most
// specific currently-pending state rather than a set.
type ExceptionStateID uint32

// Valid reports whether id refers to an interned exception state.
func (id ExceptionStateID) Valid() bool { return id != 0 }

// Tag is an arrival's identity apart from its numeric value (spec §4.5).
// Every field is comparable, so Tag is used directly as its own interning
// key.
type Tag struct {
	RF             liberty.RiseFall
	MinMax         liberty.MinMax
	Corner         liberty.Corner
	ClkInfo        ClkInfoID
	IsClock        bool
	InputDelay     InputDelayRef
	IsSegmentStart bool
	ExceptionState ExceptionStateID
	IsFilter       bool
}

func (in *Interner) ensureTagArena() {
	if in.tag == nil {
		// Two padding slots keep every real pair's base index even, so
		// SiblingTagID's XOR-1 always lands on the correct partner.
		in.tag = newAtomicArena[Tag](2)
	}
}

// InternTag returns the id of key, allocating key and its opposite-RF
// sibling together as an adjacent pair the first time either is seen.
func (in *Interner) InternTag(key Tag) (TagID, error) {
	in.tagMu.Lock()
	defer in.tagMu.Unlock()
	in.ensureTagArena()
	if in.tagByKey == nil {
		in.tagByKey = make(map[Tag]TagID)
	}
	if id, ok := in.tagByKey[key]; ok {
		return id, nil
	}
	if err := in.registerScene(key.MinMax, key.Corner); err != nil {
		return 0, err
	}

	riseKey, fallKey := key, key
	riseKey.RF = liberty.Rise
	fallKey.RF = liberty.Fall

	next := int64(in.tag.length())
	if err := in.capacityCheck("tag", next+1, in.cfg.MaxTagIndex); err != nil {
		return 0, err
	}

	base := in.tag.appendLocked(riseKey, fallKey)
	riseID := TagID(base)
	fallID := TagID(base + 1)
	in.tagByKey[riseKey] = riseID
	in.tagByKey[fallKey] = fallID

	if key.RF == liberty.Rise {
		return riseID, nil
	}
	return fallID, nil
}

// Tag returns the interned value at id, or the zero Tag if id is invalid
// or unknown.
func (in *Interner) Tag(id TagID) Tag {
	in.ensureTagArena()
	return in.tag.get(int(id))
}
