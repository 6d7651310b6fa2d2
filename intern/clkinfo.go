package intern

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// ClkInfoID is an interned ClkInfo's arena index; zero is invalid.
type ClkInfoID uint32

// Valid reports whether id refers to an interned ClkInfo.
func (id ClkInfoID) Valid() bool { return id != 0 }

// ClockEdgeRef identifies one edge of one declared clock's waveform. sdc
// owns the full Clock/ClockEdge model; intern only needs enough of it to
// be a comparable interning key.
type ClockEdgeRef struct {
	Clock string
	RF    liberty.RiseFall
}

// PathRef is an opaque reference to a Path record owned by search's
// per-vertex path arrays. intern never dereferences it; it exists so
// ClkInfo can carry a CRPR clock-path pointer (spec §4.5) without
// depending on the search package (search already depends on intern).
type PathRef struct {
	Vertex tgraph.VertexID
	Index  int
}

// Valid reports whether r refers to an actual path; the zero PathRef means
// "no CRPR clock path".
func (r PathRef) Valid() bool { return r.Vertex.Valid() }

// ClkInfo is the interning key for an arrival's clock history (spec §4.5).
// Every field is a plain comparable value so a ClkInfo can be used as a Go
// map key directly — two ClkInfos are equal iff every field matches,
// exactly the equality spec §3 requires for them to share one allocation.
type ClkInfo struct {
	ClockEdge    ClockEdgeRef
	SrcPin       network.Pin
	Propagated   bool
	GenClkSrc    network.Pin
	HasGenClkSrc bool
	PulseSense   liberty.PulseSense
	Insertion    float64
	Latency      float64
	Uncertainty  float64
	MinMax       liberty.MinMax
	Corner       liberty.Corner
	CrprClkPath  PathRef
}

func (in *Interner) ensureClkArena() {
	if in.clk == nil {
		in.clk = newAtomicArena[ClkInfo](1)
	}
}

// InternClkInfo returns the id of key, allocating a new entry the first
// time this exact tuple is seen.
func (in *Interner) InternClkInfo(key ClkInfo) (ClkInfoID, error) {
	in.clkMu.Lock()
	defer in.clkMu.Unlock()
	in.ensureClkArena()
	if in.clkByKey == nil {
		in.clkByKey = make(map[ClkInfo]ClkInfoID)
	}
	if id, ok := in.clkByKey[key]; ok {
		return id, nil
	}
	if err := in.registerScene(key.MinMax, key.Corner); err != nil {
		return 0, err
	}
	next := int64(in.clk.length())
	if err := in.capacityCheck("clkinfo", next, in.cfg.MaxTagIndex); err != nil {
		return 0, err
	}
	id := ClkInfoID(in.clk.appendLocked(key))
	in.clkByKey[key] = id
	return id, nil
}

// ClkInfo returns the interned value at id, or the zero ClkInfo if id is
// invalid or unknown.
func (in *Interner) ClkInfo(id ClkInfoID) ClkInfo {
	in.ensureClkArena()
	return in.clk.get(int(id))
}
