// Package intern owns the three interning tables arrival search shares
// across every worker: ClkInfo (a tag's clock history), Tag (an arrival's
// identity apart from its value) and TagGroup (the set of tags live at one
// vertex/MinMax pair). Equal keys collapse to one arena slot and every
// reference after that point is a small integer id, matching spec §4.5's
// "two arrivals... share one Tag entry whenever [their fields] are equal".
//
// Arenas are append-only and published behind an atomic pointer (arena.go)
// so a worker goroutine can read an id without taking a lock; only the
// rare "first time we see this key" path takes the table's mutex.
package intern

import (
	"sync"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/report"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staerr"
)

// Interner holds the ClkInfo/Tag/TagGroup tables for one analysis run.
// Zero value is not usable; construct with New.
type Interner struct {
	cfg staconfig.Config
	rpt *report.Report

	clkMu    sync.Mutex
	clk      *atomicArena[ClkInfo]
	clkByKey map[ClkInfo]ClkInfoID

	tagMu    sync.Mutex
	tag      *atomicArena[Tag]
	tagByKey map[Tag]TagID

	grpMu    sync.Mutex
	grp      *atomicArena[[]TagGroupEntry]
	grpByKey map[string]TagGroupID

	sceneMu sync.Mutex
	scenes  map[sceneKey]bool
}

// New constructs an Interner over cfg's MaxTagIndex/MaxTagGroupIndex
// ceilings. A nil rpt defaults to report.Default.
func New(cfg staconfig.Config, rpt *report.Report) *Interner {
	if rpt == nil {
		rpt = report.Default
	}
	return &Interner{cfg: cfg, rpt: rpt}
}

// capacityCheck reports staerr.NewCapacity(what, value, limit) to rpt as
// Critical before returning it, matching levelize.Levelizer's
// capacityCheck convention.
func (in *Interner) capacityCheck(what string, value, limit int64) error {
	if err := staerr.NewCapacity(what, value, limit); err != nil {
		in.rpt.Criticalf("%v", err)
		return err
	}
	return nil
}
