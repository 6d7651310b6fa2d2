package search

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/intern"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
)

// findLaunchClkPath walks dataRef's own Prev chain back to the first Path
// whose Tag is still on the clock network: a data path's immediate
// ancestor past its launching register's clock-to-Q (or latch data-to-Q)
// edge is exactly that register's own CLK-pin arrival, still tagged
// IsClock (spec §4.6's thruClkInfo only flips IsClock going forward, so
// walking backward finds it one hop past where it flipped).
func (s *Searcher) findLaunchClkPath(dataRef intern.PathRef) (intern.PathRef, bool) {
	cur := dataRef
	for cur.Valid() {
		p, ok := s.Path(cur)
		if !ok {
			return intern.PathRef{}, false
		}
		if s.in.Tag(p.Tag).IsClock {
			return cur, true
		}
		cur = p.Prev
	}
	return intern.PathRef{}, false
}

// clockAncestry returns the chain of PathRefs from ref back to the clock
// network's source (Prev invalid), in source-to-pin order — the walk
// Crpr.hh's findCrpr does along each side's clock path looking for a
// shared pin.
func (s *Searcher) clockAncestry(ref intern.PathRef) []intern.PathRef {
	var chain []intern.PathRef
	cur := ref
	for cur.Valid() {
		chain = append(chain, cur)
		p, ok := s.Path(cur)
		if !ok {
			break
		}
		cur = p.Prev
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// crprPivot finds the deepest (closest to the two registers) PathRef pair
// that both chains agree on: same vertex throughout, and under
// SamePinSameRF, the same transition too. It returns ok=false when the two
// clock paths never shared a vertex (different clocks, or no common
// buffering).
func (s *Searcher) crprPivot(launch, capture []intern.PathRef, mode staconfig.CRPRMode) (intern.PathRef, intern.PathRef, bool) {
	n := len(launch)
	if len(capture) < n {
		n = len(capture)
	}
	var bestL, bestC intern.PathRef
	found := false
	for i := 0; i < n; i++ {
		if launch[i].Vertex != capture[i].Vertex {
			break
		}
		if mode == staconfig.SamePinSameRF {
			lp, _ := s.Path(launch[i])
			cp, _ := s.Path(capture[i])
			if s.in.Tag(lp.Tag).RF != s.in.Tag(cp.Tag).RF {
				break
			}
		}
		bestL, bestC = launch[i], capture[i]
		found = true
	}
	return bestL, bestC, found
}

// crprAdjustment computes the amount by which a check's required time
// should be corrected to remove common-clock-path pessimism (spec §4.7):
// the two sides of a check run at opposite MinMax (seedCheckRequireds),
// so the clock segment both launch and capture share gets derated twice,
// once as Max and once as Min. The difference between the two computed
// arrivals at the deepest shared pin is added back to required — positive
// when the launch side's derating made that shared segment look slower
// than the capture side's did, which is impossible in reality since it is
// the same physical path. Returns 0 when no shared pin is found (the two
// registers don't share clock buffering, or dataRef's source isn't a
// register at all — an unconstrained or input-delay launch), and also
// when sdc.Variables.CrprEnabled is false: a conservative run can disable
// CRPR outright and keep the uncorrected (pessimistic) margin instead.
// The shared-pin RF matching mode (SamePinAnyRF vs SamePinSameRF) comes
// from the same Variables, not staconfig.Config.CRPRMode — Variables is
// the one sdc.Sdc callers can change per-run without rebuilding cfg.
func (s *Searcher) crprAdjustment(dataRef, clkRef intern.PathRef) float64 {
	vars := s.sdcs.Variables()
	if !vars.CrprEnabled {
		return 0
	}
	launchClk, ok := s.findLaunchClkPath(dataRef)
	if !ok {
		return 0
	}
	launchChain := s.clockAncestry(launchClk)
	captureChain := s.clockAncestry(clkRef)
	lp, cp, ok := s.crprPivot(launchChain, captureChain, vars.CrprMode)
	if !ok {
		return 0
	}
	lPath, _ := s.Path(lp)
	cPath, _ := s.Path(cp)
	return lPath.Arrival - cPath.Arrival
}
