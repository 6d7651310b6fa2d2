package search

import (
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/delaycalc"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// defaultLoading sums Liberty pin capacitance over edge's destination net's
// load pins (spec §4.4's fallback when no parasitic network is available).
// A vertex with no connected net, or whose loads have no Liberty port
// (top-level output ports, for instance), contributes zero.
func (s *Searcher) defaultLoading(edge *tgraph.Edge, toRF liberty.RiseFall, ap tgraph.AnalysisPoint) delaycalc.Loading {
	if s.lib == nil {
		return delaycalc.Loading{}
	}
	to := s.g.Vertex(edge.To)
	if to == nil {
		return delaycalc.Loading{}
	}
	net, ok := s.net.Net(to.Pin)
	if !ok {
		return delaycalc.Loading{}
	}
	var cap float64
	for _, loadPin := range s.net.Loads(net) {
		port, ok := s.net.Port(loadPin)
		if !ok {
			continue
		}
		cap += s.lib.Capacitance(port, ap.Corner, ap.MinMax, toRF)
	}
	return delaycalc.Loading{LumpedCap: cap}
}
