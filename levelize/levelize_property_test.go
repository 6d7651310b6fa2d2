package levelize_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/The-OpenROAD-Project/OpenSTA-sub003/levelize"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/network"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/report"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/staconfig"
	"github.com/The-OpenROAD-Project/OpenSTA-sub003/tgraph"
)

// TestLevelize_AnyDAGSatisfiesLevelOrdering builds a random acyclic edge
// set (every edge from a lower-numbered to a higher-numbered vertex, so
// the graph can never contain a cycle) and checks the defining invariant
// levelize.New/Levelize promises: level(from) < level(to) for every edge
// search would traverse.
func TestLevelize_AnyDAGSatisfiesLevelOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 10).Draw(t, "n")
		g := tgraph.NewGraph()
		ids := make([]tgraph.VertexID, n)
		for i := 0; i < n; i++ {
			id, _ := g.AddPin(network.Pin{ID: network.ID(rapid.StringMatching(`[a-z]{3,6}`).Draw(t, "pin"))}, network.DirInternal)
			ids[i] = id
		}
		var edges [][2]int
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rapid.Bool().Draw(t, "edge") {
					if _, err := g.AddEdge(ids[i], ids[j], tgraph.RoleCombinational, nil); err != nil {
						t.Fatalf("AddEdge: %v", err)
					}
					edges = append(edges, [2]int{i, j})
				}
			}
		}

		lv, err := levelize.New(g, staconfig.DefaultConfig(), report.Default, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := lv.Levelize(); err != nil {
			t.Fatalf("Levelize: %v", err)
		}
		if len(lv.Loops()) != 0 {
			t.Fatalf("an edge-(i<j)-only graph must never contain a feedback loop, got %d", len(lv.Loops()))
		}
		for _, e := range edges {
			from, to := g.Vertex(ids[e[0]]).Level, g.Vertex(ids[e[1]]).Level
			if from >= to {
				t.Fatalf("level(%d)=%d not < level(%d)=%d", e[0], from, e[1], to)
			}
		}
	})
}
