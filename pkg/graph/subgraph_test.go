package graph

import (
	"reflect"
	"testing"
)

func TestSubgraphInduced(t *testing.T) {
	g := buildTriangle(t)

	sub := g.Subgraph(NewNodeSet("A", "B", "ghost"))
	if got := sub.Nodes(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("Nodes = %v, want [A B]", got)
	}
	if sub.NumEdges() != 1 {
		t.Errorf("NumEdges = %d, want 1", sub.NumEdges())
	}
	if _, ok := sub.Edge("B", "C"); ok {
		t.Error("edge to excluded node survived")
	}

	// The copy is independent of the parent.
	sub.RemoveNodes([]string{"A"})
	if !g.HasNode("A") || g.NumEdges() != 2 {
		t.Error("removing from the subgraph modified the parent")
	}

	// Attrs values are shared, not copied.
	pa, _ := g.Attrs("B")
	sa, _ := sub.Attrs("B")
	if pa != sa {
		t.Error("subgraph should share Attrs pointers with the parent")
	}
}

func TestSubgraphIdempotent(t *testing.T) {
	g := buildTriangle(t)
	once := g.Subgraph(NewNodeSet("A", "B", "C"))
	twice := once.Subgraph(once.NodeSet())

	if !once.NodeSet().Equal(twice.NodeSet()) {
		t.Error("node sets differ")
	}
	if !reflect.DeepEqual(once.Edges(), twice.Edges()) {
		t.Error("edge sets differ")
	}
}

func TestPrune(t *testing.T) {
	g := buildTriangle(t)

	// Threshold 0.5 drops B-C (0.05) and orphans C.
	pruned := g.Prune(0.5)
	if got := pruned.Nodes(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("Nodes = %v, want [A B]", got)
	}
	if pruned.NumEdges() != 1 {
		t.Errorf("NumEdges = %d, want 1", pruned.NumEdges())
	}

	// The receiver is untouched.
	if g.Len() != 3 || g.NumEdges() != 2 {
		t.Error("Prune modified the receiver")
	}
}

func TestPruneThresholdIsInclusive(t *testing.T) {
	g := New(false)
	g.AddNode("A", nil)
	g.AddNode("B", nil)
	if err := g.AddEdge("A", "B", 0.5, ""); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	// An edge scored exactly at the threshold is removed.
	if got := g.Prune(0.5).Len(); got != 0 {
		t.Errorf("Len after prune at exact threshold = %d, want 0", got)
	}
	// Just below the score it survives.
	if got := g.Prune(0.49).Len(); got != 2 {
		t.Errorf("Len after prune below score = %d, want 2", got)
	}
}

func TestPruneMonotonic(t *testing.T) {
	g := New(false)
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		g.AddNode(id, nil)
	}
	edges := []struct {
		from, to string
		score    float64
	}{
		{"A", "B", 0.9}, {"B", "C", 0.6}, {"C", "D", 0.3}, {"D", "E", 0.1},
	}
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, e.score, ""); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	prev := g.Prune(0).NodeSet()
	for _, threshold := range []float64{0.2, 0.5, 0.8, 1.0} {
		cur := g.Prune(threshold).NodeSet()
		for id := range cur {
			if !prev.Has(id) {
				t.Fatalf("threshold %v resurrected node %s", threshold, id)
			}
		}
		prev = cur
	}
}

func TestPropagate(t *testing.T) {
	// Path A - B - C - D plus isolated E.
	g := New(false)
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		g.AddNode(id, nil)
	}
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}} {
		if err := g.AddEdge(e[0], e[1], 1, ""); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	cases := []struct {
		name     string
		seeds    []string
		diameter int
		want     []string
	}{
		{"zero diameter keeps seeds", []string{"A"}, 0, []string{"A"}},
		{"one hop", []string{"A"}, 1, []string{"A", "B"}},
		{"two hops", []string{"A"}, 2, []string{"A", "B", "C"}},
		{"saturates", []string{"A"}, 10, []string{"A", "B", "C", "D"}},
		{"multiple seeds merge", []string{"A", "D"}, 1, []string{"A", "B", "C", "D"}},
		{"absent seeds skipped", []string{"A", "ghost"}, 0, []string{"A"}},
		{"no seeds", nil, 3, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Propagate(tc.seeds, tc.diameter).Sorted()
			want := tc.want
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Propagate(%v, %d) = %v, want %v", tc.seeds, tc.diameter, got, want)
			}
		})
	}
}

func TestPropagateMonotonic(t *testing.T) {
	g := buildTriangle(t)
	prev := g.Propagate([]string{"A"}, 0)
	for d := 1; d <= 4; d++ {
		cur := g.Propagate([]string{"A"}, d)
		for id := range prev {
			if !cur.Has(id) {
				t.Fatalf("diameter %d lost node %s", d, id)
			}
		}
		prev = cur
	}
}

func TestPropagateDirectedFollowsSuccessors(t *testing.T) {
	g := New(true)
	for _, id := range []string{"A", "B", "C"} {
		g.AddNode(id, nil)
	}
	// A -> B and C -> B. From B nothing is reachable.
	if err := g.AddEdge("A", "B", 1, ""); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("C", "B", 1, ""); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	if got := g.Propagate([]string{"A"}, 5).Sorted(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Propagate(A) = %v, want [A B]", got)
	}
	if got := g.Propagate([]string{"B"}, 5).Sorted(); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("Propagate(B) = %v, want [B]", got)
	}
}
