package engine

import (
	"testing"

	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
)

// newTestEngine builds a small undirected interactome:
//
//	P1 - P2 (0.9), P2 - P3 (0.5), P3 - P4 (0.2), P4 - P5 (0.05)
//
// Expression vectors are [lung, liver, brain] with values exactly
// representable in half precision.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	g := graph.New(false)
	g.AddNode("P1", &graph.Attrs{
		NodeType:            graph.MetabolomeProtein,
		Info:                "hexokinase enzyme",
		Sequence:            "MKVA",
		BiologicalProcesses: []string{"GO:1"},
		Metabolites:         []string{"HMDB01"},
		Pathways:            []string{"glycolysis pathway"},
		Expression:          graph.NewExpressionVector([]float64{1.0, 0.125, 0}),
	})
	g.AddNode("P2", &graph.Attrs{
		NodeType:            graph.OtherProtein,
		Info:                "membrane transport protein",
		Sequence:            "MGG",
		BiologicalProcesses: []string{"GO:1", "GO:2"},
		Expression:          graph.NewExpressionVector([]float64{0.5, 0.25, 0}),
	})
	g.AddNode("P3", &graph.Attrs{
		NodeType:            graph.OtherProtein,
		Info:                "kinase regulator",
		BiologicalProcesses: []string{"GO:2"},
		MolecularFunctions:  []string{"GO:4"},
		Expression:          graph.NewExpressionVector([]float64{0.25, 0.75, 0}),
	})
	g.AddNode("P4", &graph.Attrs{
		NodeType:           graph.OtherProtein,
		MolecularFunctions: []string{"GO:4"},
		Expression:         graph.NewExpressionVector([]float64{0, 0, 0.5}),
	})
	g.AddNode("P5", &graph.Attrs{NodeType: graph.OtherProtein})

	for _, e := range []struct {
		from, to string
		score    float64
	}{
		{"P1", "P2", 0.9}, {"P2", "P3", 0.5}, {"P3", "P4", 0.2}, {"P4", "P5", 0.05},
	} {
		if err := g.AddEdge(e.from, e.to, e.score, ""); err != nil {
			t.Fatalf("AddEdge %s-%s: %v", e.from, e.to, err)
		}
	}

	maps := mappings.FromTables(mappings.Tables{
		BiologicalProcesses: map[string][]string{
			"GO:1": {"P1", "P2"},
			"GO:2": {"P2", "P3"},
			"GO:5": {"P1", "QX", "QY", "QZ"},
		},
		CellComponents: map[string][]string{
			"GO:3": {"P1"},
		},
		MolecularFunctions: map[string][]string{
			"GO:4": {"P3", "P4"},
		},
		GoNames: map[string]string{
			"GO:1": "glycolysis",
			"GO:3": "cytoplasm",
			"GO:4": "kinase activity",
			"GO:5": "sugar metabolism",
		},
		CovidGoNames: map[string]string{
			"GO:2": "viral response",
		},
		MetaboliteNames: map[string]string{
			"HMDB01": "glucose",
		},
		TissueIndex: map[string]int{
			"lung":  0,
			"liver": 1,
			"brain": 2,
		},
		GeneToProteins: map[string][]string{
			"HK1": {"P1", "P9"},
		},
	})

	return New(g, maps)
}

func TestEngineStats(t *testing.T) {
	e := newTestEngine(t)
	s := e.Stats()
	if s.Directed {
		t.Error("Directed = true")
	}
	if s.Nodes != 5 || s.Edges != 4 || s.Tissues != 3 {
		t.Errorf("Stats = %+v", s)
	}
}
