package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
)

func TestFilterByTissue(t *testing.T) {
	e := newTestEngine(t)
	all := e.Graph.NodeSet()

	got, err := e.FilterByTissue(all, "lung", 0.25)
	if err != nil {
		t.Fatalf("FilterByTissue: %v", err)
	}
	// P3 sits exactly at the threshold and is excluded; the bound is strict.
	if !reflect.DeepEqual(got.Sorted(), []string{"P1", "P2"}) {
		t.Errorf("lung > 0.25 = %v, want [P1 P2]", got.Sorted())
	}

	got, err = e.FilterByTissue(all, "lung", 0)
	if err != nil {
		t.Fatalf("FilterByTissue: %v", err)
	}
	if !reflect.DeepEqual(got.Sorted(), []string{"P1", "P2", "P3"}) {
		t.Errorf("lung > 0 = %v, want [P1 P2 P3]", got.Sorted())
	}

	// Ids outside the graph are dropped silently.
	got, err = e.FilterByTissue(graph.NewNodeSet("P1", "ghost"), "lung", 0)
	if err != nil {
		t.Fatalf("FilterByTissue: %v", err)
	}
	if !reflect.DeepEqual(got.Sorted(), []string{"P1"}) {
		t.Errorf("with ghost = %v, want [P1]", got.Sorted())
	}

	if _, err := e.FilterByTissue(all, "bone", 0); !errors.Is(err, mappings.ErrUnknownTissue) {
		t.Errorf("unknown tissue err = %v", err)
	}
}

func TestRankOntologyTerms(t *testing.T) {
	e := newTestEngine(t)
	sub := e.Graph.Clone()

	scores, err := e.RankOntologyTerms(sub, "lung", mappings.BiologicalProcesses, 0, 0)
	if err != nil {
		t.Fatalf("RankOntologyTerms: %v", err)
	}

	// GO:1 {P1, P2}: (1.0 + 0.5) / 2 = 0.75
	// GO:2 {P2, P3}: (0.5 + 0.25) / 2 = 0.375
	// GO:5 {P1, QX, QY, QZ}: only P1 present, 1.0 / 4 = 0.25
	want := []TermScore{
		{Term: "GO:1", Name: "glycolysis", Score: 0.75},
		{Term: "GO:2", Name: "viral response", Score: 0.375},
		{Term: "GO:5", Name: "sugar metabolism", Score: 0.25},
	}
	if !reflect.DeepEqual(scores, want) {
		t.Errorf("scores = %+v, want %+v", scores, want)
	}
}

func TestRankOntologyTermsCoverageWeighting(t *testing.T) {
	e := newTestEngine(t)

	// On the subgraph {P1} the score of GO:1 halves: the absent member P2
	// still counts in the denominator.
	sub := e.Graph.Subgraph(graph.NewNodeSet("P1"))
	scores, err := e.RankOntologyTerms(sub, "lung", mappings.BiologicalProcesses, 0, 1)
	if err != nil {
		t.Fatalf("RankOntologyTerms: %v", err)
	}
	if len(scores) != 1 || scores[0].Term != "GO:1" || scores[0].Score != 0.5 {
		t.Errorf("scores = %+v, want GO:1 at 0.5", scores)
	}
}

func TestRankOntologyTermsSizeThresholdAndLimit(t *testing.T) {
	e := newTestEngine(t)
	sub := e.Graph.Clone()

	// Only terms with more than 2 members participate.
	scores, err := e.RankOntologyTerms(sub, "lung", mappings.BiologicalProcesses, 2, 0)
	if err != nil {
		t.Fatalf("RankOntologyTerms: %v", err)
	}
	if len(scores) != 1 || scores[0].Term != "GO:5" {
		t.Errorf("size threshold 2: scores = %+v, want only GO:5", scores)
	}

	scores, err = e.RankOntologyTerms(sub, "lung", mappings.BiologicalProcesses, 0, 2)
	if err != nil {
		t.Fatalf("RankOntologyTerms: %v", err)
	}
	if len(scores) != 2 || scores[0].Term != "GO:1" || scores[1].Term != "GO:2" {
		t.Errorf("limit 2: scores = %+v", scores)
	}
}

func TestRankOntologyTermsTiesOrderByTermID(t *testing.T) {
	g := graph.New(false)
	g.AddNode("P1", &graph.Attrs{Expression: graph.NewExpressionVector([]float64{1})})
	maps := mappings.FromTables(mappings.Tables{
		BiologicalProcesses: map[string][]string{
			"GO:b": {"P1"},
			"GO:a": {"P1"},
		},
		TissueIndex: map[string]int{"lung": 0},
	})
	e := New(g, maps)

	scores, err := e.RankOntologyTerms(g.Clone(), "lung", mappings.BiologicalProcesses, 0, 0)
	if err != nil {
		t.Fatalf("RankOntologyTerms: %v", err)
	}
	if len(scores) != 2 || scores[0].Term != "GO:a" || scores[1].Term != "GO:b" {
		t.Errorf("tie order = %+v, want GO:a before GO:b", scores)
	}
}

func TestRankOntologyTermsErrors(t *testing.T) {
	e := newTestEngine(t)
	sub := e.Graph.Clone()

	if _, err := e.RankOntologyTerms(sub, "bone", mappings.BiologicalProcesses, 0, 0); !errors.Is(err, mappings.ErrUnknownTissue) {
		t.Errorf("unknown tissue err = %v", err)
	}
	if _, err := e.RankOntologyTerms(sub, "lung", mappings.Ontology("pathways"), 0, 0); !errors.Is(err, mappings.ErrUnknownMapping) {
		t.Errorf("unknown category err = %v", err)
	}
}

func TestRankTissues(t *testing.T) {
	e := newTestEngine(t)

	scores, err := e.RankTissues(graph.NewNodeSet("P1", "P2"), 0)
	if err != nil {
		t.Fatalf("RankTissues: %v", err)
	}

	// lung (1.0 + 0.5)/2 = 0.75, liver (0.125 + 0.25)/2 = 0.1875, brain 0
	// and omitted.
	want := []TissueScore{
		{Tissue: "lung", Index: 0, Score: 0.75},
		{Tissue: "liver", Index: 1, Score: 0.1875},
	}
	if len(scores) != len(want) {
		t.Fatalf("scores = %+v, want %+v", scores, want)
	}
	for i := range want {
		if scores[i].Tissue != want[i].Tissue || scores[i].Index != want[i].Index {
			t.Errorf("scores[%d] = %+v, want %+v", i, scores[i], want[i])
		}
		if math.Abs(scores[i].Score-want[i].Score) > 1e-12 {
			t.Errorf("scores[%d].Score = %v, want %v", i, scores[i].Score, want[i].Score)
		}
	}
}

func TestRankTissuesLimitAndEmpty(t *testing.T) {
	e := newTestEngine(t)

	scores, err := e.RankTissues(graph.NewNodeSet("P1", "P2"), 1)
	if err != nil {
		t.Fatalf("RankTissues: %v", err)
	}
	if len(scores) != 1 || scores[0].Tissue != "lung" {
		t.Errorf("limit 1 = %+v", scores)
	}

	// A node with no expression produces no ranking.
	scores, err = e.RankTissues(graph.NewNodeSet("P5"), 0)
	if err != nil {
		t.Fatalf("RankTissues: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("P5 ranking = %+v, want empty", scores)
	}

	scores, err = e.RankTissues(graph.NewNodeSet(), 0)
	if err != nil {
		t.Fatalf("RankTissues: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("empty set ranking = %+v, want empty", scores)
	}
}

func TestRankTissuesTiesOrderByIndex(t *testing.T) {
	g := graph.New(false)
	g.AddNode("P1", &graph.Attrs{Expression: graph.NewExpressionVector([]float64{0.5, 0.5})})
	maps := mappings.FromTables(mappings.Tables{
		TissueIndex: map[string]int{"lung": 0, "liver": 1},
	})
	e := New(g, maps)

	scores, err := e.RankTissues(graph.NewNodeSet("P1"), 0)
	if err != nil {
		t.Fatalf("RankTissues: %v", err)
	}
	if len(scores) != 2 || scores[0].Tissue != "lung" || scores[1].Tissue != "liver" {
		t.Errorf("tie order = %+v, want lung before liver", scores)
	}
}
