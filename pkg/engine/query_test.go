package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/interactome/biographdb/pkg/graph"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Expr
	}{
		{"bare term", `"GO:1"`, Leaf("GO:1")},
		{"single element list", `["GO:1"]`, Leaf("GO:1")},
		{"and", `["and", "GO:1", "GO:2"]`, And(Leaf("GO:1"), Leaf("GO:2"))},
		{"or", `["or", "GO:1", "GO:2"]`, Or(Leaf("GO:1"), Leaf("GO:2"))},
		{"not", `["not", "GO:1"]`, Not(Leaf("GO:1"))},
		{
			"nested",
			`["and", ["or", "GO:1", "GO:4"], ["not", "GO:2"]]`,
			And(Or(Leaf("GO:1"), Leaf("GO:4")), Not(Leaf("GO:2"))),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQuery([]byte(tc.input))
			if err != nil {
				t.Fatalf("ParseQuery(%s): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseQuery(%s) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"invalid json", `[`},
		{"empty list", `[]`},
		{"number leaf", `42`},
		{"number in list", `["and", 1, 2]`},
		{"unknown operator", `["xor", "GO:1", "GO:2"]`},
		{"operator not a string", `[["and"], "GO:1", "GO:2"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseQuery([]byte(tc.input)); !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("ParseQuery(%s) err = %v, want ErrInvalidQuery", tc.input, err)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	e := newTestEngine(t)
	all := e.Graph.NodeSet()

	cases := []struct {
		name string
		q    Expr
		want []string
	}{
		{"leaf", Leaf("GO:1"), []string{"P1", "P2"}},
		{"leaf in other category", Leaf("GO:4"), []string{"P3", "P4"}},
		{"unknown term is empty", Leaf("GO:999"), nil},
		{"and", And(Leaf("GO:1"), Leaf("GO:2")), []string{"P2"}},
		{"or", Or(Leaf("GO:1"), Leaf("GO:4")), []string{"P1", "P2", "P3", "P4"}},
		{"not complements", Not(Leaf("GO:1")), []string{"P3", "P4", "P5"}},
		{
			"not folds further operands",
			Not(Leaf("GO:1"), Leaf("GO:4")),
			[]string{"P5"},
		},
		{
			"nested",
			And(Or(Leaf("GO:1"), Leaf("GO:4")), Not(Leaf("GO:2"))),
			[]string{"P1", "P4"},
		},
		{"and with empty operand", And(Leaf("GO:1"), Leaf("GO:999")), nil},
		{"or with empty operand", Or(Leaf("GO:999"), Leaf("GO:1")), []string{"P1", "P2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Evaluate(tc.q, all)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			gotIDs := got.Sorted()
			if len(gotIDs) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(gotIDs, tc.want) {
				t.Errorf("Evaluate = %v, want %v", gotIDs, tc.want)
			}
		})
	}
}

func TestEvaluateRespectsCandidates(t *testing.T) {
	e := newTestEngine(t)
	candidates := graph.NewNodeSet("P2", "P3")

	got, err := e.Evaluate(Leaf("GO:1"), candidates)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !reflect.DeepEqual(got.Sorted(), []string{"P2"}) {
		t.Errorf("leaf over candidates = %v, want [P2]", got.Sorted())
	}

	// "not" complements against the candidates, not the whole graph.
	got, err = e.Evaluate(Not(Leaf("GO:1")), candidates)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !reflect.DeepEqual(got.Sorted(), []string{"P3"}) {
		t.Errorf("not over candidates = %v, want [P3]", got.Sorted())
	}
}

func TestEvaluateAlgebraicLaws(t *testing.T) {
	e := newTestEngine(t)
	all := e.Graph.NodeSet()

	eval := func(q Expr) graph.NodeSet {
		t.Helper()
		res, err := e.Evaluate(q, all)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		return res
	}

	// and is commutative.
	if !eval(And(Leaf("GO:1"), Leaf("GO:2"))).Equal(eval(And(Leaf("GO:2"), Leaf("GO:1")))) {
		t.Error("and is not commutative")
	}
	// or is idempotent.
	if !eval(Or(Leaf("GO:1"), Leaf("GO:1"))).Equal(eval(Leaf("GO:1"))) {
		t.Error("or is not idempotent")
	}
	// not is the complement against the candidates.
	union := eval(Or(Leaf("GO:1"), Not(Leaf("GO:1"))))
	if !union.Equal(all) {
		t.Errorf("term or its complement covers %d of %d nodes", union.Len(), all.Len())
	}
	if eval(And(Leaf("GO:1"), Not(Leaf("GO:1")))).Len() != 0 {
		t.Error("term and its complement overlap")
	}
}

func TestEvaluateErrors(t *testing.T) {
	e := newTestEngine(t)
	all := e.Graph.NodeSet()

	cases := []struct {
		name string
		q    Expr
	}{
		{"empty expression", Expr{}},
		{"unknown operator", Expr{Op: Op("xor"), Operands: []Expr{Leaf("GO:1")}}},
		{"operator without operands", Expr{Op: OpAnd}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.Evaluate(tc.q, all); !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("err = %v, want ErrInvalidQuery", err)
			}
		})
	}
}
