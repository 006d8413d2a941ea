package engine

import (
	"encoding/json"
	"fmt"

	"github.com/interactome/biographdb/pkg/graph"
)

// Op is a boolean operator of the ontology query grammar.
type Op string

const (
	OpAnd Op = "and"
	OpOr  Op = "or"
	OpNot Op = "not"
)

// Expr is one node of an ontology query tree: either a Term leaf naming a GO
// id, or an operator applied to one or more operands.
//
// The grammar as it crosses the wire is a nested JSON list, e.g.
//
//	["and", ["or", "GO:0005737", "GO:0005829"], ["not", "GO:0016301"]]
//
// ParseQuery converts that form into an Expr tree.
type Expr struct {
	Term     string
	Op       Op
	Operands []Expr
}

// Leaf builds a term expression.
func Leaf(term string) Expr { return Expr{Term: term} }

// And, Or and Not build compound expressions.
func And(operands ...Expr) Expr { return Expr{Op: OpAnd, Operands: operands} }
func Or(operands ...Expr) Expr  { return Expr{Op: OpOr, Operands: operands} }
func Not(operands ...Expr) Expr { return Expr{Op: OpNot, Operands: operands} }

// ParseQuery decodes the nested-list JSON form of the grammar.
func ParseQuery(data []byte) (Expr, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Expr{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return parseExpr(v)
}

func parseExpr(v any) (Expr, error) {
	switch val := v.(type) {
	case string:
		return Leaf(val), nil
	case []any:
		if len(val) == 0 {
			return Expr{}, fmt.Errorf("%w: empty form", ErrInvalidQuery)
		}
		if len(val) == 1 {
			term, ok := val[0].(string)
			if !ok {
				return Expr{}, fmt.Errorf("%w: leaf must be a term id string", ErrInvalidQuery)
			}
			return Leaf(term), nil
		}
		head, ok := val[0].(string)
		if !ok {
			return Expr{}, fmt.Errorf("%w: operator must be a string", ErrInvalidQuery)
		}
		op := Op(head)
		if op != OpAnd && op != OpOr && op != OpNot {
			return Expr{}, fmt.Errorf("%w: operator %q, want and/or/not", ErrInvalidQuery, head)
		}
		operands := make([]Expr, 0, len(val)-1)
		for _, item := range val[1:] {
			sub, err := parseExpr(item)
			if err != nil {
				return Expr{}, err
			}
			operands = append(operands, sub)
		}
		return Expr{Op: op, Operands: operands}, nil
	default:
		return Expr{}, fmt.Errorf("%w: leaf must be a term id string", ErrInvalidQuery)
	}
}

// Evaluate resolves an ontology query against the candidate set.
//
// A leaf resolves to the proteins carrying the term (across all three
// ontology categories) intersected with candidates; unknown term ids resolve
// to the empty set. "and"/"or" fold left over the operand results with
// intersection/union, seeded by the first operand. "not" seeds with
// candidates minus the first operand and subtracts each further operand from
// the running result, so ["not", A, B] equals (candidates − A) − B.
func (e *Engine) Evaluate(q Expr, candidates graph.NodeSet) (graph.NodeSet, error) {
	if q.Op == "" {
		if q.Term == "" {
			return nil, fmt.Errorf("%w: empty expression", ErrInvalidQuery)
		}
		return e.resolveTerm(q.Term, candidates)
	}
	if q.Op != OpAnd && q.Op != OpOr && q.Op != OpNot {
		return nil, fmt.Errorf("%w: operator %q, want and/or/not", ErrInvalidQuery, q.Op)
	}
	if len(q.Operands) == 0 {
		return nil, fmt.Errorf("%w: operator %q needs at least one operand", ErrInvalidQuery, q.Op)
	}

	var res graph.NodeSet
	for i, operand := range q.Operands {
		sub, err := e.Evaluate(operand, candidates)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			if q.Op == OpNot {
				res = candidates.Difference(sub)
			} else {
				res = sub
			}
			continue
		}
		switch q.Op {
		case OpAnd:
			res = res.Intersect(sub)
		case OpOr:
			res = res.Union(sub)
		case OpNot:
			res = res.Difference(sub)
		}
	}
	return res, nil
}

// resolveTerm looks a GO id up across the three ontology member tables and
// intersects the membership with candidates.
func (e *Engine) resolveTerm(term string, candidates graph.NodeSet) (graph.NodeSet, error) {
	members, err := e.Maps.TermMembers(term)
	if err != nil {
		return nil, err
	}
	return graph.NewNodeSet(members...).Intersect(candidates), nil
}
