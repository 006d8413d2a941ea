package graph

import "sort"

// NodeType classifies a protein node.
type NodeType string

const (
	// MetabolomeProtein marks proteins referenced by the metabolome data set,
	// carrying pathway and metabolite annotations.
	MetabolomeProtein NodeType = "metabolome_protein"
	// OtherProtein marks proteins with no metabolome reference.
	OtherProtein NodeType = "other_protein"
)

// Attrs holds the annotation set of a protein node.
//
// Attrs values are treated as immutable once registered on a graph: subgraph
// copies share them instead of deep-copying.
type Attrs struct {
	NodeType NodeType `json:"node_type"`

	// Info is the free-text description of the products of the mRNA coding
	// the protein.
	Info string `json:"info"`

	// Sequence is the amino acid sequence.
	Sequence string `json:"sequence"`

	// GO term ids per ontology category.
	CellularComponents  []string `json:"cellular_components"`
	MolecularFunctions  []string `json:"molecular_functions"`
	BiologicalProcesses []string `json:"biological_processes"`

	// Metabolites and Pathways are populated only for MetabolomeProtein nodes.
	Metabolites []string `json:"metabolites,omitempty"`
	Pathways    []string `json:"pathways,omitempty"`

	// Expression is the per-tissue expression vector, values in [0,1].
	Expression ExpressionVector `json:"-"`
}

// Edge is a scored interaction between two proteins.
// LinkType is set only on directed graphs.
type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Score    float64 `json:"score"`
	LinkType string  `json:"link_type,omitempty"`
}

// NodeSet is a set of node ids. All set operations return a new set and leave
// the operands untouched.
type NodeSet map[string]struct{}

// NewNodeSet builds a set from the given ids.
func NewNodeSet(ids ...string) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s NodeSet) Add(id string)      { s[id] = struct{}{} }
func (s NodeSet) Has(id string) bool { _, ok := s[id]; return ok }
func (s NodeSet) Len() int           { return len(s) }

// Union returns s ∪ o.
func (s NodeSet) Union(o NodeSet) NodeSet {
	out := make(NodeSet, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Intersect returns s ∩ o.
func (s NodeSet) Intersect(o NodeSet) NodeSet {
	small, large := s, o
	if len(o) < len(s) {
		small, large = o, s
	}
	out := make(NodeSet)
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Difference returns s − o.
func (s NodeSet) Difference(o NodeSet) NodeSet {
	out := make(NodeSet)
	for id := range s {
		if _, ok := o[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets contain exactly the same ids.
func (s NodeSet) Equal(o NodeSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if _, ok := o[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the ids in ascending order.
func (s NodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
