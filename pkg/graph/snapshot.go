package graph

import "github.com/interactome/biographdb/pkg/persistence"

// snapshot is the gob payload of a graph file.
type snapshot struct {
	Directed bool
	Nodes    []nodeRecord
	Edges    []edgeRecord
}

type nodeRecord struct {
	ID                  string
	NodeType            string
	Info                string
	Sequence            string
	CellularComponents  []string
	MolecularFunctions  []string
	BiologicalProcesses []string
	Metabolites         []string
	Pathways            []string
	Expression          []uint16 // half-precision bits
}

type edgeRecord struct {
	From     string
	To       string
	Score    float64
	LinkType string
}

// Save writes the graph to a snapshot file.
func (g *Graph) Save(path string) error {
	snap := snapshot{Directed: g.directed}
	for _, id := range g.Nodes() {
		a := g.attrs[id]
		snap.Nodes = append(snap.Nodes, nodeRecord{
			ID:                  id,
			NodeType:            string(a.NodeType),
			Info:                a.Info,
			Sequence:            a.Sequence,
			CellularComponents:  a.CellularComponents,
			MolecularFunctions:  a.MolecularFunctions,
			BiologicalProcesses: a.BiologicalProcesses,
			Metabolites:         a.Metabolites,
			Pathways:            a.Pathways,
			Expression:          a.Expression.Bits(),
		})
	}
	for _, e := range g.Edges() {
		snap.Edges = append(snap.Edges, edgeRecord(e))
	}
	return persistence.Save(path, snap)
}

// Load reads a graph from a snapshot file.
func Load(path string) (*Graph, error) {
	var snap snapshot
	if err := persistence.Load(path, &snap); err != nil {
		return nil, err
	}
	g := New(snap.Directed)
	for _, n := range snap.Nodes {
		g.AddNode(n.ID, &Attrs{
			NodeType:            NodeType(n.NodeType),
			Info:                n.Info,
			Sequence:            n.Sequence,
			CellularComponents:  n.CellularComponents,
			MolecularFunctions:  n.MolecularFunctions,
			BiologicalProcesses: n.BiologicalProcesses,
			Metabolites:         n.Metabolites,
			Pathways:            n.Pathways,
			Expression:          ExpressionFromBits(n.Expression),
		})
	}
	for _, e := range snap.Edges {
		if err := g.AddEdge(e.From, e.To, e.Score, e.LinkType); err != nil {
			return nil, err
		}
	}
	return g, nil
}
