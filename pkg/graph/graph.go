// Package graph implements the attributed protein-protein interaction graph
// that all BiographDB queries run against.
//
// Node identities are stable string ids (UniProt accessions). Internally the
// package interns them onto an int64-indexed gonum graph and keeps the
// annotation set per node in a side table; the exported surface speaks string
// ids only. A Graph is either directed or undirected for its whole lifetime,
// fixed at construction.
package graph

import (
	"fmt"
	"sort"

	gg "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// backing is the subset of the gonum simple graph API the wrapper relies on.
// Both simple.WeightedUndirectedGraph and simple.WeightedDirectedGraph
// satisfy it.
type backing interface {
	gg.Weighted
	AddNode(gg.Node)
	SetWeightedEdge(gg.WeightedEdge)
	RemoveNode(int64)
	RemoveEdge(fid, tid int64)
	WeightedEdges() gg.WeightedEdges
}

type edgeKey struct{ from, to int64 }

// Graph is a directed or undirected protein interaction graph with scored
// edges and annotated nodes.
type Graph struct {
	directed bool

	wg backing
	dg *simple.WeightedDirectedGraph // nil when undirected; same object as wg otherwise

	ids   map[string]int64
	names map[int64]string
	attrs map[string]*Attrs

	// linkTypes carries the interaction kind per directed edge.
	linkTypes map[edgeKey]string

	next int64
}

// New creates an empty graph.
func New(directed bool) *Graph {
	g := &Graph{
		directed:  directed,
		ids:       make(map[string]int64),
		names:     make(map[int64]string),
		attrs:     make(map[string]*Attrs),
		linkTypes: make(map[edgeKey]string),
	}
	if directed {
		g.dg = simple.NewWeightedDirectedGraph(0, 0)
		g.wg = g.dg
	} else {
		g.wg = simple.NewWeightedUndirectedGraph(0, 0)
	}
	return g
}

// IsDirected reports whether the graph was built as a directed graph.
func (g *Graph) IsDirected() bool { return g.directed }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	it := g.wg.WeightedEdges()
	if it == nil {
		return 0
	}
	return it.Len()
}

// AddNode registers a node with its annotations. Adding an existing id
// replaces the annotations and keeps the incident edges.
func (g *Graph) AddNode(id string, attrs *Attrs) {
	if attrs == nil {
		attrs = &Attrs{}
	}
	if _, ok := g.ids[id]; !ok {
		iid := g.next
		g.next++
		g.ids[id] = iid
		g.names[iid] = id
		g.wg.AddNode(simple.Node(iid))
	}
	g.attrs[id] = attrs
}

// AddEdge connects two existing nodes with a scored interaction.
// linkType is ignored on undirected graphs.
func (g *Graph) AddEdge(from, to string, score float64, linkType string) error {
	fid, ok := g.ids[from]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", from)
	}
	tid, ok := g.ids[to]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", to)
	}
	if fid == tid {
		return fmt.Errorf("graph: self interaction on %q", from)
	}
	g.wg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(fid), T: simple.Node(tid), W: score})
	if g.directed && linkType != "" {
		g.linkTypes[edgeKey{fid, tid}] = linkType
	}
	return nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.ids[id]
	return ok
}

// Attrs returns the annotations of a node.
func (g *Graph) Attrs(id string) (*Attrs, bool) {
	a, ok := g.attrs[id]
	return a, ok
}

// Nodes returns all node ids in ascending order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.ids))
	for id := range g.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// NodeSet returns the node ids as a set.
func (g *Graph) NodeSet() NodeSet {
	s := make(NodeSet, len(g.ids))
	for id := range g.ids {
		s[id] = struct{}{}
	}
	return s
}

// Neighbors returns the ids adjacent to a node. On directed graphs these are
// the successors.
func (g *Graph) Neighbors(id string) []string {
	iid, ok := g.ids[id]
	if !ok {
		return nil
	}
	return g.collect(g.wg.From(iid))
}

// Successors is Neighbors on undirected graphs and the outgoing adjacency on
// directed ones.
func (g *Graph) Successors(id string) []string { return g.Neighbors(id) }

// Predecessors returns the ids with an edge into the node. On undirected
// graphs it equals Neighbors.
func (g *Graph) Predecessors(id string) []string {
	iid, ok := g.ids[id]
	if !ok {
		return nil
	}
	if g.dg == nil {
		return g.collect(g.wg.From(iid))
	}
	return g.collect(g.dg.To(iid))
}

// Degree returns the number of incident edges. On directed graphs it counts
// both directions.
func (g *Graph) Degree(id string) int {
	iid, ok := g.ids[id]
	if !ok {
		return 0
	}
	if g.dg == nil {
		return countNodes(g.wg.From(iid))
	}
	return countNodes(g.dg.From(iid)) + countNodes(g.dg.To(iid))
}

// Edge returns the edge between two nodes, honoring direction on directed
// graphs.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	fid, ok := g.ids[from]
	if !ok {
		return Edge{}, false
	}
	tid, ok := g.ids[to]
	if !ok {
		return Edge{}, false
	}
	we := g.wg.WeightedEdge(fid, tid)
	if we == nil {
		return Edge{}, false
	}
	return g.exportEdge(we), true
}

// Edges returns all edges, ordered by (from, to) for deterministic output.
func (g *Graph) Edges() []Edge {
	it := g.wg.WeightedEdges()
	out := make([]Edge, 0, it.Len())
	for it.Next() {
		out = append(out, g.exportEdge(it.WeightedEdge()))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// RemoveEdges drops the listed edges. Unknown endpoints are ignored.
func (g *Graph) RemoveEdges(edges []Edge) {
	for _, e := range edges {
		fid, ok := g.ids[e.From]
		if !ok {
			continue
		}
		tid, ok := g.ids[e.To]
		if !ok {
			continue
		}
		g.wg.RemoveEdge(fid, tid)
		delete(g.linkTypes, edgeKey{fid, tid})
		if !g.directed {
			delete(g.linkTypes, edgeKey{tid, fid})
		}
	}
}

// RemoveNodes drops the listed nodes and their incident edges.
func (g *Graph) RemoveNodes(ids []string) {
	for _, id := range ids {
		iid, ok := g.ids[id]
		if !ok {
			continue
		}
		for _, n := range g.Neighbors(id) {
			delete(g.linkTypes, edgeKey{iid, g.ids[n]})
			delete(g.linkTypes, edgeKey{g.ids[n], iid})
		}
		if g.dg != nil {
			for _, n := range g.Predecessors(id) {
				delete(g.linkTypes, edgeKey{g.ids[n], iid})
			}
		}
		g.wg.RemoveNode(iid)
		delete(g.ids, id)
		delete(g.names, iid)
		delete(g.attrs, id)
	}
}

func (g *Graph) exportEdge(we gg.WeightedEdge) Edge {
	from := g.names[we.From().ID()]
	to := g.names[we.To().ID()]
	if !g.directed && from > to {
		from, to = to, from
	}
	e := Edge{From: from, To: to, Score: we.Weight()}
	if g.directed {
		e.LinkType = g.linkTypes[edgeKey{we.From().ID(), we.To().ID()}]
	}
	return e
}

func (g *Graph) collect(it gg.Nodes) []string {
	if it == nil {
		return nil
	}
	out := make([]string, 0, it.Len())
	for it.Next() {
		out = append(out, g.names[it.Node().ID()])
	}
	sort.Strings(out)
	return out
}

func countNodes(it gg.Nodes) int {
	if it == nil {
		return 0
	}
	return it.Len()
}
