package graph

// Subgraph returns the induced subgraph on nodes: exactly nodes ∩ current
// node set, plus every parent edge with both endpoints inside. The copy is
// independent of the receiver; only the immutable Attrs values are shared.
func (g *Graph) Subgraph(nodes NodeSet) *Graph {
	sub := New(g.directed)
	for id := range nodes {
		if a, ok := g.attrs[id]; ok {
			sub.AddNode(id, a)
		}
	}
	it := g.wg.WeightedEdges()
	for it.Next() {
		e := g.exportEdge(it.WeightedEdge())
		if sub.HasNode(e.From) && sub.HasNode(e.To) {
			// endpoints exist, AddEdge cannot fail
			_ = sub.AddEdge(e.From, e.To, e.Score, e.LinkType)
		}
	}
	return sub
}

// Clone returns a full independent copy.
func (g *Graph) Clone() *Graph { return g.Subgraph(g.NodeSet()) }

// Prune returns a copy with every edge scored at or below scoreThreshold
// removed, and every node left without edges removed afterwards. Edge
// removal completes before the orphan sweep so a node is judged on the
// pruned topology only. The receiver is not modified.
func (g *Graph) Prune(scoreThreshold float64) *Graph {
	out := g.Clone()

	var doomed []Edge
	for _, e := range out.Edges() {
		if e.Score <= scoreThreshold {
			doomed = append(doomed, e)
		}
	}
	out.RemoveEdges(doomed)

	var orphans []string
	for _, id := range out.Nodes() {
		if out.Degree(id) == 0 {
			orphans = append(orphans, id)
		}
	}
	out.RemoveNodes(orphans)
	return out
}
