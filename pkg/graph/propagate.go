package graph

// Propagate returns every node reachable from the seeds within diameter
// hops. Seeds absent from the graph contribute nothing. Directed graphs
// expand along successor edges only; undirected graphs along all neighbors.
//
// The expansion runs as a breadth-first frontier walk so each node is
// visited once, but the result is identical to recursively expanding every
// seed and collapsing duplicates.
func (g *Graph) Propagate(seeds []string, diameter int) NodeSet {
	result := make(NodeSet)
	var frontier []int64
	for _, id := range seeds {
		iid, ok := g.ids[id]
		if !ok {
			continue
		}
		if !result.Has(id) {
			result.Add(id)
			frontier = append(frontier, iid)
		}
	}

	for depth := 0; depth < diameter && len(frontier) > 0; depth++ {
		var next []int64
		for _, iid := range frontier {
			it := g.wg.From(iid)
			for it.Next() {
				nid := it.Node().ID()
				name := g.names[nid]
				if !result.Has(name) {
					result.Add(name)
					next = append(next, nid)
				}
			}
		}
		frontier = next
	}
	return result
}
