package engine

import "github.com/interactome/biographdb/pkg/graph"

// FilterByTissue keeps the nodes whose expression in the named tissue is
// strictly above threshold. Nodes absent from the graph are dropped. A value
// exactly at the threshold is excluded.
func (e *Engine) FilterByTissue(nodes graph.NodeSet, tissue string, threshold float64) (graph.NodeSet, error) {
	ix, err := e.Maps.TissueIndex(tissue)
	if err != nil {
		return nil, err
	}
	out := graph.NewNodeSet()
	for id := range nodes {
		a, ok := e.Graph.Attrs(id)
		if !ok {
			continue
		}
		if a.Expression.At(ix) > threshold {
			out.Add(id)
		}
	}
	return out, nil
}
