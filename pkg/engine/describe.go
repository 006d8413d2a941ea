package engine

import (
	"fmt"

	"github.com/interactome/biographdb/pkg/graph"
)

// NodeSummary is the reporting view of a protein node, with ontology and
// metabolite ids resolved to display names.
type NodeSummary struct {
	ID       string `json:"id"`
	NodeType string `json:"node_type"`

	Info     string `json:"info,omitempty"`
	Sequence string `json:"sequence,omitempty"`

	CellularComponents  []string `json:"cellular_components,omitempty"`
	MolecularFunctions  []string `json:"molecular_functions,omitempty"`
	BiologicalProcesses []string `json:"biological_processes,omitempty"`

	Metabolites []string `json:"metabolites,omitempty"`
	Pathways    []string `json:"pathways,omitempty"`
}

// DescribeNodes summarizes up to limit nodes of a (sub)graph. spec selects
// the reported material with the same tokens as the regex search
// ("i_o_p_m", plus "s" for sequences). Nodes are reported in id order.
// limit <= 0 reports all.
func (e *Engine) DescribeNodes(g *graph.Graph, spec string, limit int) ([]NodeSummary, error) {
	cats, err := ParseCategorySpec(spec)
	if err != nil {
		return nil, err
	}
	ids := g.Nodes()
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]NodeSummary, 0, len(ids))
	for _, id := range ids {
		sum, err := e.summarize(g, id, cats)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// DescribeNode summarizes a single protein of the main graph.
func (e *Engine) DescribeNode(id, spec string) (NodeSummary, error) {
	cats, err := ParseCategorySpec(spec)
	if err != nil {
		return NodeSummary{}, err
	}
	if !e.Graph.HasNode(id) {
		return NodeSummary{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return e.summarize(e.Graph, id, cats)
}

func (e *Engine) summarize(g *graph.Graph, id string, cats []Category) (NodeSummary, error) {
	a, ok := g.Attrs(id)
	if !ok {
		return NodeSummary{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	sum := NodeSummary{ID: id, NodeType: string(a.NodeType)}
	for _, cat := range cats {
		switch cat {
		case CategoryInfo:
			sum.Info = a.Info
		case CategorySequence:
			sum.Sequence = a.Sequence
		case CategoryPathways:
			sum.Pathways = a.Pathways
		case CategoryMetabolites:
			names, err := e.metaboliteNames(a.Metabolites)
			if err != nil {
				return NodeSummary{}, err
			}
			sum.Metabolites = names
		case CategoryOntologyNames:
			var err error
			if sum.CellularComponents, err = e.termNames(a.CellularComponents); err != nil {
				return NodeSummary{}, err
			}
			if sum.MolecularFunctions, err = e.termNames(a.MolecularFunctions); err != nil {
				return NodeSummary{}, err
			}
			if sum.BiologicalProcesses, err = e.termNames(a.BiologicalProcesses); err != nil {
				return NodeSummary{}, err
			}
		}
	}
	return sum, nil
}

func (e *Engine) termNames(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := e.Maps.TermName(id)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

func (e *Engine) metaboliteNames(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := e.Maps.MetaboliteName(id)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}
