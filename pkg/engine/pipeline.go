package engine

import (
	"context"

	"github.com/interactome/biographdb/pkg/graph"
)

// SubgraphOptions controls the shared tail of the subgraph pipelines:
// optional tissue restriction, then edge pruning.
type SubgraphOptions struct {
	// Tissue restricts the node set to proteins expressed in this tissue
	// above ExpressionThreshold. Empty disables the restriction.
	Tissue string `json:"tissue,omitempty"`

	// ExpressionThreshold is the strict lower bound on in-tissue expression.
	// Ignored when Tissue is empty.
	ExpressionThreshold float64 `json:"expression_threshold,omitempty"`

	// ScoreThreshold removes every edge scored at or below this value from
	// the resulting subgraph; nodes orphaned by the removal are dropped too.
	ScoreThreshold float64 `json:"score_threshold,omitempty"`
}

// SubgraphByRegex matches the pattern against the node attribute categories
// named by spec (see ParseCategorySpec), then builds the pruned induced
// subgraph on the matches. An empty match yields an empty graph, not an
// error.
func (e *Engine) SubgraphByRegex(ctx context.Context, pattern, spec string, opts SubgraphOptions) (*graph.Graph, error) {
	cats, err := ParseCategorySpec(spec)
	if err != nil {
		return nil, err
	}
	nodes, err := e.SearchAttributes(ctx, pattern, cats, nil)
	if err != nil {
		return nil, err
	}
	return e.finish(nodes, opts)
}

// SubgraphByOntology evaluates the boolean ontology query over the whole
// graph and builds the pruned induced subgraph on the result.
func (e *Engine) SubgraphByOntology(ctx context.Context, q Expr, opts SubgraphOptions) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodes, err := e.Evaluate(q, e.Graph.NodeSet())
	if err != nil {
		return nil, err
	}
	return e.finish(nodes, opts)
}

// SubgraphByPropagation expands the seeds by neighborhood propagation up to
// diameter hops and builds the pruned induced subgraph on the expansion.
// Seeds absent from the graph contribute nothing.
func (e *Engine) SubgraphByPropagation(ctx context.Context, seeds []string, diameter int, opts SubgraphOptions) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodes := e.Graph.Propagate(seeds, diameter)
	return e.finish(nodes, opts)
}

// ResolveGenes maps gene symbols to protein accessions via the
// gene → proteins table, keeping only accessions present in the graph.
// Unknown genes contribute nothing.
func (e *Engine) ResolveGenes(genes []string) (graph.NodeSet, error) {
	out := graph.NewNodeSet()
	for _, gene := range genes {
		proteins, err := e.Maps.ProteinsForGene(gene)
		if err != nil {
			return nil, err
		}
		for _, id := range proteins {
			if e.Graph.HasNode(id) {
				out.Add(id)
			}
		}
	}
	return out, nil
}

// finish applies the optional tissue restriction, induces the subgraph and
// prunes it.
func (e *Engine) finish(nodes graph.NodeSet, opts SubgraphOptions) (*graph.Graph, error) {
	if opts.Tissue != "" {
		filtered, err := e.FilterByTissue(nodes, opts.Tissue, opts.ExpressionThreshold)
		if err != nil {
			return nil, err
		}
		nodes = filtered
	}
	return e.Graph.Subgraph(nodes).Prune(opts.ScoreThreshold), nil
}
