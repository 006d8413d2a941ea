package server

import (
	"encoding/json"

	"github.com/interactome/biographdb/pkg/engine"
	"github.com/interactome/biographdb/pkg/graph"
)

// subgraphParams is embedded in every query request that ends in a pruned
// subgraph.
type subgraphParams struct {
	Tissue              string  `json:"tissue,omitempty"`
	ExpressionThreshold float64 `json:"expression_threshold,omitempty"`
	ScoreThreshold      float64 `json:"score_threshold,omitempty"`

	// Describe, when non-empty, attaches per-node summaries built from the
	// given category spec (e.g. "i_o_p_m").
	Describe string `json:"describe,omitempty"`

	// SummaryLimit caps the number of summaries (default 30, the historical
	// reporting limit).
	SummaryLimit int `json:"summary_limit,omitempty"`
}

func (p subgraphParams) options() engine.SubgraphOptions {
	return engine.SubgraphOptions{
		Tissue:              p.Tissue,
		ExpressionThreshold: p.ExpressionThreshold,
		ScoreThreshold:      p.ScoreThreshold,
	}
}

type regexQueryRequest struct {
	Pattern string `json:"pattern"`
	// Spec selects the searched categories, e.g. "i_p_m_o". Defaults to all.
	Spec string `json:"spec,omitempty"`
	subgraphParams
}

type ontologyQueryRequest struct {
	// Query is the nested-list boolean expression, passed through verbatim,
	// e.g. ["and", "GO:0005737", ["not", "GO:0016301"]].
	Query json.RawMessage `json:"query"`
	subgraphParams
}

type propagateRequest struct {
	// Seeds are protein accessions; Genes are gene symbols resolved through
	// the gene → proteins table. Both may be given together.
	Seeds    []string `json:"seeds,omitempty"`
	Genes    []string `json:"genes,omitempty"`
	Diameter int      `json:"diameter"`
	subgraphParams
}

type rankTermsRequest struct {
	// Nodes names the subgraph to rank over; the induced subgraph on these
	// ids is used.
	Nodes         []string `json:"nodes"`
	Tissue        string   `json:"tissue"`
	Category      string   `json:"category"`
	SizeThreshold int      `json:"size_threshold,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

type rankTissuesRequest struct {
	Nodes []string `json:"nodes"`
	Limit int      `json:"limit,omitempty"`
}

type subgraphResponse struct {
	Directed  bool                 `json:"directed"`
	NodeCount int                  `json:"node_count"`
	EdgeCount int                  `json:"edge_count"`
	Nodes     []string             `json:"nodes"`
	Edges     []graph.Edge         `json:"edges"`
	Summaries []engine.NodeSummary `json:"summaries,omitempty"`
}

type rankTermsResponse struct {
	Tissue   string             `json:"tissue"`
	Category string             `json:"category"`
	Results  []engine.TermScore `json:"results"`
}

type rankTissuesResponse struct {
	Results []engine.TissueScore `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
