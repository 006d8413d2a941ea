package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/interactome/biographdb/pkg/engine"
)

// NewMCPServer exposes the interaction graph as a set of tools for language
// model agents.
func NewMCPServer(eng *engine.Engine) *mcp.Server {
	service := NewService(eng)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "BiographDB Interactome",
		Version: "0.3.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_interactome",
		Description: "Search protein annotations by regular expression and return the induced interaction subgraph.",
	}, service.SearchInteractome)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "query_ontology",
		Description: "Select proteins with a boolean query over Gene Ontology terms (nested and/or/not lists) and return their interaction subgraph.",
	}, service.QueryOntology)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "expand_neighborhood",
		Description: "Grow an interaction subgraph outward from seed proteins or genes, up to a hop limit.",
	}, service.ExpandNeighborhood)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "rank_ontology_terms",
		Description: "Rank ontology terms by expression-weighted coverage of a protein set in a tissue.",
	}, service.RankTerms)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "rank_tissues",
		Description: "Rank tissues by mean expression over a protein set.",
	}, service.RankTissues)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "describe_protein",
		Description: "Return the annotations of a single protein: function, ontology terms, pathways, metabolites.",
	}, service.DescribeProtein)

	return s
}
