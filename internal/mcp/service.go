package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/interactome/biographdb/pkg/engine"
	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
)

type Service struct {
	engine *engine.Engine
}

func NewService(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// --- Tool Handlers ---

func (s *Service) SearchInteractome(ctx context.Context, req *mcp.CallToolRequest, args SearchInteractomeArgs) (*mcp.CallToolResult, SubgraphResult, error) {
	spec := args.Spec
	if spec == "" {
		spec = "i_s_p_m_o"
	}
	sub, err := s.engine.SubgraphByRegex(ctx, args.Pattern, spec, engine.SubgraphOptions{
		Tissue:              args.Tissue,
		ExpressionThreshold: args.ExpressionThreshold,
		ScoreThreshold:      args.ScoreThreshold,
	})
	if err != nil {
		return nil, SubgraphResult{}, err
	}
	return nil, s.subgraphResult(sub), nil
}

func (s *Service) QueryOntology(ctx context.Context, req *mcp.CallToolRequest, args QueryOntologyArgs) (*mcp.CallToolResult, SubgraphResult, error) {
	expr, err := engine.ParseQuery([]byte(args.Query))
	if err != nil {
		return nil, SubgraphResult{}, err
	}
	sub, err := s.engine.SubgraphByOntology(ctx, expr, engine.SubgraphOptions{
		Tissue:              args.Tissue,
		ExpressionThreshold: args.ExpressionThreshold,
		ScoreThreshold:      args.ScoreThreshold,
	})
	if err != nil {
		return nil, SubgraphResult{}, err
	}
	return nil, s.subgraphResult(sub), nil
}

func (s *Service) ExpandNeighborhood(ctx context.Context, req *mcp.CallToolRequest, args ExpandNeighborhoodArgs) (*mcp.CallToolResult, SubgraphResult, error) {
	if len(args.Seeds) == 0 && len(args.Genes) == 0 {
		return nil, SubgraphResult{}, fmt.Errorf("seeds or genes are required")
	}
	diameter := args.Diameter
	if diameter == 0 {
		diameter = 1
	}

	seeds := args.Seeds
	if len(args.Genes) > 0 {
		resolved, err := s.engine.ResolveGenes(args.Genes)
		if err != nil {
			return nil, SubgraphResult{}, err
		}
		seeds = append(seeds, resolved.Sorted()...)
	}

	sub, err := s.engine.SubgraphByPropagation(ctx, seeds, diameter, engine.SubgraphOptions{
		Tissue:              args.Tissue,
		ExpressionThreshold: args.ExpressionThreshold,
		ScoreThreshold:      args.ScoreThreshold,
	})
	if err != nil {
		return nil, SubgraphResult{}, err
	}
	return nil, s.subgraphResult(sub), nil
}

func (s *Service) RankTerms(ctx context.Context, req *mcp.CallToolRequest, args RankTermsArgs) (*mcp.CallToolResult, RankTermsResult, error) {
	cat := mappings.Ontology(args.Category)
	if !cat.Valid() {
		return nil, RankTermsResult{}, fmt.Errorf("category must be one of biological_processes, cell_components, molecular_functions")
	}
	limit := args.Limit
	if limit == 0 {
		limit = 10
	}

	sub := s.engine.Graph.Subgraph(graph.NewNodeSet(args.Nodes...))
	scores, err := s.engine.RankOntologyTerms(sub, args.Tissue, cat, args.SizeThreshold, limit)
	if err != nil {
		return nil, RankTermsResult{}, err
	}

	lines := make([]string, 0, len(scores))
	for _, sc := range scores {
		lines = append(lines, fmt.Sprintf("%s (%s) %.4f", sc.Name, sc.Term, sc.Score))
	}
	return nil, RankTermsResult{Results: lines}, nil
}

func (s *Service) RankTissues(ctx context.Context, req *mcp.CallToolRequest, args RankTissuesArgs) (*mcp.CallToolResult, RankTissuesResult, error) {
	limit := args.Limit
	if limit == 0 {
		limit = 10
	}
	scores, err := s.engine.RankTissues(graph.NewNodeSet(args.Nodes...), limit)
	if err != nil {
		return nil, RankTissuesResult{}, err
	}

	lines := make([]string, 0, len(scores))
	for _, sc := range scores {
		lines = append(lines, fmt.Sprintf("%s %.4f", sc.Tissue, sc.Score))
	}
	return nil, RankTissuesResult{Results: lines}, nil
}

func (s *Service) DescribeProtein(ctx context.Context, req *mcp.CallToolRequest, args DescribeProteinArgs) (*mcp.CallToolResult, DescribeProteinResult, error) {
	spec := args.Spec
	if spec == "" {
		spec = "i_o_p_m"
	}
	summary, err := s.engine.DescribeNode(args.ID, spec)
	if err != nil {
		return nil, DescribeProteinResult{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Protein %s (%s)\n", summary.ID, summary.NodeType)
	if summary.Info != "" {
		fmt.Fprintf(&b, "Info: %s\n", summary.Info)
	}
	if summary.Sequence != "" {
		fmt.Fprintf(&b, "Sequence: %s\n", summary.Sequence)
	}
	writeList := func(label string, items []string) {
		if len(items) > 0 {
			fmt.Fprintf(&b, "%s: %s\n", label, strings.Join(items, "; "))
		}
	}
	writeList("Biological processes", summary.BiologicalProcesses)
	writeList("Cellular components", summary.CellularComponents)
	writeList("Molecular functions", summary.MolecularFunctions)
	writeList("Pathways", summary.Pathways)
	writeList("Metabolites", summary.Metabolites)

	return nil, DescribeProteinResult{Description: b.String()}, nil
}

// subgraphResult renders a subgraph compactly for the calling model: node and
// edge counts plus the strongest interactions, up to a fixed cap.
func (s *Service) subgraphResult(sub *graph.Graph) SubgraphResult {
	const maxEdges = 30

	edges := sub.Edges()
	var b strings.Builder
	fmt.Fprintf(&b, "Subgraph with %d proteins and %d interactions.\n", sub.Len(), sub.NumEdges())
	for i, e := range edges {
		if i == maxEdges {
			fmt.Fprintf(&b, "... and %d more interactions\n", len(edges)-maxEdges)
			break
		}
		fmt.Fprintf(&b, "%s -- %s (score %.3f, %s)\n", e.From, e.To, e.Score, e.LinkType)
	}

	return SubgraphResult{
		NodeCount:   sub.Len(),
		EdgeCount:   sub.NumEdges(),
		Nodes:       sub.Nodes(),
		Description: b.String(),
	}
}
