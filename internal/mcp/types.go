package mcp

// --- Tool Arguments ---

type SearchInteractomeArgs struct {
	Pattern             string  `json:"pattern" jsonschema:"Regular expression searched in protein annotations,required"`
	Spec                string  `json:"spec,omitempty" jsonschema:"Underscore-joined categories to search: i (info), s (sequence), p (pathways), m (metabolites), o (ontology names). Defaults to all."`
	Tissue              string  `json:"tissue,omitempty" jsonschema:"Restrict results to proteins expressed in this tissue (e.g. 'lung')"`
	ExpressionThreshold float64 `json:"expression_threshold,omitempty" jsonschema:"Strict lower bound on in-tissue expression, 0..1. Ignored without tissue."`
	ScoreThreshold      float64 `json:"score_threshold,omitempty" jsonschema:"Drop interactions scored at or below this value, 0..1"`
}

type QueryOntologyArgs struct {
	Query               string  `json:"query" jsonschema:"Boolean ontology query as nested JSON lists over GO ids, e.g. [\"and\", \"GO:0005737\", [\"not\", \"GO:0016301\"]],required"`
	Tissue              string  `json:"tissue,omitempty"`
	ExpressionThreshold float64 `json:"expression_threshold,omitempty"`
	ScoreThreshold      float64 `json:"score_threshold,omitempty"`
}

type ExpandNeighborhoodArgs struct {
	Seeds               []string `json:"seeds,omitempty" jsonschema:"Seed protein accessions (UniProt ids)"`
	Genes               []string `json:"genes,omitempty" jsonschema:"Seed gene symbols, resolved to proteins"`
	Diameter            int      `json:"diameter,omitempty" jsonschema:"Maximum hop distance from the seeds (default 1)"`
	Tissue              string   `json:"tissue,omitempty"`
	ExpressionThreshold float64  `json:"expression_threshold,omitempty"`
	ScoreThreshold      float64  `json:"score_threshold,omitempty"`
}

type SubgraphResult struct {
	NodeCount int      `json:"node_count"`
	EdgeCount int      `json:"edge_count"`
	Nodes     []string `json:"nodes"`
	// Description is a compact textual rendering of the strongest
	// interactions, intended for the calling model.
	Description string `json:"description"`
}

type RankTermsArgs struct {
	Nodes         []string `json:"nodes" jsonschema:"Protein accessions forming the subgraph to analyze,required"`
	Tissue        string   `json:"tissue" jsonschema:"Tissue to score expression in,required"`
	Category      string   `json:"category" jsonschema:"Ontology category: biological_processes, cell_components or molecular_functions,required"`
	SizeThreshold int      `json:"size_threshold,omitempty" jsonschema:"Only rank terms with more members than this"`
	Limit         int      `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type RankTermsResult struct {
	Results []string `json:"results"` // "name (GO:...) score" lines
}

type RankTissuesArgs struct {
	Nodes []string `json:"nodes" jsonschema:"Protein accessions to average expression over,required"`
	Limit int      `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type RankTissuesResult struct {
	Results []string `json:"results"` // "tissue score" lines
}

type DescribeProteinArgs struct {
	ID   string `json:"id" jsonschema:"UniProt accession of the protein,required"`
	Spec string `json:"spec,omitempty" jsonschema:"Categories to include, e.g. 'i_o_p_m' (default)"`
}

type DescribeProteinResult struct {
	Description string `json:"description"`
}
