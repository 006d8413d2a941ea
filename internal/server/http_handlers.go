package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/interactome/biographdb/pkg/engine"
	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
	"github.com/interactome/biographdb/pkg/metrics"
)

// registerHTTPHandlers sets up the REST API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /query/regex", s.handleQueryRegex)
	mux.HandleFunc("POST /query/ontology", s.handleQueryOntology)
	mux.HandleFunc("POST /query/propagate", s.handleQueryPropagate)
	mux.HandleFunc("POST /rank/terms", s.handleRankTerms)
	mux.HandleFunc("POST /rank/tissues", s.handleRankTissues)
	mux.HandleFunc("GET /nodes/{id}", s.handleGetNode)
	mux.HandleFunc("GET /graph/stats", s.handleGraphStats)
}

func (s *Server) handleQueryRegex(w http.ResponseWriter, r *http.Request) {
	var req regexQueryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Pattern == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "pattern is required")
		return
	}
	if req.Spec == "" {
		req.Spec = "i_s_p_m_o"
	}

	sub, err := s.observe("regex", func() (*graph.Graph, error) {
		return s.Engine.SubgraphByRegex(r.Context(), req.Pattern, req.Spec, req.options())
	})
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeSubgraph(w, sub, req.subgraphParams)
}

func (s *Server) handleQueryOntology(w http.ResponseWriter, r *http.Request) {
	var req ontologyQueryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Query) == 0 {
		s.writeHTTPError(w, http.StatusBadRequest, "query is required")
		return
	}
	expr, err := engine.ParseQuery(req.Query)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	sub, err := s.observe("ontology", func() (*graph.Graph, error) {
		return s.Engine.SubgraphByOntology(r.Context(), expr, req.options())
	})
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeSubgraph(w, sub, req.subgraphParams)
}

func (s *Server) handleQueryPropagate(w http.ResponseWriter, r *http.Request) {
	var req propagateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Seeds) == 0 && len(req.Genes) == 0 {
		s.writeHTTPError(w, http.StatusBadRequest, "seeds or genes are required")
		return
	}
	if req.Diameter < 0 {
		s.writeHTTPError(w, http.StatusBadRequest, "diameter must be >= 0")
		return
	}

	seeds := req.Seeds
	if len(req.Genes) > 0 {
		resolved, err := s.Engine.ResolveGenes(req.Genes)
		if err != nil {
			s.writeQueryError(w, err)
			return
		}
		seeds = append(seeds, resolved.Sorted()...)
	}

	sub, err := s.observe("propagate", func() (*graph.Graph, error) {
		return s.Engine.SubgraphByPropagation(r.Context(), seeds, req.Diameter, req.options())
	})
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeSubgraph(w, sub, req.subgraphParams)
}

func (s *Server) handleRankTerms(w http.ResponseWriter, r *http.Request) {
	var req rankTermsRequest
	if !s.decode(w, r, &req) {
		return
	}
	cat := mappings.Ontology(req.Category)
	if !cat.Valid() {
		s.writeHTTPError(w, http.StatusBadRequest, "category must be one of biological_processes, cell_components, molecular_functions")
		return
	}

	start := time.Now()
	sub := s.Engine.Graph.Subgraph(graph.NewNodeSet(req.Nodes...))
	results, err := s.Engine.RankOntologyTerms(sub, req.Tissue, cat, req.SizeThreshold, req.Limit)
	s.record("rank_terms", start, err)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rankTermsResponse{
		Tissue:   req.Tissue,
		Category: req.Category,
		Results:  results,
	})
}

func (s *Server) handleRankTissues(w http.ResponseWriter, r *http.Request) {
	var req rankTissuesRequest
	if !s.decode(w, r, &req) {
		return
	}
	start := time.Now()
	results, err := s.Engine.RankTissues(graph.NewNodeSet(req.Nodes...), req.Limit)
	s.record("rank_tissues", start, err)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rankTissuesResponse{Results: results})
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	spec := r.URL.Query().Get("spec")
	if spec == "" {
		spec = "i_o_p_m"
	}
	summary, err := s.Engine.DescribeNode(r.PathValue("id"), spec)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGraphStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Stats())
}

// --- helpers ---

// observe runs a subgraph query under metrics instrumentation.
func (s *Server) observe(kind string, fn func() (*graph.Graph, error)) (*graph.Graph, error) {
	start := time.Now()
	sub, err := fn()
	s.record(kind, start, err)
	return sub, err
}

func (s *Server) record(kind string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.QueriesTotal.WithLabelValues(kind, status).Inc()
}

func (s *Server) writeSubgraph(w http.ResponseWriter, sub *graph.Graph, params subgraphParams) {
	resp := subgraphResponse{
		Directed:  sub.IsDirected(),
		NodeCount: sub.Len(),
		EdgeCount: sub.NumEdges(),
		Nodes:     sub.Nodes(),
		Edges:     sub.Edges(),
	}
	if params.Describe != "" {
		limit := params.SummaryLimit
		if limit == 0 {
			limit = 30
		}
		summaries, err := s.Engine.DescribeNodes(sub, params.Describe, limit)
		if err != nil {
			s.writeQueryError(w, err)
			return
		}
		resp.Summaries = summaries
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// writeQueryError maps engine error kinds to HTTP statuses: malformed input
// and unknown names are client errors, an unknown node is a 404, everything
// else is a 500.
func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidQuery),
		errors.Is(err, engine.ErrBadPattern),
		errors.Is(err, mappings.ErrUnknownTissue),
		errors.Is(err, mappings.ErrUnknownMapping):
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNodeNotFound):
		s.writeHTTPError(w, http.StatusNotFound, err.Error())
	default:
		s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
