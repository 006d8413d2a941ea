package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// HTTP Requests Total (Counter)
	// Counts how many requests arrive, labeled by method, path, and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biographdb_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP Request Duration (Histogram)
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "biographdb_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// Buckets from cheap node lookups to full-graph ontology-name scans.
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Queries Total (Counter)
	// Counts query executions by kind (regex, ontology, propagate, rank_terms,
	// rank_tissues) and outcome.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biographdb_queries_total",
			Help: "Total number of graph queries executed",
		},
		[]string{"kind", "status"},
	)

	// Query Duration (Histogram)
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "biographdb_query_duration_seconds",
			Help: "Duration of graph query execution in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	// Graph dimensions (Gauges), set once after the snapshot loads.
	GraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "biographdb_graph_nodes",
			Help: "Number of proteins in the loaded interaction graph",
		},
	)
	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "biographdb_graph_edges",
			Help: "Number of interactions in the loaded interaction graph",
		},
	)
)
