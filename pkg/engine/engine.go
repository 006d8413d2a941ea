// Package engine provides the embedded query interface for BiographDB.
//
// It ties the interaction graph to its mapping tables and exposes the query
// operations: boolean ontology evaluation, attribute regex search, bounded
// neighborhood propagation, tissue filtering and expression ranking, plus
// the composed subgraph pipelines built from them.
//
// Basic usage:
//
//	eng, err := engine.Open(engine.DefaultOptions("./data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sub, err := eng.SubgraphByRegex(ctx, "kinase", "i_o", engine.SubgraphOptions{
//	    ScoreThreshold: 0.4,
//	})
//
// All query operations are read-only and safe for concurrent use. Subgraphs
// returned by the pipelines are private copies; pruning them never touches
// the parent graph.
package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
)

// Options configures where the engine finds its data files.
type Options struct {
	// DataDir is the directory holding the graph snapshot and the mappings
	// subdirectory.
	DataDir string

	// Directed selects the directed interaction graph instead of the
	// undirected one.
	Directed bool

	// GraphFilename overrides the snapshot file name. When empty it is
	// derived from Directed.
	GraphFilename string

	// MappingsDirname is the subdirectory with the mapping-table snapshots
	// (default "mappings").
	MappingsDirname string
}

// DefaultOptions returns the standard layout under dataDir: the undirected
// graph snapshot plus a "mappings" subdirectory.
func DefaultOptions(dataDir string) Options {
	return Options{DataDir: dataDir, MappingsDirname: "mappings"}
}

// Engine is the main entry point. It owns one graph and the mapping-table
// cache attached to it.
type Engine struct {
	// Graph is the loaded interaction graph. Treat it as read-only; query
	// results are produced as copies.
	Graph *graph.Graph

	// Maps is the lazily loaded mapping-table store.
	Maps *mappings.Store
}

// Open loads the graph snapshot eagerly and attaches a lazy mapping store.
// Mapping tables are read from disk on first use.
func Open(opts Options) (*Engine, error) {
	name := opts.GraphFilename
	if name == "" {
		if opts.Directed {
			name = "pp_interactions_directed.snap"
		} else {
			name = "pp_interactions_undirected.snap"
		}
	}
	mapDir := opts.MappingsDirname
	if mapDir == "" {
		mapDir = "mappings"
	}

	g, err := graph.Load(filepath.Join(opts.DataDir, name))
	if err != nil {
		return nil, fmt.Errorf("engine: load graph: %w", err)
	}
	if opts.Directed != g.IsDirected() {
		return nil, fmt.Errorf("engine: snapshot %s directedness mismatch", name)
	}

	slog.Info("Interaction graph loaded",
		"file", name,
		"directed", g.IsDirected(),
		"nodes", g.Len(),
		"edges", g.NumEdges(),
	)

	return New(g, mappings.Open(filepath.Join(opts.DataDir, mapDir))), nil
}

// New builds an engine from an already constructed graph and mapping store.
// Useful for tests and for embedding with in-memory data.
func New(g *graph.Graph, maps *mappings.Store) *Engine {
	return &Engine{Graph: g, Maps: maps}
}

// Stats summarizes the loaded graph.
type Stats struct {
	Directed bool `json:"directed"`
	Nodes    int  `json:"nodes"`
	Edges    int  `json:"edges"`
	Tissues  int  `json:"tissues"`
}

// Stats returns the graph dimensions. The tissue count is 0 when the tissue
// table cannot be loaded.
func (e *Engine) Stats() Stats {
	n, err := e.Maps.NumTissues()
	if err != nil {
		n = 0
	}
	return Stats{
		Directed: e.Graph.IsDirected(),
		Nodes:    e.Graph.Len(),
		Edges:    e.Graph.NumEdges(),
		Tissues:  n,
	}
}
