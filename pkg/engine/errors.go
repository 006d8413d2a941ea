package engine

import "errors"

var (
	// ErrInvalidQuery marks a malformed ontology query or category spec:
	// unknown operator, non-string leaf, empty form, unknown spec token.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrBadPattern marks a regular expression that failed to compile.
	ErrBadPattern = errors.New("bad search pattern")

	// ErrNodeNotFound marks a lookup of a protein id absent from the graph.
	ErrNodeNotFound = errors.New("node not found")
)
