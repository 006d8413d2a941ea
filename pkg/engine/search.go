package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
)

// Category selects which node material an attribute search scans.
type Category string

const (
	CategoryInfo          Category = "info"
	CategorySequence      Category = "sequence"
	CategoryPathways      Category = "pathways"
	CategoryMetabolites   Category = "metabolites"
	CategoryOntologyNames Category = "ontology_names"
)

// specTokens maps the compact spec tokens to categories. The spec string is
// underscore-joined and order-insensitive, e.g. "i_p_m_o" or "o_i".
var specTokens = map[string]Category{
	"i": CategoryInfo,
	"s": CategorySequence,
	"p": CategoryPathways,
	"m": CategoryMetabolites,
	"o": CategoryOntologyNames,
}

// ParseCategorySpec expands a spec string like "i_p_m_o" into categories in
// canonical order, dropping duplicates. Unknown tokens are rejected.
func ParseCategorySpec(spec string) ([]Category, error) {
	seen := make(map[Category]bool)
	for _, tok := range strings.Split(spec, "_") {
		if tok == "" {
			continue
		}
		cat, ok := specTokens[tok]
		if !ok {
			return nil, fmt.Errorf("%w: unknown category token %q in spec %q", ErrInvalidQuery, tok, spec)
		}
		seen[cat] = true
	}
	var out []Category
	for _, cat := range []Category{CategoryInfo, CategorySequence, CategoryPathways, CategoryMetabolites, CategoryOntologyNames} {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty category spec %q", ErrInvalidQuery, spec)
	}
	return out, nil
}

// SearchAttributes scans the requested categories of every graph node for
// the pattern and returns acc extended with the matches; the accumulator is
// never shrunk. Matching is an unanchored regexp search.
//
// info and sequence match the raw node attribute. pathways matches the
// space-joined pathway names, metabolites the space-joined metabolite
// display names. ontology_names matches the display name of each ontology
// term; on a name match every graph node carrying the term is included.
func (e *Engine) SearchAttributes(ctx context.Context, pattern string, cats []Category, acc graph.NodeSet) (graph.NodeSet, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}

	res := graph.NewNodeSet().Union(acc)
	for _, cat := range cats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch cat {
		case CategoryInfo:
			res = res.Union(e.matchText(re, func(a *graph.Attrs) string { return a.Info }))
		case CategorySequence:
			res = res.Union(e.matchText(re, func(a *graph.Attrs) string { return a.Sequence }))
		case CategoryPathways:
			res = res.Union(e.matchText(re, func(a *graph.Attrs) string {
				return strings.Join(a.Pathways, " ")
			}))
		case CategoryMetabolites:
			sub, err := e.matchMetabolites(re)
			if err != nil {
				return nil, err
			}
			res = res.Union(sub)
		case CategoryOntologyNames:
			sub, err := e.matchOntologyNames(re)
			if err != nil {
				return nil, err
			}
			res = res.Union(sub)
		default:
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidQuery, cat)
		}
	}
	return res, nil
}

// matchText collects the nodes whose extracted attribute matches.
func (e *Engine) matchText(re *regexp.Regexp, text func(*graph.Attrs) string) graph.NodeSet {
	out := graph.NewNodeSet()
	for id := range e.Graph.NodeSet() {
		a, ok := e.Graph.Attrs(id)
		if !ok {
			continue
		}
		if re.MatchString(text(a)) {
			out.Add(id)
		}
	}
	return out
}

// matchMetabolites matches against the space-joined metabolite display names
// of each node.
func (e *Engine) matchMetabolites(re *regexp.Regexp) (graph.NodeSet, error) {
	out := graph.NewNodeSet()
	for id := range e.Graph.NodeSet() {
		a, ok := e.Graph.Attrs(id)
		if !ok || len(a.Metabolites) == 0 {
			continue
		}
		names := make([]string, 0, len(a.Metabolites))
		for _, met := range a.Metabolites {
			name, err := e.Maps.MetaboliteName(met)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		if re.MatchString(strings.Join(names, " ")) {
			out.Add(id)
		}
	}
	return out, nil
}

// matchOntologyNames matches term display names across all three ontology
// tables and pulls in each matching term's membership restricted to the
// graph's current node set.
func (e *Engine) matchOntologyNames(re *regexp.Regexp) (graph.NodeSet, error) {
	nodes := e.Graph.NodeSet()
	out := graph.NewNodeSet()
	for _, cat := range mappings.Ontologies() {
		tbl, err := e.Maps.Members(cat)
		if err != nil {
			return nil, err
		}
		var nameErr error
		tbl.Scan(func(term string, members []string) bool {
			name, err := e.Maps.TermName(term)
			if err != nil {
				nameErr = err
				return false
			}
			if re.MatchString(name) {
				for _, id := range members {
					if nodes.Has(id) {
						out.Add(id)
					}
				}
			}
			return true
		})
		if nameErr != nil {
			return nil, nameErr
		}
	}
	return out, nil
}
