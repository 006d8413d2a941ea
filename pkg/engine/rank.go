package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/interactome/biographdb/pkg/graph"
	"github.com/interactome/biographdb/pkg/mappings"
)

// TermScore is one entry of an ontology ranking.
type TermScore struct {
	Term  string  `json:"term"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// TissueScore is one entry of a tissue ranking.
type TissueScore struct {
	Tissue string  `json:"tissue"`
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
}

// RankOntologyTerms ranks the terms of one ontology category by how strongly
// the subgraph expresses them in a tissue.
//
// Only terms whose total membership exceeds sizeThreshold participate. A
// term's score is the sum of in-tissue expression over the members present
// in the subgraph, divided by the term's *total* membership size: a term
// whose members are mostly absent from the subgraph scores near zero even
// if the few present members are highly expressed (coverage-weighted
// presence, not a mean over present nodes).
//
// Results are ordered by descending score; equal scores order by term id
// ascending. limit <= 0 returns all.
func (e *Engine) RankOntologyTerms(sub *graph.Graph, tissue string, cat mappings.Ontology, sizeThreshold, limit int) ([]TermScore, error) {
	ix, err := e.Maps.TissueIndex(tissue)
	if err != nil {
		return nil, err
	}
	tbl, err := e.Maps.Members(cat)
	if err != nil {
		return nil, err
	}

	var scores []TermScore
	var nameErr error
	tbl.Scan(func(term string, members []string) bool {
		if len(members) <= sizeThreshold {
			return true
		}
		sum := 0.0
		for _, id := range members {
			a, ok := sub.Attrs(id)
			if !ok {
				continue
			}
			sum += a.Expression.At(ix)
		}
		name, err := e.Maps.TermName(term)
		if err != nil {
			nameErr = err
			return false
		}
		scores = append(scores, TermScore{
			Term:  term,
			Name:  name,
			Score: sum / float64(len(members)),
		})
		return true
	})
	if nameErr != nil {
		return nil, nameErr
	}

	// The table scans in term-id order, so a stable sort keeps ties ordered
	// by term id.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return truncate(scores, limit), nil
}

// RankTissues ranks all tissues by the mean expression of the node set,
// descending, ties broken by tissue index ascending. Tissues with zero mean
// are omitted. limit <= 0 returns all.
func (e *Engine) RankTissues(nodes graph.NodeSet, limit int) ([]TissueScore, error) {
	tissues, err := e.Maps.Tissues()
	if err != nil {
		return nil, err
	}

	var vectors [][]float64
	for id := range nodes {
		if a, ok := e.Graph.Attrs(id); ok {
			vectors = append(vectors, a.Expression.Float64s())
		}
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	column := make([]float64, len(vectors))
	var scores []TissueScore
	for ix, name := range tissues {
		for row, vec := range vectors {
			if ix < len(vec) {
				column[row] = vec[ix]
			} else {
				column[row] = 0
			}
		}
		if mean := stat.Mean(column, nil); mean > 0 {
			scores = append(scores, TissueScore{Tissue: name, Index: ix, Score: mean})
		}
	}

	// Built in index order, so a stable sort keeps ties ordered by index.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return truncate(scores, limit), nil
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
