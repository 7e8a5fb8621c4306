// Package search wires the Path Index, Query, and Scorer together: the
// Result Selector (selector.go) and the Engine's search() glue
// (engine.go).
package search

import (
	"github.com/nicolaygerold/sniff/internal/pathindex"
	"github.com/nicolaygerold/sniff/internal/query"
	"github.com/nicolaygerold/sniff/internal/scorer"
)

// Engine runs a query against an Index and returns the top results.
type Engine struct {
	index    *pathindex.Index
	scorer   *scorer.Scorer
	selector *Selector
}

// NewEngine builds an Engine over idx. idx is not owned by the Engine;
// the caller is responsible for not mutating it during a Search call.
func NewEngine(idx *pathindex.Index) *Engine {
	return &Engine{
		index:    idx,
		scorer:   scorer.New(),
		selector: NewSelector(),
	}
}

// Search runs queryStr against every entry in the index and returns
// the top MaxResults matches ordered by the §4.4 total order. An empty
// queryStr returns nil without doing any work. The returned slice is
// the Engine's own storage and is overwritten by the next Search call.
func (e *Engine) Search(queryStr string) []ScoredEntry {
	if queryStr == "" {
		return nil
	}
	q := query.New(queryStr)
	e.selector.Reset()

	for _, entry := range e.index.All() {
		minJ := 0
		subject := entry.PathLower
		if !q.UsesFullPath {
			minJ = int(entry.BasenameStart)
			subject = entry.BasenameLower()
		}
		if !scorer.IsSubsequence(q.Lower, subject) {
			continue
		}

		var (
			m  scorer.Match
			ok bool
		)
		if e.selector.Full() {
			m, ok = e.scorer.ScoreWithThreshold(q.Raw, q.Lower, entry.Path, entry.PathLower, minJ, e.selector.MinScore()+1)
		} else {
			m, ok = e.scorer.Score(q.Raw, q.Lower, entry.Path, entry.PathLower, minJ)
		}
		if !ok {
			continue
		}

		e.selector.Insert(ScoredEntry{Entry: entry, Score: m.Score, Positions: m.Positions})
	}

	return e.selector.Finalize()
}
