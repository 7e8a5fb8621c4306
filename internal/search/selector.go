package search

import (
	"math"
	"sort"

	"github.com/nicolaygerold/sniff/internal/pathindex"
)

// MaxResults is the selector's bounded capacity, K in §4.4.
const MaxResults = 512

// ScoredEntry pairs an Entry with its score and match positions for a
// single search. Positions are byte offsets into Entry.Path (not into
// whatever slice of it the scorer actually matched against).
type ScoredEntry struct {
	Entry     *pathindex.Entry
	Score     int
	Positions []int
}

// Selector holds at most MaxResults scored entries under a dynamic
// minimum-score cutoff. The zero value is not usable; call
// NewSelector.
type Selector struct {
	items    []ScoredEntry
	minScore int
	minIdx   int
}

// NewSelector returns an empty Selector.
func NewSelector() *Selector {
	s := &Selector{items: make([]ScoredEntry, 0, MaxResults)}
	s.reset()
	return s
}

// Reset empties the selector so it can be reused for the next search.
func (s *Selector) Reset() {
	s.items = s.items[:0]
	s.reset()
}

func (s *Selector) reset() {
	s.minScore = math.MinInt64
	s.minIdx = -1
}

// MinScore returns the minimum score currently held, or negative
// infinity when empty.
func (s *Selector) MinScore() int { return s.minScore }

// Full reports whether the selector is at capacity.
func (s *Selector) Full() bool { return len(s.items) >= MaxResults }

// Len returns the current item count.
func (s *Selector) Len() int { return len(s.items) }

// Insert adds e, discarding it if the selector is full and
// e.Score <= MinScore(). When full and e.Score beats the minimum, e
// replaces the current minimum entry.
func (s *Selector) Insert(e ScoredEntry) {
	if len(s.items) < MaxResults {
		s.items = append(s.items, e)
		s.recomputeMin()
		return
	}
	if e.Score <= s.minScore {
		return
	}
	s.items[s.minIdx] = e
	s.recomputeMin()
}

func (s *Selector) recomputeMin() {
	if len(s.items) == 0 {
		s.reset()
		return
	}
	min := s.items[0].Score
	idx := 0
	for i := 1; i < len(s.items); i++ {
		if s.items[i].Score < min {
			min = s.items[i].Score
			idx = i
		}
	}
	s.minScore = min
	s.minIdx = idx
}

// Finalize sorts the held items by the §4.4 total order (score
// descending, depth ascending, basename length ascending, path
// ascending) and returns them.
func (s *Selector) Finalize() []ScoredEntry {
	sort.Slice(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Entry.Depth != b.Entry.Depth {
			return a.Entry.Depth < b.Entry.Depth
		}
		al, bl := len(a.Entry.Basename()), len(b.Entry.Basename())
		if al != bl {
			return al < bl
		}
		return a.Entry.Path < b.Entry.Path
	})
	return s.items
}
