package search

import (
	"fmt"
	"math"
	"testing"

	"github.com/nicolaygerold/sniff/internal/pathindex"
)

func entryFor(idx *pathindex.Index, path string) *pathindex.Entry {
	idx.Add(path)
	var got *pathindex.Entry
	for _, e := range idx.All() {
		if e.Path == path {
			got = e
		}
	}
	return got
}

func TestSelectorDiscardsBelowMinimumWhenFull(t *testing.T) {
	idx := pathindex.New()
	sel := NewSelector()
	for i := 0; i < MaxResults; i++ {
		e := entryFor(idx, fmt.Sprintf("file%d.go", i))
		sel.Insert(ScoredEntry{Entry: e, Score: i})
	}
	if !sel.Full() {
		t.Fatal("selector should be full")
	}
	minBefore := sel.MinScore()

	low := entryFor(idx, "toolow.go")
	sel.Insert(ScoredEntry{Entry: low, Score: minBefore})
	if sel.MinScore() != minBefore {
		t.Errorf("equal-score insert should be rejected, min changed to %d", sel.MinScore())
	}

	higher := entryFor(idx, "higher.go")
	sel.Insert(ScoredEntry{Entry: higher, Score: minBefore + 1})
	if sel.Len() != MaxResults {
		t.Fatalf("Len() = %d, want %d", sel.Len(), MaxResults)
	}
	if sel.MinScore() <= minBefore {
		t.Errorf("MinScore() = %d, want > %d after replacing the minimum", sel.MinScore(), minBefore)
	}
}

func TestFinalizeOrdersByTotalOrder(t *testing.T) {
	idx := pathindex.New()
	sel := NewSelector()

	a := entryFor(idx, "a/file.go")   // depth 1
	b := entryFor(idx, "file.go")     // depth 0, same score as a
	c := entryFor(idx, "z/long.go")   // lower score
	sel.Insert(ScoredEntry{Entry: a, Score: 10})
	sel.Insert(ScoredEntry{Entry: b, Score: 10})
	sel.Insert(ScoredEntry{Entry: c, Score: 5})

	got := sel.Finalize()
	if len(got) != 3 {
		t.Fatalf("Finalize() returned %d entries, want 3", len(got))
	}
	if got[0].Entry.Path != "file.go" {
		t.Errorf("first result = %q, want file.go (same score, shallower)", got[0].Entry.Path)
	}
	if got[1].Entry.Path != "a/file.go" {
		t.Errorf("second result = %q, want a/file.go", got[1].Entry.Path)
	}
	if got[2].Entry.Path != "z/long.go" {
		t.Errorf("third result = %q, want z/long.go (lowest score)", got[2].Entry.Path)
	}
}

func TestResetClearsMinScore(t *testing.T) {
	idx := pathindex.New()
	sel := NewSelector()
	e := entryFor(idx, "a.go")
	sel.Insert(ScoredEntry{Entry: e, Score: 5})
	sel.Reset()
	if sel.Len() != 0 {
		t.Fatalf("Len() after Reset() = %d, want 0", sel.Len())
	}
	if sel.Full() {
		t.Error("selector should not be full after Reset()")
	}
	if sel.MinScore() != math.MinInt64 {
		t.Errorf("MinScore() after Reset() = %d, want %d", sel.MinScore(), math.MinInt64)
	}
}
