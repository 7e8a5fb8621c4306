// Package pathindex holds the scanned path set that the search engine
// queries against. It is the "Path Index" component: a flat,
// arena-style slice of entries with no internal locking. Mutation and
// search must be serialized by the caller (see internal/service).
package pathindex

import (
	"iter"
	"strings"
)

// Index owns every scanned Entry. The zero value is an empty Index,
// the same as the one New returns.
type Index struct {
	entries []Entry
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}

// Add appends a new entry for path. path must already use '/' as its
// separator; the index never re-derives an absolute path.
func (idx *Index) Add(path string) {
	idx.entries = append(idx.entries, newEntry(path))
}

// Remove deletes every entry whose Path is byte-equal to path. Order
// among the remaining entries is not contractual.
func (idx *Index) Remove(path string) {
	idx.retain(func(e *Entry) bool { return e.Path != path })
}

// RemoveWithPrefix deletes every entry whose Path starts with prefix.
func (idx *Index) RemoveWithPrefix(prefix string) {
	idx.retain(func(e *Entry) bool { return !strings.HasPrefix(e.Path, prefix) })
}

func (idx *Index) retain(keep func(e *Entry) bool) {
	out := idx.entries[:0]
	for i := range idx.entries {
		if keep(&idx.entries[i]) {
			out = append(out, idx.entries[i])
		}
	}
	idx.entries = out
}

// Clear drops every entry. The backing array's capacity is retained.
func (idx *Index) Clear() {
	idx.entries = idx.entries[:0]
}

// Count returns the current entry count.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// All yields non-owning pointers to every entry in insertion order.
// Pointers are valid only until the next call to Add, Remove,
// RemoveWithPrefix, or Clear.
func (idx *Index) All() iter.Seq2[int, *Entry] {
	return func(yield func(int, *Entry) bool) {
		for i := range idx.entries {
			if !yield(i, &idx.entries[i]) {
				return
			}
		}
	}
}
