package pathindex

import (
	"math"

	"github.com/nicolaygerold/sniff/internal/asciifold"
)

// Entry is one scanned file. Path and PathLower are immutable once
// appended to an Index; callers must treat a pointer to an Entry as
// valid only until the next Index mutation.
type Entry struct {
	Path          string
	PathLower     string
	BasenameStart uint16
	Depth         uint8
}

func newEntry(path string) Entry {
	depth := 0
	basenameStart := 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '/', '\\':
			depth++
			basenameStart = i + 1
		}
	}
	if depth > math.MaxUint8 {
		depth = math.MaxUint8
	}
	if basenameStart > math.MaxUint16 {
		basenameStart = math.MaxUint16
	}
	return Entry{
		Path:          path,
		PathLower:     asciifold.Fold(path),
		BasenameStart: uint16(basenameStart),
		Depth:         uint8(depth),
	}
}

// Basename returns the final path component.
func (e *Entry) Basename() string { return e.Path[e.BasenameStart:] }

// BasenameLower returns the case-folded final path component.
func (e *Entry) BasenameLower() string { return e.PathLower[e.BasenameStart:] }
