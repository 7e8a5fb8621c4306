// Package query normalizes a single search string for the engine.
package query

import (
	"strings"

	"github.com/nicolaygerold/sniff/internal/asciifold"
)

// Query is the normalized form of one search string.
type Query struct {
	Raw          string
	Lower        string
	UsesFullPath bool
}

// New normalizes raw: it case-folds a copy and detects whether raw
// contains a path separator, which decides whether the engine matches
// against the full path or just the basename.
func New(raw string) Query {
	return Query{
		Raw:          raw,
		Lower:        asciifold.Fold(raw),
		UsesFullPath: strings.ContainsAny(raw, "/\\"),
	}
}
