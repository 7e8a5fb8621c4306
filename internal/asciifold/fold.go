// Package asciifold implements the case-folding rule shared by the path
// index and the query: ASCII alphabetics are lowercased, every other byte
// passes through unchanged.
package asciifold

// Fold returns a copy of s with ASCII uppercase bytes lowercased. Bytes
// ≥ 0x80 are copied verbatim.
func Fold(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
