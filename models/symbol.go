package models

import "strings"

// SymbolByteLen returns the length of s in bytes. Multi-byte characters
// count as their full encoded width, so a symbol made of CJK characters
// occupies more of the tick-size budget than an ASCII one.
func SymbolByteLen(s string) int {
	return len(s)
}

// CanonicalSymbol lower-cases a symbol. The canonical form is the
// uniqueness key for the registry, so "ABCD" and "abcd" name the same tick.
func CanonicalSymbol(s string) string {
	return strings.ToLower(s)
}
