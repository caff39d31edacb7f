package formatter

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// sortedSymbols returns the keys of a symbol map in sorted order.
func sortedSymbols[V any](m map[string]V) []string {
	symbols := maps.Keys(m)
	slices.Sort(symbols)
	return symbols
}
