package hierarchy

import (
	"slices"
	"strings"
)

// Index is a total, deterministic mapping from class names to positions in
// [0,N). Names are deduplicated and sorted lexicographically, so identical
// class sets always produce identical indexings regardless of the order in
// which the edge extractor discovered them.
//
// The zero value is a valid empty index.
type Index struct {
	names []string
	pos   map[string]int
}

// NewIndex builds an index over the given class names.
// Duplicates are collapsed; an empty input yields an empty index.
func NewIndex(names []string) Index {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	pos := make(map[string]int, len(sorted))
	for i, name := range sorted {
		pos[name] = i
	}
	return Index{names: sorted, pos: pos}
}

// Len returns the number of classes.
func (ix Index) Len() int { return len(ix.names) }

// Name returns the class name at position i. i must be in [0,Len).
func (ix Index) Name(i int) string { return ix.names[i] }

// Lookup returns the position of name and whether it is present.
func (ix Index) Lookup(name string) (int, bool) {
	i, ok := ix.pos[name]
	return i, ok
}

// Names returns the ordered class names. The result is a copy.
func (ix Index) Names() []string { return slices.Clone(ix.names) }

// ShortName strips an ontology URI prefix from a class name for display.
// Names containing '#' keep the fragment; otherwise the last '/' segment is
// kept. Plain names pass through unchanged.
func ShortName(name string) string {
	if i := strings.LastIndexByte(name, '#'); i >= 0 {
		return name[i+1:]
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
