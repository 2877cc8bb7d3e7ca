package types

import "strings"

// Predicates is a bit-set of the DE-9IM-flavoured relations the pair checker
// (C9) can establish between two geometries: intersects, contains, covers,
// equals, overlaps, crosses, and touches. A pair can satisfy more than one
// predicate at once (e.g. covers implies intersects), so Predicates is a
// set rather than a single enum value, mirroring [Relationship]'s role for
// simpler box-only comparisons but generalized to the full DE-9IM vocabulary
// the join engine reports.
type Predicates uint8

// Valid bits for Predicates. Values are chosen to match the emission order
// in spec.md §6 (intersects, contains, covers, touches, equals, overlaps,
// crosses).
const (
	PredIntersects Predicates = 1 << iota
	PredContains
	PredCovers
	PredTouches
	PredEquals
	PredOverlaps
	PredCrosses
)

// allPredicates lists every bit in emission order, paired with its name, so
// String and Has-based iteration stay in one place.
var allPredicates = []struct {
	bit  Predicates
	name string
}{
	{PredIntersects, "intersects"},
	{PredContains, "contains"},
	{PredCovers, "covers"},
	{PredTouches, "touches"},
	{PredEquals, "equals"},
	{PredOverlaps, "overlaps"},
	{PredCrosses, "crosses"},
}

// Has reports whether p has every bit set in other.
func (p Predicates) Has(other Predicates) bool {
	return p&other == other
}

// With returns p with every bit in other also set.
func (p Predicates) With(other Predicates) Predicates {
	return p | other
}

// None reports whether no predicate bit is set.
func (p Predicates) None() bool {
	return p == 0
}

// String renders the set predicates as a comma-separated list, e.g.
// "intersects,covers,equals".
func (p Predicates) String() string {
	var names []string
	for _, e := range allPredicates {
		if p.Has(e.bit) {
			names = append(names, e.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
