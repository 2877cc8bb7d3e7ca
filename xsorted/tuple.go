// Package xsorted provides x-sorted event representations of lines and
// polygon boundaries, plus the active-set ordering the sweep uses to keep
// currently-crossed segments sorted by y at the sweep line's current x.
//
// A Line (or Polygon) is not stored as an ordered vertex list but as a
// flat vector of open/close events sorted by x — the same representation
// the candidate-generation sweep (C8) consumes directly, so no conversion
// is needed between "the geometry as loaded" and "the geometry as swept".
package xsorted

import "github.com/patrickbrosi/spatialjoin/geom"

// tuple flag bits packed into Tuple.vals, mirroring the original engine's
// bit-packed layout: storing only the "other" endpoint plus three flag
// bits (rather than the full segment) keeps each Tuple small enough that a
// sorted line's startup binary search, and the sweep's per-step scan of the
// active set, touch fewer cache lines.
const (
	flagOut   = 1 << 0
	flagFirst = 1 << 1
	flagEmpty = 1 << 2
)

// Tuple is one endpoint event of an x-sorted line or polygon boundary: the
// point itself, the segment's other endpoint, and whether this event opens
// ("in") or closes ("out") that segment in the sweep's active set.
//
// A zero Tuple (vals == flagEmpty) represents a degenerate, zero-length
// input with no segment at all.
type Tuple struct {
	P, Other geom.Point
	vals     uint8
}

// NewPointTuple builds a Tuple for a standalone point with no segment.
func NewPointTuple(p geom.Point, out bool) Tuple {
	t := Tuple{P: p, vals: flagEmpty}
	if out {
		t.vals |= flagOut
	}
	return t
}

// NewSegTuple builds a Tuple for point p, one endpoint of segment seg, with
// out marking whether this is the closing event for seg.
func NewSegTuple(p geom.Point, seg geom.LineSegment, out bool) Tuple {
	t := Tuple{P: p}
	if out {
		t.vals |= flagOut
	}
	switch {
	case seg.A.Eq(p):
		t.vals |= flagFirst
		t.Other = seg.B
	case seg.B.Eq(p):
		t.Other = seg.A
	}
	return t
}

// Seg reconstructs the line segment this event belongs to. It returns the
// zero segment for a point-only Tuple.
func (t Tuple) Seg() geom.LineSegment {
	if t.vals&flagEmpty != 0 {
		return geom.LineSegment{}
	}
	if t.vals&flagFirst != 0 {
		return geom.Seg(t.P, t.Other)
	}
	return geom.Seg(t.Other, t.P)
}

// Out reports whether this event closes its segment in the active set.
func (t Tuple) Out() bool {
	return t.vals&flagOut != 0
}

// IsPoint reports whether this Tuple carries no segment at all.
func (t Tuple) IsPoint() bool {
	return t.vals&flagEmpty != 0
}

// TupleLess orders events for the x-sorted event vector: ascending by x,
// and at equal x an "in" event sorts before an "out" event so a segment
// that starts exactly where another ends is seen as active during the
// shared coordinate.
func TupleLess(a, b Tuple) bool {
	if a.P.X != b.P.X {
		return a.P.X < b.P.X
	}
	return !a.Out() && b.Out()
}
