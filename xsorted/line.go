package xsorted

import (
	"sort"

	"github.com/patrickbrosi/spatialjoin/geom"
)

// Line is a polyline (or, via Polygon, a ring) represented as its boundary
// events sorted by x. Every edge contributes two events, an "in" at its
// leftmost endpoint and an "out" at its rightmost, so a sweep that scans
// this vector left to right sees each edge open exactly once and close
// exactly once. maxSegLen is the longest edge's x-span, used by the sweep
// to bound how far back in the event vector it must binary-search when
// starting a scan mid-line.
type Line struct {
	events    []Tuple
	maxSegLen int64
}

// NewLine builds an x-sorted event vector from an ordered list of vertices.
// A line with fewer than two points has no segments at all.
func NewLine(points []geom.Point) Line {
	l := Line{maxSegLen: -1}
	if len(points) < 2 {
		if len(points) == 1 {
			l.events = append(l.events, NewPointTuple(points[0], false))
		}
		return l
	}

	l.events = make([]Tuple, 0, 2*(len(points)-1))
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		span := int64(cur.X) - int64(prev.X)
		if span < 0 {
			span = -span
		}
		if span > l.maxSegLen {
			l.maxSegLen = span
		}

		var seg geom.LineSegment
		if prev.X < cur.X {
			seg = geom.Seg(prev, cur)
		} else {
			seg = geom.Seg(cur, prev)
		}
		l.events = append(l.events, NewSegTuple(seg.A, seg, false))
		l.events = append(l.events, NewSegTuple(seg.B, seg, true))
	}

	sort.Slice(l.events, func(i, j int) bool { return TupleLess(l.events[i], l.events[j]) })
	return l
}

// NewLineFromSegment builds a two-event x-sorted line from a single
// segment, skipping the general sort since the order of two events is
// already known.
func NewLineFromSegment(seg geom.LineSegment) Line {
	n := seg.Normalized()
	span := int64(n.B.X) - int64(n.A.X)
	if span < 0 {
		span = -span
	}
	return Line{
		events:    []Tuple{NewSegTuple(n.A, n, false), NewSegTuple(n.B, n, true)},
		maxSegLen: span,
	}
}

// MaxSegLen returns the longest edge's x-span, or -1 for an empty line.
func (l Line) MaxSegLen() int64 {
	return l.maxSegLen
}

// SetMaxSegLen overrides the tracked longest edge's x-span. Used when
// several lines are concatenated (e.g. a polygon's rings) and the
// combined bound must be recomputed by the caller.
func (l *Line) SetMaxSegLen(v int64) {
	l.maxSegLen = v
}

// Events returns the underlying x-sorted event vector.
func (l Line) Events() []Tuple {
	return l.events
}

// Len reports the number of events.
func (l Line) Len() int {
	return len(l.events)
}

// LowerBound returns the index of the first event with P.X >= x, using
// binary search over the x-sorted vector — the Go analogue of
// std::lower_bound, used by the sweep to jump straight to a starting
// x-coordinate instead of scanning from the beginning.
func (l Line) LowerBound(x int32) int {
	return sort.Search(len(l.events), func(i int) bool {
		return l.events[i].P.X >= x
	})
}

// Polygon is an x-sorted boundary made of one or more closed rings (an
// outer ring plus zero or more holes), concatenated into a single event
// vector so the sweep can treat "is this x-coordinate inside the polygon"
// as one ray-parity scan over all rings at once.
type Polygon struct {
	rings []Line
	Line
}

// NewPolygon builds an x-sorted polygon boundary from one or more rings,
// each given as an ordered list of vertices (not explicitly closed; the
// closing edge back to the first vertex is added automatically).
func NewPolygon(rings [][]geom.Point) Polygon {
	p := Polygon{Line: Line{maxSegLen: -1}}
	p.rings = make([]Line, 0, len(rings))

	var all []Tuple
	for _, ring := range rings {
		closed := closeRing(ring)
		l := NewLine(closed)
		p.rings = append(p.rings, l)
		if l.maxSegLen > p.maxSegLen {
			p.maxSegLen = l.maxSegLen
		}
		all = append(all, l.events...)
	}

	sort.Slice(all, func(i, j int) bool { return TupleLess(all[i], all[j]) })
	p.events = all
	return p
}

// Rings returns the per-ring x-sorted lines making up this polygon's
// boundary (ring 0 is the outer ring; any further rings are holes).
func (p Polygon) Rings() []Line {
	return p.rings
}

func closeRing(points []geom.Point) []geom.Point {
	if len(points) == 0 {
		return points
	}
	if points[0].Eq(points[len(points)-1]) {
		return points
	}
	closed := make([]geom.Point, len(points)+1)
	copy(closed, points)
	closed[len(points)] = points[0]
	return closed
}
