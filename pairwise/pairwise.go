// Package pairwise is the pair checker (C9): given two candidate geometries
// that the sweep (C8) has already decided are worth a closer look, it runs
// the cascade of increasingly expensive tests spec.md §4.8 describes and
// returns the full set of DE-9IM-flavoured predicates that hold between
// them.
//
// The cascade has four stages, cheapest first:
//
//  1. equivalence (equivalent) — byte-equal bounding boxes and vertex
//     vectors short-circuit straight to equals + covers + intersects.
//  2. bounding-box relate (geom.Box.Relate) — a disjoint result ends the
//     cascade immediately.
//  3. box-id intersection (boxids.Intersect), when both sides carry a
//     packed grid — a result of (0, 0) means the two geometries' coarse
//     grids never overlap, ending the cascade without touching either
//     geometry's actual vertices.
//  4. exact geometry tests, dispatched on the pair's (point, line, area)
//     kind, using the int64-exact primitives in package geom.
package pairwise

import (
	"github.com/patrickbrosi/spatialjoin/boxids"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/types"
)

// Geometry is the uniform shape the cascade consumes, assembled from
// whichever geomcache record backs one side of a candidate pair. Only the
// fields relevant to Type are populated; the rest are left at their zero
// value.
type Geometry struct {
	Type types.GeomType

	Box    geom.Box
	BoxIDs boxids.List

	Point geom.Point       // GeomPoint
	Seg   geom.LineSegment // GeomSimpleLine
	Line  []geom.Point     // GeomLine: the line string's vertices, in order

	Outer geom.Ring   // GeomSimpleArea, GeomArea: the outer ring
	Inner []geom.Ring // GeomArea: hole rings, if any
}

// FromPoint builds a Geometry for a standalone point.
func FromPoint(p geom.Point) Geometry {
	return Geometry{Type: types.GeomPoint, Point: p, Box: geom.Box{LoX: p.X, LoY: p.Y, HiX: p.X, HiY: p.Y}}
}

// FromSimpleLine builds a Geometry for a two-point line segment.
func FromSimpleLine(seg geom.LineSegment) Geometry {
	return Geometry{Type: types.GeomSimpleLine, Seg: seg, Box: seg.Box()}
}

// FromLine builds a Geometry for a (multi-vertex) line string.
func FromLine(points []geom.Point, box geom.Box, ids boxids.List) Geometry {
	return Geometry{Type: types.GeomLine, Line: points, Box: box, BoxIDs: ids}
}

// FromSimpleArea builds a Geometry for a single-ring polygon with no holes.
func FromSimpleArea(outer []geom.Point) Geometry {
	r := geom.NewRing(outer)
	return Geometry{Type: types.GeomSimpleArea, Outer: r, Box: r.Box()}
}

// FromArea builds a Geometry for a polygon with an outer ring and zero or
// more holes. rings[0] is the outer ring; rings[1:] are holes.
func FromArea(rings [][]geom.Point, box geom.Box, ids boxids.List) Geometry {
	g := Geometry{Type: types.GeomArea, Box: box, BoxIDs: ids}
	if len(rings) == 0 {
		return g
	}
	g.Outer = geom.NewRing(rings[0])
	for _, h := range rings[1:] {
		g.Inner = append(g.Inner, geom.NewRing(h))
	}
	return g
}

// equalsEpsilon is the absolute tolerance area and length comparisons use
// to decide equals: two units of the fixed-point precision grid (boxids.
// Prec), matching the original engine's util::geo::EPSILON.
const equalsEpsilon = 2 * boxids.Prec

// Config controls which cascade stages Check runs.
type Config struct {
	// UseBoxIDs runs the boxids.Intersect pre-filter when both sides carry
	// a packed grid. Disabling it (or leaving either side's BoxIDs nil)
	// falls straight through to the exact geometry tests.
	UseBoxIDs bool
}

// kind buckets a Geometry's Type down to the three shapes the exact tests
// dispatch on: point, line (>=2 vertices), or area (outer ring + holes).
type kind byte

const (
	kindPoint kind = iota
	kindLine
	kindArea
)

func kindOf(g Geometry) kind {
	switch {
	case g.Type.IsPoint():
		return kindPoint
	case g.Type.IsLine():
		return kindLine
	default:
		return kindArea
	}
}

// linePoints returns g's vertices as a plain polyline, regardless of
// whether g is a GeomSimpleLine or a GeomLine.
func linePoints(g Geometry) []geom.Point {
	if g.Type == types.GeomSimpleLine {
		return []geom.Point{g.Seg.A, g.Seg.B}
	}
	return g.Line
}

// equivalent is the cascade's cheapest stage: a and b are the exact same
// geometry when their bounding boxes and their vertex vectors are
// byte-equal, in which case there's no need to run any of the later
// stages at all — equals, covers, and intersects all follow immediately.
func equivalent(a, b Geometry) bool {
	if a.Type != b.Type || !a.Box.Eq(b.Box) {
		return false
	}
	switch a.Type {
	case types.GeomPoint:
		return a.Point.Eq(b.Point)
	case types.GeomSimpleLine:
		return a.Seg.A.Eq(b.Seg.A) && a.Seg.B.Eq(b.Seg.B)
	case types.GeomLine:
		return pointsEqual(a.Line, b.Line)
	case types.GeomSimpleArea:
		return pointsEqual(a.Outer.Points, b.Outer.Points)
	case types.GeomArea:
		if !pointsEqual(a.Outer.Points, b.Outer.Points) || len(a.Inner) != len(b.Inner) {
			return false
		}
		for i := range a.Inner {
			if !pointsEqual(a.Inner[i].Points, b.Inner[i].Points) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// pointsEqual reports whether a and b visit the exact same points in the
// exact same order.
func pointsEqual(a, b []geom.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

// Check runs the cascade and returns the predicates that hold of a
// relative to b: PredContains set means a contains b and PredCovers set
// means a covers b, not the reverse. All other bits (intersects, touches,
// equals, overlaps, crosses) are symmetric in a and b.
func Check(a, b Geometry, cfg Config) types.Predicates {
	if equivalent(a, b) {
		return types.PredEquals.With(types.PredCovers).With(types.PredIntersects)
	}

	if a.Box.Relate(b.Box) == types.RelationshipDisjoint {
		return 0
	}

	if cfg.UseBoxIDs && a.BoxIDs != nil && b.BoxIDs != nil {
		full, part := boxids.Intersect(a.BoxIDs, b.BoxIDs)
		if full == 0 && part == 0 {
			return 0
		}
	}

	ka, kb := kindOf(a), kindOf(b)

	switch {
	case ka == kindPoint && kb == kindPoint:
		return checkPointPoint(a.Point, b.Point)

	case ka == kindPoint && kb == kindLine:
		return flipContains(checkPointLine(a.Point, linePoints(b)))
	case ka == kindLine && kb == kindPoint:
		return checkPointLine(b.Point, linePoints(a))

	case ka == kindPoint && kb == kindArea:
		return flipContains(checkPointArea(a.Point, b.Outer, b.Inner))
	case ka == kindArea && kb == kindPoint:
		return checkPointArea(b.Point, a.Outer, a.Inner)

	case ka == kindLine && kb == kindLine:
		return checkLineLine(linePoints(a), linePoints(b))

	case ka == kindLine && kb == kindArea:
		return flipContains(checkLineArea(linePoints(a), b.Outer, b.Inner))
	case ka == kindArea && kb == kindLine:
		return checkLineArea(linePoints(b), a.Outer, a.Inner)

	default: // area-area
		return checkAreaArea(a.Outer, a.Inner, b.Outer, b.Inner)
	}
}

// flipContains clears the directional Contains and Covers bits when the
// cascade computed a result for (b, a) but the caller wants it relative to
// (a, b): every caller passes the lower-dimensional geometry as a, which
// can never contain or cover b. The remaining bits are symmetric and pass
// through unchanged.
func flipContains(p types.Predicates) types.Predicates {
	const directional = types.PredContains | types.PredCovers
	return p &^ directional
}
