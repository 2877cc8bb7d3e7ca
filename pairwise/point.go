package pairwise

import (
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/types"
)

// checkPointPoint relates two points: either they coincide exactly (no
// epsilon, since coordinates are already snapped to the grid) or they
// share nothing at all.
func checkPointPoint(a, b geom.Point) types.Predicates {
	if !a.Eq(b) {
		return 0
	}
	return types.PredIntersects.With(types.PredContains).With(types.PredCovers).With(types.PredEquals)
}

// onLine reports whether p lies on line (a polyline, not
// necessarily closed) and whether that point is one of line's two
// endpoints — its boundary, in DE-9IM terms. A line with fewer than two
// points has no interior or boundary to speak of.
func onLine(p geom.Point, line []geom.Point) (on, endpoint bool) {
	if len(line) < 2 {
		return false, false
	}
	for i := 0; i+1 < len(line); i++ {
		if geom.Seg(line[i], line[i+1]).ContainsPoint(p) {
			on = true
			break
		}
	}
	if !on {
		return false, false
	}
	endpoint = p.Eq(line[0]) || p.Eq(line[len(line)-1])
	return true, endpoint
}

// checkPointLine relates a line (the "a" side) to a point (the "b" side):
// the returned Contains/Covers bits describe the line's relationship to
// the point, never the reverse.
func checkPointLine(p geom.Point, line []geom.Point) types.Predicates {
	on, endpoint := onLine(p, line)
	if !on {
		return 0
	}
	result := types.PredIntersects.With(types.PredCovers)
	if endpoint {
		result = result.With(types.PredTouches)
	} else {
		result = result.With(types.PredContains)
	}
	return result
}

// ringsClassify reports whether p lies strictly inside outer and outside
// every hole (inside == true, boundary == false), exactly on the boundary
// of outer or of some hole (boundary == true), or outside the area
// altogether (both false).
func ringsClassify(p geom.Point, outer geom.Ring, holes []geom.Ring) (inside, boundary bool) {
	for _, seg := range outer.Segments() {
		if seg.ContainsPoint(p) {
			return false, true
		}
	}
	if !outer.ContainsPoint(p) {
		return false, false
	}
	for _, h := range holes {
		for _, seg := range h.Segments() {
			if seg.ContainsPoint(p) {
				return false, true
			}
		}
		if h.ContainsPoint(p) {
			return false, false
		}
	}
	return true, false
}

// checkPointArea relates an area (the "a" side) to a point (the "b" side).
func checkPointArea(p geom.Point, outer geom.Ring, holes []geom.Ring) types.Predicates {
	inside, boundary := ringsClassify(p, outer, holes)
	if !inside && !boundary {
		return 0
	}
	result := types.PredIntersects.With(types.PredCovers)
	if boundary {
		result = result.With(types.PredTouches)
	} else {
		result = result.With(types.PredContains)
	}
	return result
}
