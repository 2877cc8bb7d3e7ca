package pairwise

import (
	"math"

	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/numeric"
	"github.com/patrickbrosi/spatialjoin/types"
)

// segContact classifies how two segments, each belonging to a different
// polyline or ring, meet.
type segContact byte

const (
	contactNone segContact = iota
	contactTouch            // share an endpoint, not collinear
	contactCross            // proper transversal intersection, interior-interior
	contactOverlap          // collinear, overlapping along a sub-segment
)

func classifyContact(a, b geom.LineSegment) segContact {
	if !a.Intersects(b) {
		return contactNone
	}
	switch {
	case a.IsCollinearWith(b):
		return contactOverlap
	case a.SharesEndpoint(b):
		return contactTouch
	default:
		return contactCross
	}
}

func segments(line []geom.Point) []geom.LineSegment {
	if len(line) < 2 {
		return nil
	}
	segs := make([]geom.LineSegment, 0, len(line)-1)
	for i := 0; i+1 < len(line); i++ {
		segs = append(segs, geom.Seg(line[i], line[i+1]))
	}
	return segs
}

// lineCoversLine reports whether every vertex of b lies on a (covers), and
// whether at least one of those vertices lies strictly in a's interior
// rather than at one of a's own endpoints (strictly, which upgrades
// covers to contains).
func lineCoversLine(a, b []geom.Point) (covers, strictly bool) {
	if len(b) == 0 {
		return false, false
	}
	for _, p := range b {
		on, endpoint := onLine(p, a)
		if !on {
			return false, false
		}
		if !endpoint {
			strictly = true
		}
	}
	return true, strictly
}

// lineLength sums the Euclidean length of every segment in pts.
func lineLength(pts []geom.Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		dx := float64(pts[i].X) - float64(pts[i-1].X)
		dy := float64(pts[i].Y) - float64(pts[i-1].Y)
		total += math.Hypot(dx, dy)
	}
	return total
}

// checkLineLine relates two polylines. Contains/Covers describe a's
// relationship to b.
func checkLineLine(a, b []geom.Point) types.Predicates {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	var anyTouch, anyCross, anyOverlap bool
	for _, sa := range segments(a) {
		for _, sb := range segments(b) {
			switch classifyContact(sa, sb) {
			case contactTouch:
				anyTouch = true
			case contactCross:
				anyCross = true
			case contactOverlap:
				anyOverlap = true
			}
		}
	}
	if !anyTouch && !anyCross && !anyOverlap {
		return 0
	}

	result := types.PredIntersects
	if anyOverlap {
		result = result.With(types.PredOverlaps)
	}
	if anyCross {
		result = result.With(types.PredCrosses)
	}
	if anyTouch && !anyCross && !anyOverlap {
		result = result.With(types.PredTouches)
	}

	covers, strict := lineCoversLine(a, b)
	if covers {
		result = result.With(types.PredCovers)
		if strict {
			result = result.With(types.PredContains)
		}

		// Every vertex of b already lies on a; a and b are the same line
		// iff their lengths also agree within the precision grid's
		// tolerance — a line with an extra collinear vertex still
		// equals its simplified twin.
		if numeric.FloatEquals(lineLength(a), lineLength(b), equalsEpsilon) {
			result = result.With(types.PredEquals)
		}
	}

	return result
}

// checkLineArea relates a line to an area. Contains/Covers describe the
// area's relationship to the line: every vertex of the line classified
// against the area's rings, plus a segment-vs-boundary intersection pass
// to catch a line that crosses the boundary between two vertices without
// either endpoint landing on it exactly.
func checkLineArea(line []geom.Point, outer geom.Ring, holes []geom.Ring) types.Predicates {
	if len(line) < 2 {
		return 0
	}

	var anyInside, anyOutside, anyBoundary bool
	for _, p := range line {
		inside, boundary := ringsClassify(p, outer, holes)
		switch {
		case boundary:
			anyBoundary = true
		case inside:
			anyInside = true
		default:
			anyOutside = true
		}
	}

	// A segment can pass through the area's interior without either of its
	// endpoints landing inside it (it enters through one edge and leaves
	// through another); anyBoundaryCross catches that case by classifying
	// every line-segment/ring-segment contact.
	ringSegments := ringSegs(outer, holes)
	var anyBoundaryCross, anyBoundaryTouch bool
	for _, seg := range segments(line) {
		for _, rs := range ringSegments {
			switch classifyContact(seg, rs) {
			case contactCross:
				anyBoundaryCross = true
			case contactTouch, contactOverlap:
				anyBoundaryTouch = true
			}
		}
	}

	if !anyInside && !anyBoundary && !anyBoundaryCross && !anyBoundaryTouch {
		return 0
	}

	result := types.PredIntersects
	switch {
	case (anyInside || anyBoundaryCross) && anyOutside:
		result = result.With(types.PredCrosses)
	case anyInside && !anyOutside:
		result = result.With(types.PredContains).With(types.PredCovers)
	case anyBoundary && !anyInside && !anyOutside:
		result = result.With(types.PredCovers).With(types.PredTouches)
	case anyBoundaryTouch:
		result = result.With(types.PredTouches)
	}
	return result
}
