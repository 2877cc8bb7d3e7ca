package pairwise

import (
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/numeric"
	"github.com/patrickbrosi/spatialjoin/types"
)

// ringArea sums outer's signed area with every hole's, halved to undo the
// Area2X doubling — the same convention spatialjoin.addArea uses when
// caching an area's size.
func ringArea(outer geom.Ring, holes []geom.Ring) float64 {
	area := float64(outer.Area2X()) / 2.0
	for _, h := range holes {
		area -= float64(h.Area2X()) / 2.0
	}
	return area
}

// ringSegs flattens outer and every hole into a single edge list.
func ringSegs(outer geom.Ring, holes []geom.Ring) []geom.LineSegment {
	segs := outer.Segments()
	for _, h := range holes {
		segs = append(segs, h.Segments()...)
	}
	return segs
}

// allRingPoints flattens outer and every hole's vertices into one slice.
func allRingPoints(outer geom.Ring, holes []geom.Ring) []geom.Point {
	pts := append([]geom.Point{}, outer.Points...)
	for _, h := range holes {
		pts = append(pts, h.Points...)
	}
	return pts
}

// classifyVerticesAgainst reports whether any of pts falls strictly inside,
// strictly outside, or exactly on the boundary of the area (outer, holes).
func classifyVerticesAgainst(pts []geom.Point, outer geom.Ring, holes []geom.Ring) (anyInside, anyOutside, anyBoundary bool) {
	for _, p := range pts {
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
	return
}

// checkAreaArea relates two areas. Contains/Covers describe a's
// relationship to b. Crosses never applies to two same-dimension areas
// and is never set here.
func checkAreaArea(outerA geom.Ring, holesA []geom.Ring, outerB geom.Ring, holesB []geom.Ring) types.Predicates {
	segsA := ringSegs(outerA, holesA)
	segsB := ringSegs(outerB, holesB)

	var anyBoundaryCross, anyBoundaryOverlap, anyBoundaryTouch bool
	for _, sa := range segsA {
		for _, sb := range segsB {
			switch classifyContact(sa, sb) {
			case contactTouch:
				anyBoundaryTouch = true
			case contactCross:
				anyBoundaryCross = true
			case contactOverlap:
				anyBoundaryOverlap = true
			}
		}
	}

	allA := allRingPoints(outerA, holesA)
	allB := allRingPoints(outerB, holesB)

	aInB, aOutB, aBoundaryB := classifyVerticesAgainst(allA, outerB, holesB)
	bInA, bOutA, bBoundaryA := classifyVerticesAgainst(allB, outerA, holesA)

	touchesBoundary := anyBoundaryTouch || aBoundaryB || bBoundaryA
	if !aInB && !aOutB && !aBoundaryB && !bInA && !bOutA && !bBoundaryA &&
		!anyBoundaryCross && !anyBoundaryOverlap && !touchesBoundary {
		return 0
	}

	result := types.PredIntersects

	aFullyInB := aInB && !aOutB
	bFullyInA := bInA && !bOutA

	// No vertex of either area lies outside the other, and their sizes
	// agree within the precision grid's tolerance: the same area, even
	// when every vertex sits on the other's boundary (another starting
	// vertex, an extra collinear boundary vertex).
	sameArea := !bOutA && !aOutB && numeric.FloatEquals(ringArea(outerA, holesA), ringArea(outerB, holesB), equalsEpsilon)

	switch {
	case sameArea:
		result = result.With(types.PredContains).With(types.PredCovers).With(types.PredEquals)
	case bFullyInA:
		result = result.With(types.PredContains).With(types.PredCovers)
	case !bInA && bBoundaryA && !bOutA:
		result = result.With(types.PredCovers)
	}

	// Overlaps only applies when neither side fully contains the other and
	// the two are not the same area — containment already accounts for
	// every shared point.
	if !bFullyInA && !aFullyInB && !sameArea {
		switch {
		case (aInB && bOutA) || (bInA && aOutB):
			result = result.With(types.PredOverlaps)
		case anyBoundaryCross || anyBoundaryOverlap:
			result = result.With(types.PredOverlaps)
		}
	}

	if touchesBoundary && !aInB && !bInA && !sameArea {
		result = result.With(types.PredTouches)
	}

	return result
}
