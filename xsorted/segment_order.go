package xsorted

import "github.com/patrickbrosi/spatialjoin/geom"

// signVal computes the signed (doubled) area of the triangle (a1, a2, b),
// using a1-a2 as the base vector. Its sign tells which side of the
// directed line a1→a2 the point b falls on. All coordinates are int32, so
// int64 arithmetic here is always exact — unlike the original's double
// computation, there is no risk of two non-equal segments comparing equal
// due to floating-point rounding.
func signVal(a1, a2, b geom.Point) int64 {
	ax1, ay1 := int64(a1.X), int64(a1.Y)
	ax2, ay2 := int64(a2.X), int64(a2.Y)
	bx, by := int64(b.X), int64(b.Y)
	return (bx-ax1)*(ay2-ay1) - (by-ay1)*(ax2-ax1)
}

// SegmentLess orders two line segments for the sweep's active set: at
// whichever x-coordinate both segments currently span, the one with the
// lower y is "less". Segments that don't overlap in x, or are exactly
// collinear, fall back to a lexicographic comparison on endpoints so the
// order is always a strict weak order (required by the status structure's
// underlying ordered tree) even for segments the sweep never directly
// compares by position.
//
// Segments are expected to already be normalized (A before B in sweep
// order; see [geom.LineSegment.Normalized]), matching the x-sorted tuple
// construction in this package.
func SegmentLess(a, b geom.LineSegment) bool {
	if a.A.Eq(b.A) && a.B.Eq(b.B) {
		return false
	}

	if a.A.X < b.A.X || b.A.X == b.B.X {
		// a starts at or before b (or b is vertical): orient relative to a.
		if a.A.X != a.B.X {
			if cv := signVal(a.A, a.B, b.A); cv != 0 {
				return cv < 0
			}
			if cv := signVal(a.A, a.B, b.B); cv != 0 {
				return cv < 0
			}
		}
	} else {
		// b starts first: orient relative to b. Unlike the a-first branch,
		// this sign is not negated, since swapping the base segment also
		// swaps which side counts as "below".
		if b.A.X != b.B.X {
			if cv := signVal(b.A, b.B, a.A); cv != 0 {
				return cv > 0
			}
			if cv := signVal(b.A, b.B, a.B); cv != 0 {
				return cv > 0
			}
		}
	}

	if a.A.Y != b.A.Y {
		return a.A.Y < b.A.Y
	}
	if a.A.X != b.A.X {
		return a.A.X < b.A.X
	}
	if a.B.Y != b.B.Y {
		return a.B.Y < b.B.Y
	}
	return a.B.X < b.B.X
}
