// Package simplify implements the directional Douglas-Peucker inner/outer
// approximation (spec.md §4.3, component C4): for a polygon whose exact
// boundary is expensive to test against, produce one simplified ring that
// is guaranteed to lie entirely inside the original (INNER) and one
// guaranteed to entirely contain it (OUTER). The pair checker (C9) does
// not call this package; only its own tests use these rings.
package simplify

import (
	"math"

	"github.com/patrickbrosi/spatialjoin/geom"
)

// MinGain is the largest fraction of the original vertex count a
// simplification may keep and still be worth keeping; above this ratio,
// SimplifyPolygon returns the zero Polygon rather than a simplification
// too close in size to the original to pay for itself.
const MinGain = 0.20

// Mode selects which side of the original boundary the simplified ring is
// biased toward.
type Mode int

const (
	// Inner produces a ring strictly inside the original: every retained
	// vertex is chosen so no discarded point lay to its left.
	Inner Mode = iota
	// Outer produces a ring strictly containing the original: the
	// symmetric bias, discarding no point that lay to the right.
	Outer
)

// Polygon is a simplified approximation of a polygon's outer ring and
// holes. The zero Polygon (Outer.Points == nil) signals that
// simplification didn't clear MinGain and the caller should skip straight
// to the exact cascade stage (spec.md §4.3).
type Polygon struct {
	Outer geom.Ring
	Inner []geom.Ring
}

// signedDistance returns the signed distance from c to the infinite line
// through a and b: negative when c is to the left of a→b, positive to the
// right, matching the orientation the directional DP modes key off of.
func signedDistance(a, b, c geom.Point) float64 {
	if a.Eq(b) {
		return 0
	}
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)

	distAB := math.Hypot(ax-bx, ay-by)
	areaTimesTwo := (by-ay)*(ax-cx) - (bx-ax)*(ay-cy)
	return areaTimesTwo / distAB
}

// douglasPeucker recursively simplifies points[l:r+1], appending kept
// vertices to out, and reports whether any simplification actually
// happened anywhere in the recursion (unused by the caller today, but
// kept because it mirrors the teacher's origin faithfully and is a
// natural hook for a future "simplification had no effect" fast path).
func douglasPeucker(mode Mode, points []geom.Point, l, r int, eps float64, out *[]geom.Point) bool {
	if l == r {
		*out = append(*out, points[l])
		return false
	}
	if l+1 == r {
		*out = append(*out, points[l], points[r])
		return false
	}

	left, right := points[l], points[r]
	if left.Eq(right) {
		return false
	}

	mLeft, mRight := l, l
	maxDistLeft, maxDistRight := 0.0, 0.0
	for k := l + 1; k <= r-1; k++ {
		dist := signedDistance(left, right, points[k])
		if dist < 0 && -dist > maxDistLeft {
			mLeft = k
			maxDistLeft = -dist
		}
		if dist > 0 && dist > maxDistRight {
			mRight = k
			maxDistRight = dist
		}
	}

	var doSimplify bool
	var m int
	switch mode {
	case Inner:
		doSimplify = maxDistLeft == 0 && maxDistRight <= eps
		if maxDistLeft > 0 {
			m = mLeft
		} else {
			m = mRight
		}
	case Outer:
		doSimplify = maxDistRight == 0 && maxDistLeft <= eps
		if maxDistRight > 0 {
			m = mRight
		} else {
			m = mLeft
		}
	}

	if doSimplify {
		*out = append(*out, left, right)
		return true
	}

	a := douglasPeucker(mode, points, l, m, eps, out)
	b := douglasPeucker(mode, points, m+1, r, eps, out)
	return a || b
}

// ringEpsilon returns the area-derived epsilon spec.md §4.3 specifies:
// sqrt(S/π)·2π·factor, where S is the ring's unsigned area.
func ringEpsilon(ring []geom.Point, factor float64) float64 {
	area := math.Abs(float64(geom.SignedArea2X(ring))) / 2
	return math.Sqrt(area/math.Pi) * 2 * math.Pi * factor
}

// simplifyRing runs mode's directional Douglas-Peucker over an open
// (non-duplicate-closed) ring, split at its midpoint so the recursion
// never treats the closing edge (last point back to first) as an
// ordinary chord. Rings shorter than 4 points are returned unchanged —
// there is nothing left to simplify.
func simplifyRing(mode Mode, ring []geom.Point, factor float64) []geom.Point {
	if len(ring) < 4 {
		return append([]geom.Point{}, ring...)
	}

	eps := ringEpsilon(ring, factor)
	m := len(ring) / 2

	var out []geom.Point
	douglasPeucker(mode, ring, 0, m, eps, &out)
	douglasPeucker(mode, ring, m+1, len(ring)-1, eps, &out)
	return out
}

// SimplifyPolygon simplifies outer and every hole in inner under mode,
// scaling each ring's epsilon independently by factor. If the combined
// simplified vertex count doesn't clear MinGain against the original, the
// zero Polygon is returned instead.
func SimplifyPolygon(mode Mode, outer geom.Ring, inner []geom.Ring, factor float64) Polygon {
	numOld := len(outer.Points)
	simplifiedOuter := geom.NewRing(simplifyRing(mode, outer.Points, factor))
	numNew := len(simplifiedOuter.Points)

	simplifiedInner := make([]geom.Ring, 0, len(inner))
	for _, h := range inner {
		numOld += len(h.Points)
		r := geom.NewRing(simplifyRing(mode, h.Points, factor))
		simplifiedInner = append(simplifiedInner, r)
		numNew += len(r.Points)
	}

	if numOld == 0 || float64(numNew)/float64(numOld) > MinGain {
		return Polygon{}
	}

	return Polygon{Outer: simplifiedOuter, Inner: simplifiedInner}
}
