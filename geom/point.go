// Package geom defines the fixed-precision coordinate primitives shared by
// every stage of the join engine: grid indexing (boxids), containers
// (xsorted), simplification, and the exact pair checker (pairwise) all work
// over the same Point, Box, LineSegment and Ring types defined here.
//
// Coordinates are int32 web-Mercator units already scaled by the fixed
// PREC factor (see boxids.Prec); callers project and quantize WGS-84 input
// before constructing any geom value. A handful of operations (area-based
// simplification tolerances, oriented-bbox angles) need fractional math and
// escape to float64 locally, but no geom type itself carries a type
// parameter — unlike the point/rectangle/linesegment types this package is
// descended from, the join engine only ever operates on one coordinate
// type, so the generic SignedNumber constraint would add indirection
// without buying flexibility.
package geom

import "fmt"

// Orientation classifies the turn made by three points in sequence.
type Orientation uint8

// Valid values for Orientation.
const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

// Point is a coordinate pair in scaled web-Mercator units.
type Point struct {
	X, Y int32
}

// Pt constructs a Point from x and y.
func Pt(x, y int32) Point {
	return Point{X: x, Y: y}
}

// String renders p as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// AsFloat converts p to float64 coordinates, for the fractional math used by
// simplification epsilons and oriented-bbox angles.
func (p Point) AsFloat() FPoint {
	return FPoint{X: float64(p.X), Y: float64(p.Y)}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Eq reports whether p and q have identical coordinates. Coordinates are
// integers, so equality is always exact; there is no epsilon-aware variant.
func (p Point) Eq(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// CrossProduct returns the z-component of the 3D cross product of p and q,
// treated as vectors from the origin. Its sign gives the turn direction of
// (origin, p, q).
func (p Point) CrossProduct(q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X)
}

// DotProduct returns the dot product of p and q, treated as vectors from the
// origin.
func (p Point) DotProduct(q Point) int64 {
	return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y)
}

// FPoint is the float64 counterpart of Point, used where fractional
// precision is required (simplification tolerances, OBB axis angles).
type FPoint struct {
	X, Y float64
}

// String renders p as "(x,y)".
func (p FPoint) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// triangleArea2XSigned computes twice the signed area of the triangle formed
// by p0, p1, p2, using int64 to avoid overflow on the int32 inputs.
func triangleArea2XSigned(p0, p1, p2 Point) int64 {
	ax := int64(p1.X) - int64(p0.X)
	ay := int64(p1.Y) - int64(p0.Y)
	bx := int64(p2.X) - int64(p0.X)
	by := int64(p2.Y) - int64(p0.Y)
	return ax*by - ay*bx
}

// OrientationOf determines whether p0, p1, p2 form a clockwise turn, a
// counterclockwise turn, or are collinear.
func OrientationOf(p0, p1, p2 Point) Orientation {
	area2x := triangleArea2XSigned(p0, p1, p2)
	switch {
	case area2x < 0:
		return Clockwise
	case area2x > 0:
		return CounterClockwise
	default:
		return Collinear
	}
}

// SignedArea2X computes twice the signed area of the polygon described by
// points, using the shoelace formula summed over the fan from points[0].
// A positive result means points are wound counterclockwise; negative means
// clockwise. Returns 0 for fewer than 3 points.
func SignedArea2X(points []Point) int64 {
	var area int64
	n := len(points)
	if n < 3 {
		return 0
	}
	for i := 1; i < n-1; i++ {
		area += triangleArea2XSigned(points[0], points[i], points[i+1])
	}
	return area
}
