package geom

import "fmt"

// LineSegment is a finite straight segment between two endpoints, A and B.
// Unlike the teacher's generic LineSegment, endpoints are unordered here:
// callers that need a canonical upper/lower pair (as the x-sorted
// containers do, to drive the sweep) call Normalized explicitly rather than
// having it forced on construction, since most pairwise-check call sites
// only care about the segment as a set of two points.
type LineSegment struct {
	A, B Point
}

// Seg constructs a LineSegment from two points.
func Seg(a, b Point) LineSegment {
	return LineSegment{A: a, B: b}
}

// String renders s as "(ax,ay)-(bx,by)".
func (s LineSegment) String() string {
	return fmt.Sprintf("%s-%s", s.A, s.B)
}

// Box returns the bounding box of s.
func (s LineSegment) Box() Box {
	return BoxFromPoints([]Point{s.A, s.B})
}

// Normalized returns s with A before B in the x-sweep order: lower X first,
// ties broken by lower Y.
func (s LineSegment) Normalized() LineSegment {
	if s.A.X < s.B.X || (s.A.X == s.B.X && s.A.Y <= s.B.Y) {
		return s
	}
	return LineSegment{A: s.B, B: s.A}
}

// IsDegenerate reports whether s has coincident endpoints.
func (s LineSegment) IsDegenerate() bool {
	return s.A.Eq(s.B)
}

// onSegment reports whether q, known to be collinear with p and r, lies on
// the closed segment p-r.
func onSegment(p, q, r Point) bool {
	return q.X >= min32(p.X, r.X) && q.X <= max32(p.X, r.X) &&
		q.Y >= min32(p.Y, r.Y) && q.Y <= max32(p.Y, r.Y)
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Intersects reports whether s and other share at least one point, using
// the standard four-orientation test with the three collinear-overlap
// special cases. All arithmetic is exact int64, so there is no epsilon
// involved: two segments either share an integer point or they do not.
func (s LineSegment) Intersects(other LineSegment) bool {
	p1, q1 := s.A, s.B
	p2, q2 := other.A, other.B

	o1 := OrientationOf(p1, q1, p2)
	o2 := OrientationOf(p1, q1, q2)
	o3 := OrientationOf(p2, q2, p1)
	o4 := OrientationOf(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == Collinear && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == Collinear && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == Collinear && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == Collinear && onSegment(p2, q1, q2) {
		return true
	}

	return false
}

// ContainsPoint reports whether p lies exactly on the closed segment s.
func (s LineSegment) ContainsPoint(p Point) bool {
	return OrientationOf(s.A, s.B, p) == Collinear && onSegment(s.A, p, s.B)
}

// SharesEndpoint reports whether s and other have an endpoint in common,
// the cheap pre-check the ring event reciprocity invariant relies on before
// falling back to the general Intersects test.
func (s LineSegment) SharesEndpoint(other LineSegment) bool {
	return s.A.Eq(other.A) || s.A.Eq(other.B) || s.B.Eq(other.A) || s.B.Eq(other.B)
}

// IsCollinearWith reports whether s and other lie on the same infinite
// line.
func (s LineSegment) IsCollinearWith(other LineSegment) bool {
	return OrientationOf(s.A, s.B, other.A) == Collinear &&
		OrientationOf(s.A, s.B, other.B) == Collinear
}
