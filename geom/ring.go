package geom

// Ring is a closed sequence of vertices: a polygon's outer boundary, one of
// its holes, or the boundary of a simplified inner/outer approximation
// (spec.md §4.4). The first and last point are implicitly connected; Points
// does not repeat the first vertex at the end.
type Ring struct {
	Points []Point
}

// NewRing constructs a Ring from points, dropping a trailing point that
// duplicates the first one if the caller passed a WKT-style explicitly
// closed ring.
func NewRing(points []Point) Ring {
	if len(points) > 1 && points[0].Eq(points[len(points)-1]) {
		points = points[:len(points)-1]
	}
	return Ring{Points: points}
}

// Box returns the bounding box of r.
func (r Ring) Box() Box {
	return BoxFromPoints(r.Points)
}

// SignedArea2X returns twice the signed area enclosed by r. Positive means
// r winds counterclockwise.
func (r Ring) SignedArea2X() int64 {
	return SignedArea2X(r.Points)
}

// Area2X returns the unsigned area enclosed by r, doubled.
func (r Ring) Area2X() int64 {
	a := r.SignedArea2X()
	if a < 0 {
		return -a
	}
	return a
}

// IsClockwise reports whether r winds clockwise.
func (r Ring) IsClockwise() bool {
	return r.SignedArea2X() < 0
}

// Reversed returns r with its vertex order reversed, flipping its winding.
func (r Ring) Reversed() Ring {
	out := make([]Point, len(r.Points))
	n := len(r.Points)
	for i, p := range r.Points {
		out[n-1-i] = p
	}
	return Ring{Points: out}
}

// EnsureClockwise returns r wound clockwise, reversing it if necessary.
// The box-id engine and the simplification step both assume outer rings
// are clockwise and holes counterclockwise, the convention original_source
// uses throughout its polygon handling.
func (r Ring) EnsureClockwise() Ring {
	if r.IsClockwise() {
		return r
	}
	return r.Reversed()
}

// EnsureCounterClockwise returns r wound counterclockwise, reversing it if
// necessary.
func (r Ring) EnsureCounterClockwise() Ring {
	if !r.IsClockwise() {
		return r
	}
	return r.Reversed()
}

// Segments returns the closed sequence of edges making up r, in order.
func (r Ring) Segments() []LineSegment {
	n := len(r.Points)
	if n < 2 {
		return nil
	}
	segs := make([]LineSegment, n)
	for i := 0; i < n; i++ {
		segs[i] = Seg(r.Points[i], r.Points[(i+1)%n])
	}
	return segs
}

// ContainsPoint reports whether p lies within r using the standard
// ray-casting parity test, counting an edge crossing of a horizontal ray
// cast from p to +X. Points exactly on the boundary are reported as
// contained.
func (r Ring) ContainsPoint(p Point) bool {
	n := len(r.Points)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r.Points[j], r.Points[i]

		if onSegment(a, p, b) && OrientationOf(a, b, p) == Collinear {
			return true
		}

		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := float64(b.X-a.X)*float64(p.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(p.X) < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
