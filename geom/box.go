package geom

import (
	"fmt"

	"github.com/patrickbrosi/spatialjoin/types"
)

// Box is an axis-aligned bounding box, inclusive of both corners. It is the
// unit of comparison for the cascade's first filter stage (spec.md §4.8
// stage 1): every candidate pair must have overlapping padded boxes before
// any more expensive stage runs.
type Box struct {
	LoX, LoY, HiX, HiY int32
}

// BoxFromPoints returns the smallest Box enclosing points. Panics if points
// is empty, mirroring the teacher's preference for a hard failure over a
// silently meaningless zero-value box.
func BoxFromPoints(points []Point) Box {
	if len(points) == 0 {
		panic(fmt.Errorf("geom: BoxFromPoints called with no points"))
	}
	b := Box{LoX: points[0].X, LoY: points[0].Y, HiX: points[0].X, HiY: points[0].Y}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the smallest Box enclosing b and p.
func (b Box) Extend(p Point) Box {
	if p.X < b.LoX {
		b.LoX = p.X
	}
	if p.X > b.HiX {
		b.HiX = p.X
	}
	if p.Y < b.LoY {
		b.LoY = p.Y
	}
	if p.Y > b.HiY {
		b.HiY = p.Y
	}
	return b
}

// Union returns the smallest Box enclosing both b and other.
func (b Box) Union(other Box) Box {
	if other.LoX < b.LoX {
		b.LoX = other.LoX
	}
	if other.HiX > b.HiX {
		b.HiX = other.HiX
	}
	if other.LoY < b.LoY {
		b.LoY = other.LoY
	}
	if other.HiY > b.HiY {
		b.HiY = other.HiY
	}
	return b
}

// Pad grows b by d on every side.
func (b Box) Pad(d int32) Box {
	return Box{LoX: b.LoX - d, LoY: b.LoY - d, HiX: b.HiX + d, HiY: b.HiY + d}
}

// Area returns the box's area. Returns 0 for a degenerate (point or line)
// box.
func (b Box) Area() int64 {
	w := int64(b.HiX) - int64(b.LoX)
	h := int64(b.HiY) - int64(b.LoY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Intersects reports whether b and other share at least one point,
// including touching at an edge or corner.
func (b Box) Intersects(other Box) bool {
	return b.LoX <= other.HiX && b.HiX >= other.LoX &&
		b.LoY <= other.HiY && b.HiY >= other.LoY
}

// Contains reports whether other lies entirely within b, inclusive of the
// boundary.
func (b Box) Contains(other Box) bool {
	return b.LoX <= other.LoX && b.HiX >= other.HiX &&
		b.LoY <= other.LoY && b.HiY >= other.HiY
}

// ContainsPoint reports whether p lies within b, inclusive of the boundary.
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.LoX && p.X <= b.HiX && p.Y >= b.LoY && p.Y <= b.HiY
}

// Eq reports whether b and other have identical bounds.
func (b Box) Eq(other Box) bool {
	return b.LoX == other.LoX && b.LoY == other.LoY && b.HiX == other.HiX && b.HiY == other.HiY
}

// Relate classifies the relationship of b to other using the box-only
// vocabulary in types.Relationship. This is strictly a bounding-box
// classification: RelationshipIntersection here means the boxes overlap,
// not that the underlying geometries do — the cascade's later stages
// (boxids, simplify, pairwise) are what narrow that down to a real verdict.
func (b Box) Relate(other Box) types.Relationship {
	switch {
	case b.Eq(other):
		return types.RelationshipEqual
	case b.Contains(other):
		return types.RelationshipContains
	case other.Contains(b):
		return types.RelationshipContainedBy
	case b.Intersects(other):
		return types.RelationshipIntersection
	default:
		return types.RelationshipDisjoint
	}
}

// String renders b as "[loX,loY - hiX,hiY]".
func (b Box) String() string {
	return fmt.Sprintf("[%d,%d - %d,%d]", b.LoX, b.LoY, b.HiX, b.HiY)
}

// Box45FromPoints returns the bounding box of points after rotating them 45
// degrees (u=x+y, v=x-y). The sweep's candidate generator intersects these
// alongside plain Box values (spec.md §4.8 stage 3): a long diagonal
// shape's axis-aligned box is a poor approximation of its true footprint,
// but the same shape's 45-degree-rotated box is tight along the other
// diagonal, so combining both catches pairs a single box would miss rejecting.
// Panics if points is empty, matching [BoxFromPoints].
func Box45FromPoints(points []Point) Box {
	if len(points) == 0 {
		panic(fmt.Errorf("geom: Box45FromPoints called with no points"))
	}
	rotated := make([]Point, len(points))
	for i, p := range points {
		rotated[i] = Point{X: p.X + p.Y, Y: p.X - p.Y}
	}
	return BoxFromPoints(rotated)
}
