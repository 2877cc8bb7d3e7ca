package spatialjoin

import (
	"github.com/patrickbrosi/spatialjoin/boxids"
	"github.com/patrickbrosi/spatialjoin/geom"
)

// boxSegments returns the four edges of box's boundary, used by the cover
// functions below to test a grid cell against a geometry's actual
// boundary rather than just its envelope.
func boxSegments(box geom.Box) []geom.LineSegment {
	corners := [4]geom.Point{
		geom.Pt(box.LoX, box.LoY),
		geom.Pt(box.HiX, box.LoY),
		geom.Pt(box.HiX, box.HiY),
		geom.Pt(box.LoX, box.HiY),
	}
	segs := make([]geom.LineSegment, 4)
	for i := range corners {
		segs[i] = geom.Seg(corners[i], corners[(i+1)%4])
	}
	return segs
}

// lineSegments returns the open polyline's consecutive edges.
func lineSegments(pts []geom.Point) []geom.LineSegment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]geom.LineSegment, len(pts)-1)
	for i := range segs {
		segs[i] = geom.Seg(pts[i], pts[i+1])
	}
	return segs
}

// lineCoverFunc builds a boxids.CoverFunc for a line geometry: a grid cell
// either intersects the line's boundary or it doesn't — lines never fully
// cover a 2-D cell, so fullyCovered is always false (boxids.ForLine ignores
// it regardless).
func lineCoverFunc(pts []geom.Point) boxids.CoverFunc {
	segs := lineSegments(pts)
	return func(box geom.Box) (intersects, fullyCovered bool) {
		if !box.Intersects(geom.BoxFromPoints(pts)) {
			return false, false
		}
		bsegs := boxSegments(box)
		for _, s := range segs {
			if box.ContainsPoint(s.A) || box.ContainsPoint(s.B) {
				return true, false
			}
			for _, bs := range bsegs {
				if s.Intersects(bs) {
					return true, false
				}
			}
		}
		return false, false
	}
}

// polygonCoverFunc builds a boxids.CoverFunc for a polygon geometry: a
// cell whose boundary the ring crosses is an intersect-only run; a cell
// with no boundary crossing is either fully inside (its center lands
// inside the outer ring and no hole), fully outside, or fully inside a
// hole — distinguished by testing the cell's center once the boundary
// crossing check has ruled out a straddling cell.
func polygonCoverFunc(outer geom.Ring, holes []geom.Ring) boxids.CoverFunc {
	var segs []geom.LineSegment
	segs = append(segs, outer.Segments()...)
	for _, h := range holes {
		segs = append(segs, h.Segments()...)
	}

	return func(box geom.Box) (intersects, fullyCovered bool) {
		bsegs := boxSegments(box)
		for _, s := range segs {
			for _, bs := range bsegs {
				if s.Intersects(bs) {
					return true, false
				}
			}
		}

		center := geom.Pt((box.LoX+box.HiX)/2, (box.LoY+box.HiY)/2)
		if !outer.ContainsPoint(center) {
			return false, false
		}
		for _, h := range holes {
			if h.ContainsPoint(center) {
				return false, false
			}
		}
		return true, true
	}
}
