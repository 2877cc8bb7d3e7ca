// Package boxids implements the 45000×45000 uniform-grid box-id cascade
// stage (spec.md §4.3): a cheap, disk-friendly approximation of a
// geometry's shape that can rule out most candidate pairs — or confirm
// full containment — before the exact integer segment sweep ever runs.
//
// The grid tiles the full web-Mercator world extent into NumGridCells
// columns and rows. A geometry is described by a sorted run-length-packed
// list of [BoxID] entries: a positive id run means the geometry fully
// covers every grid cell in the run, a negative id run means the geometry
// only intersects those cells without covering them. [Intersect] walks two
// such lists with a galloping merge to count full/partial overlaps without
// ever re-deriving either geometry's shape.
//
// This package is grounded directly on the original C++ implementation's
// BoxIds.h, translated idiom-for-idiom rather than reinvented, since its
// exact recursion and packing rules (run-length thresholds, the weak
// abs-ordering comparator) are load-bearing for correctness and are not
// independently documented anywhere else.
package boxids

import "math"

// Prec is the fixed-point scale factor applied to WGS-84 degrees before
// projection, matching spec.md §3's coordinate model.
const Prec = 10

// NumGridCells is the number of columns (and rows) in the uniform grid.
const NumGridCells = 45000

// WorldW and WorldH are the width and height, in scaled Mercator units, of
// the full grid extent.
const (
	WorldW = 20037508.3427892 * Prec * 2.0
	WorldH = 20037508.3427892 * Prec * 2.0
)

// GridW and GridH are the width and height of a single grid cell.
const (
	GridW = WorldW / float64(NumGridCells)
	GridH = WorldH / float64(NumGridCells)
)

// GridArea is the area of a single grid cell.
const GridArea = GridW * GridH

// BoxID is one entry in a packed box-id list: ID identifies the first grid
// cell of a run (positive for a fully-covered run, negative for a
// merely-intersected run), and Run is how many additional consecutive
// cells (beyond the first) the entry covers — so a BoxID with Run==0
// describes exactly one cell.
type BoxID struct {
	ID  int32
	Run uint8
}

// List is a box-id list, always kept sorted by absLess and, once built via
// [Pack], run-length compressed.
type List []BoxID

func absLess(a, b int32) bool {
	return abs32(a) < abs32(b)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// GridXY returns the grid column and row containing x,y.
func GridXY(x, y int32) (col, row int32) {
	col = int32(math.Floor((float64(x) + WorldW/2.0) / GridW))
	row = int32(math.Floor((float64(y) + WorldH/2.0) / GridH))
	return col, row
}

// CellID returns the 1-based grid cell id containing x,y. Cell ids are
// always positive; sign is attached only once an id is placed into a
// [List] to mark it as a full-coverage or intersect-only run.
func CellID(x, y int32) int32 {
	col, row := GridXY(x, y)
	return row*NumGridCells + col + 1
}

// CellBounds returns the world-coordinate bounding box of the grid cell at
// column col, row row, spanning width cols and height rows.
func CellBounds(col, row int32, width, height int) (loX, loY, hiX, hiY int32) {
	loX = int32((float64(col) * GridW) - WorldW/2.0)
	loY = int32((float64(row) * GridH) - WorldH/2.0)
	hiX = int32((float64(col+int32(width)) * GridW) - WorldW/2.0)
	hiY = int32((float64(row+int32(height)) * GridH) - WorldH/2.0)
	return
}
