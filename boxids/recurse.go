package boxids

import (
	"sort"

	"github.com/patrickbrosi/spatialjoin/geom"
)

// CoverFunc reports, for a candidate grid cell box, whether a geometry
// intersects it at all and — only meaningful when building an area's box
// ids — whether the geometry fully covers it. Callers (the line and
// polygon cover closures in the spatialjoin package's cover.go) close over
// whatever geometry state they need to answer this; this package only ever asks about
// one box at a time; the original C++ recursion's firstInA/firstInB scan
// hints become an implementation detail of the closure rather than
// parameters threaded through this API.
type CoverFunc func(box geom.Box) (intersects, fullyCovered bool)

const quarterDivisor = 4

// BuildLine computes and packs the box-id list for a line geometry in one
// step — the combination every caller wants, matching how the original
// computes a geometry's box ids: getBoxIds followed immediately by
// packBoxIds.
func BuildLine(cover CoverFunc, envelope geom.Box) List {
	return Pack(ForLine(cover, envelope))
}

// BuildPolygon computes and packs the box-id list for a polygon geometry
// in one step, mirroring [BuildLine].
func BuildPolygon(cover CoverFunc, envelope geom.Box, area float64) List {
	return Pack(ForPolygon(cover, envelope, area))
}

// ForLine computes the box-id list for a line geometry whose envelope is
// envelope and whose intersection with an arbitrary grid box is answered
// by cover. Lines can never fully cover a 2-D grid cell, so every entry in
// the result is a negative, intersect-only run.
func ForLine(cover CoverFunc, envelope geom.Box) List {
	startCol, startRow := GridXY(envelope.LoX, envelope.LoY)
	a := startRow*NumGridCells + startCol + 1
	endCol, endRow := GridXY(envelope.HiX, envelope.HiY)
	b := endRow*NumGridCells + endCol + 1
	if a == b {
		return List{{ID: -a, Run: 0}}
	}

	xFrom, yFrom := startCol, startRow
	xTo, yTo := endCol+1, endRow+1

	var out List
	recurseLine(cover, envelope, xFrom, xTo, yFrom, yTo,
		(xTo-xFrom+quarterDivisor-1)/quarterDivisor,
		(yTo-yFrom+quarterDivisor-1)/quarterDivisor, &out)

	sortList(out)
	return out
}

// ForPolygon computes the box-id list for a polygon geometry with the
// given envelope and area (used only to size-hint the result slice),
// delegating shape tests to cover.
func ForPolygon(cover CoverFunc, envelope geom.Box, area float64) List {
	startCol, startRow := GridXY(envelope.LoX, envelope.LoY)
	a := startRow*NumGridCells + startCol + 1
	endCol, endRow := GridXY(envelope.HiX, envelope.HiY)
	b := endRow*NumGridCells + endCol + 1
	if a == b {
		return List{{ID: -a, Run: 0}}
	}

	xFrom, yFrom := startCol, startRow
	xTo, yTo := endCol+1, endRow+1

	out := make(List, 0, int(area/GridArea)/10+1)
	recursePolygon(cover, envelope, xFrom, xTo, yFrom, yTo,
		(xTo-xFrom+quarterDivisor-1)/quarterDivisor,
		(yTo-yFrom+quarterDivisor-1)/quarterDivisor, &out)

	sortList(out)
	return out
}

func recurseLine(cover CoverFunc, envelope geom.Box, xFrom, xTo, yFrom, yTo, xWidth, yHeight int32, ret *List) {
	for y := yFrom; y < yTo; y += yHeight {
		for x := xFrom; x < xTo; x += xWidth {
			localXWidth := minI32(xTo-x, xWidth)
			localYHeight := minI32(yTo-y, yHeight)

			loX, loY, hiX, hiY := CellBounds(x, y, int(localXWidth), int(localYHeight))
			box := geom.Box{LoX: loX, LoY: loY, HiX: hiX, HiY: hiY}

			if !box.Intersects(envelope) {
				continue
			}

			intersects, _ := cover(box)
			if !intersects {
				continue
			}

			if localXWidth == 1 && localYHeight == 1 {
				appendNegRun(ret, -(y*NumGridCells + x + 1))
				continue
			}

			newXWidth := (localXWidth + 1) / 2
			newYHeight := (localYHeight + 1) / 2
			recurseLine(cover, envelope, x, x+localXWidth, y, y+localYHeight, newXWidth, newYHeight, ret)
		}
	}
}

func recursePolygon(cover CoverFunc, envelope geom.Box, xFrom, xTo, yFrom, yTo, xWidth, yHeight int32, ret *List) {
	for y := yFrom; y < yTo; y += yHeight {
		for x := xFrom; x < xTo; x += xWidth {
			localXWidth := minI32(xTo-x, xWidth)
			localYHeight := minI32(yTo-y, yHeight)

			loX, loY, hiX, hiY := CellBounds(x, y, int(localXWidth), int(localYHeight))
			box := geom.Box{LoX: loX, LoY: loY, HiX: hiX, HiY: hiY}

			if !box.Intersects(envelope) {
				continue
			}

			intersects, fullyCovered := cover(box)

			switch {
			case fullyCovered:
				const blockSize = 256
				for ly := y; ly < y+localYHeight; ly++ {
					start := ly*NumGridCells + x
					for k := int32(0); k*blockSize < localXWidth; k++ {
						first := start + k*blockSize + 1
						run := minI32(255, localXWidth-k*blockSize-1)
						*ret = append(*ret, BoxID{ID: first, Run: uint8(run)})
					}
				}

			case intersects:
				if localXWidth == 1 && localYHeight == 1 {
					appendNegRun(ret, -(y*NumGridCells + x + 1))
					continue
				}
				newXWidth := (localXWidth + 1) / 2
				newYHeight := (localYHeight + 1) / 2
				recursePolygon(cover, envelope, x, x+localXWidth, y, y+localYHeight, newXWidth, newYHeight, ret)
			}
		}
	}
}

// appendNegRun appends a newly discovered negative (intersect-only) box id
// to ret, merging it into the previous entry if the two are contiguous
// (scanning left to right within a row produces consecutive, increasing
// magnitude ids) and the merged run would still fit in a uint8.
func appendNegRun(ret *List, id int32) {
	if n := len(*ret); n > 0 {
		last := &(*ret)[n-1]
		if last.Run < 254 && last.ID-int32(last.Run) == id+1 {
			last.Run++
			return
		}
	}
	*ret = append(*ret, BoxID{ID: id, Run: 0})
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func sortList(list List) {
	sort.Slice(list, func(i, j int) bool {
		return absLess(list[i].ID, list[j].ID)
	})
}
