package spatialjoin

import (
	"fmt"
	"math"

	"github.com/patrickbrosi/spatialjoin/boxids"
	"github.com/patrickbrosi/spatialjoin/eventstore"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/geomcache"
	"github.com/patrickbrosi/spatialjoin/types"
	"github.com/patrickbrosi/spatialjoin/wkt"
)

// leafKind tags one flattened, single-part geometry pulled out of a
// (possibly multi-part or nested-collection) parsed wkt.Geometry.
type leafKind int

const (
	leafPoint leafKind = iota
	leafLine
	leafArea
)

type leafGeom struct {
	kind  leafKind
	point wkt.Point
	line  []wkt.Point
	rings [][]wkt.Point
}

// flattenParts expands g into its leaf (single-part) geometries, recursing
// through GEOMETRYCOLLECTION members. Every sub-part of a gid — whether it
// came from a MULTI* type or a nested collection — is treated identically
// by the aggregator: one gid, N sub-parts, all counted toward the same
// SetSubCount.
func flattenParts(g wkt.Geometry) ([]leafGeom, error) {
	switch g.Type {
	case wkt.TypePoint, wkt.TypeMultiPoint:
		out := make([]leafGeom, len(g.Points))
		for i, p := range g.Points {
			out[i] = leafGeom{kind: leafPoint, point: p}
		}
		return out, nil

	case wkt.TypeLineString, wkt.TypeMultiLineString:
		out := make([]leafGeom, len(g.Lines))
		for i, l := range g.Lines {
			out[i] = leafGeom{kind: leafLine, line: l}
		}
		return out, nil

	case wkt.TypePolygon, wkt.TypeMultiPolygon:
		out := make([]leafGeom, len(g.Polygons))
		for i, p := range g.Polygons {
			out[i] = leafGeom{kind: leafArea, rings: p}
		}
		return out, nil

	case wkt.TypeGeometryCollection:
		var out []leafGeom
		for _, part := range g.Parts {
			sub, err := flattenParts(part)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unsupported geometry type %d", ErrInvalidGeometry, g.Type)
	}
}

// Add ingests one parsed input line. Reference lines (wkt.TypeRefs) only
// register an alias and never enter the sweep; every other geometry is
// flattened into its leaf sub-parts, each of which gets its own cache
// record and pair of sweep events; lines of more than two points and
// areas with holes also get a box-id list.
func (s *Sweeper) Add(line wkt.Line) error {
	if s.flushed {
		return fmt.Errorf("spatialjoin: Add called after Flush")
	}

	if line.Geom.Type == wkt.TypeRefs {
		return s.addRefs(line)
	}

	parts, err := flattenParts(line.Geom)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("%w: geometry %q has no parts", ErrInvalidGeometry, line.ID)
	}

	gid := line.ID
	s.mu.Lock()
	s.subCounts[gid] = len(parts)
	if line.Side {
		s.sawSide = true
	}
	s.mu.Unlock()
	s.agg.SetSubCount(gid, len(parts))

	for i, part := range parts {
		subID := uint16(i + 1)
		var err error
		switch part.kind {
		case leafPoint:
			err = s.addPoint(gid, subID, line.Side, part.point)
		case leafLine:
			err = s.addLine(gid, subID, line.Side, part.line)
		case leafArea:
			err = s.addArea(gid, subID, line.Side, part.rings)
		}
		if err != nil {
			return fmt.Errorf("geometry %q sub-part %d: %w", gid, subID, err)
		}
	}
	return nil
}

// addRefs registers id as a replaying alias of every target gid in the
// reference list (spec.md §3 References): relations later emitted for a
// target are replayed, transitively, for id.
func (s *Sweeper) addRefs(line wkt.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, target := range line.Geom.Refs {
		s.aliasesOf[target] = append(s.aliasesOf[target], line.ID)
	}
	return nil
}

func (s *Sweeper) addPoint(gid string, subID uint16, side bool, p wkt.Point) error {
	pt := project(p)

	off, err := s.pointCache.Add(geomcache.PointRecord{Geom: pt, ID: gid, SubID: subID})
	if err != nil {
		return fmt.Errorf("caching point: %w", err)
	}

	id := s.allocID(geomInfo{gid: gid, subID: subID, kind: types.GeomPoint, offset: off, side: side})
	b45 := geom.Box45FromPoints([]geom.Point{pt})
	return s.emitOpenClose(id, types.GeomPoint, pt.Y, pt.Y, pt.X, pt.X, 0, pt, b45, side, false)
}

func (s *Sweeper) addLine(gid string, subID uint16, side bool, wgsPts []wkt.Point) error {
	if len(wgsPts) < 2 {
		return fmt.Errorf("%w: line needs at least 2 points, got %d", ErrInvalidGeometry, len(wgsPts))
	}
	pts := projectAll(wgsPts)
	envelope := geom.BoxFromPoints(pts)
	length := polylineLength(pts)
	b45 := geom.Box45FromPoints(pts)
	rep := pts[0]

	if len(pts) == 2 {
		off, err := s.simpleLineCache.Add(geomcache.SimpleLineRecord{A: pts[0], B: pts[1], ID: gid})
		if err != nil {
			return fmt.Errorf("caching simple line: %w", err)
		}
		id := s.allocID(geomInfo{gid: gid, subID: subID, kind: types.GeomSimpleLine, offset: off, side: side})
		return s.emitOpenClose(id, types.GeomSimpleLine, envelope.LoY, envelope.HiY, envelope.LoX, envelope.HiX, length, rep, b45, side, false)
	}

	var ids boxids.List
	large := false
	if s.cfg.UseBoxIDs {
		ids = boxids.BuildLine(lineCoverFunc(pts), envelope)
		large = len(ids) > 0
	}

	off, err := s.lineCache.Add(geomcache.LineRecord{Points: pts, Box: envelope, ID: gid, SubID: subID, Length: length, BoxIDs: ids})
	if err != nil {
		return fmt.Errorf("caching line: %w", err)
	}
	id := s.allocID(geomInfo{gid: gid, subID: subID, kind: types.GeomLine, offset: off, side: side})
	return s.emitOpenClose(id, types.GeomLine, envelope.LoY, envelope.HiY, envelope.LoX, envelope.HiX, length, rep, b45, side, large)
}

func (s *Sweeper) addArea(gid string, subID uint16, side bool, wgsRings [][]wkt.Point) error {
	if len(wgsRings) == 0 {
		return fmt.Errorf("%w: area has no rings", ErrInvalidGeometry)
	}
	rings := make([][]geom.Point, len(wgsRings))
	for i, r := range wgsRings {
		rings[i] = projectAll(r)
	}

	outer := geom.NewRing(rings[0]).EnsureClockwise()
	var holes []geom.Ring
	for _, r := range rings[1:] {
		holes = append(holes, geom.NewRing(r).EnsureCounterClockwise())
	}

	allPts := outer.Points
	for _, h := range holes {
		allPts = append(allPts, h.Points...)
	}
	envelope := geom.BoxFromPoints(allPts)
	area := float64(outer.Area2X()) / 2.0
	for _, h := range holes {
		area -= float64(h.Area2X()) / 2.0
	}
	b45 := geom.Box45FromPoints(allPts)
	rep := outer.Points[0]

	if len(holes) == 0 {
		off, err := s.simpleAreaCache.Add(geomcache.SimpleAreaRecord{Outer: outer.Points, ID: gid})
		if err != nil {
			return fmt.Errorf("caching simple area: %w", err)
		}
		id := s.allocID(geomInfo{gid: gid, subID: subID, kind: types.GeomSimpleArea, offset: off, side: side})
		return s.emitOpenClose(id, types.GeomSimpleArea, envelope.LoY, envelope.HiY, envelope.LoX, envelope.HiX, area, rep, b45, side, false)
	}

	var ids boxids.List
	large := false
	if s.cfg.UseBoxIDs {
		ids = boxids.BuildPolygon(polygonCoverFunc(outer, holes), envelope, area)
		large = len(ids) > 0
	}

	ringPts := make([][]geom.Point, 0, len(rings))
	ringPts = append(ringPts, outer.Points)
	for _, h := range holes {
		ringPts = append(ringPts, h.Points)
	}

	off, err := s.areaCache.Add(geomcache.AreaRecord{Rings: ringPts, Box: envelope, ID: gid, SubID: subID, Area: area, BoxIDs: ids})
	if err != nil {
		return fmt.Errorf("caching area: %w", err)
	}
	id := s.allocID(geomInfo{gid: gid, subID: subID, kind: types.GeomArea, offset: off, side: side})
	return s.emitOpenClose(id, types.GeomArea, envelope.LoY, envelope.HiY, envelope.LoX, envelope.HiX, area, rep, b45, side, large)
}

func (s *Sweeper) emitOpenClose(id uint64, kind types.GeomType, loY, upY, loX, hiX int32, areaOrLen float64, rep geom.Point, b45 geom.Box, side, large bool) error {
	open := eventstore.BoxEvent{
		ID: id, LoY: loY, UpY: upY, Val: loX, Out: false,
		Type: kind, AreaOrLen: areaOrLen, Point: rep, B45: b45, Side: side, Large: large,
	}
	if err := s.eventsOut.Add(open); err != nil {
		return fmt.Errorf("writing open event: %w", err)
	}
	closeEv := open
	closeEv.Out = true
	closeEv.Val = hiX
	if err := s.eventsOut.Add(closeEv); err != nil {
		return fmt.Errorf("writing close event: %w", err)
	}
	return nil
}

func polylineLength(pts []geom.Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		dx := float64(pts[i].X) - float64(pts[i-1].X)
		dy := float64(pts[i].Y) - float64(pts[i-1].Y)
		total += math.Hypot(dx, dy)
	}
	return total
}
