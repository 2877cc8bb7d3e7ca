package spatialjoin

import (
	"math"

	"github.com/patrickbrosi/spatialjoin/boxids"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/wkt"
)

// earthRadius is the sphere radius (meters) the spherical web-Mercator
// projection (EPSG:3857) is defined over.
const earthRadius = 6378137.0

// mercator projects WGS-84 degrees to web-Mercator meters.
func mercator(p wkt.Point) (x, y float64) {
	x = earthRadius * p.Lon * math.Pi / 180.0
	y = earthRadius * math.Log(math.Tan(math.Pi/4.0+(p.Lat*math.Pi/180.0)/2.0))
	return
}

// project converts a WGS-84 point to the fixed-point Mercator coordinate
// space every geom.Point lives in (spec.md §3: PREC-scaled web Mercator).
func project(p wkt.Point) geom.Point {
	x, y := mercator(p)
	return geom.Pt(int32(math.Round(x*boxids.Prec)), int32(math.Round(y*boxids.Prec)))
}

// projectAll converts a slice of WGS-84 points in one pass.
func projectAll(pts []wkt.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = project(p)
	}
	return out
}
