package simplify

import (
	"math"
	"testing"

	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// octagon returns an 8-vertex near-circular ring of radius r around the
// origin, wound counterclockwise.
func octagon(r float64) []geom.Point {
	pts := make([]geom.Point, 8)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / 8
		pts[i] = geom.Pt(int32(r*math.Cos(theta)), int32(r*math.Sin(theta)))
	}
	return pts
}

func TestSimplifyRingShortRingUnchanged(t *testing.T) {
	tri := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 10)}
	out := simplifyRing(Inner, tri, 1.0)
	assert.Equal(t, tri, out)
}

func TestSimplifyPolygonLargeFactorAchievesGain(t *testing.T) {
	outer := geom.NewRing(octagon(1000))
	poly := SimplifyPolygon(Inner, outer, nil, 5.0)
	require.NotNil(t, poly.Outer.Points)
	assert.Less(t, len(poly.Outer.Points), len(outer.Points))
}

func TestSimplifyPolygonTinyFactorDiscardsForLowGain(t *testing.T) {
	outer := geom.NewRing(octagon(1000))
	poly := SimplifyPolygon(Inner, outer, nil, 0.0)
	assert.Nil(t, poly.Outer.Points)
}

func TestSimplifyPolygonInnerStaysInsideOriginal(t *testing.T) {
	outer := geom.NewRing(octagon(1000))
	poly := SimplifyPolygon(Inner, outer, nil, 3.0)
	require.NotNil(t, poly.Outer.Points)
	for _, p := range poly.Outer.Points {
		assert.True(t, outer.ContainsPoint(p))
	}
}

func TestSimplifyPolygonHolesAreSimplifiedToo(t *testing.T) {
	outer := geom.NewRing(octagon(1000))
	hole := geom.NewRing(octagon(100))
	poly := SimplifyPolygon(Outer, outer, []geom.Ring{hole}, 5.0)
	require.NotNil(t, poly.Outer.Points)
	require.Len(t, poly.Inner, 1)
	assert.Less(t, len(poly.Inner[0].Points), len(hole.Points))
}
