package xsorted

import (
	"testing"

	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/stretchr/testify/assert"
)

func TestNewLineBasic(t *testing.T) {
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 5), geom.Pt(5, 20)}
	l := NewLine(points)

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, int64(10), l.MaxSegLen())

	// events are x-ascending
	for i := 1; i < l.Len(); i++ {
		assert.LessOrEqual(t, l.events[i-1].P.X, l.events[i].P.X)
	}
}

func TestNewLineSinglePoint(t *testing.T) {
	l := NewLine([]geom.Point{geom.Pt(1, 1)})
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.events[0].IsPoint())
}

func TestNewLineEmpty(t *testing.T) {
	l := NewLine(nil)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, int64(-1), l.MaxSegLen())
}

func TestNewLineFromSegment(t *testing.T) {
	seg := geom.Seg(geom.Pt(10, 0), geom.Pt(0, 0))
	l := NewLineFromSegment(seg)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, int64(10), l.MaxSegLen())
	assert.Equal(t, int32(0), l.events[0].P.X)
	assert.False(t, l.events[0].Out())
	assert.Equal(t, int32(10), l.events[1].P.X)
	assert.True(t, l.events[1].Out())
}

func TestLineLowerBound(t *testing.T) {
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0), geom.Pt(30, 0)}
	l := NewLine(points)

	idx := l.LowerBound(15)
	assert.GreaterOrEqual(t, l.events[idx].P.X, int32(15))
	if idx > 0 {
		assert.Less(t, l.events[idx-1].P.X, int32(15))
	}

	assert.Equal(t, 0, l.LowerBound(-100))
	assert.Equal(t, l.Len(), l.LowerBound(1000))
}

func TestNewPolygonSingleRing(t *testing.T) {
	square := []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
	}
	p := NewPolygon([][]geom.Point{square})

	assert.Len(t, p.Rings(), 1)
	assert.Equal(t, 8, p.Len()) // 4 edges (closing included) * 2 events
	for i := 1; i < p.Len(); i++ {
		assert.LessOrEqual(t, p.events[i-1].P.X, p.events[i].P.X)
	}
}

func TestNewPolygonWithHole(t *testing.T) {
	outer := []geom.Point{
		geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100),
	}
	hole := []geom.Point{
		geom.Pt(10, 10), geom.Pt(20, 10), geom.Pt(20, 20), geom.Pt(10, 20),
	}
	p := NewPolygon([][]geom.Point{outer, hole})

	assert.Len(t, p.Rings(), 2)
	assert.Equal(t, 16, p.Len())
	assert.Equal(t, int64(100), p.MaxSegLen())
}

func TestCloseRingAlreadyClosed(t *testing.T) {
	ring := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 0)}
	closed := closeRing(ring)
	assert.Equal(t, ring, closed)
}
