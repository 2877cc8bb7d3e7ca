package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square() Ring {
	return NewRing([]Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)})
}

func TestNewRingDropsClosingDuplicate(t *testing.T) {
	r := NewRing([]Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4), Pt(0, 0)})
	assert.Len(t, r.Points, 4)
}

func TestRingAreaAndWinding(t *testing.T) {
	r := square()
	assert.Equal(t, int64(32), r.Area2X())
	assert.False(t, r.IsClockwise())

	cw := r.EnsureClockwise()
	assert.True(t, cw.IsClockwise())

	ccw := cw.EnsureCounterClockwise()
	assert.False(t, ccw.IsClockwise())
}

func TestRingSegments(t *testing.T) {
	segs := square().Segments()
	assert.Len(t, segs, 4)
	assert.Equal(t, Seg(Pt(0, 0), Pt(4, 0)), segs[0])
	assert.Equal(t, Seg(Pt(0, 4), Pt(0, 0)), segs[3])
}

func TestRingContainsPoint(t *testing.T) {
	r := square()
	assert.True(t, r.ContainsPoint(Pt(2, 2)))
	assert.False(t, r.ContainsPoint(Pt(10, 10)))
	assert.True(t, r.ContainsPoint(Pt(0, 2)), "point on boundary should count as contained")
}

func TestRingBox(t *testing.T) {
	assert.Equal(t, Box{LoX: 0, LoY: 0, HiX: 4, HiY: 4}, square().Box())
}
