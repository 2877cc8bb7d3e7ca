package xsorted

import (
	"testing"

	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/stretchr/testify/assert"
)

func TestSegmentLessParallelHorizontal(t *testing.T) {
	lower := geom.Seg(geom.Pt(0, 0), geom.Pt(10, 0))
	upper := geom.Seg(geom.Pt(0, 5), geom.Pt(10, 5))

	assert.True(t, SegmentLess(lower, upper))
	assert.False(t, SegmentLess(upper, lower))
}

func TestSegmentLessIdenticalIsFalse(t *testing.T) {
	s := geom.Seg(geom.Pt(1, 1), geom.Pt(5, 5))
	assert.False(t, SegmentLess(s, s))
}

func TestSegmentLessOffsetStart(t *testing.T) {
	// a starts further left, and stays strictly below b over their shared
	// x-range.
	a := geom.Seg(geom.Pt(0, 0), geom.Pt(20, 0))
	b := geom.Seg(geom.Pt(5, 3), geom.Pt(15, 3))

	assert.True(t, SegmentLess(a, b))
	assert.False(t, SegmentLess(b, a))
}

func TestSegmentLessIsStrictWeakOrderTransitive(t *testing.T) {
	low := geom.Seg(geom.Pt(0, 0), geom.Pt(10, 0))
	mid := geom.Seg(geom.Pt(0, 5), geom.Pt(10, 5))
	high := geom.Seg(geom.Pt(0, 10), geom.Pt(10, 10))

	assert.True(t, SegmentLess(low, mid))
	assert.True(t, SegmentLess(mid, high))
	assert.True(t, SegmentLess(low, high))
}
