package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientationOf(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 Point
		expected   Orientation
	}{
		{"counterclockwise", Pt(0, 0), Pt(1, 0), Pt(1, 1), CounterClockwise},
		{"clockwise", Pt(0, 0), Pt(1, 1), Pt(1, 0), Clockwise},
		{"collinear", Pt(0, 0), Pt(1, 1), Pt(2, 2), Collinear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OrientationOf(tt.p0, tt.p1, tt.p2))
		})
	}
}

func TestSignedArea2X(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}
	assert.Equal(t, int64(32), SignedArea2X(square))

	assert.Equal(t, int64(0), SignedArea2X([]Point{Pt(0, 0), Pt(1, 1)}))
}

func TestPointCrossProduct(t *testing.T) {
	assert.Equal(t, int64(-2), Pt(2, 3).CrossProduct(Pt(4, 5)))
}

func TestPointAddSub(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, 2)
	assert.Equal(t, Pt(4, 6), p.Add(q))
	assert.Equal(t, Pt(2, 2), p.Sub(q))
}

func TestPointEq(t *testing.T) {
	assert.True(t, Pt(1, 2).Eq(Pt(1, 2)))
	assert.False(t, Pt(1, 2).Eq(Pt(1, 3)))
}

func TestPointAsFloat(t *testing.T) {
	assert.Equal(t, FPoint{X: 3, Y: 4}, Pt(3, 4).AsFloat())
}
