package geomcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickbrosi/spatialjoin/boxids"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withScratchFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "scratch.bin"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestLineCodecRoundTrip(t *testing.T) {
	f := withScratchFile(t)

	rec := LineRecord{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 5), geom.Pt(20, 0)},
		Box:    geom.BoxFromPoints([]geom.Point{geom.Pt(0, 0), geom.Pt(20, 5)}),
		ID:     "way/1",
		SubID:  1,
		Length: 22.36,
		BoxIDs: boxids.List{{ID: 5, Run: 0}, {ID: -10, Run: 2}},
	}

	require.NoError(t, LineCodec{}.Encode(f, rec))

	got, err := LineCodec{}.Decode(f, 0)
	require.NoError(t, err)

	assert.Equal(t, rec.Points, got.Points)
	assert.Equal(t, rec.Box, got.Box)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.SubID, got.SubID)
	assert.InDelta(t, rec.Length, got.Length, 1e-9)
	assert.Equal(t, rec.BoxIDs, got.BoxIDs)

	xs := got.Xsorted()
	assert.Equal(t, 4, xs.Len())
}

func TestAreaCodecRoundTripWithHole(t *testing.T) {
	f := withScratchFile(t)

	outer := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100)}
	hole := []geom.Point{geom.Pt(10, 10), geom.Pt(20, 10), geom.Pt(20, 20), geom.Pt(10, 20)}

	rec := AreaRecord{
		Rings:  [][]geom.Point{outer, hole},
		Box:    geom.BoxFromPoints(outer),
		ID:     "relation/1",
		SubID:  0,
		Area:   9000,
		BoxIDs: boxids.List{{ID: 1, Run: 10}},
	}

	require.NoError(t, AreaCodec{}.Encode(f, rec))

	got, err := AreaCodec{}.Decode(f, 0)
	require.NoError(t, err)

	assert.Equal(t, rec.Rings, got.Rings)
	assert.Equal(t, rec.ID, got.ID)
	assert.InDelta(t, rec.Area, got.Area, 1e-9)

	xs := got.Xsorted()
	assert.Len(t, xs.Rings(), 2)
}

func TestSimpleLineCodecRoundTrip(t *testing.T) {
	f := withScratchFile(t)
	rec := SimpleLineRecord{A: geom.Pt(1, 2), B: geom.Pt(3, 4), ID: "n"}
	require.NoError(t, SimpleLineCodec{}.Encode(f, rec))

	got, err := SimpleLineCodec{}.Decode(f, 0)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSimpleAreaCodecRoundTrip(t *testing.T) {
	f := withScratchFile(t)
	rec := SimpleAreaRecord{
		Outer: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1)},
		ID:    "s",
	}
	require.NoError(t, SimpleAreaCodec{}.Encode(f, rec))

	got, err := SimpleAreaCodec{}.Decode(f, 0)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestMultipleRecordsAtDistinctOffsets(t *testing.T) {
	f := withScratchFile(t)

	r1 := PointRecord{Geom: geom.Pt(1, 1), ID: "a"}
	r2 := PointRecord{Geom: geom.Pt(2, 2), ID: "bb"}

	require.NoError(t, PointCodec{}.Encode(f, r1))
	off2, err := f.Seek(0, 1)
	require.NoError(t, err)
	require.NoError(t, PointCodec{}.Encode(f, r2))

	got1, err := PointCodec{}.Decode(f, 0)
	require.NoError(t, err)
	got2, err := PointCodec{}.Decode(f, off2)
	require.NoError(t, err)

	assert.Equal(t, r1, got1)
	assert.Equal(t, r2, got2)
}
