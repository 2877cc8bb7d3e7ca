package wkt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineFullFieldsPoint(t *testing.T) {
	l, err := ParseLine("42\t1\tPOINT (13.4 52.5)")
	require.NoError(t, err)
	assert.Equal(t, "42", l.ID)
	assert.True(t, l.Side)
	require.Equal(t, TypePoint, l.Geom.Type)
	require.Len(t, l.Geom.Points, 1)
	assert.InDelta(t, 13.4, l.Geom.Points[0].Lon, 1e-9)
	assert.InDelta(t, 52.5, l.Geom.Points[0].Lat, 1e-9)
}

func TestParseLineBareGeometryDefaultsIDAndSide(t *testing.T) {
	l, err := ParseLine("POINT (1 2)")
	require.NoError(t, err)
	assert.Equal(t, "", l.ID)
	assert.False(t, l.Side)
}

func TestParseLineLineString(t *testing.T) {
	l, err := ParseLine("1\t0\tLINESTRING (0 0, 1 1, 2 0)")
	require.NoError(t, err)
	require.Equal(t, TypeLineString, l.Geom.Type)
	require.Len(t, l.Geom.Lines, 1)
	assert.Len(t, l.Geom.Lines[0], 3)
}

func TestParseLinePolygonWithHole(t *testing.T) {
	l, err := ParseLine("1\t0\tPOLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 4, 2 2))")
	require.NoError(t, err)
	require.Equal(t, TypePolygon, l.Geom.Type)
	require.Len(t, l.Geom.Polygons, 1)
	require.Len(t, l.Geom.Polygons[0], 2)
	assert.Len(t, l.Geom.Polygons[0][0], 5)
	assert.Len(t, l.Geom.Polygons[0][1], 5)
}

func TestParseLineMultiPolygon(t *testing.T) {
	l, err := ParseLine("1\t0\tMULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))")
	require.NoError(t, err)
	require.Equal(t, TypeMultiPolygon, l.Geom.Type)
	require.Len(t, l.Geom.Polygons, 2)
}

func TestParseLineMultiPointBothSyntaxes(t *testing.T) {
	l1, err := ParseLine("MULTIPOINT (0 0, 1 1)")
	require.NoError(t, err)
	assert.Len(t, l1.Geom.Points, 2)

	l2, err := ParseLine("MULTIPOINT ((0 0), (1 1))")
	require.NoError(t, err)
	assert.Len(t, l2.Geom.Points, 2)
}

func TestParseLineGeometryCollection(t *testing.T) {
	l, err := ParseLine("1\t0\tGEOMETRYCOLLECTION (POINT (0 0), LINESTRING (1 1, 2 2))")
	require.NoError(t, err)
	require.Equal(t, TypeGeometryCollection, l.Geom.Type)
	require.Len(t, l.Geom.Parts, 2)
	assert.Equal(t, TypePoint, l.Geom.Parts[0].Type)
	assert.Equal(t, TypeLineString, l.Geom.Parts[1].Type)
}

func TestParseLineReferenceList(t *testing.T) {
	l, err := ParseLine("7\t0\t<a,b,c>")
	require.NoError(t, err)
	require.Equal(t, TypeRefs, l.Geom.Type)
	assert.Equal(t, []string{"a", "b", "c"}, l.Geom.Refs)
}

func TestParseLineMalformedIsErrParse(t *testing.T) {
	_, err := ParseLine("1\t0\tNOTAWKT (1 2)")
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParseLineEmptyPayloadIsErrParse(t *testing.T) {
	_, err := ParseLine("1\t0\t")
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParseLineUnbalancedParensIsErrParse(t *testing.T) {
	_, err := ParseLine("POLYGON ((0 0, 1 0, 1 1, 0 0)")
	assert.True(t, errors.Is(err, ErrParse))
}
