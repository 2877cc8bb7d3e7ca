package sweep

import (
	"bytes"
	"testing"

	"github.com/patrickbrosi/spatialjoin/eventstore"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T, events []eventstore.BoxEvent) *eventstore.Reader {
	t.Helper()
	var buf bytes.Buffer
	for _, ev := range events {
		require.NoError(t, eventstore.Encode(&buf, ev))
	}
	return eventstore.NewReader(&buf)
}

func TestRunEmitsOverlappingOppositeSidePair(t *testing.T) {
	events := []eventstore.BoxEvent{
		{ID: 1, Val: 0, LoY: 0, UpY: 10, Out: false, Side: false},
		{ID: 2, Val: 5, LoY: 5, UpY: 15, Out: false, Side: true},
		{ID: 1, Val: 10, LoY: 0, UpY: 10, Out: true, Side: false},
		{ID: 2, Val: 15, LoY: 5, UpY: 15, Out: true, Side: true},
	}
	r := writeEvents(t, events)

	out := make(chan Candidate, 10)
	require.NoError(t, Run(r, Config{NumSides: 2}, out))

	var got []Candidate
	for c := range out {
		got = append(got, c)
	}

	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].A.ID)
	assert.Equal(t, uint64(2), got[0].B.ID)
	assert.False(t, got[0].Self)
}

func TestRunSelfJoinPairsSameSideGeometries(t *testing.T) {
	events := []eventstore.BoxEvent{
		{ID: 1, Val: 0, LoY: 0, UpY: 10, Out: false, Side: false},
		{ID: 2, Val: 1, LoY: 0, UpY: 10, Out: false, Side: false},
		{ID: 1, Val: 10, LoY: 0, UpY: 10, Out: true, Side: false},
		{ID: 2, Val: 11, LoY: 0, UpY: 10, Out: true, Side: false},
	}
	r := writeEvents(t, events)

	out := make(chan Candidate, 10)
	require.NoError(t, Run(r, Config{NumSides: 1}, out))

	var got []Candidate
	for c := range out {
		got = append(got, c)
	}
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].A.ID)
	assert.Equal(t, uint64(2), got[0].B.ID)
}

func TestRunBilateralJoinKeepsSameSidePairsSeparate(t *testing.T) {
	events := []eventstore.BoxEvent{
		{ID: 1, Val: 0, LoY: 0, UpY: 10, Out: false, Side: false},
		{ID: 2, Val: 1, LoY: 0, UpY: 10, Out: false, Side: false},
		{ID: 1, Val: 10, LoY: 0, UpY: 10, Out: true, Side: false},
		{ID: 2, Val: 11, LoY: 0, UpY: 10, Out: true, Side: false},
	}
	r := writeEvents(t, events)

	out := make(chan Candidate, 10)
	require.NoError(t, Run(r, Config{NumSides: 2}, out))

	var got []Candidate
	for c := range out {
		got = append(got, c)
	}
	assert.Empty(t, got)
}

func TestRunDiagBoxFilterRejectsNonIntersectingBoxes(t *testing.T) {
	events := []eventstore.BoxEvent{
		{ID: 1, Val: 0, LoY: 0, UpY: 10, Out: false, Side: false, B45: geom.Box{LoX: 0, LoY: 0, HiX: 5, HiY: 5}},
		{ID: 2, Val: 5, LoY: 5, UpY: 15, Out: false, Side: true, B45: geom.Box{LoX: 100, LoY: 100, HiX: 105, HiY: 105}},
		{ID: 1, Val: 10, LoY: 0, UpY: 10, Out: true, Side: false, B45: geom.Box{LoX: 0, LoY: 0, HiX: 5, HiY: 5}},
		{ID: 2, Val: 15, LoY: 5, UpY: 15, Out: true, Side: true, B45: geom.Box{LoX: 100, LoY: 100, HiX: 105, HiY: 105}},
	}
	r := writeEvents(t, events)

	out := make(chan Candidate, 10)
	require.NoError(t, Run(r, Config{UseDiagBox: true}, out))

	var got []Candidate
	for c := range out {
		got = append(got, c)
	}
	assert.Empty(t, got)
}

func TestRunEmitsSelfChecksWhenConfigured(t *testing.T) {
	events := []eventstore.BoxEvent{
		{ID: 1, Val: 0, LoY: 0, UpY: 10, Out: false, Side: false},
		{ID: 1, Val: 10, LoY: 0, UpY: 10, Out: true, Side: false},
	}
	r := writeEvents(t, events)

	out := make(chan Candidate, 10)
	require.NoError(t, Run(r, Config{EmitSelfChecks: true}, out))

	var got []Candidate
	for c := range out {
		got = append(got, c)
	}
	require.Len(t, got, 1)
	assert.True(t, got[0].Self)
	assert.Equal(t, got[0].A.ID, got[0].B.ID)
}
