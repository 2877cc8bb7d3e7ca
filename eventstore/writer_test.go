package eventstore

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterWrapsErrEventIOOnOpenFailure(t *testing.T) {
	_, err := NewWriter(filepath.Join(t.TempDir(), "missing-dir", "events.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventIO)
}

func TestWriterAddCountFlushRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	w, err := NewWriter(path)
	require.NoError(t, err)

	ev := BoxEvent{ID: 1, Val: 10}
	require.NoError(t, w.Add(ev))
	assert.Equal(t, int64(1), w.Count())
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
}

func TestExternalSortOrdersEventsByEventLess(t *testing.T) {
	var src bytes.Buffer
	unsorted := []BoxEvent{
		{ID: 3, Val: 30},
		{ID: 1, Val: 10},
		{ID: 2, Val: 20},
	}
	for _, ev := range unsorted {
		require.NoError(t, Encode(&src, ev))
	}

	var dst bytes.Buffer
	n, err := ExternalSort(&src, &dst)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	r := NewReader(&dst)
	var got []BoxEvent
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}
	require.Len(t, got, 3)
	assert.Equal(t, int32(10), got[0].Val)
	assert.Equal(t, int32(20), got[1].Val)
	assert.Equal(t, int32(30), got[2].Val)
}
