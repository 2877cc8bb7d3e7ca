package relio

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBz2PathIsUnsupported(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "out.bz2"), 2)
	assert.True(t, errors.Is(err, ErrUnsupportedCodec))
}

func TestWriterPlainMergesShardsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := New(path, 2)
	require.NoError(t, err)

	require.NoError(t, w.WriteLine(0, "a\tb\tintersects"))
	require.NoError(t, w.WriteLine(1, "c\td\tcontains"))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\tintersects\nc\td\tcontains\n", string(data))
}

func TestWriterGzipRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gz")
	w, err := New(path, 2)
	require.NoError(t, err)

	require.NoError(t, w.WriteLine(0, "a\tb\tintersects"))
	require.NoError(t, w.WriteLine(1, "c\td\tcontains"))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a\tb\tintersects")
	assert.Contains(t, string(data), "c\td\tcontains")
}

func TestWriterDevNullDiscardsOutput(t *testing.T) {
	w, err := New("/dev/null", 1)
	require.NoError(t, err)
	assert.Equal(t, ModeNone, w.mode)
	require.NoError(t, w.WriteLine(0, "whatever"))
	require.NoError(t, w.Close())
}

func TestNewDefaultsToOneShard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := New(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, w.NumShards())
	require.NoError(t, w.Close())
}
