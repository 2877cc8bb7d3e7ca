package main

import (
	"strings"
	"testing"

	"github.com/patrickbrosi/spatialjoin"
	"github.com/patrickbrosi/spatialjoin/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputSkipsMalformedLinesAndAddsTheRest(t *testing.T) {
	cfg := options.ApplyConfig(options.DefaultConfig(),
		options.WithCacheDir(t.TempDir()),
		options.WithNumWorkers(1))

	sweeper, err := spatialjoin.New(cfg)
	require.NoError(t, err)
	defer sweeper.Close()

	input := strings.Join([]string{
		"p1\t0\tPOINT(0 0)",
		"",
		"not a valid geometry at all",
		"p2\t1\tPOINT(1 1)",
	}, "\n")

	err = parseInput(strings.NewReader(input), sweeper)
	assert.NoError(t, err)
}

func TestParseInputSkipsInvalidGeometryButKeepsGoing(t *testing.T) {
	cfg := options.ApplyConfig(options.DefaultConfig(),
		options.WithCacheDir(t.TempDir()),
		options.WithNumWorkers(1))

	sweeper, err := spatialjoin.New(cfg)
	require.NoError(t, err)
	defer sweeper.Close()

	input := strings.Join([]string{
		"degenerate\t0\tLINESTRING(0 0)",
		"p1\t1\tPOINT(1 1)",
	}, "\n")

	err = parseInput(strings.NewReader(input), sweeper)
	assert.NoError(t, err)
}
