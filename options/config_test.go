package options

import (
	"testing"

	"github.com/patrickbrosi/spatialjoin/types"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigUsesDefaultSeparators(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, " contains ", cfg.Separators[types.PredContains])
	assert.Empty(t, cfg.Prefix)
	assert.Empty(t, cfg.Suffix)
}

func TestWithSeparatorOverridesOnlyThatPredicate(t *testing.T) {
	cfg := ApplyConfig(DefaultConfig(), WithSeparator(types.PredIntersects, " ~ "))
	assert.Equal(t, " ~ ", cfg.Separators[types.PredIntersects])
	assert.Equal(t, " contains ", cfg.Separators[types.PredContains])
}

func TestWithPrefixAndSuffix(t *testing.T) {
	cfg := ApplyConfig(DefaultConfig(), WithPrefix("["), WithSuffix("]"))
	assert.Equal(t, "[", cfg.Prefix)
	assert.Equal(t, "]", cfg.Suffix)
}

func TestWithNumWorkersClampsBelowOne(t *testing.T) {
	cfg := ApplyConfig(DefaultConfig(), WithNumWorkers(0))
	assert.Equal(t, 1, cfg.NumWorkers)
}
