package boxids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackEmpty(t *testing.T) {
	assert.Equal(t, List{{ID: 0, Run: 0}}, Pack(nil))
}

func TestPackSingle(t *testing.T) {
	got := Pack(List{{ID: 500, Run: 2}})
	assert.Equal(t, List{{ID: 3, Run: 0}, {ID: 500, Run: 2}}, got)
}

func TestPackMergesContiguousPositiveRuns(t *testing.T) {
	ids := List{{ID: 100, Run: 0}, {ID: 101, Run: 0}, {ID: 102, Run: 0}}
	got := Pack(ids)
	assert.Equal(t, List{{ID: 3, Run: 0}, {ID: 100, Run: 2}}, got)
}

func TestPackDoesNotMergeNonContiguous(t *testing.T) {
	ids := List{{ID: 100, Run: 0}, {ID: 200, Run: 0}}
	got := Pack(ids)
	assert.Equal(t, List{{ID: 2, Run: 0}, {ID: 100, Run: 0}, {ID: 200, Run: 0}}, got)
}

func TestPackDoesNotMergeMixedSigns(t *testing.T) {
	ids := List{{ID: 100, Run: 0}, {ID: -101, Run: 0}}
	got := Pack(ids)
	assert.Equal(t, List{{ID: 2, Run: 0}, {ID: 100, Run: 0}, {ID: -101, Run: 0}}, got)
}

func TestPackMergesContiguousNegativeRuns(t *testing.T) {
	ids := List{{ID: -100, Run: 0}, {ID: -101, Run: 0}}
	got := Pack(ids)
	assert.Equal(t, List{{ID: 2, Run: 0}, {ID: -100, Run: 1}}, got)
}
