package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveIndexInsertFindErase(t *testing.T) {
	idx := NewActiveIndex()
	idx.Insert(0, 10, Active{ID: 1})
	idx.Insert(5, 15, Active{ID: 2})
	assert.Equal(t, 2, idx.Size())

	hits := idx.OverlapFindAll(0, 10)
	ids := map[uint64]bool{}
	for _, h := range hits {
		ids[h.ID] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[2])

	idx.Erase(0, 10, 1)
	assert.Equal(t, 1, idx.Size())

	hits = idx.OverlapFindAll(0, 10)
	assert.Len(t, hits, 1)
	assert.Equal(t, uint64(2), hits[0].ID)
}

func TestActiveIndexNoOverlapAfterEraseAll(t *testing.T) {
	idx := NewActiveIndex()
	idx.Insert(100, 200, Active{ID: 9})
	idx.Erase(100, 200, 9)

	assert.Equal(t, 0, idx.Size())
	assert.Empty(t, idx.OverlapFindAll(100, 200))
}

func TestActiveIndexSharedIntervalKeepsOtherEntry(t *testing.T) {
	idx := NewActiveIndex()
	idx.Insert(0, 10, Active{ID: 1})
	idx.Insert(0, 10, Active{ID: 2})

	idx.Erase(0, 10, 1)
	hits := idx.OverlapFindAll(0, 10)
	assert.Len(t, hits, 1)
	assert.Equal(t, uint64(2), hits[0].ID)
}
