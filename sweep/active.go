// Package sweep drives the x-sweep over a sorted event log (eventstore)
// and turns "these two geometries are both active at this sweep
// coordinate, and their y-ranges overlap" into join candidates for the
// pairwise predicate check (C9).
package sweep

import (
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/interval"
	"github.com/patrickbrosi/spatialjoin/types"
)

// Active is the sweep-active summary of one geometry: just enough to
// generate and pre-filter candidates without a geometry cache lookup.
type Active struct {
	ID    uint64
	Type  types.GeomType
	B45   geom.Box
	Point geom.Point
	Side  bool
	Large bool
}

// ActiveIndex is a stratified-by-span y-interval index (interval.Index)
// generalized to carry an Active payload per interval, the way the
// original's own IntervalIdx<V,W> pairs a y-range with the geometry
// summary active over that range. interval.Index itself stays
// payload-free, so this
// type layers a side table of payloads, keyed by the same Interval, on
// top of it rather than modifying that package.
type ActiveIndex struct {
	idx  *interval.Index
	vals map[interval.Interval][]Active
	size int
}

// NewActiveIndex constructs an empty ActiveIndex.
func NewActiveIndex() *ActiveIndex {
	return &ActiveIndex{idx: interval.New(), vals: make(map[interval.Interval][]Active)}
}

// Insert adds val as active over [loY, upY].
func (a *ActiveIndex) Insert(loY, upY int32, val Active) {
	key := interval.Interval{Lo: int64(loY), Hi: int64(upY)}
	a.idx.Insert(key)
	a.vals[key] = append(a.vals[key], val)
	a.size++
}

// Erase removes the entry for id at [loY, upY]. A no-op if not present.
func (a *ActiveIndex) Erase(loY, upY int32, id uint64) {
	key := interval.Interval{Lo: int64(loY), Hi: int64(upY)}
	entries := a.vals[key]
	for i, v := range entries {
		if v.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			a.size--
			break
		}
	}
	if len(entries) == 0 {
		delete(a.vals, key)
		a.idx.Erase(key)
	} else {
		a.vals[key] = entries
	}
}

// OverlapFindAll returns every Active whose y-range overlaps [loY, upY].
func (a *ActiveIndex) OverlapFindAll(loY, upY int32) []Active {
	hits := a.idx.OverlapFindAll(interval.Interval{Lo: int64(loY), Hi: int64(upY)})
	var ret []Active
	for _, h := range hits {
		ret = append(ret, a.vals[h]...)
	}
	return ret
}

// Size returns the number of active entries currently indexed.
func (a *ActiveIndex) Size() int {
	return a.size
}
