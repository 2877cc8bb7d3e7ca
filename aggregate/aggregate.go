// Package aggregate is the relation aggregator (C10): it turns a stream of
// per-sub-geometry pair verdicts from the pair checker (C9) into one
// relation per pair of *parent* geometries, correctly handling multi-part
// geometries by only emitting a parent-level predicate once every one of
// its sub-parts has been accounted for.
//
// A single-part geometry is simply a multi-part geometry with one
// sub-part, so every geometry — multi or not — goes through the same
// SetSubCount/Record/Finalize life cycle; the package does not special-case
// the sub-count-1 path.
package aggregate

import (
	"sync"

	"github.com/patrickbrosi/spatialjoin/types"
)

// SubVerdict is one (subA, subB) pair's confirmed predicates, as produced
// by pairwise.Check for a single candidate pair the sweep (C8) emitted.
// Preds is directional: PredContains/PredCovers describe subA's
// relationship to subB, exactly as pairwise.Check documents.
type SubVerdict struct {
	GidA, GidB string
	Preds      types.Predicates
}

// Relation is one finished parent-level relationship: the predicates that
// hold between every sub-part of GidA and every sub-part of GidB, for the
// directional bits, or between at least one pair, for the rest.
type Relation struct {
	GidA, GidB string
	Preds      types.Predicates
}

type pairKey struct {
	gidA, gidB string
}

// pairStats accumulates sub-pair verdicts for one ordered (gidA, gidB)
// parent pair. containsCount/coversCount/equalsCount only reach "the
// predicate holds at the parent level" once they equal the product of
// both parents' sub-counts — i.e. every sub-part of gidA relates to every
// sub-part of gidB that way, mirroring the original engine's
// subContains/subCovered/subEquals bookkeeping (Sweeper.cpp's multiOut),
// generalized from "count equals _subSizes[gidA]" (single-sided, assuming
// gidB has one part) to a full subA-count × subB-count product so
// multi-against-multi pairs are handled the same way.
// anyTouches/anyCrosses/anyOverlaps record that some sub-pair confirmed
// the predicate; notTouches/notCrosses/notOverlaps record that some
// sub-pair — one that intersected at all — confirmed it did NOT. A
// sub-pair that touches is not a negative witness against crosses or
// overlaps. A negative witness suppresses the predicate at the parent level even
// when another sub-pair did confirm it, mirroring the original engine's
// multiOut, which erases a gidA/gidB touches|crosses|overlaps marking
// the moment a conflicting notTouches|notCrosses|notOverlaps arrives for
// the same parent pair.
type pairStats struct {
	seen                                    int
	containsCount, coversCount, equalsCount int
	anyIntersects, anyTouches               bool
	anyCrosses, anyOverlaps                 bool
	notTouches, notCrosses, notOverlaps     bool
}

// Aggregator collects sub-verdicts across any number of producers and
// finalizes parent-level relations on demand. The zero value is not
// usable; construct with New. All methods are safe for concurrent use.
type Aggregator struct {
	mu        sync.Mutex
	subCounts map[string]int
	stats     map[pairKey]*pairStats
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		subCounts: make(map[string]int),
		stats:     make(map[pairKey]*pairStats),
	}
}

// SetSubCount records how many sub-parts gid has. Must be called before
// Finalize(gid) is called; Record may arrive in any order relative to it.
func (a *Aggregator) SetSubCount(gid string, n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subCounts[gid] = n
}

// Record folds one sub-pair verdict into its parent pair's running stats.
func (a *Aggregator) Record(v SubVerdict) {
	if v.Preds.None() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	key := pairKey{v.GidA, v.GidB}
	st := a.stats[key]
	if st == nil {
		st = &pairStats{}
		a.stats[key] = st
	}

	st.seen++
	if v.Preds.Has(types.PredContains) {
		st.containsCount++
	}
	if v.Preds.Has(types.PredCovers) {
		st.coversCount++
	}
	if v.Preds.Has(types.PredEquals) {
		st.equalsCount++
	}
	if v.Preds.Has(types.PredIntersects) {
		st.anyIntersects = true
	}
	if v.Preds.Has(types.PredTouches) {
		st.anyTouches = true
	} else {
		st.notTouches = true
	}
	if v.Preds.Has(types.PredCrosses) {
		st.anyCrosses = true
	} else if !v.Preds.Has(types.PredTouches) {
		st.notCrosses = true
	}
	if v.Preds.Has(types.PredOverlaps) {
		st.anyOverlaps = true
	} else if !v.Preds.Has(types.PredTouches) {
		st.notOverlaps = true
	}
}

// Finalize computes every confirmed relation with gid as the "A" side and
// removes gid's accumulated stats, so Finalize(gid) must be called exactly
// once per gid — when the sweep has closed every one of gid's sub-parts,
// the same point in the original engine's sweep clearMultis calls
// multiOut. Relations involving gid as the "B" side are produced when the
// other parent is finalized, not here.
func (a *Aggregator) Finalize(gid string) []Relation {
	a.mu.Lock()
	defer a.mu.Unlock()

	subsA := a.subCounts[gid]
	var out []Relation

	for key, st := range a.stats {
		if key.gidA != gid {
			continue
		}
		subsB := a.subCounts[key.gidB]
		required := subsA * subsB

		var preds types.Predicates
		if st.anyIntersects {
			preds = preds.With(types.PredIntersects)
		}
		if st.anyTouches && !st.notTouches {
			preds = preds.With(types.PredTouches)
		}
		if st.anyCrosses && !st.notCrosses {
			preds = preds.With(types.PredCrosses)
		}
		if st.anyOverlaps && !st.notOverlaps {
			preds = preds.With(types.PredOverlaps)
		}
		if required > 0 && st.containsCount == required {
			preds = preds.With(types.PredContains)
		}
		if required > 0 && st.coversCount == required {
			preds = preds.With(types.PredCovers)
		}
		if required > 0 && st.equalsCount == required {
			preds = preds.With(types.PredEquals)
		}

		if !preds.None() {
			out = append(out, Relation{GidA: key.gidA, GidB: key.gidB, Preds: preds})
		}
		delete(a.stats, key)
	}

	return out
}
