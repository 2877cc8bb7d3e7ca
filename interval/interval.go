// Package interval implements the stratified-by-span y-interval index the
// sweep's active set (C8) relies on to answer "which active y-intervals
// overlap this one" without scanning every active geometry on every sweep
// step.
//
// Intervals are bucketed by their span into one tree per power-of-ten
// threshold plus one overflow tree for anything wider than the largest
// threshold. A query probes every bucket, but within a bucket it only
// scans the intervals whose start lies within that bucket's span bound of
// the query, rather than walking one global ordered structure holding
// every active interval regardless of size — this keeps a query for a
// short segment cheap even while a huge area is active alongside it.
package interval

import "github.com/google/btree"

// thresholds mirrors the original engine's bucket boundaries exactly:
// anything below 10 units, then below 100, 1000, ... up to 100,000,000,
// with one final unbounded ("infinite span") bucket.
var thresholds = []int64{10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

// Interval is a closed [Lo, Hi] span. Index is keyed on the pair, matching
// the original's std::set<pair<V,V>> ordering: compare Lo first, then Hi.
type Interval struct {
	Lo, Hi int64
}

func (a Interval) less(b Interval) bool {
	if a.Lo != b.Lo {
		return a.Lo < b.Lo
	}
	return a.Hi < b.Hi
}

// Index is a stratified-by-span interval index supporting insert, erase,
// and overlap queries. The zero value is not usable; construct with New.
type Index struct {
	buckets []*btree.BTreeG[Interval]
	maxSpan int64
}

// New constructs an empty Index.
func New() *Index {
	idx := &Index{
		buckets: make([]*btree.BTreeG[Interval], len(thresholds)+1),
	}
	for i := range idx.buckets {
		idx.buckets[i] = btree.NewG(32, Interval.less)
	}
	return idx
}

// bucketFor returns the index of the bucket a span belongs in.
func bucketFor(span int64) int {
	for i, t := range thresholds {
		if span < t {
			return i
		}
	}
	return len(thresholds)
}

// Insert adds val to the index.
func (idx *Index) Insert(val Interval) {
	span := val.Hi - val.Lo
	b := bucketFor(span)
	idx.buckets[b].ReplaceOrInsert(val)
	if b == len(thresholds) && span > idx.maxSpan {
		idx.maxSpan = span
	}
}

// Erase removes val from the index. A no-op if val is not present.
func (idx *Index) Erase(val Interval) {
	span := val.Hi - val.Lo
	b := bucketFor(span)
	idx.buckets[b].Delete(val)
}

// overlaps reports whether val and other, as closed spans, share a point.
func overlaps(val, other Interval) bool {
	return (val.Lo >= other.Lo && val.Lo <= other.Hi) ||
		(val.Hi >= other.Lo && val.Hi <= other.Hi) ||
		(other.Lo >= val.Lo && other.Lo <= val.Hi) ||
		(other.Hi >= val.Lo && other.Hi <= val.Hi)
}

// OverlapFindAll returns every interval currently in the index that
// overlaps val. Each bucket is probed starting from a lower bound at
// val.Lo minus that bucket's span threshold (the widest an interval in
// that bucket could be and still possibly overlap val), scanning forward
// only while the candidate's Lo is still less than val.Hi.
func (idx *Index) OverlapFindAll(val Interval) []Interval {
	var ret []Interval

	for j, t := range thresholds {
		idx.buckets[j].AscendGreaterOrEqual(Interval{Lo: val.Lo - t, Hi: 0}, func(cand Interval) bool {
			if cand.Lo >= val.Hi {
				return false
			}
			if overlaps(val, cand) {
				ret = append(ret, cand)
			}
			return true
		})
	}

	last := idx.buckets[len(thresholds)]
	last.AscendGreaterOrEqual(Interval{Lo: val.Lo - idx.maxSpan, Hi: 0}, func(cand Interval) bool {
		if cand.Lo >= val.Hi {
			return false
		}
		if overlaps(val, cand) {
			ret = append(ret, cand)
		}
		return true
	})

	return ret
}

// Size returns the total number of intervals currently indexed.
func (idx *Index) Size() int {
	n := 0
	for _, b := range idx.buckets {
		n += b.Len()
	}
	return n
}
