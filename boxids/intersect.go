package boxids

import "sort"

// Intersect walks two packed box-id lists with a galloping merge and
// reports how many grid cells of idsA are, according to idsB's coverage,
// fully contained (idsB has a positive/full-coverage run over that cell)
// versus merely intersected (idsB has a negative/intersect-only run over
// that cell). A result of (0, 0) means the two geometries' grids never
// overlap at all.
//
// Both lists must be the output of [Pack] (sorted by absLess, entry 0 a
// running-total header). The merge never re-derives either geometry's
// shape; it only compares the two box-id lists, which is what makes this
// stage cheap enough to run on every candidate pair that survives the
// bounding-box filter.
func Intersect(idsA, idsB List) (fullContained, partContained int) {
	if len(idsA) < 2 || len(idsB) < 2 {
		return 0, 0
	}

	// Shortcut: the two lists' real ranges (skipping the header at index 0)
	// don't overlap at all.
	lastB := idsB[len(idsB)-1]
	if abs32(idsA[1].ID) > abs32(lastB.ID)+int32(lastB.Run) {
		return 0, 0
	}
	lastA := idsA[len(idsA)-1]
	if abs32(lastA.ID)+int32(lastA.Run) < idsB[1].ID {
		return 0, 0
	}

	i, ii := 1, int32(0)
	j, jj := 1, int32(0)
	noContained := false

	for i < len(idsA) && j < len(idsB) {
		av := abs32(idsA[i].ID) + ii
		bv := abs32(idsB[j].ID) + jj

		switch {
		case av == bv:
			if idsB[j].ID > 0 {
				fullContained++
				if noContained {
					return fullContained, partContained
				}
			}
			if idsB[j].ID < 0 {
				partContained++
			}

			ii++
			if ii > int32(idsA[i].Run) {
				i++
				ii = 0
			}
			jj++
			if jj > int32(idsB[j].Run) {
				j++
				jj = 0
			}

		case av < bv:
			if fullContained > 0 {
				return fullContained, partContained
			}
			noContained = true

			if abs32(idsA[i].ID)+int32(idsA[i].Run) < bv {
				ii = 0
				i++
			} else {
				ii++
				if ii > int32(idsA[i].Run) {
					i++
					ii = 0
				}
			}

		default: // av > bv: gallop idsB forward to catch up with idsA[i]+ii
			target := abs32(idsA[i].ID) + ii
			gallop := 1
			for {
				idx := j + gallop
				boundary := idx >= len(idsB)

				if boundary || abs32(idsB[idx].ID) >= target {
					jj = 0
					lo := j + gallop/2
					hi := idx
					if boundary {
						hi = len(idsB)
					}
					j = lo + sort.Search(hi-lo, func(k int) bool {
						return abs32(idsB[lo+k].ID) >= target
					})
					if j > 0 && abs32(idsB[j-1].ID) < target &&
						abs32(idsB[j-1].ID)+int32(idsB[j-1].Run) >= target {
						j--
						jj = target - abs32(idsB[j].ID)
					}
					break
				}
				gallop *= 2
			}
		}
	}

	return fullContained, partContained
}
