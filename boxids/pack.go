package boxids

// Pack run-length compresses ids, which must already be sorted by absLess,
// into the on-disk box-id list format. Adjacent same-sign entries are
// merged into a single run whenever they are contiguous (cell N's run ends
// exactly where cell N+1 begins) and the merged run count would not
// exceed 254 (Run is a uint8, so a run caps at 255 cells total).
//
// Entry 0 of the returned list is not a real box id: it is a running total
// of how many grid cells the list describes, stashed there so [Intersect]
// can skip straight to the real entries at index 1 without a separate
// length field. This mirrors the on-disk layout the geometry cache
// persists, so callers that serialize a [List] must not special-case it
// away.
func Pack(ids List) List {
	if len(ids) == 0 {
		return List{{ID: 0, Run: 0}}
	}
	if len(ids) == 1 {
		return List{{ID: int32(1 + int(ids[0].Run)), Run: 0}, ids[0]}
	}

	ret := make(List, 0, len(ids)/2+2)
	ret = append(ret, BoxID{ID: int32(int(ids[0].Run) + 1), Run: 0})
	ret = append(ret, ids[0])

	for i := 1; i < len(ids); i++ {
		ret[0].ID += int32(int(ids[i].Run) + 1)

		last := &ret[len(ret)-1]
		cur := ids[i]

		mergeable := int(last.Run) < 254-int(cur.Run) &&
			((cur.ID > 0 && last.ID > 0 && last.ID+int32(last.Run) == cur.ID-1) ||
				(cur.ID < 0 && last.ID < 0 && last.ID-int32(last.Run) == cur.ID+1))

		if mergeable {
			last.Run += 1 + cur.Run
		} else {
			ret = append(ret, cur)
		}
	}

	return ret
}
