// Package eventstore implements the sweep's append-only event log: every
// geometry contributes one open and one close event as it is parsed, each
// event is appended to a backing file in arrival order, and once parsing
// finishes the whole log is externally sorted into sweep order (ascending
// sweep coordinate, opens before closes at a tie) so the sweep itself can
// stream events strictly left to right without holding them all in memory.
package eventstore

import (
	"errors"

	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/types"
)

// ErrEventIO wraps any failure writing, reading, or sorting the event
// log's backing files — fatal per spec.md §7's EventIO row: a sweep
// cannot produce correct output once an event can't be appended,
// decoded, or merged back in order.
var ErrEventIO = errors.New("eventstore: event log I/O failed")

// BoxEvent is one open or close event in the sweep's event log: the
// geometry's id, its y-range and oriented-bbox summary in the rotated
// 45-degree box-id space, the sweep coordinate this event fires at, and
// enough about the originating geometry (its kind, representative point,
// which side of the join it belongs to) to drive the candidate filters in
// the sweep (C8) and pairwise check (C9) without a geometry cache lookup
// for cheap rejections.
type BoxEvent struct {
	ID   uint64
	LoY  int32
	UpY  int32
	Val  int32
	Out  bool
	Type types.GeomType

	AreaOrLen float64

	Point geom.Point
	B45   geom.Box

	Side  bool
	Large bool
}
