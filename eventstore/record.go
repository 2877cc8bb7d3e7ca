package eventstore

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/patrickbrosi/spatialjoin/types"
)

// recordSize is the fixed on-disk size of one BoxEvent, in bytes. Unlike
// the original's raw memcpy of a padded C struct, the encoding here lists
// every field explicitly and in a fixed order, so the layout never
// silently shifts if a field is reordered in Go.
const recordSize = 8 + 4 + 4 + 4 + 1 + 1 + 8 + 4 + 4 + 4*4 + 1 + 1

// EventLess is the sweep's total order over events: ascending sweep
// coordinate (Val), opening events before closing events at the same
// coordinate, and areas sorted after every other geometry kind so a
// polygon's own boundary has already been fully registered in the active
// set before the sweep has to test a point or line against it.
func EventLess(a, b BoxEvent) bool {
	if a.Val != b.Val {
		return a.Val < b.Val
	}
	if a.Out != b.Out {
		return !a.Out
	}
	if a.Type.IsArea() != b.Type.IsArea() {
		return !a.Type.IsArea()
	}
	return a.ID < b.ID
}

// Encode writes one fixed-size BoxEvent record to w.
func Encode(w io.Writer, ev BoxEvent) error {
	var buf [recordSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], ev.ID)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(ev.LoY))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(ev.UpY))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(ev.Val))
	if ev.Out {
		buf[20] = 1
	}
	buf[21] = byte(ev.Type)
	binary.LittleEndian.PutUint64(buf[22:30], math.Float64bits(ev.AreaOrLen))
	binary.LittleEndian.PutUint32(buf[30:34], uint32(ev.Point.X))
	binary.LittleEndian.PutUint32(buf[34:38], uint32(ev.Point.Y))
	binary.LittleEndian.PutUint32(buf[38:42], uint32(ev.B45.LoX))
	binary.LittleEndian.PutUint32(buf[42:46], uint32(ev.B45.LoY))
	binary.LittleEndian.PutUint32(buf[46:50], uint32(ev.B45.HiX))
	binary.LittleEndian.PutUint32(buf[50:54], uint32(ev.B45.HiY))
	if ev.Side {
		buf[54] = 1
	}
	if ev.Large {
		buf[55] = 1
	}
	_, err := w.Write(buf[:])
	return err
}

// Decode reads one fixed-size BoxEvent record from r.
func Decode(r io.Reader) (BoxEvent, error) {
	var buf [recordSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return BoxEvent{}, err
	}

	var ev BoxEvent
	ev.ID = binary.LittleEndian.Uint64(buf[0:8])
	ev.LoY = int32(binary.LittleEndian.Uint32(buf[8:12]))
	ev.UpY = int32(binary.LittleEndian.Uint32(buf[12:16]))
	ev.Val = int32(binary.LittleEndian.Uint32(buf[16:20]))
	ev.Out = buf[20] != 0
	ev.Type = types.GeomType(buf[21])
	ev.AreaOrLen = math.Float64frombits(binary.LittleEndian.Uint64(buf[22:30]))
	ev.Point.X = int32(binary.LittleEndian.Uint32(buf[30:34]))
	ev.Point.Y = int32(binary.LittleEndian.Uint32(buf[34:38]))
	ev.B45.LoX = int32(binary.LittleEndian.Uint32(buf[38:42]))
	ev.B45.LoY = int32(binary.LittleEndian.Uint32(buf[42:46]))
	ev.B45.HiX = int32(binary.LittleEndian.Uint32(buf[46:50]))
	ev.B45.HiY = int32(binary.LittleEndian.Uint32(buf[50:54]))
	ev.Side = buf[54] != 0
	ev.Large = buf[55] != 0
	return ev, nil
}
