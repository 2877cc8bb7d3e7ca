package geomcache

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/patrickbrosi/spatialjoin/boxids"
	"github.com/patrickbrosi/spatialjoin/geom"
	"github.com/patrickbrosi/spatialjoin/xsorted"
)

// PointRecord is a cached point feature.
type PointRecord struct {
	Geom  geom.Point
	ID    string
	SubID uint16
}

// SimpleLineRecord is a cached two-point line, used when a feature's
// envelope alone is enough to decide relationships without consulting
// its full boundary.
type SimpleLineRecord struct {
	A, B geom.Point
	ID   string
}

// LineRecord is a cached (multi-)line feature, reconstructed into an
// x-sorted boundary on load.
type LineRecord struct {
	Points []geom.Point
	Box    geom.Box
	ID     string
	SubID  uint16
	Length float64
	BoxIDs boxids.List
}

// Xsorted rebuilds the x-sorted event vector for this line on every
// call; Cache.Get does not call it, and the result is not cached on the record itself, since the vector is cheap
// to rebuild and keeping it out of LineRecord keeps the record itself
// trivially copyable.
func (l LineRecord) Xsorted() xsorted.Line {
	return xsorted.NewLine(l.Points)
}

// SimpleAreaRecord is a cached polygon with a single outer ring and no
// holes, used the same way SimpleLineRecord is.
type SimpleAreaRecord struct {
	Outer []geom.Point
	ID    string
}

// AreaRecord is a cached (multi-)polygon feature, reconstructed into an
// x-sorted boundary (outer ring plus holes) on load.
type AreaRecord struct {
	Rings  [][]geom.Point
	Box    geom.Box
	ID     string
	SubID  uint16
	Area   float64
	BoxIDs boxids.List
}

// Xsorted rebuilds the x-sorted boundary for this area.
func (a AreaRecord) Xsorted() xsorted.Polygon {
	return xsorted.NewPolygon(a.Rings)
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

func writePoint(w io.Writer, p geom.Point) error {
	return binary.Write(w, binary.LittleEndian, p)
}

func readPoint(r io.Reader) (geom.Point, error) {
	var p geom.Point
	err := binary.Read(r, binary.LittleEndian, &p)
	return p, err
}

func writePoints(w io.Writer, pts []geom.Point) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(pts))); err != nil {
		return err
	}
	for _, p := range pts {
		if err := writePoint(w, p); err != nil {
			return err
		}
	}
	return nil
}

func readPoints(r io.Reader) ([]geom.Point, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	pts := make([]geom.Point, n)
	for i := range pts {
		p, err := readPoint(r)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

func writeBox(w io.Writer, b geom.Box) error {
	return binary.Write(w, binary.LittleEndian, b)
}

func readBox(r io.Reader) (geom.Box, error) {
	var b geom.Box
	err := binary.Read(r, binary.LittleEndian, &b)
	return b, err
}

func writeBoxIDs(w io.Writer, ids boxids.List) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		if err := binary.Write(w, binary.LittleEndian, id.ID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, id.Run); err != nil {
			return err
		}
	}
	return nil
}

func readBoxIDs(r io.Reader) (boxids.List, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	ids := make(boxids.List, n)
	for i := range ids {
		if err := binary.Read(r, binary.LittleEndian, &ids[i].ID); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &ids[i].Run); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// PointCodec implements Codec[PointRecord].
type PointCodec struct{}

func (PointCodec) Encode(w *os.File, val PointRecord) error {
	if err := writePoint(w, val.Geom); err != nil {
		return err
	}
	if err := writeString(w, val.ID); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, val.SubID)
}

func (PointCodec) Decode(r *os.File, off int64) (PointRecord, error) {
	var ret PointRecord
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return ret, err
	}
	var err error
	if ret.Geom, err = readPoint(r); err != nil {
		return ret, err
	}
	if ret.ID, err = readString(r); err != nil {
		return ret, err
	}
	if err := binary.Read(r, binary.LittleEndian, &ret.SubID); err != nil {
		return ret, err
	}
	return ret, nil
}

// LineCodec implements Codec[LineRecord].
type LineCodec struct{}

func (LineCodec) Encode(w *os.File, val LineRecord) error {
	if err := writePoints(w, val.Points); err != nil {
		return err
	}
	if err := writeBox(w, val.Box); err != nil {
		return err
	}
	if err := writeString(w, val.ID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, val.SubID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, val.Length); err != nil {
		return err
	}
	return writeBoxIDs(w, val.BoxIDs)
}

func (LineCodec) Decode(r *os.File, off int64) (LineRecord, error) {
	var ret LineRecord
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return ret, err
	}
	var err error
	if ret.Points, err = readPoints(r); err != nil {
		return ret, err
	}
	if ret.Box, err = readBox(r); err != nil {
		return ret, err
	}
	if ret.ID, err = readString(r); err != nil {
		return ret, err
	}
	if err := binary.Read(r, binary.LittleEndian, &ret.SubID); err != nil {
		return ret, err
	}
	if err := binary.Read(r, binary.LittleEndian, &ret.Length); err != nil {
		return ret, err
	}
	if ret.BoxIDs, err = readBoxIDs(r); err != nil {
		return ret, err
	}
	return ret, nil
}

// AreaCodec implements Codec[AreaRecord].
type AreaCodec struct{}

func (AreaCodec) Encode(w *os.File, val AreaRecord) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(val.Rings))); err != nil {
		return err
	}
	for _, ring := range val.Rings {
		if err := writePoints(w, ring); err != nil {
			return err
		}
	}
	if err := writeBox(w, val.Box); err != nil {
		return err
	}
	if err := writeString(w, val.ID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, val.SubID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, val.Area); err != nil {
		return err
	}
	return writeBoxIDs(w, val.BoxIDs)
}

func (AreaCodec) Decode(r *os.File, off int64) (AreaRecord, error) {
	var ret AreaRecord
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return ret, err
	}

	var numRings uint32
	if err := binary.Read(r, binary.LittleEndian, &numRings); err != nil {
		return ret, err
	}
	ret.Rings = make([][]geom.Point, numRings)
	for i := range ret.Rings {
		pts, err := readPoints(r)
		if err != nil {
			return ret, err
		}
		ret.Rings[i] = pts
	}

	var err error
	if ret.Box, err = readBox(r); err != nil {
		return ret, err
	}
	if ret.ID, err = readString(r); err != nil {
		return ret, err
	}
	if err := binary.Read(r, binary.LittleEndian, &ret.SubID); err != nil {
		return ret, err
	}
	if err := binary.Read(r, binary.LittleEndian, &ret.Area); err != nil {
		return ret, err
	}
	if ret.BoxIDs, err = readBoxIDs(r); err != nil {
		return ret, err
	}
	return ret, nil
}

// SimpleLineCodec implements Codec[SimpleLineRecord].
type SimpleLineCodec struct{}

func (SimpleLineCodec) Encode(w *os.File, val SimpleLineRecord) error {
	if err := writePoint(w, val.A); err != nil {
		return err
	}
	if err := writePoint(w, val.B); err != nil {
		return err
	}
	return writeString(w, val.ID)
}

func (SimpleLineCodec) Decode(r *os.File, off int64) (SimpleLineRecord, error) {
	var ret SimpleLineRecord
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return ret, err
	}
	var err error
	if ret.A, err = readPoint(r); err != nil {
		return ret, err
	}
	if ret.B, err = readPoint(r); err != nil {
		return ret, err
	}
	if ret.ID, err = readString(r); err != nil {
		return ret, err
	}
	return ret, nil
}

// SimpleAreaCodec implements Codec[SimpleAreaRecord].
type SimpleAreaCodec struct{}

func (SimpleAreaCodec) Encode(w *os.File, val SimpleAreaRecord) error {
	if err := writePoints(w, val.Outer); err != nil {
		return err
	}
	return writeString(w, val.ID)
}

func (SimpleAreaCodec) Decode(r *os.File, off int64) (SimpleAreaRecord, error) {
	var ret SimpleAreaRecord
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return ret, err
	}
	var err error
	if ret.Outer, err = readPoints(r); err != nil {
		return ret, err
	}
	if ret.ID, err = readString(r); err != nil {
		return ret, err
	}
	return ret, nil
}

var (
	_ Codec[PointRecord]      = PointCodec{}
	_ Codec[LineRecord]       = LineCodec{}
	_ Codec[AreaRecord]       = AreaCodec{}
	_ Codec[SimpleLineRecord] = SimpleLineCodec{}
	_ Codec[SimpleAreaRecord] = SimpleAreaCodec{}
)
