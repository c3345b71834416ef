package ottables

import (
	"github.com/npillmayer/otcodec/ot"
)

// AxisValueMap maps one normalized axis coordinate to another.
type AxisValueMap struct {
	From, To ot.F2Dot14
}

func (m *AxisValueMap) Encode(w *ot.Writer) error {
	w.I16(int16(m.From))
	w.I16(int16(m.To))
	return nil
}

func (m *AxisValueMap) Decode(c *ot.Cursor) (err error) {
	if err = m.From.Decode(c); err != nil {
		return err
	}
	return m.To.Decode(c)
}

// SegmentMap is the piecewise linear mapping of one variation axis. Maps are
// sorted by From and contain the mappings -1→-1, 0→0 and 1→1.
type SegmentMap = ot.Counted[AxisValueMap, *AxisValueMap]

// AvarTable is OpenType table 'avar' (axis variations), version 1.0.
//
//	uint16      majorVersion
//	uint16      minorVersion
//	uint16      reserved
//	uint16      axisCount
//	SegmentMap  axisSegmentMaps[axisCount]
type AvarTable struct {
	MajorVersion, MinorVersion uint16
	Axes                       ot.Counted[SegmentMap, *SegmentMap] // in 'fvar' axis order
}

var _ Table = &AvarTable{}

// Tag returns 'avar'.
func (t *AvarTable) Tag() ot.Tag {
	return ot.T("avar")
}

func (t *AvarTable) Encode(w *ot.Writer) error {
	w.U16(t.MajorVersion)
	w.U16(t.MinorVersion)
	w.U16(0)
	return t.Axes.Encode(w)
}

func (t *AvarTable) Decode(c *ot.Cursor) (err error) {
	v, err := c.U16s(3)
	if err != nil {
		return err
	}
	if t.MajorVersion, t.MinorVersion = v[0], v[1]; t.MajorVersion != 1 {
		return ot.Errorf(ErrUnsupportedVersion, "avar", "version %d.%d", t.MajorVersion, t.MinorVersion)
	}
	return t.Axes.Decode(c)
}

// Map applies the segment map of an axis to a normalized coordinate. Axes without
// a segment map are not modified.
func (t *AvarTable) Map(axis int, coord ot.F2Dot14) ot.F2Dot14 {
	if axis < 0 || axis >= len(t.Axes) {
		return coord
	}
	maps := t.Axes[axis]
	if len(maps) == 0 {
		return coord
	}
	if coord <= maps[0].From {
		return coord - maps[0].From + maps[0].To
	}
	for i := 1; i < len(maps); i++ {
		if coord > maps[i].From {
			continue
		}
		lo, hi := maps[i-1], maps[i]
		if hi.From == lo.From {
			return hi.To
		}
		d := (int32(coord) - int32(lo.From)) * (int32(hi.To) - int32(lo.To)) / (int32(hi.From) - int32(lo.From))
		return ot.F2Dot14(int32(lo.To) + d)
	}
	last := maps[len(maps)-1]
	return coord - last.From + last.To
}
