package ottables

import (
	"strings"

	"github.com/npillmayer/otcodec/ot"
)

// GaspBehavior flags control grid-fitting and anti-aliasing for a range of
// pixel sizes.
type GaspBehavior uint16

const (
	GaspGridfit            GaspBehavior = 0x0001
	GaspDoGray             GaspBehavior = 0x0002
	GaspSymmetricGridfit   GaspBehavior = 0x0004 // version 1
	GaspSymmetricSmoothing GaspBehavior = 0x0008 // version 1

	GaspAll = GaspGridfit | GaspDoGray | GaspSymmetricGridfit | GaspSymmetricSmoothing
)

func (b GaspBehavior) String() string {
	var flags []string
	for _, f := range []struct {
		flag GaspBehavior
		name string
	}{
		{GaspGridfit, "gridfit"},
		{GaspDoGray, "dogray"},
		{GaspSymmetricGridfit, "symmetric-gridfit"},
		{GaspSymmetricSmoothing, "symmetric-smoothing"},
	} {
		if b&f.flag != 0 {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		return "none"
	}
	return strings.Join(flags, "|")
}

// GaspRange applies a behavior to all sizes up to and including MaxPPEM.
type GaspRange struct {
	MaxPPEM  uint16
	Behavior GaspBehavior
}

func (r *GaspRange) Encode(w *ot.Writer) error {
	w.U16(r.MaxPPEM)
	w.U16(uint16(r.Behavior))
	return nil
}

func (r *GaspRange) Decode(c *ot.Cursor) error {
	v, err := c.U16s(2)
	if err != nil {
		return err
	}
	r.MaxPPEM, r.Behavior = v[0], GaspBehavior(v[1])
	return nil
}

// GaspTable is OpenType table 'gasp' (grid-fitting and scan-conversion
// procedure). Ranges are sorted by MaxPPEM and the last one should cover
// size 0xFFFF.
type GaspTable struct {
	Version uint16
	Ranges  []GaspRange
}

var _ Table = &GaspTable{}

// SmoothGasp returns a gasp table which switches on smoothing and grid-fitting
// for all sizes. This is the appropriate setting for fonts without hinting
// instructions.
func SmoothGasp() *GaspTable {
	return &GaspTable{
		Version: 1,
		Ranges:  []GaspRange{{MaxPPEM: 0xFFFF, Behavior: GaspAll}},
	}
}

// Tag returns 'gasp'.
func (t *GaspTable) Tag() ot.Tag {
	return ot.T("gasp")
}

func (t *GaspTable) Encode(w *ot.Writer) error {
	w.U16(t.Version)
	return ot.WriteCounted[GaspRange](w, t.Ranges)
}

func (t *GaspTable) Decode(c *ot.Cursor) (err error) {
	if t.Version, err = c.U16(); err != nil {
		return err
	}
	if t.Version > 1 {
		return ot.Errorf(ErrUnsupportedVersion, "gasp", "version %d", t.Version)
	}
	t.Ranges, err = ot.ReadCounted[GaspRange](c)
	return err
}

// Behavior returns the flags for a pixel size.
func (t *GaspTable) Behavior(ppem uint16) GaspBehavior {
	for _, r := range t.Ranges {
		if ppem <= r.MaxPPEM {
			return r.Behavior
		}
	}
	return 0
}

// PrepTable is OpenType table 'prep', the control value program. The
// TrueType instructions are not interpreted.
type PrepTable struct {
	Program ot.Blob
}

var _ Table = &PrepTable{}

// SmoothPrep returns a control value program for fonts without hinting
// instructions:
//
//	PUSHW[0] 511   b8 01 ff
//	SCANCTRL[]     85
//	PUSHB[0] 4     b0 04
//	SCANTYPE[]     8d
//
// It enables dropout control for all sizes and selects smart dropout control.
func SmoothPrep() *PrepTable {
	return &PrepTable{Program: ot.Blob{0xb8, 0x01, 0xff, 0x85, 0xb0, 0x04, 0x8d}}
}

// Tag returns 'prep'.
func (t *PrepTable) Tag() ot.Tag {
	return ot.T("prep")
}

func (t *PrepTable) Encode(w *ot.Writer) error {
	return t.Program.Encode(w)
}

func (t *PrepTable) Decode(c *ot.Cursor) error {
	return t.Program.Decode(c)
}
