package ottables

import (
	"github.com/npillmayer/otcodec/ot"
)

// MaxpTable is OpenType table 'maxp'. Only the number of glyphs is
// interpreted; the fields following it (version 1.0 only) are kept verbatim.
type MaxpTable struct {
	Version   ot.Version16Dot16 // 0x00005000 or 0x00010000
	NumGlyphs uint16
	Rest      ot.Blob
}

var _ Table = &MaxpTable{}

// Tag returns 'maxp'.
func (t *MaxpTable) Tag() ot.Tag {
	return ot.T("maxp")
}

// MaxGlyphID returns the highest glyph id of a font, which is needed to
// interpret class definitions of the layout tables.
func (t *MaxpTable) MaxGlyphID() ot.GlyphID {
	if t.NumGlyphs == 0 {
		return 0
	}
	return ot.GlyphID(t.NumGlyphs - 1)
}

func (t *MaxpTable) Encode(w *ot.Writer) error {
	w.U32(uint32(t.Version))
	w.U16(t.NumGlyphs)
	return t.Rest.Encode(w)
}

func (t *MaxpTable) Decode(c *ot.Cursor) (err error) {
	if err = t.Version.Decode(c); err != nil {
		return err
	}
	if t.Version != 0x00005000 && t.Version != 0x00010000 {
		return ot.Errorf(ErrUnsupportedVersion, "maxp", "version 0x%08x", uint32(t.Version))
	}
	if t.NumGlyphs, err = c.U16(); err != nil {
		return err
	}
	t.Rest = nil
	if c.Remaining() > 0 {
		err = t.Rest.Decode(c)
	}
	return err
}
