package otlayout

import (
	"github.com/npillmayer/otcodec/ot"
)

// --- ScriptList ------------------------------------------------------------

// ScriptListTable is the binary form of a ScriptList:
//
//	uint16        scriptCount
//	ScriptRecord  scriptRecords[scriptCount]
type ScriptListTable struct {
	Records []ScriptRecord
}

func (t *ScriptListTable) Encode(w *ot.Writer) error {
	return ot.WriteCounted[ScriptRecord](w, t.Records)
}

func (t *ScriptListTable) Decode(c *ot.Cursor) (err error) {
	t.Records, err = ot.ReadCounted[ScriptRecord](c)
	return err
}

// ScriptRecord links a script tag to a Script table. The offset is relative to
// the start of the ScriptList.
type ScriptRecord struct {
	Tag    ot.Tag
	Script *ScriptTable
}

func (r *ScriptRecord) Encode(w *ot.Writer) error {
	w.WriteTag(r.Tag)
	return ot.EncodeOffset16(w, r.Script)
}

func (r *ScriptRecord) Decode(c *ot.Cursor) error {
	var err error
	if r.Tag, err = c.ReadTag(); err != nil {
		return err
	}
	off, err := c.U16()
	if err != nil {
		return err
	}
	r.Script, err = ot.FollowLink[ScriptTable](c, uint32(off))
	return err
}

// ScriptTable is the binary form of a Script:
//
//	Offset16       defaultLangSysOffset
//	uint16         langSysCount
//	LangSysRecord  langSysRecords[langSysCount]
type ScriptTable struct {
	DefaultLangSys *LangSysTable
	LangSysRecords []LangSysRecord
}

func (t *ScriptTable) Encode(w *ot.Writer) error {
	if err := ot.EncodeOffset16(w, t.DefaultLangSys); err != nil {
		return err
	}
	return ot.WriteCounted[LangSysRecord](w, t.LangSysRecords)
}

func (t *ScriptTable) Decode(c *ot.Cursor) error {
	off, err := c.U16()
	if err != nil {
		return err
	}
	if t.DefaultLangSys, err = ot.FollowLink[LangSysTable](c, uint32(off)); err != nil {
		return err
	}
	t.LangSysRecords, err = ot.ReadCounted[LangSysRecord](c)
	return err
}

// LangSysRecord links a language tag to a LangSys table. The offset is relative
// to the start of the Script table.
type LangSysRecord struct {
	Tag     ot.Tag
	LangSys *LangSysTable
}

func (r *LangSysRecord) Encode(w *ot.Writer) error {
	w.WriteTag(r.Tag)
	return ot.EncodeOffset16(w, r.LangSys)
}

func (r *LangSysRecord) Decode(c *ot.Cursor) error {
	var err error
	if r.Tag, err = c.ReadTag(); err != nil {
		return err
	}
	off, err := c.U16()
	if err != nil {
		return err
	}
	r.LangSys, err = ot.FollowLink[LangSysTable](c, uint32(off))
	return err
}

// NoRequiredFeature is the wire value of LangSys.requiredFeatureIndex for
// "no required feature".
const NoRequiredFeature uint16 = 0xFFFF

// LangSysTable is the binary form of a LangSys:
//
//	Offset16  lookupOrderOffset     (reserved, null)
//	uint16    requiredFeatureIndex  (0xFFFF if none)
//	uint16    featureIndexCount
//	uint16    featureIndices[featureIndexCount]
type LangSysTable struct {
	LookupOrder          uint16
	RequiredFeatureIndex uint16
	FeatureIndices       []uint16
}

func (t *LangSysTable) Encode(w *ot.Writer) error {
	w.U16(t.LookupOrder)
	w.U16(t.RequiredFeatureIndex)
	if len(t.FeatureIndices) > 0xFFFF {
		return ot.Errorf(ot.ErrWidthOverflow, "LangSys", "%d feature indices", len(t.FeatureIndices))
	}
	w.U16(uint16(len(t.FeatureIndices)))
	w.U16s(t.FeatureIndices)
	return nil
}

func (t *LangSysTable) Decode(c *ot.Cursor) error {
	var err error
	if t.LookupOrder, err = c.U16(); err != nil {
		return err
	}
	if t.RequiredFeatureIndex, err = c.U16(); err != nil {
		return err
	}
	n, err := c.U16()
	if err != nil {
		return err
	}
	t.FeatureIndices, err = c.U16s(int(n))
	return err
}

// --- FeatureList -----------------------------------------------------------

// FeatureListTable is the binary form of a FeatureList:
//
//	uint16         featureCount
//	FeatureRecord  featureRecords[featureCount]
//
// The position of a record is its feature index.
type FeatureListTable struct {
	Records []FeatureRecord
}

func (t *FeatureListTable) Encode(w *ot.Writer) error {
	return ot.WriteCounted[FeatureRecord](w, t.Records)
}

func (t *FeatureListTable) Decode(c *ot.Cursor) (err error) {
	t.Records, err = ot.ReadCounted[FeatureRecord](c)
	return err
}

// FeatureRecord links a feature tag to a Feature table. The offset is relative
// to the start of the FeatureList.
type FeatureRecord struct {
	Tag     ot.Tag
	Feature *FeatureTable
}

func (r *FeatureRecord) Encode(w *ot.Writer) error {
	w.WriteTag(r.Tag)
	return ot.EncodeOffset16(w, r.Feature)
}

func (r *FeatureRecord) Decode(c *ot.Cursor) error {
	var err error
	if r.Tag, err = c.ReadTag(); err != nil {
		return err
	}
	off, err := c.U16()
	if err != nil || off == 0 {
		return err
	}
	feature := &FeatureTable{}
	if err = c.Follow(uint32(off), func(c *ot.Cursor) error {
		return feature.decodeFor(r.Tag, c)
	}); err != nil {
		return err
	}
	r.Feature = feature
	return nil
}

// FeatureTable is the binary form of a Feature:
//
//	Offset16  featureParamsOffset
//	uint16    lookupIndexCount
//	uint16    lookupListIndices[lookupIndexCount]
//
// The layout of the parameter block depends on the feature tag, therefore a
// FeatureTable is decoded through its FeatureRecord.
type FeatureTable struct {
	Params            FeatureParams // nil if absent
	LookupListIndices []uint16
}

func (t *FeatureTable) Encode(w *ot.Writer) error {
	if err := w.Offset16(t.Params); err != nil {
		return err
	}
	w.U16(uint16(len(t.LookupListIndices)))
	w.U16s(t.LookupListIndices)
	return nil
}

func (t *FeatureTable) decodeFor(tag ot.Tag, c *ot.Cursor) error {
	off, err := c.U16()
	if err != nil {
		return err
	}
	if off != 0 {
		if err = c.Follow(uint32(off), func(c *ot.Cursor) (err error) {
			t.Params, err = decodeFeatureParams(tag, c)
			return err
		}); err != nil {
			return err
		}
	}
	n, err := c.U16()
	if err != nil {
		return err
	}
	t.LookupListIndices, err = c.U16s(int(n))
	return err
}
