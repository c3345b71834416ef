package otquery

import (
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/ottables"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// HeadMagicNumber is the value of head.magicNumber.
const HeadMagicNumber = 0x5F0F3CF5

func (h *HeadTableInfo) Decode(c *ot.Cursor) (err error) {
	v, err := c.U16s(2)
	if err != nil {
		return err
	}
	h.MajorVersion, h.MinorVersion = v[0], v[1]
	for _, p := range []*uint32{&h.FontRevision, &h.CheckSumAdjustment, &h.MagicNumber} {
		if *p, err = c.U32(); err != nil {
			return err
		}
	}
	if v, err = c.U16s(2); err != nil {
		return err
	}
	h.Flags, h.UnitsPerEm = v[0], v[1]
	for _, p := range []*int64{&h.Created, &h.Modified} {
		hi, err := c.U32()
		if err != nil {
			return err
		}
		lo, err := c.U32()
		if err != nil {
			return err
		}
		*p = int64(uint64(hi)<<32 | uint64(lo))
	}
	for _, p := range []*int16{&h.XMin, &h.YMin, &h.XMax, &h.YMax} {
		if *p, err = c.I16(); err != nil {
			return err
		}
	}
	if v, err = c.U16s(2); err != nil {
		return err
	}
	h.MacStyle, h.LowestRecPPEM = v[0], v[1]
	for _, p := range []*int16{&h.FontDirectionHint, &h.IndexToLocFormat, &h.GlyphDataFormat} {
		if *p, err = c.I16(); err != nil {
			return err
		}
	}
	return nil
}

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(src TableSource) (HeadTableInfo, bool) {
	return decode[HeadTableInfo](src, ot.T("head"))
}

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// For version 1.0 tables, extended profile fields are decoded if present.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	// TrueType profile fields (version 1.0 only)
	HasExtendedProfile    bool
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(src TableSource) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	maxp, ok := decode[ottables.MaxpTable](src, ot.T("maxp"))
	if !ok {
		return info, false
	}
	info.VersionFixed = uint32(maxp.Version)
	info.NumGlyphs = maxp.NumGlyphs
	if maxp.Version != 0x00010000 {
		return info, true
	}
	profile, err := ot.NewCursor(maxp.Rest).U16s(13)
	if err != nil {
		tracer().Debugf("maxp: %v", err)
		return info, true
	}
	info.HasExtendedProfile = true
	for i, p := range []*uint16{
		&info.MaxPoints, &info.MaxContours, &info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints, &info.MaxStorage, &info.MaxFunctionDefs,
		&info.MaxInstructionDefs, &info.MaxStackElements, &info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	} {
		*p = profile[i]
	}
	return info, true
}
