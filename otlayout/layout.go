package otlayout

import (
	"fmt"

	"github.com/npillmayer/otcodec/ot"
)

// LayoutHeader is the header of a GSUB or GPOS table (versions 1.0 and 1.1)
// with its ScriptList and FeatureList decoded. Lookups are not decoded, only
// counted.
type LayoutHeader struct {
	MajorVersion, MinorVersion uint16
	ScriptList                 *ScriptListTable
	FeatureList                *FeatureListTable
	LookupCount                int
	FeatureVariationsOffset    uint32 // version 1.1 only
}

func (h *LayoutHeader) Decode(c *ot.Cursor) (err error) {
	c.EnterTable()
	defer c.LeaveTable()
	if h.MajorVersion, err = c.U16(); err != nil {
		return err
	}
	if h.MinorVersion, err = c.U16(); err != nil {
		return err
	}
	if h.MajorVersion != 1 || h.MinorVersion > 1 {
		return ot.Errorf(ErrUnsupportedTable, "header", "layout table version %d.%d", h.MajorVersion, h.MinorVersion)
	}
	offsets, err := c.U16s(3)
	if err != nil {
		return err
	}
	if h.MinorVersion == 1 {
		if h.FeatureVariationsOffset, err = c.U32(); err != nil {
			return err
		}
	}
	if h.ScriptList, err = ot.FollowLink[ScriptListTable](c, uint32(offsets[0])); err != nil {
		return fmt.Errorf("ScriptList: %w", err)
	}
	if h.FeatureList, err = ot.FollowLink[FeatureListTable](c, uint32(offsets[1])); err != nil {
		return fmt.Errorf("FeatureList: %w", err)
	}
	if offsets[2] != 0 {
		err = c.Follow(uint32(offsets[2]), func(c *ot.Cursor) error {
			n, err := c.U16()
			h.LookupCount = int(n)
			return err
		})
	}
	return err
}

// Layout is the semantic form of the script and feature part of a GSUB or GPOS
// table.
type Layout struct {
	Scripts     ScriptList
	Features    FeatureList
	LookupCount int
}

// ParseLayout decodes the common part of a GSUB or GPOS table.
func ParseLayout(data []byte, maxGlyphID ot.GlyphID) (Layout, error) {
	h, err := ot.Unmarshal[LayoutHeader](data)
	if err != nil {
		return Layout{}, err
	}
	layout := Layout{LookupCount: h.LookupCount}
	if h.ScriptList != nil {
		if layout.Scripts, err = ScriptListFromLowLevel(h.ScriptList, maxGlyphID); err != nil {
			return Layout{}, err
		}
	}
	if h.FeatureList != nil {
		if layout.Features, err = FeatureListFromLowLevel(h.FeatureList, maxGlyphID); err != nil {
			return Layout{}, err
		}
	}
	tracer().Debugf("layout table with %d scripts, %d features, %d lookups",
		len(layout.Scripts), len(layout.Features), layout.LookupCount)
	return layout, nil
}

// Validate checks that every feature index of every language system refers to
// an entry of the feature list, and every lookup index to an existing lookup.
func (l Layout) Validate() error {
	checkLangSys := func(script ot.Tag, lang ot.Tag, ls LanguageSystem) error {
		if i, ok := ls.RequiredFeature.Unwrap(); ok && int(i) >= len(l.Features) {
			return fmt.Errorf("%s/%s required feature %d: %w", script, lang, i, ErrFeatureIndex)
		}
		for _, i := range ls.FeatureIndices {
			if int(i) >= len(l.Features) {
				return fmt.Errorf("%s/%s feature %d: %w", script, lang, i, ErrFeatureIndex)
			}
		}
		return nil
	}
	for tag, script := range l.Scripts.Range() {
		if ls, ok := script.DefaultLanguageSystem.Unwrap(); ok {
			if err := checkLangSys(tag, ot.DFLT, ls); err != nil {
				return err
			}
		}
		for _, lang := range ot.SortedTags(script.LanguageSystems) {
			if err := checkLangSys(tag, lang, script.LanguageSystems[lang]); err != nil {
				return err
			}
		}
	}
	for i, f := range l.Features {
		for _, lookup := range f.LookupIndices {
			if int(lookup) >= l.LookupCount {
				return fmt.Errorf("feature %d (%s) lookup %d of %d: %w", i, f.Tag, lookup, l.LookupCount, ErrFeatureIndex)
			}
		}
	}
	return nil
}

// MarshalScriptList serializes a ScriptList.
func MarshalScriptList(sl ScriptList, maxGlyphID ot.GlyphID, opts ...ot.ResolveOption) ([]byte, error) {
	return ot.Marshal(sl.ToLowLevel(maxGlyphID), opts...)
}

// UnmarshalScriptList decodes a ScriptList table starting at data[0].
func UnmarshalScriptList(data []byte, maxGlyphID ot.GlyphID) (ScriptList, error) {
	t, err := ot.Unmarshal[ScriptListTable](data)
	if err != nil {
		return nil, err
	}
	return ScriptListFromLowLevel(&t, maxGlyphID)
}

// MarshalFeatureList serializes a FeatureList.
func MarshalFeatureList(fl FeatureList, maxGlyphID ot.GlyphID, opts ...ot.ResolveOption) ([]byte, error) {
	return ot.Marshal(fl.ToLowLevel(maxGlyphID), opts...)
}

// UnmarshalFeatureList decodes a FeatureList table starting at data[0].
func UnmarshalFeatureList(data []byte, maxGlyphID ot.GlyphID) (FeatureList, error) {
	t, err := ot.Unmarshal[FeatureListTable](data)
	if err != nil {
		return nil, err
	}
	return FeatureListFromLowLevel(&t, maxGlyphID)
}
