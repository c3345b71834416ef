package otlayout

import (
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/otcodec/ot"
)

// LanguageSystem selects the features active for a language within a script.
type LanguageSystem struct {
	RequiredFeature ot.Option[uint16] // index into the FeatureList
	FeatureIndices  []uint16          // in processing order
}

// Script holds the language systems of one script.
type Script struct {
	DefaultLanguageSystem ot.Option[LanguageSystem]
	LanguageSystems       map[ot.Tag]LanguageSystem
}

// ScriptList maps script tags to scripts. It is written in ascending tag order.
type ScriptList map[ot.Tag]Script

// Feature is one entry of a FeatureList.
type Feature struct {
	Tag           ot.Tag
	LookupIndices []uint16      // indices into the LookupList, in processing order
	Params        FeatureParams // nil if absent
}

// FeatureList is the ordered list of features of a layout table. The position of
// a feature is its feature index, which language systems refer to.
type FeatureList []Feature

// Range iterates scripts in ascending tag order.
func (sl ScriptList) Range() iter.Seq2[ot.Tag, Script] {
	return func(yield func(ot.Tag, Script) bool) {
		for _, tag := range ot.SortedTags(sl) {
			if !yield(tag, sl[tag]) {
				return
			}
		}
	}
}

// LanguageSystem returns a language system by tag. Tag DFLT selects the default
// language system.
func (s Script) LanguageSystem(tag ot.Tag) (LanguageSystem, bool) {
	if tag == ot.DFLT {
		return s.DefaultLanguageSystem.Unwrap()
	}
	ls, ok := s.LanguageSystems[tag]
	return ls, ok
}

// Indices returns all feature indices carrying a tag. Feature lists may contain
// a tag more than once, e.g. for different lookups per script.
func (fl FeatureList) Indices(tag ot.Tag) []int {
	var indices []int
	for i, f := range fl {
		if f.Tag == tag {
			indices = append(indices, i)
		}
	}
	return indices
}

// --- LanguageSystem conversion ---------------------------------------------

// LanguageSystemFromLowLevel converts a LangSys table. Required-feature index
// 0xFFFF becomes an absent value.
func LanguageSystemFromLowLevel(t *LangSysTable, maxGlyphID ot.GlyphID) LanguageSystem {
	return LanguageSystem{
		RequiredFeature: ot.FromSentinel(t.RequiredFeatureIndex, NoRequiredFeature),
		FeatureIndices:  slices.Clip(t.FeatureIndices),
	}
}

// ToLowLevel converts ls to a LangSys table. An absent required feature is
// written as 0xFFFF.
func (ls LanguageSystem) ToLowLevel(maxGlyphID ot.GlyphID) *LangSysTable {
	return &LangSysTable{
		RequiredFeatureIndex: ot.ToSentinel(ls.RequiredFeature, NoRequiredFeature),
		FeatureIndices:       ls.FeatureIndices,
	}
}

// --- Script conversion -----------------------------------------------------

// ScriptFromLowLevel converts a Script table.
func ScriptFromLowLevel(t *ScriptTable, maxGlyphID ot.GlyphID) (Script, error) {
	s := Script{}
	if t.DefaultLangSys != nil {
		s.DefaultLanguageSystem = ot.Some(LanguageSystemFromLowLevel(t.DefaultLangSys, maxGlyphID))
	}
	for _, rec := range t.LangSysRecords {
		if rec.LangSys == nil {
			return Script{}, fmt.Errorf("language system %s: %w", rec.Tag, ErrNullLink)
		}
		if _, dup := s.LanguageSystems[rec.Tag]; dup {
			return Script{}, fmt.Errorf("language system %s: %w", rec.Tag, ErrDuplicateTag)
		}
		if s.LanguageSystems == nil {
			s.LanguageSystems = make(map[ot.Tag]LanguageSystem, len(t.LangSysRecords))
		}
		s.LanguageSystems[rec.Tag] = LanguageSystemFromLowLevel(rec.LangSys, maxGlyphID)
	}
	return s, nil
}

// ToLowLevel converts s to a Script table with language system records in
// ascending tag order.
func (s Script) ToLowLevel(maxGlyphID ot.GlyphID) *ScriptTable {
	t := &ScriptTable{}
	if ls, ok := s.DefaultLanguageSystem.Unwrap(); ok {
		t.DefaultLangSys = ls.ToLowLevel(maxGlyphID)
	}
	for _, tag := range ot.SortedTags(s.LanguageSystems) {
		t.LangSysRecords = append(t.LangSysRecords, LangSysRecord{
			Tag:     tag,
			LangSys: s.LanguageSystems[tag].ToLowLevel(maxGlyphID),
		})
	}
	return t
}

// --- ScriptList conversion -------------------------------------------------

// ScriptListFromLowLevel converts a ScriptList table.
func ScriptListFromLowLevel(t *ScriptListTable, maxGlyphID ot.GlyphID) (ScriptList, error) {
	var sl ScriptList
	for _, rec := range t.Records {
		if rec.Script == nil {
			return nil, fmt.Errorf("script %s: %w", rec.Tag, ErrNullLink)
		}
		if _, dup := sl[rec.Tag]; dup {
			return nil, fmt.Errorf("script %s: %w", rec.Tag, ErrDuplicateTag)
		}
		script, err := ScriptFromLowLevel(rec.Script, maxGlyphID)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", rec.Tag, err)
		}
		if sl == nil {
			sl = make(ScriptList, len(t.Records))
		}
		sl[rec.Tag] = script
	}
	return sl, nil
}

// ToLowLevel converts sl to a ScriptList table with script records in
// ascending tag order, regardless of map insertion order.
func (sl ScriptList) ToLowLevel(maxGlyphID ot.GlyphID) *ScriptListTable {
	t := &ScriptListTable{}
	for tag, script := range sl.Range() {
		t.Records = append(t.Records, ScriptRecord{Tag: tag, Script: script.ToLowLevel(maxGlyphID)})
	}
	return t
}

// --- FeatureList conversion ------------------------------------------------

// FeatureListFromLowLevel converts a FeatureList table, keeping the order of
// features. Features with a parameter block are not supported and yield
// ErrFeatureParams.
func FeatureListFromLowLevel(t *FeatureListTable, maxGlyphID ot.GlyphID) (FeatureList, error) {
	var fl FeatureList
	for i, rec := range t.Records {
		if rec.Feature == nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, rec.Tag, ErrNullLink)
		}
		if rec.Feature.Params != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, rec.Tag, ErrFeatureParams)
		}
		fl = append(fl, Feature{
			Tag:           rec.Tag,
			LookupIndices: slices.Clip(rec.Feature.LookupListIndices),
		})
	}
	return fl, nil
}

// ToLowLevel converts fl to a FeatureList table. Features keep their position,
// as it is their feature index.
func (fl FeatureList) ToLowLevel(maxGlyphID ot.GlyphID) *FeatureListTable {
	t := &FeatureListTable{}
	for _, f := range fl {
		t.Records = append(t.Records, FeatureRecord{
			Tag: f.Tag,
			Feature: &FeatureTable{
				Params:            f.Params,
				LookupListIndices: f.LookupIndices,
			},
		})
	}
	return t
}
