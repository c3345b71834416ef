package otlayout

import (
	"errors"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxGID = ot.GlyphID(100)

// scriptListBytes is a ScriptList with scripts DFLT and latn, laid out in
// pre-order: every table precedes its sub-tables.
var scriptListBytes = []byte{
	0x00, 0x02, // scriptCount
	'D', 'F', 'L', 'T', 0x00, 0x0e, // -> Script at 14
	'l', 'a', 't', 'n', 0x00, 0x1a, // -> Script at 26
	// DFLT Script @14
	0x00, 0x04, 0x00, 0x00, // default LangSys at +4, no records
	// DFLT default LangSys @18
	0x00, 0x00, 0xff, 0xff, 0x00, 0x01, 0x00, 0x00,
	// latn Script @26
	0x00, 0x0a, 0x00, 0x01, 'D', 'E', 'U', ' ', 0x00, 0x14,
	// latn default LangSys @36
	0x00, 0x00, 0xff, 0xff, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01,
	// latn/DEU LangSys @46
	0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00,
}

func scriptListFixture() ScriptList {
	return ScriptList{
		ot.T("latn"): Script{
			DefaultLanguageSystem: ot.Some(LanguageSystem{
				RequiredFeature: ot.None[uint16](),
				FeatureIndices:  []uint16{0, 1},
			}),
			LanguageSystems: map[ot.Tag]LanguageSystem{
				ot.T("DEU"): {RequiredFeature: ot.Some[uint16](1), FeatureIndices: []uint16{0}},
			},
		},
		ot.DFLT: Script{
			DefaultLanguageSystem: ot.Some(LanguageSystem{FeatureIndices: []uint16{0}}),
		},
	}
}

func TestScriptListDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sl, err := UnmarshalScriptList(scriptListBytes, maxGID)
	require.NoError(t, err)
	assert.Equal(t, scriptListFixture(), sl)
	deu, ok := sl[ot.T("latn")].LanguageSystem(ot.T("DEU"))
	require.True(t, ok)
	req, ok := deu.RequiredFeature.Unwrap()
	assert.True(t, ok)
	assert.Equal(t, uint16(1), req)
}

func TestScriptListEncode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data, err := MarshalScriptList(scriptListFixture(), maxGID)
	require.NoError(t, err)
	assert.Equal(t, scriptListBytes, data)
}

func TestScriptListAscendingTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sl := ScriptList{}
	langs := map[ot.Tag]LanguageSystem{}
	for _, s := range []string{"latn", "cyrl", "arab", "DFLT", "grek"} {
		sl[ot.T(s)] = Script{}
	}
	for _, l := range []string{"TRK", "DEU", "ROM", "AZE"} {
		langs[ot.T(l)] = LanguageSystem{FeatureIndices: []uint16{2}}
	}
	sl[ot.T("latn")] = Script{LanguageSystems: langs}
	low := sl.ToLowLevel(maxGID)
	var tags []string
	for _, r := range low.Records {
		tags = append(tags, r.Tag.String())
	}
	assert.Equal(t, []string{"DFLT", "arab", "cyrl", "grek", "latn"}, tags)
	tags = tags[:0]
	for _, r := range low.Records[4].Script.LangSysRecords {
		tags = append(tags, r.Tag.String())
	}
	assert.Equal(t, []string{"AZE ", "DEU ", "ROM ", "TRK "}, tags)
	// and the round trip through bytes
	data, err := MarshalScriptList(sl, maxGID)
	require.NoError(t, err)
	back, err := UnmarshalScriptList(data, maxGID)
	require.NoError(t, err)
	assert.Equal(t, sl, back)
}

func TestEmptyScriptList(t *testing.T) {
	data, err := MarshalScriptList(nil, maxGID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, data)
	sl, err := UnmarshalScriptList(data, maxGID)
	require.NoError(t, err)
	assert.Empty(t, sl)
}

func TestLanguageSystemSentinel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, ls := range []LanguageSystem{
		{RequiredFeature: ot.None[uint16](), FeatureIndices: []uint16{3, 1, 2}},
		{RequiredFeature: ot.Some[uint16](0), FeatureIndices: []uint16{5}},
		{RequiredFeature: ot.Some[uint16](0xFFFE)},
	} {
		low := ls.ToLowLevel(maxGID)
		if ls.RequiredFeature.IsNone() {
			assert.Equal(t, NoRequiredFeature, low.RequiredFeatureIndex)
		}
		data, err := ot.Marshal(low)
		require.NoError(t, err)
		back, err := ot.Unmarshal[LangSysTable](data)
		require.NoError(t, err)
		assert.Equal(t, ls, LanguageSystemFromLowLevel(&back, maxGID))
	}
	data, _ := ot.Marshal(LanguageSystem{}.ToLowLevel(maxGID))
	assert.Equal(t, []byte{0, 0, 0xff, 0xff, 0, 0}, data)
}

func TestScriptListErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	dup := &ScriptListTable{Records: []ScriptRecord{
		{Tag: ot.T("latn"), Script: &ScriptTable{}},
		{Tag: ot.T("latn"), Script: &ScriptTable{}},
	}}
	_, err := ScriptListFromLowLevel(dup, maxGID)
	assert.True(t, errors.Is(err, ErrDuplicateTag))
	null := &ScriptListTable{Records: []ScriptRecord{{Tag: ot.T("latn")}}}
	_, err = ScriptListFromLowLevel(null, maxGID)
	assert.ErrorIs(t, err, ErrNullLink)
	// truncated input
	_, err = UnmarshalScriptList(scriptListBytes[:30], maxGID)
	assert.Error(t, err)
	corrupt := append([]byte(nil), scriptListBytes...)
	corrupt[13] = 0xf0 // latn script offset beyond end
	_, err = UnmarshalScriptList(corrupt, maxGID)
	assert.ErrorIs(t, err, ot.ErrOffsetOutOfRange)
}

// --- Features --------------------------------------------------------------

var featureListBytes = []byte{
	0x00, 0x03,
	'l', 'i', 'g', 'a', 0x00, 0x14,
	'k', 'e', 'r', 'n', 0x00, 0x1a,
	'l', 'i', 'g', 'a', 0x00, 0x22,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, // @20
	0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0x00, 0x02, // @26
	0x00, 0x00, 0x00, 0x01, 0x00, 0x03, // @34
}

func TestFeatureListRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	fl := FeatureList{
		{Tag: ot.T("liga"), LookupIndices: []uint16{0}},
		{Tag: ot.T("kern"), LookupIndices: []uint16{1, 2}},
		{Tag: ot.T("liga"), LookupIndices: []uint16{3}},
	}
	data, err := MarshalFeatureList(fl, maxGID)
	require.NoError(t, err)
	assert.Equal(t, featureListBytes, data, "features must keep their position")
	back, err := UnmarshalFeatureList(data, maxGID)
	require.NoError(t, err)
	assert.Equal(t, fl, back)
	assert.Equal(t, []int{0, 2}, back.Indices(ot.T("liga")))
}

func TestFeatureListSharing(t *testing.T) {
	fl := FeatureList{
		{Tag: ot.T("liga"), LookupIndices: []uint16{0}},
		{Tag: ot.T("clig"), LookupIndices: []uint16{0}},
	}
	plain, err := MarshalFeatureList(fl, maxGID)
	require.NoError(t, err)
	assert.Len(t, plain, 14+2*6)
	shared, err := MarshalFeatureList(fl, maxGID, ot.WithSharing())
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x00, 0x02,
		'l', 'i', 'g', 'a', 0x00, 0x0e,
		'c', 'l', 'i', 'g', 0x00, 0x0e,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00,
	}, shared)
	back, err := UnmarshalFeatureList(shared, maxGID)
	require.NoError(t, err)
	assert.Equal(t, fl, back)
}

func TestFeatureParams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sizeFeature := []byte{
		0x00, 0x01, 's', 'i', 'z', 'e', 0x00, 0x08,
		0x00, 0x04, 0x00, 0x00, // params at +4 relative to the Feature table
		0x00, 0x64, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	low, err := ot.Unmarshal[FeatureListTable](sizeFeature)
	require.NoError(t, err)
	require.Len(t, low.Records, 1)
	assert.Equal(t, SizeParams{DesignSize: 100}, low.Records[0].Feature.Params)
	data, err := ot.Marshal(&low)
	require.NoError(t, err)
	assert.Equal(t, sizeFeature, data)
	//
	_, err = FeatureListFromLowLevel(&low, maxGID)
	assert.ErrorIs(t, err, ErrFeatureParams, "parameters must not be dropped silently")
	//
	withParams := FeatureList{
		{Tag: ot.T("cv01"), LookupIndices: []uint16{4}, Params: CharacterVariantParams{
			Format: 0, FeatUILabelNameID: 256, Characters: []rune{'a', 0x1F600},
		}},
		{Tag: ot.T("ss02"), Params: StylisticSetParams{UINameID: 257}},
	}
	data, err = MarshalFeatureList(withParams, maxGID)
	require.NoError(t, err)
	low, err = ot.Unmarshal[FeatureListTable](data)
	require.NoError(t, err)
	assert.Equal(t, withParams[0].Params, low.Records[0].Feature.Params)
	assert.Equal(t, withParams[1].Params, low.Records[1].Feature.Params)
	assert.Nil(t, low.Records[1].Feature.LookupListIndices)
}

func TestFeatureParamsKind(t *testing.T) {
	for tag, kind := range map[string]string{
		"size": "size", "ss01": "ss", "ss20": "ss", "ss21": "", "cv01": "cv",
		"cv99": "cv", "cv00": "", "liga": "", "ssty": "",
	} {
		assert.Equal(t, kind, featureParamsKind(ot.T(tag)), tag)
	}
}
