package otlayout

import (
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverageFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sparse := Coverage{3, 17, 40}
	low, err := sparse.ToLowLevel(maxGID)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), low.Format)
	data, err := ot.Marshal(low)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0, 3, 0, 3, 0, 17, 0, 40}, data)
	//
	dense := Coverage{10, 11, 12, 13, 14, 20, 21, 22}
	low, err = dense.ToLowLevel(maxGID)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), low.Format)
	assert.Equal(t, []CoverageRange{{10, 14, 0}, {20, 22, 5}}, low.Ranges)
	data, err = ot.Marshal(low)
	require.NoError(t, err)
	back, err := ot.Unmarshal[CoverageTable](data)
	require.NoError(t, err)
	cv, err := CoverageFromLowLevel(&back, maxGID)
	require.NoError(t, err)
	assert.Equal(t, dense, cv)
	i, ok := cv.Index(21)
	assert.True(t, ok)
	assert.Equal(t, 6, i)
	//
	unsorted := Coverage{5, 4, 3, 2}
	low, err = unsorted.ToLowLevel(maxGID)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), low.Format, "coverage order must survive")
}

func TestCoverageGlyphRange(t *testing.T) {
	_, err := Coverage{1, 101}.ToLowLevel(maxGID)
	assert.ErrorIs(t, err, ErrGlyphOutOfRange)
	_, err = CoverageFromLowLevel(&CoverageTable{Format: 2, Ranges: []CoverageRange{{98, 102, 0}}}, maxGID)
	assert.ErrorIs(t, err, ErrGlyphOutOfRange)
	_, err = CoverageFromLowLevel(&CoverageTable{Format: 3}, maxGID)
	assert.ErrorIs(t, err, ErrUnsupportedTable)
}

func TestClassDefFromLowLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	fmt1 := &ClassDefTable{Format: 1, StartGlyph: 98, Classes: []uint16{1, 0, 2, 2, 3}}
	cd, err := ClassDefFromLowLevel(fmt1, maxGID)
	require.NoError(t, err)
	assert.Equal(t, ClassDef{98: 1, 100: 2}, cd, "class 0 and glyphs past the maximum are dropped")
	assert.Equal(t, uint16(0), cd.Class(99))
	assert.Equal(t, []ot.GlyphID{100}, cd.GlyphsInClass(2, maxGID))
	zero := cd.GlyphsInClass(0, maxGID)
	assert.Len(t, zero, 99)
	assert.NotContains(t, zero, ot.GlyphID(98))
	assert.Contains(t, zero, ot.GlyphID(99))
	//
	fmt2 := &ClassDefTable{Format: 2, Ranges: []ClassDefRange{{5, 7, 4}, {9, 9, 0}}}
	cd, err = ClassDefFromLowLevel(fmt2, maxGID)
	require.NoError(t, err)
	assert.Equal(t, ClassDef{5: 4, 6: 4, 7: 4}, cd)
}

func TestClassDefToLowLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	empty := ClassDef{}.ToLowLevel(maxGID)
	data, err := ot.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 2, 0, 0}, data)
	//
	mixed := ClassDef{10: 1, 11: 2, 12: 1, 13: 2}
	low := mixed.ToLowLevel(maxGID)
	assert.Equal(t, uint16(1), low.Format)
	assert.Equal(t, ot.GlyphID(10), low.StartGlyph)
	assert.Equal(t, []uint16{1, 2, 1, 2}, low.Classes)
	//
	runs := ClassDef{}
	for g := ot.GlyphID(1); g <= 30; g++ {
		runs[g] = 1
	}
	for g := ot.GlyphID(60); g <= 90; g++ {
		runs[g] = 2
	}
	runs[0] = 0
	runs[200] = 3
	low = runs.ToLowLevel(maxGID)
	assert.Equal(t, uint16(2), low.Format)
	assert.Equal(t, []ClassDefRange{{1, 30, 1}, {60, 90, 2}}, low.Ranges)
	data, err = ot.Marshal(low)
	require.NoError(t, err)
	back, err := ot.Unmarshal[ClassDefTable](data)
	require.NoError(t, err)
	cd, err := ClassDefFromLowLevel(&back, maxGID)
	require.NoError(t, err)
	delete(runs, 0)
	delete(runs, 200)
	assert.Equal(t, runs, cd)
}
