package otcodec

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otlayout"
	"github.com/npillmayer/otcodec/ottables"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func headTable() []byte {
	head := make([]byte, 54)
	copy(head, []byte{0, 1, 0, 0, 0, 1, 0x80, 0})
	binary.BigEndian.PutUint32(head[8:], 0xdeadbeef) // stale adjustment
	binary.BigEndian.PutUint32(head[12:], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(head[18:], 1000)
	return head
}

func makeFont(t *testing.T) *Font {
	otf := New(FontTypeTrueType)
	otf.InsertRaw(ot.T("head"), headTable())
	require.NoError(t, otf.Insert(&ottables.MaxpTable{Version: 0x00005000, NumGlyphs: 10}))
	require.NoError(t, otf.Insert(&ottables.NameTable{Records: []ottables.NameRecord{
		ottables.WindowsUnicodeRecord(sfnt.NameIDFamily, "Codec"),
		ottables.WindowsUnicodeRecord(sfnt.NameIDSubfamily, "Regular"),
	}}))
	otf.InsertRaw(ot.T("glyf"), []byte{1, 2, 3})
	return otf
}

func TestFontDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := makeFont(t)
	data, err := otf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, FontTypeTrueType, binary.BigEndian.Uint32(data))
	assert.Equal(t, []uint16{4, 64, 2, 0}, []uint16{
		binary.BigEndian.Uint16(data[4:]), binary.BigEndian.Uint16(data[6:]),
		binary.BigEndian.Uint16(data[8:]), binary.BigEndian.Uint16(data[10:]),
	})
	var tags []string
	next := uint32(headerSize + 4*tableRecordSize)
	for i := range 4 {
		rec := data[headerSize+i*tableRecordSize:]
		tags = append(tags, string(rec[:4]))
		offset, length := binary.BigEndian.Uint32(rec[8:]), binary.BigEndian.Uint32(rec[12:])
		assert.Equal(t, next, offset, "tables follow each other in tag order")
		assert.Zero(t, offset%4, "tables are 4-byte aligned")
		next = offset + (length+3)&^3
	}
	assert.Equal(t, []string{"glyf", "head", "maxp", "name"}, tags)
	assert.Len(t, data, int(next))
	assert.Equal(t, uint32(checkSumMagic), checksum(data), "whole font sums up to the magic number")
	// glyf is padded with zeros
	assert.Equal(t, []byte{1, 2, 3, 0}, data[76:80])
}

func TestFontRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data, err := makeFont(t).Bytes()
	require.NoError(t, err)
	otf, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []ot.Tag{ot.T("glyf"), ot.T("head"), ot.T("maxp"), ot.T("name")}, otf.TableTags())
	assert.Equal(t, []byte{1, 2, 3}, otf.Table(ot.T("glyf")))
	again, err := otf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, again)
	//
	family, subfamily := FamilyName(otf)
	assert.Equal(t, "Codec", family)
	assert.Equal(t, "Regular", subfamily)
	maxGlyph, err := MaxGlyphID(otf)
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphID(9), maxGlyph)
	name, err := Decode[ottables.NameTable](otf)
	require.NoError(t, err)
	assert.Len(t, name.Records, 2)
}

func TestFontTables(t *testing.T) {
	otf := makeFont(t)
	assert.True(t, otf.HasTable(ot.T("maxp")))
	otf.Remove(ot.T("maxp"))
	otf.Remove(ot.T("maxp"))
	assert.False(t, otf.HasTable(ot.T("maxp")))
	assert.Nil(t, otf.Table(ot.T("maxp")))
	_, err := MaxGlyphID(otf)
	assert.ErrorIs(t, err, ErrNoTable)
	_, err = Layout(otf, ot.T("GSUB"))
	assert.ErrorIs(t, err, ErrNoTable)
	_, err = Layout(otf, ot.T("name"))
	assert.ErrorIs(t, err, otlayout.ErrUnsupportedTable)
	//
	raw := []byte{9, 9}
	otf.InsertRaw(ot.T("DSIG"), raw)
	raw[0] = 0
	assert.Equal(t, []byte{9, 9}, otf.Table(ot.T("DSIG")), "inserted tables are copied")
	assert.Panics(t, func() { otf.InsertRaw(ot.Tag(0x20202020), nil) })
	//
	otf.InsertRaw(ot.T("gasp"), []byte{0, 7})
	_, err = Decode[ottables.GaspTable](otf)
	assert.ErrorIs(t, err, ottables.ErrUnsupportedVersion)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := Parse([]byte{0, 1})
	assert.ErrorIs(t, err, ErrFontFormat)
	_, err = Parse([]byte{'w', 'O', 'F', 'F', 0, 0, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrFontFormat)
	//
	data, err := makeFont(t).Bytes()
	require.NoError(t, err)
	truncated := data[:len(data)-8]
	_, err = Parse(truncated)
	assert.ErrorIs(t, err, ot.ErrUnexpectedEOF)
	//
	moved := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(moved[headerSize+8:], 0x00100000) // glyf far beyond the end
	_, err = Parse(moved)
	assert.ErrorIs(t, err, ot.ErrOffsetOutOfRange)
	//
	unsorted := append([]byte(nil), data...)
	copy(unsorted[headerSize:], "zzzz")
	_, err = Parse(unsorted)
	assert.ErrorIs(t, err, ErrFontFormat)
}

func TestFixNonHinted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := makeFont(t)
	otf.InsertRaw(ot.T("prep"), []byte{0xb0, 0x00})
	require.NoError(t, FixNonHinted(otf))
	gasp, err := Decode[ottables.GaspTable](otf)
	require.NoError(t, err)
	require.Len(t, gasp.Ranges, 1)
	assert.Equal(t, uint16(0xFFFF), gasp.Ranges[0].MaxPPEM)
	assert.Equal(t, ottables.GaspAll, gasp.Ranges[0].Behavior)
	assert.Equal(t, []byte{0xb8, 0x01, 0xff, 0x85, 0xb0, 0x04, 0x8d}, otf.Table(ot.T("prep")))
	//
	fixed, err := otf.Bytes()
	require.NoError(t, err)
	otf, err = Parse(fixed)
	require.NoError(t, err)
	require.NoError(t, FixNonHinted(otf))
	again, err := otf.Bytes()
	require.NoError(t, err)
	assert.Equal(t, fixed, again, "a fixed font is left unchanged")
}

func TestFixNonHintedKeepsGasp(t *testing.T) {
	otf := makeFont(t)
	custom := []byte{0, 0, 0, 1, 0xff, 0xff, 0, 2}
	otf.InsertRaw(ot.T("gasp"), custom)
	require.NoError(t, FixNonHinted(otf))
	assert.Equal(t, custom, otf.Table(ot.T("gasp")))
	assert.True(t, otf.HasTable(ot.T("prep")))
}

func TestBinarySearchParams(t *testing.T) {
	for n, want := range map[uint16][3]uint16{
		0:  {0, 0, 0},
		1:  {16, 0, 0},
		9:  {128, 3, 16},
		16: {256, 4, 0},
		21: {256, 4, 80},
	} {
		sr, es, rs := binarySearchParams(n, tableRecordSize)
		assert.Equal(t, want, [3]uint16{sr, es, rs}, "%d tables", n)
	}
}
