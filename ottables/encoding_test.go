package ottables

import (
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, tc := range []struct {
		platform PlatformID
		encoding EncodingID
		name     string
	}{
		{0, 3, "UTF-16BE"},
		{0, 4, "UTF-16BE"},
		{1, 0, "MacRoman"},
		{1, 1, "MacRoman"}, // Japanese, not supported
		{1, 7, "MacCyrillic"},
		{2, 0, "Windows-1252"},
		{2, 1, "UTF-16BE"},
		{2, 2, "Windows-1252"},
		{3, 0, "UTF-16BE"},
		{3, 1, "UTF-16BE"},
		{3, 2, "Shift-JIS"},
		{3, 3, "GBK"},
		{3, 4, "Big5"},
		{3, 5, "Windows-949"},
		{3, 10, "UTF-16BE"},
	} {
		enc, err := EncodingFor(tc.platform, tc.encoding)
		require.NoError(t, err, "platform %d, encoding %d", tc.platform, tc.encoding)
		assert.Equal(t, tc.name, enc.String(), "platform %d, encoding %d", tc.platform, tc.encoding)
	}
	for _, tc := range [][2]uint16{{2, 3}, {3, 6}, {4, 0}, {7, 1}} {
		_, err := EncodingFor(PlatformID(tc[0]), EncodingID(tc[1]))
		assert.ErrorIs(t, err, ot.ErrUnsupportedEncoding, "platform %d, encoding %d", tc[0], tc[1])
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, tc := range []struct {
		platform PlatformID
		encoding EncodingID
		text     string
		size     int
	}{
		{PlatformMacintosh, EncodingMacRoman, "Café", 4},
		{PlatformMacintosh, EncodingMacCyrillic, "Шрифт", 5},
		{PlatformISO, 0, "Ærø", 3},
		{PlatformWindows, 2, "フォント", 8},
		{PlatformWindows, 3, "字体", 4},
		{PlatformWindows, 4, "字體", 4},
		{PlatformWindows, 5, "한글", 4},
		{PlatformWindows, EncodingWindowsFull, "𝔉𝔬𝔫𝔱", 16},
	} {
		enc, err := EncodingFor(tc.platform, tc.encoding)
		require.NoError(t, err)
		b := enc.Encode(tc.text)
		assert.Len(t, b, tc.size, tc.text)
		assert.Equal(t, tc.text, enc.Decode(b))
	}
}

func TestEncodingSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	roman, err := EncodingFor(PlatformMacintosh, EncodingMacRoman)
	require.NoError(t, err)
	b := roman.Encode("a字b")
	assert.Len(t, b, 3, "unencodable characters are substituted, not dropped")
	assert.Equal(t, byte('a'), b[0])
	assert.Equal(t, byte('b'), b[2])
	//
	utf16, err := EncodingFor(PlatformWindows, EncodingWindowsBMP)
	require.NoError(t, err)
	s := utf16.Decode([]byte{0x00, 0x41, 0xd8, 0x00, 0x00, 0x42, 0x00})
	assert.Contains(t, s, "A")
	assert.Contains(t, s, "\uFFFD")
}
