package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/ottables"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func TestLoadAndSave(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := otcodec.New(otcodec.FontTypeTrueType)
	require.NoError(t, otf.Insert(&ottables.MaxpTable{Version: 0x00005000, NumGlyphs: 3}))
	require.NoError(t, otf.Insert(&ottables.NameTable{Records: []ottables.NameRecord{
		ottables.WindowsUnicodeRecord(sfnt.NameIDFamily, "Loader"),
		ottables.WindowsUnicodeRecord(sfnt.NameIDSubfamily, "Italic"),
	}}))
	path := filepath.Join(t.TempDir(), "loader.ttf")
	require.NoError(t, SaveOpenTypeFont(otf, path))
	//
	f, err := LoadOpenTypeFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	assert.Equal(t, "Loader Italic", f.Fontname)
	assert.Equal(t, []ot.Tag{ot.T("maxp"), ot.T("name")}, f.OT.TableTags())
	//
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := LoadOpenTypeFont(filepath.Join(t.TempDir(), "missing.otf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = ParseOpenTypeFont([]byte("not a font"))
	assert.ErrorIs(t, err, otcodec.ErrFontFormat)
}
