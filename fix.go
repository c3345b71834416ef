package otcodec

import (
	"fmt"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otlayout"
	"github.com/npillmayer/otcodec/otquery"
	"github.com/npillmayer/otcodec/ottables"
)

// FixNonHinted prepares a font without hinting instructions for smooth
// rendering at all sizes. It inserts a 'gasp' table, if the font does not
// already have one, and replaces table 'prep' by a program which enables
// dropout control.
//
// A font which already has these tables is left unchanged, byte by byte.
func FixNonHinted(otf *Font) error {
	if !otf.HasTable(ot.T("gasp")) {
		tracer().Infof("font has no table gasp, inserting one")
		if err := otf.Insert(ottables.SmoothGasp()); err != nil {
			return err
		}
	}
	return otf.Insert(ottables.SmoothPrep())
}

// FamilyName returns the family and subfamily name of a font. Values are empty
// if the font has no name table or the names are missing.
func FamilyName(otf *Font) (family, subfamily string) {
	return otquery.FamilyName(otf)
}

// MaxGlyphID returns the highest glyph id of a font, as stated by table 'maxp'.
func MaxGlyphID(otf *Font) (ot.GlyphID, error) {
	maxp, err := Decode[ottables.MaxpTable](otf)
	if err != nil {
		return 0, err
	}
	return maxp.MaxGlyphID(), nil
}

// Layout decodes the script and feature lists of layout table 'GSUB' or 'GPOS'.
func Layout(otf *Font, tag ot.Tag) (otlayout.Layout, error) {
	if tag != ot.T("GSUB") && tag != ot.T("GPOS") {
		return otlayout.Layout{}, fmt.Errorf("table %s: %w", tag, otlayout.ErrUnsupportedTable)
	}
	data := otf.Table(tag)
	if data == nil {
		return otlayout.Layout{}, fmt.Errorf("table %s: %w", tag, ErrNoTable)
	}
	maxGlyph, err := MaxGlyphID(otf)
	if err != nil {
		return otlayout.Layout{}, err
	}
	layout, err := otlayout.ParseLayout(data, maxGlyph)
	if err != nil {
		return otlayout.Layout{}, ot.WithTable(err, tag)
	}
	return layout, nil
}
