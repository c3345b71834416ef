package otquery

import (
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otlayout"
	"github.com/npillmayer/otcodec/ottables"
	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hmtx' table
	LineGap         sfnt.Units // typographic line gap
}

// hheaMetrics holds the fields of table 'hhea' following its version.
type hheaMetrics struct {
	ascender, descender, lineGap int16
	advanceWidthMax              uint16
}

func (h *hheaMetrics) Decode(c *ot.Cursor) (err error) {
	if err = c.Skip(4); err != nil {
		return err
	}
	for _, p := range []*int16{&h.ascender, &h.descender, &h.lineGap} {
		if *p, err = c.I16(); err != nil {
			return err
		}
	}
	h.advanceWidthMax, err = c.U16()
	return err
}

// os2TypoMetrics holds the typographic ascender and descender of table 'OS/2'.
type os2TypoMetrics struct {
	ascender, descender int16
}

func (m *os2TypoMetrics) Decode(c *ot.Cursor) (err error) {
	if err = c.Seek(68); err != nil { // sTypoAscender
		return err
	}
	if m.ascender, err = c.I16(); err != nil {
		return err
	}
	m.descender, err = c.I16()
	return err
}

// FontMetrics retrieves selected metrics of a font.
func FontMetrics(src TableSource) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if hhea, ok := decode[hheaMetrics](src, ot.T("hhea")); ok {
		metrics.Ascent = sfnt.Units(hhea.ascender)
		metrics.Descent = sfnt.Units(hhea.descender)
		metrics.LineGap = sfnt.Units(hhea.lineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.advanceWidthMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2, ok := decode[os2TypoMetrics](src, ot.T("OS/2")); ok {
			tracer().Debugf("OS/2")
			if a := sfnt.Units(os2.ascender); a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			if d := sfnt.Units(os2.descender); d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
	}
	if head, ok := HeadInfo(src); ok {
		metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	}
	return metrics
}

// FontSupportsScript returns a tuple (script-tag, language-tag) for a given input
// of a script tag and a language tag. If the language has no special support in the
// font, DFLT will be returned. If the script has no support in the font,
// DFLT will be returned for the script.
func FontSupportsScript(src TableSource, scr ot.Tag, lang ot.Tag) (ot.Tag, ot.Tag) {
	data := src.Table(ot.T("GSUB"))
	if data == nil {
		return ot.DFLT, ot.DFLT
	}
	var maxGlyph ot.GlyphID = 0xFFFF
	if maxp, ok := decode[ottables.MaxpTable](src, ot.T("maxp")); ok {
		maxGlyph = maxp.MaxGlyphID()
	}
	header, err := ot.Unmarshal[otlayout.LayoutHeader](data)
	if err != nil || header.ScriptList == nil {
		tracer().Infof("cannot read GSUB scripts: %v", err)
		return ot.DFLT, ot.DFLT
	}
	scripts, err := otlayout.ScriptListFromLowLevel(header.ScriptList, maxGlyph)
	if err != nil {
		tracer().Infof("cannot read GSUB scripts: %v", err)
		return ot.DFLT, ot.DFLT
	}
	script, ok := scripts[scr]
	if !ok {
		tracer().Infof("cannot find script %s in font", scr.String())
		return ot.DFLT, ot.DFLT
	}
	tracer().Debugf("script %s is contained in GSUB", scr.String())
	if _, ok := script.LanguageSystems[lang]; ok {
		return scr, lang
	}
	return scr, ot.DFLT
}
