/*
Package otquery answers common questions about a font, such as its family
name, its metrics, or the scripts it supports.

Queries work on any TableSource; otcodec.Font is the usual one. All functions
are tolerant of missing or malformed tables and report failures as absent
values.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"slices"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// TableSource provides raw font tables by tag.
type TableSource interface {
	Table(tag ot.Tag) []byte // nil if not present
	TableTags() []ot.Tag
}

// FontType returns "OpenType" for fonts with CFF outlines, "TrueType" for fonts
// with TrueType outlines, and "unknown" otherwise.
func FontType(src TableSource) string {
	tags := src.TableTags()
	switch {
	case slices.Contains(tags, ot.T("CFF")) || slices.Contains(tags, ot.T("CFF2")):
		return "OpenType"
	case slices.Contains(tags, ot.T("glyf")):
		return "TrueType"
	}
	return "unknown"
}

// LayoutTables returns the tags of the advanced layout tables of a font.
func LayoutTables(src TableSource) []string {
	var layout []string
	for _, tag := range src.TableTags() {
		switch tag.String() {
		case "GDEF", "GSUB", "GPOS", "BASE", "JSTF", "MATH":
			layout = append(layout, tag.String())
		}
	}
	return layout
}

// decode decodes table tag of src into a value of type T.
func decode[T any, P ot.Decodable[T]](src TableSource, tag ot.Tag) (T, bool) {
	var t T
	data := src.Table(tag)
	if data == nil {
		tracer().Debugf("no table %s found in font", tag)
		return t, false
	}
	if err := P(&t).Decode(ot.NewCursor(data)); err != nil {
		tracer().Debugf("table %s: %v", tag, ot.WithTable(err, tag))
		return t, false
	}
	return t, true
}
