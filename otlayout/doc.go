/*
Package otlayout converts the OpenType layout tables shared by GSUB and GPOS.

The package has two levels. The low-level types (ScriptListTable, ScriptTable,
LangSysTable, FeatureListTable, FeatureTable, CoverageTable, ClassDefTable)
mirror the binary format record by record and implement the codec contract of
package ot. The semantic types (ScriptList, Script, LanguageSystem, FeatureList,
Coverage, ClassDef) are what clients usually want: maps keyed by tag, explicit
optional values instead of sentinels, no offsets.

Conversion between the levels needs the font's maximum glyph id, which callers
pass explicitly (usually number of glyphs − 1 from table 'maxp'). Class
definitions treat class 0 as "every glyph not listed", which is only meaningful
up to this bound.

Lookups are not interpreted by this package; features and language systems
refer to them by index.

# Limitations

FeatureListFromLowLevel does not support feature parameter blocks. A feature
record carrying parameters yields ErrFeatureParams instead of dropping the
parameters. The opposite direction, FeatureList.ToLowLevel, writes parameters
which have been set by the client.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// Errors for layout data which is well-formed on the byte level, but cannot be
// represented in the semantic model.
var (
	ErrFeatureParams    = errors.New("feature parameters not supported by conversion")
	ErrDuplicateTag     = errors.New("duplicate tag in tag record list")
	ErrNullLink         = errors.New("null offset to a required table")
	ErrGlyphOutOfRange  = errors.New("glyph id exceeds maximum glyph id")
	ErrFeatureIndex     = errors.New("feature index out of range")
	ErrUnsupportedTable = errors.New("unsupported table format")
)
