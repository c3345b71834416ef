/*
Package otcodec reads, modifies and writes OpenType font files.

A Font is a container of tables, addressed by their 4-byte tags. Tables are
kept as raw bytes; packages ottables and otlayout decode them on demand into
typed structures, and typed tables may be encoded and inserted back into the
font. Tables which are never decoded are written back verbatim.

	otf, err := otcodec.Parse(data)
	...
	if !otf.HasTable(ot.T("gasp")) {
		err = otf.Insert(ottables.SmoothGasp())
	}
	data, err = otf.Bytes()

Writing a font lays out the table directory, aligns every table to a 4-byte
boundary and computes table checksums as well as the checksum adjustment of
table 'head'. Writing is deterministic: a font written by this package will be
written byte-for-byte identically after re-parsing it.

# Status

Does not contain methods for font collections (*.ttc).

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otcodec

import (
	"errors"
	"fmt"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/ottables"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// Font types, i.e. values of the sfntVersion field of the font header.
const (
	FontTypeTrueType uint32 = 0x00010000
	FontTypeCFF      uint32 = 0x4f54544f // 'OTTO'
	FontTypeApple    uint32 = 0x74727565 // 'true'
)

var (
	// ErrFontFormat is reported for data which is not a single OpenType font.
	ErrFontFormat = errors.New("not an OpenType font")
	// ErrNoTable is reported when accessing a table which a font does not contain.
	ErrNoTable = errors.New("font has no such table")
)

// Font is an OpenType font, represented as a set of tables. The zero value is
// not usable, fonts are created by Parse or New.
//
// A Font is not safe for concurrent modification.
type Font struct {
	FontType uint32 // TrueType or CFF outlines
	tables   map[ot.Tag][]byte
}

// New creates a font without any tables.
func New(fontType uint32) *Font {
	return &Font{FontType: fontType, tables: make(map[ot.Tag][]byte)}
}

// HasTable reports whether the font contains a table.
func (otf *Font) HasTable(tag ot.Tag) bool {
	_, ok := otf.tables[tag]
	return ok
}

// Table returns the raw bytes of a table, or nil if the font does not contain
// a table with this tag. Clients must not modify the bytes.
//
// Table tag names are case-sensitive, following the names in the OpenType
// specification, e.g. 'OS/2', 'cmap' or 'GSUB'.
func (otf *Font) Table(tag ot.Tag) []byte {
	return otf.tables[tag]
}

// TableTags returns the tags of all tables of the font, in ascending order.
func (otf *Font) TableTags() []ot.Tag {
	return ot.SortedTags(otf.tables)
}

// InsertRaw inserts a table as uninterpreted bytes. An existing table with the
// same tag is replaced.
func (otf *Font) InsertRaw(tag ot.Tag, data []byte) {
	if !tag.Valid() {
		panic(fmt.Sprintf("otcodec: invalid table tag %q", tag.Bytes()))
	}
	tracer().Debugf("insert table %s with %d bytes", tag, len(data))
	otf.tables[tag] = append([]byte(nil), data...)
}

// Insert encodes a table and inserts it into the font. An existing table with
// the same tag is replaced.
func (otf *Font) Insert(t ottables.Table) error {
	data, err := ot.Marshal(t)
	if err != nil {
		return ot.WithTable(err, t.Tag())
	}
	otf.InsertRaw(t.Tag(), data)
	return nil
}

// Remove deletes a table from the font. Removing a table which does not exist is
// a no-op.
func (otf *Font) Remove(tag ot.Tag) {
	delete(otf.tables, tag)
}

// TableCodec is a table type of package ottables, constrained to its pointer
// type.
type TableCodec[T any] interface {
	*T
	ottables.Table
	ot.Decoder
}

// Decode decodes a table of the font into its typed representation:
//
//	name, err := otcodec.Decode[ottables.NameTable](otf)
//
// If the font does not contain the table, ErrNoTable is returned.
func Decode[T any, P TableCodec[T]](otf *Font) (*T, error) {
	t := new(T)
	tag := P(t).Tag()
	data, ok := otf.tables[tag]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", tag, ErrNoTable)
	}
	if err := P(t).Decode(ot.NewCursor(data)); err != nil {
		return nil, ot.WithTable(err, tag)
	}
	return t, nil
}
