/*
Package ottables holds codecs for individual OpenType tables outside of the
layout tables: 'name', 'gasp', 'prep', 'maxp' and 'avar'.

Every table type implements the codec contract of package ot and may be
inserted into a font with otcodec.Font.Insert.

The 'name' table stores strings in a platform specific text encoding. Encodings
are selected by EncodingFor from the platform id and encoding id of a name
record. Text which cannot be represented in an encoding is substituted on
encoding, invalid bytes are substituted on decoding.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ottables

import (
	"errors"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// Table is a decoded font table which knows its table tag.
type Table interface {
	ot.Encoder
	Tag() ot.Tag
}

// ErrUnsupportedVersion is reported for table versions or formats which this
// package cannot decode.
var ErrUnsupportedVersion = errors.New("unsupported table version")

// PlatformID identifies the platform of a name record or cmap sub-table.
type PlatformID uint16

const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1
	PlatformISO       PlatformID = 2 // deprecated
	PlatformWindows   PlatformID = 3
)

func (p PlatformID) String() string {
	switch p {
	case PlatformUnicode:
		return "Unicode"
	case PlatformMacintosh:
		return "Macintosh"
	case PlatformISO:
		return "ISO"
	case PlatformWindows:
		return "Windows"
	}
	return "Custom"
}

// EncodingID is a platform specific encoding identifier.
type EncodingID uint16

const (
	EncodingMacRoman      EncodingID = 0 // platform 1
	EncodingMacCyrillic   EncodingID = 7 // platform 1
	EncodingWindowsSymbol EncodingID = 0 // platform 3
	EncodingWindowsBMP    EncodingID = 1 // platform 3
	EncodingWindowsFull   EncodingID = 10
)

// LanguageEnglishUS is the Windows language id for English (United States).
const LanguageEnglishUS uint16 = 0x0409
