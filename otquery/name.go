package otquery

import (
	"iter"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/ottables"
	"golang.org/x/image/font/sfnt"
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table, in record order.
//
// Empty strings are skipped. If the name table is missing or cannot be
// decoded, nothing is yielded.
func NamesRange(src TableSource) iter.Seq2[sfnt.NameID, string] {
	names, ok := decode[ottables.NameTable](src, ot.T("name"))
	return func(yield func(sfnt.NameID, string) bool) {
		if !ok {
			return
		}
		for _, rec := range names.Records {
			if rec.String == "" {
				continue
			}
			if !yield(rec.NameID, rec.String) {
				return
			}
		}
	}
}

var nameInfoKeys = map[sfnt.NameID]string{
	sfnt.NameIDCopyright:            "copyright",
	sfnt.NameIDFamily:               "family",
	sfnt.NameIDSubfamily:            "subfamily",
	sfnt.NameIDUniqueIdentifier:     "unique-id",
	sfnt.NameIDFull:                 "fullname",
	sfnt.NameIDVersion:              "version",
	sfnt.NameIDPostScript:           "postscript",
	sfnt.NameIDManufacturer:         "manufacturer",
	sfnt.NameIDDesigner:             "designer",
	sfnt.NameIDLicense:              "license",
	sfnt.NameIDTypographicFamily:    "typographic-family",
	sfnt.NameIDTypographicSubfamily: "typographic-subfamily",
}

// NameInfo returns the well-known names of a font, keyed by "family",
// "subfamily", "fullname", "version" etc. Windows names in English are preferred
// over names of other platforms.
func NameInfo(src TableSource) map[string]string {
	names, ok := decode[ottables.NameTable](src, ot.T("name"))
	if !ok {
		return nil
	}
	info := make(map[string]string)
	for id, key := range nameInfoKeys {
		if s, ok := names.Lookup(id); ok && s != "" {
			info[key] = s
		}
	}
	return info
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(src TableSource) (family, subfamily string) {
	info := NameInfo(src)
	return info["family"], info["subfamily"]
}
