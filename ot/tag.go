package ot

import (
	"fmt"
	"slices"
)

// Tag is an OpenType tag: four bytes, usually printable ASCII, stored big-endian.
type Tag uint32

// GlyphID is the index of a glyph within a font.
type GlyphID uint16

// DFLT is the tag of the default script.
const DFLT = Tag(0x44464c54)

// NewTag creates a Tag from a string and checks it for validity.
//
// A valid tag consists of exactly 4 bytes in the range 0x20 to 0x7E. It must not
// start with a space, and spaces may only occur as trailing padding.
// Strings shorter than 4 bytes are padded with spaces, e.g. "cv1" is accepted
// as "cv1 ".
//
//	tag, err := NewTag("liga")
func NewTag(s string) (Tag, error) {
	if len(s) == 0 || len(s) > 4 {
		return 0, fmt.Errorf("invalid tag %q: must have 1 to 4 characters", s)
	}
	b := []byte((s + "    ")[:4])
	if err := checkTagBytes(b); err != nil {
		return 0, fmt.Errorf("invalid tag %q: %w", s, err)
	}
	return MakeTag(b), nil
}

// T returns a Tag from a literal string. It panics if s is not a valid tag and is
// meant for tags known at compile time. Use NewTag for user input.
func T(s string) Tag {
	t, err := NewTag(s)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// MakeTag creates a Tag from 4 raw bytes as found in a font binary. No validation
// is performed, as fonts in the wild may contain odd tags which we have to round-trip.
func MakeTag(b []byte) Tag {
	assertf(len(b) == 4, "MakeTag needs 4 bytes, have %d", len(b))
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// Valid reports whether t would be accepted by NewTag.
func (t Tag) Valid() bool {
	return checkTagBytes(t.Bytes()) == nil
}

// Bytes returns the 4 bytes of t in wire order.
func (t Tag) Bytes() []byte {
	return []byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
}

func (t Tag) String() string {
	return string(t.Bytes())
}

func checkTagBytes(b []byte) error {
	if b[0] == ' ' {
		return fmt.Errorf("leading space")
	}
	padding := false
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Errorf("byte 0x%02x out of range", c)
		}
		if c == ' ' {
			padding = true
		} else if padding {
			return fmt.Errorf("space inside tag")
		}
	}
	return nil
}

// SortedTags returns the keys of a tag-keyed map in ascending order, which is the
// order OpenType requires for binary-searchable tag records.
func SortedTags[V any](m map[Tag]V) []Tag {
	tags := make([]Tag, 0, len(m))
	for t := range m {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}
