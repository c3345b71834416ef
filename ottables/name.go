package ottables

import (
	"fmt"
	"math"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/image/font/sfnt"
)

// NameRecord is a single string of table 'name'. Fonts usually carry the same
// name id more than once, for different platforms, encodings and languages.
type NameRecord struct {
	PlatformID PlatformID
	EncodingID EncodingID
	LanguageID uint16
	NameID     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
	String     string
}

// WindowsUnicodeRecord creates a name record for platform Windows and language
// English (US). Strings with characters outside of the BMP use encoding id 10
// (full Unicode), all others encoding id 1 (BMP).
func WindowsUnicodeRecord(nameID sfnt.NameID, s string) NameRecord {
	enc := EncodingWindowsBMP
	for _, r := range s {
		if r > 0xFFFF {
			enc = EncodingWindowsFull
			break
		}
	}
	return NameRecord{
		PlatformID: PlatformWindows,
		EncodingID: enc,
		LanguageID: LanguageEnglishUS,
		NameID:     nameID,
		String:     s,
	}
}

// NameTable is OpenType table 'name', format 0 or 1.
//
//	uint16         version
//	uint16         count
//	Offset16       storageOffset
//	NameRecord     nameRecord[count]
//	uint16         langTagCount                 (format 1)
//	LangTagRecord  langTagRecord[langTagCount]  (format 1)
//
// String offsets of the records are relative to the start of the storage area,
// not to the start of the table. The storage area is written in record order
// and strings are not pooled, even if equal.
type NameTable struct {
	Format   uint16       // 1 if LangTags are present, 0 otherwise
	Records  []NameRecord //
	LangTags []string     // IETF BCP 47 language tags, referenced by language ids 0x8000+
}

var _ Table = &NameTable{}

// Tag returns 'name'.
func (t *NameTable) Tag() ot.Tag {
	return ot.T("name")
}

// Lookup returns the first string with a given name id, preferring Windows
// records in English (US).
func (t *NameTable) Lookup(id sfnt.NameID) (string, bool) {
	found := -1
	for i, r := range t.Records {
		if r.NameID != id {
			continue
		}
		if r.PlatformID == PlatformWindows && r.LanguageID == LanguageEnglishUS {
			return r.String, true
		}
		if found < 0 {
			found = i
		}
	}
	if found < 0 {
		return "", false
	}
	return t.Records[found].String, true
}

// stringRef is the length and offset part of a NameRecord or LangTagRecord.
type stringRef struct {
	length, offset uint16
}

type rawNameRecord struct {
	platform, encoding, language, nameID uint16
	stringRef
}

func (r *rawNameRecord) Encode(w *ot.Writer) error {
	w.U16s([]uint16{r.platform, r.encoding, r.language, r.nameID, r.length, r.offset})
	return nil
}

func (r *rawNameRecord) Decode(c *ot.Cursor) error {
	v, err := c.U16s(6)
	if err != nil {
		return err
	}
	r.platform, r.encoding, r.language, r.nameID = v[0], v[1], v[2], v[3]
	r.length, r.offset = v[4], v[5]
	return nil
}

func (r *stringRef) Encode(w *ot.Writer) error {
	w.U16(r.length)
	w.U16(r.offset)
	return nil
}

func (r *stringRef) Decode(c *ot.Cursor) error {
	v, err := c.U16s(2)
	if err != nil {
		return err
	}
	r.length, r.offset = v[0], v[1]
	return nil
}

// storage collects the encoded strings of a name table.
type storage []byte

func (s *storage) add(b []byte, what string) (stringRef, error) {
	if len(b) > math.MaxUint16 || len(*s) > math.MaxUint16 {
		return stringRef{}, ot.Errorf(ot.ErrWidthOverflow, "name",
			"%s: %d bytes at storage offset %d", what, len(b), len(*s))
	}
	ref := stringRef{length: uint16(len(b)), offset: uint16(len(*s))}
	*s = append(*s, b...)
	return ref, nil
}

func (t *NameTable) format() uint16 {
	if t.Format == 1 || len(t.LangTags) > 0 {
		return 1
	}
	return 0
}

// Encode writes the table. The storage area is linked as a child node of the
// table, so the storage offset is computed by the resolver.
func (t *NameTable) Encode(w *ot.Writer) error {
	var pool storage
	records := make([]rawNameRecord, len(t.Records))
	for i, rec := range t.Records {
		enc, err := EncodingFor(rec.PlatformID, rec.EncodingID)
		if err != nil {
			return fmt.Errorf("name record %d: %w", i, err)
		}
		ref, err := pool.add(enc.Encode(rec.String), fmt.Sprintf("name record %d", i))
		if err != nil {
			return err
		}
		records[i] = rawNameRecord{
			platform: uint16(rec.PlatformID),
			encoding: uint16(rec.EncodingID),
			language: rec.LanguageID,
			nameID:   uint16(rec.NameID),
			stringRef: ref,
		}
	}
	var langTags []stringRef
	for i, lt := range t.LangTags {
		ref, err := pool.add(utf16BE.Encode(lt), fmt.Sprintf("language tag %d", i))
		if err != nil {
			return err
		}
		langTags = append(langTags, ref)
	}
	format := t.format()
	w.U16(format)
	if len(records) > math.MaxUint16 {
		return ot.Errorf(ot.ErrWidthOverflow, "name", "%d name records", len(records))
	}
	w.U16(uint16(len(records)))
	if err := w.Offset16(ot.Blob(pool)); err != nil {
		return err
	}
	if err := ot.WriteAll[rawNameRecord](w, records); err != nil {
		return err
	}
	if format == 1 {
		return ot.WriteCounted[stringRef](w, langTags)
	}
	return nil
}

// Decode reads a name table of format 0 or 1. Strings of records with an
// unsupported platform/encoding combination yield ErrUnsupportedEncoding.
func (t *NameTable) Decode(c *ot.Cursor) error {
	c.EnterTable()
	defer c.LeaveTable()
	header, err := c.U16s(3)
	if err != nil {
		return err
	}
	if t.Format = header[0]; t.Format > 1 {
		return ot.Errorf(ErrUnsupportedVersion, "name", "format %d", t.Format)
	}
	records, err := ot.ReadN[rawNameRecord](c, int(header[1]))
	if err != nil {
		return err
	}
	var langTags []stringRef
	if t.Format == 1 {
		if langTags, err = ot.ReadCounted[stringRef](c); err != nil {
			return err
		}
	}
	t.Records, t.LangTags = nil, nil
	return c.Follow(uint32(header[2]), func(c *ot.Cursor) error {
		for i, raw := range records {
			rec := NameRecord{
				PlatformID: PlatformID(raw.platform),
				EncodingID: EncodingID(raw.encoding),
				LanguageID: raw.language,
				NameID:     sfnt.NameID(raw.nameID),
			}
			enc, err := EncodingFor(rec.PlatformID, rec.EncodingID)
			if err != nil {
				return fmt.Errorf("name record %d: %w", i, err)
			}
			b, err := readString(c, raw.stringRef)
			if err != nil {
				return fmt.Errorf("name record %d: %w", i, err)
			}
			rec.String = enc.Decode(b)
			t.Records = append(t.Records, rec)
		}
		for i, ref := range langTags {
			b, err := readString(c, ref)
			if err != nil {
				return fmt.Errorf("language tag %d: %w", i, err)
			}
			t.LangTags = append(t.LangTags, utf16BE.Decode(b))
		}
		tracer().Debugf("name table with %d records, %d language tags", len(t.Records), len(t.LangTags))
		return nil
	})
}

// readString reads a string of the storage area. c has to be positioned inside
// the storage area, with the storage area entered as the current table.
func readString(c *ot.Cursor, ref stringRef) ([]byte, error) {
	var b []byte
	err := c.Follow(uint32(ref.offset), func(c *ot.Cursor) (err error) {
		b, err = c.Consume(int(ref.length))
		return err
	})
	return b, err
}
