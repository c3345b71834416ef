package otcodec

import (
	"fmt"
	"math/bits"

	"github.com/npillmayer/otcodec/ot"
)

// The font header ("offset table") is 12 bytes and is followed by 16-byte table
// records, sorted in ascending order by tag.
//
//	uint32       sfntVersion
//	uint16       numTables
//	uint16       searchRange
//	uint16       entrySelector
//	uint16       rangeShift
//	TableRecord  tableRecords[numTables]
const (
	headerSize      = 12
	tableRecordSize = 16
)

// head.checkSumAdjustment is located at byte 8 of table 'head'.
const checkSumAdjustmentPos = 8

// checkSumMagic minus the checksum of the complete font is stored in
// head.checkSumAdjustment.
const checkSumMagic = 0xB1B0AFBA

// tableRecord is an entry of the table directory. Offset is relative to the
// beginning of the font file.
type tableRecord struct {
	tag            ot.Tag
	checksum       uint32
	offset, length uint32
}

func (r *tableRecord) Decode(c *ot.Cursor) (err error) {
	if r.tag, err = c.ReadTag(); err != nil {
		return err
	}
	if r.checksum, err = c.U32(); err != nil {
		return err
	}
	if r.offset, err = c.U32(); err != nil {
		return err
	}
	r.length, err = c.U32()
	return err
}

// Parse reads an OpenType font from memory. The tables are copied, so data may
// be modified afterwards.
//
// Table checksums are not enforced; a mismatch is reported to the trace only.
func Parse(data []byte) (*Font, error) {
	c := ot.NewCursor(data)
	fontType, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontFormat, err)
	}
	if fontType != FontTypeTrueType && fontType != FontTypeCFF && fontType != FontTypeApple {
		return nil, fmt.Errorf("%w: font type not supported: %x", ErrFontFormat, fontType)
	}
	numTables, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontFormat, err)
	}
	if err = c.Skip(6); err != nil { // binary search parameters are recomputed on output
		return nil, fmt.Errorf("%w: %w", ErrFontFormat, err)
	}
	records, err := ot.ReadN[tableRecord](c, int(numTables))
	if err != nil {
		return nil, fmt.Errorf("%w: table records: %w", ErrFontFormat, err)
	}
	tracer().Debugf("font type = %x, %d tables", fontType, numTables)
	otf := New(fontType)
	prev := ot.Tag(0)
	for _, rec := range records {
		if rec.tag <= prev {
			return nil, fmt.Errorf("%w: table %s out of order", ErrFontFormat, rec.tag)
		}
		prev = rec.tag
		if rec.offset&3 != 0 {
			// "all tables must begin on four byte boundaries"
			tracer().Infof("table %s at unaligned offset %d", rec.tag, rec.offset)
		}
		var table []byte
		err := c.Follow(rec.offset, func(c *ot.Cursor) error {
			b, err := c.Consume(int(rec.length))
			table = b
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", rec.tag, ot.WithTable(err, rec.tag))
		}
		if sum := tableChecksum(rec.tag, table); sum != rec.checksum {
			tracer().Infof("table %s: checksum is %08x, expected %08x", rec.tag, rec.checksum, sum)
		}
		otf.tables[rec.tag] = append([]byte(nil), table...)
	}
	return otf, nil
}

// Bytes serializes the font. Tables are written in ascending tag order,
// directly following the table directory, and are padded to a multiple of
// 4 bytes.
func (otf *Font) Bytes() ([]byte, error) {
	tags := otf.TableTags()
	if len(tags) > 0xFFFF {
		return nil, fmt.Errorf("%d tables: %w", len(tags), ot.ErrWidthOverflow)
	}
	g := ot.NewGraph()
	dir := g.NewWriter()
	dir.U32(otf.FontType)
	n := uint16(len(tags))
	dir.U16(n)
	searchRange, entrySelector, rangeShift := binarySearchParams(n, tableRecordSize)
	dir.U16s([]uint16{searchRange, entrySelector, rangeShift})
	for _, tag := range tags {
		table := otf.tables[tag]
		if tag == ot.T("head") && len(table) >= checkSumAdjustmentPos+4 {
			table = append([]byte(nil), table...)
			clear(table[checkSumAdjustmentPos : checkSumAdjustmentPos+4])
		}
		dir.WriteTag(tag)
		dir.U32(tableChecksum(tag, table))
		if err := dir.Offset32(paddedTable(table)); err != nil {
			return nil, err
		}
		dir.U32(uint32(len(table)))
	}
	data, err := g.Resolve(g.Add(dir))
	if err != nil {
		return nil, err
	}
	if err := adjustChecksum(data); err != nil {
		return nil, err
	}
	tracer().Debugf("serialized font with %d tables into %d bytes", n, len(data))
	return data, nil
}

// paddedTable is the data of a table in a font file, zero-padded to a 4-byte
// boundary.
type paddedTable []byte

func (t paddedTable) Encode(w *ot.Writer) error {
	w.Write(t)
	for pad := len(t) % 4; pad > 0 && pad < 4; pad++ {
		w.U8(0)
	}
	return nil
}

// binarySearchParams computes searchRange, entrySelector and rangeShift for
// n entries of a given size.
func binarySearchParams(n uint16, size uint16) (uint16, uint16, uint16) {
	if n == 0 {
		return 0, 0, 0
	}
	entrySelector := uint16(bits.Len16(n) - 1)
	searchRange := (uint16(1) << entrySelector) * size
	return searchRange, entrySelector, n*size - searchRange
}

// checksum sums up data as big-endian uint32 values, with missing bytes at the
// end taken as 0.
func checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		data = data[4:]
	}
	for i, b := range data {
		sum += uint32(b) << (24 - 8*i)
	}
	return sum
}

// tableChecksum is the checksum of a table, where for table 'head' the
// checkSumAdjustment field counts as 0.
func tableChecksum(tag ot.Tag, table []byte) uint32 {
	sum := checksum(table)
	if tag == ot.T("head") && len(table) >= checkSumAdjustmentPos+4 {
		sum -= checksum(table[checkSumAdjustmentPos : checkSumAdjustmentPos+4])
	}
	return sum
}

// adjustChecksum sets head.checkSumAdjustment of a serialized font, where the
// field is expected to be 0.
func adjustChecksum(font []byte) error {
	c := ot.NewCursor(font)
	if err := c.Seek(4); err != nil {
		return err
	}
	n, err := c.U16()
	if err != nil {
		return err
	}
	if err = c.Seek(headerSize); err != nil {
		return err
	}
	records, err := ot.ReadN[tableRecord](c, int(n))
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.tag != ot.T("head") || rec.length < checkSumAdjustmentPos+4 {
			continue
		}
		adjustment := uint32(checkSumMagic) - checksum(font)
		pos := int(rec.offset) + checkSumAdjustmentPos
		font[pos] = byte(adjustment >> 24)
		font[pos+1] = byte(adjustment >> 16)
		font[pos+2] = byte(adjustment >> 8)
		font[pos+3] = byte(adjustment)
	}
	return nil
}
