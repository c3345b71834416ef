package otlayout

import (
	"fmt"
	"slices"

	"github.com/npillmayer/otcodec/ot"
)

// --- Coverage --------------------------------------------------------------

// CoverageTable is the binary form of a Coverage table, format 1 (glyph list)
// or format 2 (glyph ranges).
type CoverageTable struct {
	Format uint16
	Glyphs []ot.GlyphID   // format 1
	Ranges []CoverageRange // format 2
}

// CoverageRange is a RangeRecord of a format 2 Coverage table.
type CoverageRange struct {
	Start, End         ot.GlyphID
	StartCoverageIndex uint16
}

func (r CoverageRange) Encode(w *ot.Writer) error {
	w.U16(uint16(r.Start))
	w.U16(uint16(r.End))
	w.U16(r.StartCoverageIndex)
	return nil
}

func (r *CoverageRange) Decode(c *ot.Cursor) error {
	v, err := c.U16s(3)
	if err != nil {
		return err
	}
	r.Start, r.End, r.StartCoverageIndex = ot.GlyphID(v[0]), ot.GlyphID(v[1]), v[2]
	return nil
}

func (t *CoverageTable) Encode(w *ot.Writer) error {
	w.U16(t.Format)
	switch t.Format {
	case 1:
		return ot.WriteCounted[ot.GlyphID](w, t.Glyphs)
	case 2:
		return ot.WriteCounted[CoverageRange](w, t.Ranges)
	}
	return ot.Errorf(ErrUnsupportedTable, "Coverage", "format %d", t.Format)
}

func (t *CoverageTable) Decode(c *ot.Cursor) (err error) {
	if t.Format, err = c.U16(); err != nil {
		return err
	}
	switch t.Format {
	case 1:
		t.Glyphs, err = ot.ReadCounted[ot.GlyphID](c)
	case 2:
		t.Ranges, err = ot.ReadCounted[CoverageRange](c)
	default:
		err = ot.Errorf(ErrUnsupportedTable, "Coverage", "format %d", t.Format)
	}
	return err
}

// Coverage is the semantic form of a Coverage table: the covered glyphs in
// coverage index order.
type Coverage []ot.GlyphID

// Index returns the coverage index of glyph g.
func (cv Coverage) Index(g ot.GlyphID) (int, bool) {
	i := slices.Index(cv, g)
	return i, i >= 0
}

// CoverageFromLowLevel expands a Coverage table. Glyphs beyond maxGlyphID
// are reported as ErrGlyphOutOfRange, as dropping them would shift coverage
// indices.
func CoverageFromLowLevel(t *CoverageTable, maxGlyphID ot.GlyphID) (Coverage, error) {
	var cv Coverage
	switch t.Format {
	case 1:
		cv = append(cv, t.Glyphs...)
	case 2:
		for _, r := range t.Ranges {
			if r.End < r.Start {
				return nil, fmt.Errorf("coverage range %d–%d: %w", r.Start, r.End, ErrUnsupportedTable)
			}
			if int(r.StartCoverageIndex) != len(cv) {
				tracer().Infof("coverage range %d–%d starts at index %d, expected %d",
					r.Start, r.End, r.StartCoverageIndex, len(cv))
			}
			for g := int(r.Start); g <= int(r.End); g++ {
				cv = append(cv, ot.GlyphID(g))
			}
		}
	default:
		return nil, ot.Errorf(ErrUnsupportedTable, "Coverage", "format %d", t.Format)
	}
	for _, g := range cv {
		if g > maxGlyphID {
			return nil, fmt.Errorf("coverage glyph %d > %d: %w", g, maxGlyphID, ErrGlyphOutOfRange)
		}
	}
	return cv, nil
}

// ToLowLevel selects the smaller of the two Coverage formats. Format 2 is only
// possible for glyphs in ascending order.
func (cv Coverage) ToLowLevel(maxGlyphID ot.GlyphID) (*CoverageTable, error) {
	for _, g := range cv {
		if g > maxGlyphID {
			return nil, fmt.Errorf("coverage glyph %d > %d: %w", g, maxGlyphID, ErrGlyphOutOfRange)
		}
	}
	if !slices.IsSorted(cv) {
		return &CoverageTable{Format: 1, Glyphs: slices.Clone(cv)}, nil
	}
	var ranges []CoverageRange
	for i, g := range cv {
		if n := len(ranges); n > 0 && ranges[n-1].End+1 == g {
			ranges[n-1].End = g
			continue
		}
		ranges = append(ranges, CoverageRange{Start: g, End: g, StartCoverageIndex: uint16(i)})
	}
	if 6*len(ranges) < 2*len(cv) {
		return &CoverageTable{Format: 2, Ranges: ranges}, nil
	}
	return &CoverageTable{Format: 1, Glyphs: slices.Clone(cv)}, nil
}

// --- Class definitions -----------------------------------------------------

// ClassDefTable is the binary form of a ClassDef table, format 1 (class array
// for a consecutive glyph run) or format 2 (class ranges).
type ClassDefTable struct {
	Format     uint16
	StartGlyph ot.GlyphID      // format 1
	Classes    []uint16        // format 1
	Ranges     []ClassDefRange // format 2
}

// ClassDefRange is a ClassRangeRecord of a format 2 ClassDef table.
type ClassDefRange struct {
	Start, End ot.GlyphID
	Class      uint16
}

func (r ClassDefRange) Encode(w *ot.Writer) error {
	w.U16(uint16(r.Start))
	w.U16(uint16(r.End))
	w.U16(r.Class)
	return nil
}

func (r *ClassDefRange) Decode(c *ot.Cursor) error {
	v, err := c.U16s(3)
	if err != nil {
		return err
	}
	r.Start, r.End, r.Class = ot.GlyphID(v[0]), ot.GlyphID(v[1]), v[2]
	return nil
}

func (t *ClassDefTable) Encode(w *ot.Writer) error {
	w.U16(t.Format)
	switch t.Format {
	case 1:
		w.U16(uint16(t.StartGlyph))
		w.U16(uint16(len(t.Classes)))
		w.U16s(t.Classes)
		return nil
	case 2:
		return ot.WriteCounted[ClassDefRange](w, t.Ranges)
	}
	return ot.Errorf(ErrUnsupportedTable, "ClassDef", "format %d", t.Format)
}

func (t *ClassDefTable) Decode(c *ot.Cursor) (err error) {
	if t.Format, err = c.U16(); err != nil {
		return err
	}
	switch t.Format {
	case 1:
		var start, n uint16
		if start, err = c.U16(); err != nil {
			return err
		}
		if n, err = c.U16(); err != nil {
			return err
		}
		t.StartGlyph = ot.GlyphID(start)
		t.Classes, err = c.U16s(int(n))
	case 2:
		t.Ranges, err = ot.ReadCounted[ClassDefRange](c)
	default:
		err = ot.Errorf(ErrUnsupportedTable, "ClassDef", "format %d", t.Format)
	}
	return err
}

// ClassDef is the semantic form of a ClassDef table: a mapping from glyph to
// class. Class 0 is never stored; every glyph up to the font's maximum glyph id
// which is not mapped belongs to class 0.
type ClassDef map[ot.GlyphID]uint16

// Class returns the class of glyph g.
func (cd ClassDef) Class(g ot.GlyphID) uint16 {
	return cd[g]
}

// GlyphsInClass returns the glyphs of a class in ascending order. For class 0
// these are all glyphs from 0 to maxGlyphID which are not assigned to another
// class.
func (cd ClassDef) GlyphsInClass(class uint16, maxGlyphID ot.GlyphID) []ot.GlyphID {
	var glyphs []ot.GlyphID
	if class == 0 {
		for g := 0; g <= int(maxGlyphID); g++ {
			if _, ok := cd[ot.GlyphID(g)]; !ok {
				glyphs = append(glyphs, ot.GlyphID(g))
			}
		}
		return glyphs
	}
	for g, c := range cd {
		if c == class && g <= maxGlyphID {
			glyphs = append(glyphs, g)
		}
	}
	slices.Sort(glyphs)
	return glyphs
}

// ClassDefFromLowLevel expands a ClassDef table. Explicit class-0 entries are
// implicit in the semantic form and dropped, as are glyphs beyond maxGlyphID,
// which cannot occur in a glyph run of the font.
func ClassDefFromLowLevel(t *ClassDefTable, maxGlyphID ot.GlyphID) (ClassDef, error) {
	var cd ClassDef
	set := func(g int, class uint16) {
		if class == 0 || g > int(maxGlyphID) {
			return
		}
		if cd == nil {
			cd = make(ClassDef)
		}
		cd[ot.GlyphID(g)] = class
	}
	switch t.Format {
	case 1:
		for i, class := range t.Classes {
			set(int(t.StartGlyph)+i, class)
		}
	case 2:
		for _, r := range t.Ranges {
			if r.End < r.Start {
				return nil, fmt.Errorf("class range %d–%d: %w", r.Start, r.End, ErrUnsupportedTable)
			}
			for g := int(r.Start); g <= int(r.End); g++ {
				set(g, r.Class)
			}
		}
	default:
		return nil, ot.Errorf(ErrUnsupportedTable, "ClassDef", "format %d", t.Format)
	}
	return cd, nil
}

// ToLowLevel selects the smaller of the two ClassDef formats. Class-0 entries
// and glyphs beyond maxGlyphID are not written.
func (cd ClassDef) ToLowLevel(maxGlyphID ot.GlyphID) *ClassDefTable {
	glyphs := make([]ot.GlyphID, 0, len(cd))
	for g, c := range cd {
		if c != 0 && g <= maxGlyphID {
			glyphs = append(glyphs, g)
		}
	}
	if len(glyphs) == 0 {
		return &ClassDefTable{Format: 2}
	}
	slices.Sort(glyphs)
	var ranges []ClassDefRange
	for _, g := range glyphs {
		if n := len(ranges); n > 0 && ranges[n-1].End+1 == g && ranges[n-1].Class == cd[g] {
			ranges[n-1].End = g
			continue
		}
		ranges = append(ranges, ClassDefRange{Start: g, End: g, Class: cd[g]})
	}
	first, last := glyphs[0], glyphs[len(glyphs)-1]
	span := int(last-first) + 1
	if 6+2*span <= 4+6*len(ranges) {
		classes := make([]uint16, span)
		for _, g := range glyphs {
			classes[g-first] = cd[g]
		}
		return &ClassDefTable{Format: 1, StartGlyph: first, Classes: classes}
	}
	return &ClassDefTable{Format: 2, Ranges: ranges}
}
