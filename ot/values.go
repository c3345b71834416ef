package ot

import "math"

// Scalar wire types which implement the codec contract, so they can be used as
// elements of Counted and the sequence helpers.

// Uint16 is a 16-bit unsigned wire value.
type Uint16 uint16

func (v Uint16) Encode(w *Writer) error {
	w.U16(uint16(v))
	return nil
}

func (v *Uint16) Decode(c *Cursor) error {
	x, err := c.U16()
	*v = Uint16(x)
	return err
}

// Uint32 is a 32-bit unsigned wire value.
type Uint32 uint32

func (v Uint32) Encode(w *Writer) error {
	w.U32(uint32(v))
	return nil
}

func (v *Uint32) Decode(c *Cursor) error {
	x, err := c.U32()
	*v = Uint32(x)
	return err
}

func (t Tag) Encode(w *Writer) error {
	w.WriteTag(t)
	return nil
}

func (t *Tag) Decode(c *Cursor) error {
	x, err := c.ReadTag()
	*t = x
	return err
}

func (g GlyphID) Encode(w *Writer) error {
	w.U16(uint16(g))
	return nil
}

func (g *GlyphID) Decode(c *Cursor) error {
	x, err := c.U16()
	*g = GlyphID(x)
	return err
}

// F2Dot14 is a signed fixed-point number with 2 integer and 14 fractional bits.
type F2Dot14 int16

// F2Dot14From converts a float, clamping it to the representable range [-2, 2).
func F2Dot14From(f float64) F2Dot14 {
	v := math.Round(f * 16384)
	if v > math.MaxInt16 {
		v = math.MaxInt16
	} else if v < math.MinInt16 {
		v = math.MinInt16
	}
	return F2Dot14(v)
}

// Float returns the value of f as a float.
func (f F2Dot14) Float() float64 {
	return float64(f) / 16384
}

func (f F2Dot14) Encode(w *Writer) error {
	w.I16(int16(f))
	return nil
}

func (f *F2Dot14) Decode(c *Cursor) error {
	x, err := c.I16()
	*f = F2Dot14(x)
	return err
}

// Version16Dot16 is a table version number with major and minor part in one
// 32-bit value, e.g. 0x00005000 for version 0.5 of table 'maxp'.
type Version16Dot16 uint32

func (v Version16Dot16) Encode(w *Writer) error {
	w.U32(uint32(v))
	return nil
}

func (v *Version16Dot16) Decode(c *Cursor) error {
	x, err := c.U32()
	*v = Version16Dot16(x)
	return err
}

// Blob is an uninterpreted sequence of bytes. It decodes from all remaining bytes
// of the cursor and is copied verbatim on encoding.
type Blob []byte

func (b Blob) Encode(w *Writer) error {
	w.Write(b)
	return nil
}

func (b *Blob) Decode(c *Cursor) error {
	raw, err := c.Consume(c.Remaining())
	if err != nil {
		return err
	}
	*b = append(Blob(nil), raw...)
	return nil
}
