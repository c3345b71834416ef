package ot

// Cursor is a read position within a font binary. It keeps a stack of table
// origins: offsets found in a table are relative to the start of that table, and
// FollowOffset resolves them against the innermost origin.
//
// A Cursor is created for one decode call and must not be shared.
type Cursor struct {
	data    []byte
	pos     int
	origins []int
}

// NewCursor creates a Cursor positioned at the start of data. The base table
// origin is 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, origins: make([]int, 0, 8)}
}

// Pos returns the current read position, counted from the start of the buffer.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes between the read position and the end
// of the buffer.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Seek moves the read position to an absolute position. Position len(data) is
// valid, but nothing may be read from there.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return codecError(ErrOffsetOutOfRange, "cursor", c.pos, "seek to %d, buffer size is %d", pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// Consume returns the next n bytes and advances the read position.
// The returned slice aliases the underlying buffer.
func (c *Cursor) Consume(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err == nil {
		c.pos += n
	}
	return b, err
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, codecError(ErrUnexpectedEOF, "cursor", c.pos, "need %d bytes, have %d", n, c.Remaining())
	}
	return c.data[c.pos : c.pos+n], nil
}

// Skip advances the read position by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.Consume(n)
	return err
}

// EnterTable pushes the current position as the origin of a new table.
func (c *Cursor) EnterTable() {
	c.origins = append(c.origins, c.pos)
}

// LeaveTable pops the innermost table origin. Calling it without a matching
// EnterTable is a programming error and panics.
func (c *Cursor) LeaveTable() {
	assertf(len(c.origins) > 0, "LeaveTable without matching EnterTable")
	c.origins = c.origins[:len(c.origins)-1]
}

// TableOrigin returns the start position of the innermost table.
func (c *Cursor) TableOrigin() int {
	if len(c.origins) == 0 {
		return 0
	}
	return c.origins[len(c.origins)-1]
}

// Depth returns the number of entered tables.
func (c *Cursor) Depth() int {
	return len(c.origins)
}

// FollowOffset moves the read position to TableOrigin()+off. A destination
// beyond the end of the buffer is reported as ErrOffsetOutOfRange.
func (c *Cursor) FollowOffset(off uint32) error {
	dest := c.TableOrigin() + int(off)
	if int(off) < 0 || dest > len(c.data) {
		return codecError(ErrOffsetOutOfRange, "cursor", c.pos,
			"offset %d from table at %d leads to %d, buffer size is %d", off, c.TableOrigin(), dest, len(c.data))
	}
	c.pos = dest
	return nil
}

// Follow decodes a child table linked by offset off. It follows the offset,
// enters the child as a new table, calls decode and restores both the table
// scope and the read position afterwards, so the caller continues reading the
// parent right after the offset field.
func (c *Cursor) Follow(off uint32, decode func(*Cursor) error) error {
	saved := c.pos
	if err := c.FollowOffset(off); err != nil {
		return err
	}
	c.EnterTable()
	err := decode(c)
	c.LeaveTable()
	c.pos = saved
	return err
}

// --- Primitive reads -------------------------------------------------------

// U8 reads an unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.Consume(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a big-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.Consume(2)
	if err != nil {
		return 0, err
	}
	return u16(b), nil
}

// I16 reads a big-endian int16.
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// U24 reads a big-endian 24-bit unsigned integer.
func (c *Cursor) U24() (uint32, error) {
	b, err := c.Consume(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.Consume(4)
	if err != nil {
		return 0, err
	}
	return u32(b), nil
}

// ReadTag reads a 4-byte tag. No validation is performed.
func (c *Cursor) ReadTag() (Tag, error) {
	v, err := c.U32()
	return Tag(v), err
}

// U16s reads n big-endian uint16 values.
func (c *Cursor) U16s(n int) ([]uint16, error) {
	b, err := c.Consume(2 * n)
	if err != nil || n == 0 {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = u16(b[2*i:])
	}
	return out, nil
}

func u16(b []byte) uint16 {
	_ = b[1] // bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
