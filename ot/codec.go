package ot

import (
	"fmt"
	"math"
)

// Encoder is implemented by every table type which can be written.
// Fields are written strictly in wire order.
type Encoder interface {
	Encode(w *Writer) error
}

// Decoder is implemented by pointers to table types which can be read.
// Fields are read strictly in wire order.
type Decoder interface {
	Decode(c *Cursor) error
}

// Decodable constrains a type parameter P to be a pointer to T implementing Decoder.
// It allows generic functions to create and decode values of type T.
type Decodable[T any] interface {
	*T
	Decoder
}

// Encodable constrains a type parameter P to be a pointer to T implementing Encoder.
type Encodable[T any] interface {
	*T
	Encoder
}

// Codable constrains a type parameter P to be a pointer to T implementing the
// complete codec contract.
type Codable[T any] interface {
	*T
	Decoder
	Encoder
}

// Marshal encodes v as the root of a new Graph and resolves the graph into one
// byte stream.
func Marshal(v Encoder, opts ...ResolveOption) ([]byte, error) {
	g := NewGraph()
	root, err := g.Build(v)
	if err != nil {
		return nil, err
	}
	return g.Resolve(root, opts...)
}

// Unmarshal decodes a value of type T from data, which holds T's table at
// position 0.
//
//	list, err := Unmarshal[ScriptListTable](data)
func Unmarshal[T any, P Decodable[T]](data []byte) (T, error) {
	var v T
	c := NewCursor(data)
	err := P(&v).Decode(c)
	return v, err
}

// Decode decodes a value of type T at the cursor's position.
func Decode[T any, P Decodable[T]](c *Cursor) (T, error) {
	var v T
	err := P(&v).Decode(c)
	return v, err
}

// FollowLink decodes a child table of type T linked by offset off, relative to
// the current table origin. A null offset yields nil. The read position of c is
// left right behind the offset field.
func FollowLink[T any, P Decodable[T]](c *Cursor, off uint32) (*T, error) {
	if off == 0 {
		return nil, nil
	}
	v := new(T)
	if err := c.Follow(off, P(v).Decode); err != nil {
		return nil, err
	}
	return v, nil
}

// --- Sequences -------------------------------------------------------------

// ReadN decodes n consecutive values of type T. An empty sequence is returned as nil.
func ReadN[T any, P Decodable[T]](c *Cursor, n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, codecError(ErrUnexpectedEOF, "sequence", c.Pos(), "negative element count %d", n)
	}
	out := make([]T, n)
	for i := range out {
		if err := P(&out[i]).Decode(c); err != nil {
			return nil, fmt.Errorf("element %d of %d: %w", i, n, err)
		}
	}
	return out, nil
}

// ReadCounted decodes a sequence preceded by a 16-bit element count.
func ReadCounted[T any, P Decodable[T]](c *Cursor) ([]T, error) {
	n, err := c.U16()
	if err != nil {
		return nil, err
	}
	return ReadN[T, P](c, int(n))
}

// ReadCounted32 decodes a sequence preceded by a 32-bit element count.
func ReadCounted32[T any, P Decodable[T]](c *Cursor) ([]T, error) {
	n, err := c.U32()
	if err != nil {
		return nil, err
	}
	if int(n) < 0 || int(n) > c.Remaining() {
		// every element occupies at least one byte
		return nil, codecError(ErrUnexpectedEOF, "sequence", c.Pos(), "count %d exceeds remaining %d bytes", n, c.Remaining())
	}
	return ReadN[T, P](c, int(n))
}

// ReadUnbounded decodes values of type T until the buffer is exhausted or an
// element fails to decode. The bytes of a failing element remain unconsumed.
func ReadUnbounded[T any, P Decodable[T]](c *Cursor) []T {
	var out []T
	for c.Remaining() > 0 {
		start := c.Pos()
		var v T
		if err := P(&v).Decode(c); err != nil {
			tracer().Debugf("unbounded sequence ends at %d after %d elements: %v", start, len(out), err)
			c.pos = start
			break
		}
		out = append(out, v)
	}
	return out
}

// WriteAll encodes all items, without a count prefix.
func WriteAll[T any, P Encodable[T]](w *Writer, items []T) error {
	for i := range items {
		if err := P(&items[i]).Encode(w); err != nil {
			return fmt.Errorf("element %d of %d: %w", i, len(items), err)
		}
	}
	return nil
}

// WriteCounted encodes items preceded by a 16-bit element count.
func WriteCounted[T any, P Encodable[T]](w *Writer, items []T) error {
	if len(items) > math.MaxUint16 {
		return codecError(ErrWidthOverflow, "sequence", w.Len(), "%d elements do not fit a 16-bit count", len(items))
	}
	w.U16(uint16(len(items)))
	return WriteAll[T, P](w, items)
}

// WriteCounted32 encodes items preceded by a 32-bit element count.
func WriteCounted32[T any, P Encodable[T]](w *Writer, items []T) error {
	if int64(len(items)) > math.MaxUint32 {
		return codecError(ErrWidthOverflow, "sequence", w.Len(), "%d elements do not fit a 32-bit count", len(items))
	}
	w.U32(uint32(len(items)))
	return WriteAll[T, P](w, items)
}

// Counted is a sequence of T which is preceded on the wire by a 16-bit count.
// The count is derived from the length of the slice.
//
// Counted itself satisfies the codec contract, therefore sequences nest:
//
//	type SegmentMap struct{ Maps Counted[AxisValueMap, *AxisValueMap] }
type Counted[T any, P Codable[T]] []T

// Encode writes the count followed by all elements.
func (s Counted[T, P]) Encode(w *Writer) error {
	return WriteCounted[T, P](w, s)
}

// Decode reads the count followed by all elements.
func (s *Counted[T, P]) Decode(c *Cursor) error {
	items, err := ReadCounted[T, P](c)
	*s = items
	return err
}

// Counted32 is like Counted, with a 32-bit count.
type Counted32[T any, P Codable[T]] []T

// Encode writes the count followed by all elements.
func (s Counted32[T, P]) Encode(w *Writer) error {
	return WriteCounted32[T, P](w, s)
}

// Decode reads the count followed by all elements.
func (s *Counted32[T, P]) Decode(c *Cursor) error {
	items, err := ReadCounted32[T, P](c)
	*s = items
	return err
}
