package ot

// Width is the declared byte width of an offset field. The width of every offset
// field is fixed by the table format; it is never chosen during layout.
type Width int

const (
	Width16 Width = 2
	Width32 Width = 4
)

// offsetMarker is a pending offset field within a table node's body.
type offsetMarker struct {
	pos    int    // position of the placeholder within the parent's body
	width  Width  //
	target NodeID // child node
}

// Writer is an append-only output buffer for one table node. Offsets to child
// tables are written as zeroed placeholders and recorded as markers; the Graph
// back-patches them on resolution.
//
// Writers are created by a Graph and handed back to it with Graph.Add, after which
// they must not be written to any more.
type Writer struct {
	graph   *Graph
	buf     []byte
	markers []offsetMarker
	sealed  bool
}

// NewWriter creates a Writer bound to a fresh Graph.
func NewWriter() *Writer {
	return NewGraph().NewWriter()
}

// Graph returns the arena this writer's node will belong to. Use it to build
// sub-tables which should be shared between several offset fields.
func (w *Writer) Graph() *Graph {
	return w.graph
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the bytes written so far. Offset placeholders are still zero.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) grow(n int) []byte {
	assertf(!w.sealed, "write to sealed Writer")
	l := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return w.buf[l : l+n]
}

// Write appends raw bytes.
func (w *Writer) Write(b []byte) {
	copy(w.grow(len(b)), b)
}

// U8 appends a byte.
func (w *Writer) U8(v uint8) {
	w.grow(1)[0] = v
}

// U16 appends a big-endian uint16.
func (w *Writer) U16(v uint16) {
	b := w.grow(2)
	b[0], b[1] = byte(v>>8), byte(v)
}

// I16 appends a big-endian int16.
func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

// U24 appends the lower 24 bits of v, big-endian.
func (w *Writer) U24(v uint32) {
	b := w.grow(3)
	b[0], b[1], b[2] = byte(v>>16), byte(v>>8), byte(v)
}

// U32 appends a big-endian uint32.
func (w *Writer) U32(v uint32) {
	b := w.grow(4)
	b[0], b[1], b[2], b[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}

// WriteTag appends a 4-byte tag.
func (w *Writer) WriteTag(t Tag) {
	w.U32(uint32(t))
}

// U16s appends a sequence of uint16 values.
func (w *Writer) U16s(vs []uint16) {
	for _, v := range vs {
		w.U16(v)
	}
}

// Reserve appends a zeroed placeholder of the given width and returns its position.
func (w *Writer) Reserve(width Width) int {
	pos := len(w.buf)
	w.grow(int(width))
	return pos
}

// Patch overwrites a placeholder previously created by Reserve.
func (w *Writer) Patch(pos int, width Width, v uint32) {
	assertf(pos >= 0 && pos+int(width) <= len(w.buf), "patch at %d outside of buffer", pos)
	switch width {
	case Width16:
		w.buf[pos], w.buf[pos+1] = byte(v>>8), byte(v)
	case Width32:
		w.buf[pos], w.buf[pos+1], w.buf[pos+2], w.buf[pos+3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
	default:
		panic("ot: invalid offset width")
	}
}

// Link16 writes a 16-bit offset to an existing node of the writer's graph.
// NoNode writes a null offset.
func (w *Writer) Link16(child NodeID) {
	w.link(Width16, child)
}

// Link32 writes a 32-bit offset to an existing node of the writer's graph.
// NoNode writes a null offset.
func (w *Writer) Link32(child NodeID) {
	w.link(Width32, child)
}

func (w *Writer) link(width Width, child NodeID) {
	pos := w.Reserve(width)
	if child == NoNode {
		return
	}
	w.graph.check(child)
	w.markers = append(w.markers, offsetMarker{pos: pos, width: width, target: child})
}

// Offset16 encodes child as a new node of the writer's graph and writes a
// 16-bit offset to it. A nil child writes a null offset.
func (w *Writer) Offset16(child Encoder) error {
	return w.offset(Width16, child)
}

// Offset32 is like Offset16, for 32-bit offset fields.
func (w *Writer) Offset32(child Encoder) error {
	return w.offset(Width32, child)
}

func (w *Writer) offset(width Width, child Encoder) error {
	if child == nil {
		w.link(width, NoNode)
		return nil
	}
	id, err := w.graph.Build(child)
	if err != nil {
		return err
	}
	w.link(width, id)
	return nil
}

// EncodeOffset16 writes a 16-bit offset to the table pointed to by child.
// A nil pointer writes a null offset.
func EncodeOffset16[T any, P Encodable[T]](w *Writer, child P) error {
	if child == nil {
		return w.Offset16(nil)
	}
	return w.Offset16(child)
}

// EncodeOffset32 writes a 32-bit offset to the table pointed to by child.
// A nil pointer writes a null offset.
func EncodeOffset32[T any, P Encodable[T]](w *Writer, child P) error {
	if child == nil {
		return w.Offset32(nil)
	}
	return w.Offset32(child)
}
