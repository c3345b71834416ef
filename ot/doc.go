/*
Package ot is the binary codec engine for OpenType font tables.

OpenType tables do not contain pointers. A table references its sub-tables by
offsets, and an offset is a byte distance relative to the start of the table
which contains the offset field. Tables nest arbitrarily deep (a LangSys table
inside a Script table inside a ScriptList), therefore reading and writing have to
keep track of the innermost enclosing table.

Package ot provides the building blocks for this:

▪︎ Cursor is a read position over a font binary, with a stack of table origins.
Offsets are followed relative to the current table origin.

▪︎ Writer is an append-only output buffer for a single table node. Offset fields
are written as placeholders and back-patched later.

▪︎ Graph is an arena of table nodes, addressed by NodeID. Resolving a graph
lays out all nodes reachable from a root into one byte stream and computes
every offset field. Optionally, identical sub-tables are shared.

▪︎ Encoder and Decoder form the codec contract. Counted and the generic
helpers ReadCounted, ReadN and ReadUnbounded handle sequences.

All operations are synchronous transformations over in-memory buffers. A Cursor,
Writer or Graph belongs to exactly one parse or serialize call.

# Errors

Malformed input is reported as an error wrapping one of the sentinels
ErrUnexpectedEOF, ErrOffsetOutOfRange, ErrUnsupportedEncoding, ErrWidthOverflow or
ErrCyclicGraph. Misuse of the API by the caller (leaving a table scope which has
not been entered, linking to a node which does not exist) panics.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("ot: "+format, args...))
	}
}
