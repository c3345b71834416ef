package ot

import (
	"errors"
	"fmt"
)

// Error categories for malformed input and unrepresentable output. Errors returned
// by this module wrap one of these, test with errors.Is.
var (
	ErrUnexpectedEOF       = errors.New("unexpected end of data")
	ErrOffsetOutOfRange    = errors.New("offset out of range")
	ErrUnsupportedEncoding = errors.New("unsupported platform encoding")
	ErrWidthOverflow       = errors.New("offset exceeds field width")
	ErrCyclicGraph         = errors.New("cyclic table graph")
)

// ErrorSeverity represents the severity level of a codec error.
type ErrorSeverity int

const (
	// SeverityCritical indicates the table cannot be decoded or encoded at all.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates part of a table is unusable.
	SeverityMajor
	// SeverityMinor indicates an issue clients may safely ignore.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// CodecError describes where decoding or encoding of a table failed.
// Err holds one of the sentinel errors of this package.
type CodecError struct {
	Table    Tag           // table being processed, 0 if unknown
	Section  string        // part of the table, e.g. "LangSys" or "cursor"
	Issue    string        // human-readable description
	Severity ErrorSeverity //
	Offset   int           // byte position in the buffer, -1 if unknown
	Err      error         // error category
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	where := e.Section
	if e.Table != 0 {
		where = e.Table.String() + "/" + e.Section
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("[%s] %s at offset %d: %s: %v", e.Severity, where, e.Offset, e.Issue, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s: %v", e.Severity, where, e.Issue, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func codecError(err error, section string, offset int, format string, args ...any) *CodecError {
	return &CodecError{
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: SeverityCritical,
		Offset:   offset,
		Err:      err,
	}
}

// Errorf creates a CodecError for a table section. It is intended for table
// codecs outside of this package.
func Errorf(err error, section string, format string, args ...any) error {
	return codecError(err, section, -1, format, args...)
}

// WithTable annotates err with the table it occurred in, if err is (or wraps) a
// CodecError without table information. Other errors are returned unchanged.
func WithTable(err error, table Tag) error {
	var cerr *CodecError
	if errors.As(err, &cerr) && cerr.Table == 0 {
		cerr.Table = table
	}
	return err
}
