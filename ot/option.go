package ot

// Option represents an optional value. Absence of a value is always explicit,
// never encoded as a magic value of T.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option with a value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option contains a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value and a boolean indicating presence,
// in the common Go "(value, ok)" manner.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// Or returns the contained value or a default.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// FromSentinel maps a wire value to an Option, where sentinel denotes absence.
//
//	FromSentinel(0xFFFF, 0xFFFF) == None[uint16]()
func FromSentinel[T comparable](v, sentinel T) Option[T] {
	if v == sentinel {
		return None[T]()
	}
	return Some(v)
}

// ToSentinel is the inverse of FromSentinel.
func ToSentinel[T comparable](o Option[T], sentinel T) T {
	return o.Or(sentinel)
}
