package view

import (
	"io"
	"iter"

	"github.com/cespare/xxhash/v2"
)

// View is the capability set every value of a context tree implements.
//
// Views borrow data that is owned elsewhere; none of the methods mutate it.
type View interface {
	// IsTruthy marks whether the value counts as present when a template
	// renders a conditional section.
	IsTruthy() bool
	// RenderCapacityHint estimates how many bytes Render will write.
	RenderCapacityHint() int
	// Render writes the textual form of the value. Only errors returned by w
	// are reported, unchanged.
	Render(w io.Writer) error
	// Pointer resolves one path segment. "." and "" resolve to the receiver.
	Pointer(key string) (View, bool)
	// ContextIter yields (name, value) pairs for objects and arrays, and
	// returns nil for scalars.
	ContextIter() iter.Seq2[string, View]
	// Type classifies the value.
	Type() TypeEnum
	// Len is the number of pairs ContextIter yields for containers, the byte
	// length for strings and 1 for other scalars.
	Len() int
}

// FieldRenderer is implemented by views that can render a named field
// without materializing it as a View first. Generated records implement it.
type FieldRenderer interface {
	RenderField(key string, w io.Writer) (bool, error)
}

// IsSelf reports whether key addresses the value itself.
func IsSelf(key string) bool {
	return key == "." || key == ""
}

// Fingerprint returns the 64-bit dispatch hash of an external field name.
// The generator and generated code both call it, so build-time and lookup-time
// hashes always agree.
func Fingerprint(name string) uint64 {
	return xxhash.Sum64String(name)
}
