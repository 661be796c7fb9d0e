package view

import (
	"io"
	"iter"
	"math"
	"strconv"
	"unsafe"
)

// numberHint is the capacity hint of numbers and booleans.
const numberHint = 5

// Numeric is the set of types Number can adapt.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Number adapts any integer or floating-point value.
type Number[T Numeric] struct {
	Value T
}

// Num wraps v as a Number view.
func Num[T Numeric](v T) Number[T] {
	return Number[T]{Value: v}
}

// IsTruthy reports v != 0. NaN is truthy.
func (n Number[T]) IsTruthy() bool {
	return n.Value != 0
}

func (n Number[T]) RenderCapacityHint() int {
	return numberHint
}

func (n Number[T]) Render(w io.Writer) error {
	var buf [32]byte
	_, err := w.Write(n.AppendText(buf[:0]))
	return err
}

// AppendText appends the canonical decimal form of the number to b.
// Floats never use exponent notation; non-finite values are NaN, inf and -inf.
func (n Number[T]) AppendText(b []byte) []byte {
	v := n.Value
	switch {
	case T(1)/T(2) != 0:
		f := float64(v)
		switch {
		case math.IsNaN(f):
			return append(b, "NaN"...)
		case math.IsInf(f, 1):
			return append(b, "inf"...)
		case math.IsInf(f, -1):
			return append(b, "-inf"...)
		}
		return strconv.AppendFloat(b, f, 'f', -1, int(unsafe.Sizeof(v))*8)
	case T(0)-T(1) < 0:
		return strconv.AppendInt(b, int64(v), 10)
	default:
		return strconv.AppendUint(b, uint64(v), 10)
	}
}

// String returns the rendered text.
func (n Number[T]) String() string {
	return string(n.AppendText(nil))
}

func (n Number[T]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return n, true
	}
	return nil, false
}

func (n Number[T]) ContextIter() iter.Seq2[string, View] { return nil }
func (n Number[T]) Type() TypeEnum                       { return TypeNumber }
func (n Number[T]) Len() int                             { return 1 }

// Bool adapts a boolean.
type Bool bool

func (b Bool) IsTruthy() bool          { return bool(b) }
func (b Bool) RenderCapacityHint() int { return numberHint }

func (b Bool) Render(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatBool(bool(b)))
	return err
}

func (b Bool) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return b, true
	}
	return nil, false
}

func (b Bool) ContextIter() iter.Seq2[string, View] { return nil }
func (b Bool) Type() TypeEnum                       { return TypeBool }
func (b Bool) Len() int                             { return 1 }

// String adapts text. It is rendered verbatim; escaping belongs to the
// template engine.
type String string

func (s String) IsTruthy() bool          { return s != "" }
func (s String) RenderCapacityHint() int { return len(s) }

func (s String) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

func (s String) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return s, true
	}
	return nil, false
}

func (s String) ContextIter() iter.Seq2[string, View] { return nil }
func (s String) Type() TypeEnum                       { return TypeString }

// Len is the length in bytes.
func (s String) Len() int { return len(s) }

// Null is the absence of a value. It is never truthy and renders nothing.
type Null struct{}

func (Null) IsTruthy() bool                       { return false }
func (Null) RenderCapacityHint() int              { return 0 }
func (Null) Render(io.Writer) error               { return nil }
func (Null) Type() TypeEnum                       { return TypeNull }
func (Null) Len() int                             { return 0 }
func (Null) ContextIter() iter.Seq2[string, View] { return nil }

func (n Null) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return n, true
	}
	return nil, false
}

// Nullable returns v, or Null when v is nil.
func Nullable(v View) View {
	if v == nil {
		return Null{}
	}
	return v
}
