package view

import (
	"io"
	"iter"
	"maps"
	"slices"
	"strconv"
)

// sequence is the shared core of Seq and SliceOf.
type sequence[E any] struct {
	items []E
	conv  func(*E) View
}

func (s sequence[E]) IsTruthy() bool { return len(s.items) > 0 }

func (s sequence[E]) RenderCapacityHint() int {
	n := 0
	for i := range s.items {
		n += s.conv(&s.items[i]).RenderCapacityHint()
	}
	return n
}

func (s sequence[E]) Render(io.Writer) error { return nil }

// Pointer resolves self and canonical decimal indices.
func (s sequence[E]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return s, true
	}
	i, ok := parseIndex(key)
	if !ok || i >= len(s.items) {
		return nil, false
	}
	return s.conv(&s.items[i]), true
}

func (s sequence[E]) ContextIter() iter.Seq2[string, View] {
	return func(yield func(string, View) bool) {
		for i := range s.items {
			if !yield(strconv.Itoa(i), s.conv(&s.items[i])) {
				return
			}
		}
	}
}

func (s sequence[E]) Type() TypeEnum { return TypeArray }
func (s sequence[E]) Len() int       { return len(s.items) }

// parseIndex accepts only the names ContextIter produces: no sign, no
// leading zeros.
func parseIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Seq adapts a slice of views. Items are named by their decimal index.
type Seq[T View] []T

func (s Seq[T]) core() sequence[T] {
	return sequence[T]{items: s, conv: func(p *T) View { return *p }}
}

func (s Seq[T]) IsTruthy() bool                      { return len(s) > 0 }
func (s Seq[T]) RenderCapacityHint() int             { return s.core().RenderCapacityHint() }
func (s Seq[T]) Render(io.Writer) error              { return nil }
func (s Seq[T]) ContextIter() iter.Seq2[string, View] { return s.core().ContextIter() }
func (s Seq[T]) Type() TypeEnum                      { return TypeArray }
func (s Seq[T]) Len() int                            { return len(s) }

func (s Seq[T]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return s, true
	}
	return s.core().Pointer(key)
}

// SliceOf adapts a slice of arbitrary elements, converting each element on
// access. The slice is not copied.
func SliceOf[E any](items []E, conv func(*E) View) View {
	return sequence[E]{items: items, conv: conv}
}

// mapping is the shared core of Map, SortedMap and SortedMapOf.
type mapping[K ~string, V any] struct {
	m      map[K]V
	conv   func(V) View
	sorted bool
}

func (m mapping[K, V]) IsTruthy() bool { return len(m.m) > 0 }

func (m mapping[K, V]) RenderCapacityHint() int {
	n := 0
	for _, v := range m.m {
		n += m.conv(v).RenderCapacityHint()
	}
	return n
}

func (m mapping[K, V]) Render(io.Writer) error { return nil }

func (m mapping[K, V]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return m, true
	}
	v, ok := m.m[K(key)]
	if !ok {
		return nil, false
	}
	return m.conv(v), true
}

func (m mapping[K, V]) ContextIter() iter.Seq2[string, View] {
	if !m.sorted {
		return func(yield func(string, View) bool) {
			for k, v := range m.m {
				if !yield(string(k), m.conv(v)) {
					return
				}
			}
		}
	}
	return func(yield func(string, View) bool) {
		for _, k := range slices.Sorted(maps.Keys(m.m)) {
			if !yield(string(k), m.conv(m.m[k])) {
				return
			}
		}
	}
}

func (m mapping[K, V]) Type() TypeEnum { return TypeObject }
func (m mapping[K, V]) Len() int       { return len(m.m) }

func asView[V View](v V) View { return v }

// Map adapts a string-keyed map of views. Iteration order is unspecified.
type Map[K ~string, V View] map[K]V

func (m Map[K, V]) core() mapping[K, V] {
	return mapping[K, V]{m: m, conv: asView[V]}
}

func (m Map[K, V]) IsTruthy() bool                      { return len(m) > 0 }
func (m Map[K, V]) RenderCapacityHint() int             { return m.core().RenderCapacityHint() }
func (m Map[K, V]) Render(io.Writer) error              { return nil }
func (m Map[K, V]) ContextIter() iter.Seq2[string, View] { return m.core().ContextIter() }
func (m Map[K, V]) Type() TypeEnum                      { return TypeObject }
func (m Map[K, V]) Len() int                            { return len(m) }

func (m Map[K, V]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return m, true
	}
	return m.core().Pointer(key)
}

// SortedMap adapts a string-keyed map of views and iterates it in ascending
// key order.
type SortedMap[K ~string, V View] map[K]V

func (m SortedMap[K, V]) core() mapping[K, V] {
	return mapping[K, V]{m: m, conv: asView[V], sorted: true}
}

func (m SortedMap[K, V]) IsTruthy() bool                      { return len(m) > 0 }
func (m SortedMap[K, V]) RenderCapacityHint() int             { return m.core().RenderCapacityHint() }
func (m SortedMap[K, V]) Render(io.Writer) error              { return nil }
func (m SortedMap[K, V]) ContextIter() iter.Seq2[string, View] { return m.core().ContextIter() }
func (m SortedMap[K, V]) Type() TypeEnum                      { return TypeObject }
func (m SortedMap[K, V]) Len() int                            { return len(m) }

func (m SortedMap[K, V]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return m, true
	}
	return m.core().Pointer(key)
}

// SortedMapOf adapts a string-keyed map of arbitrary values, converting each
// value on access, and iterates in ascending key order.
func SortedMapOf[K ~string, V any](m map[K]V, conv func(V) View) View {
	return mapping[K, V]{m: m, conv: conv, sorted: true}
}

// Pair is a single named value. It takes on the value's truthiness, type,
// hint and text.
type Pair[V View] struct {
	Key   string
	Value V
}

func (p Pair[V]) IsTruthy() bool                       { return p.Value.IsTruthy() }
func (p Pair[V]) RenderCapacityHint() int              { return p.Value.RenderCapacityHint() }
func (p Pair[V]) Render(w io.Writer) error             { return p.Value.Render(w) }
func (p Pair[V]) ContextIter() iter.Seq2[string, View] { return nil }
func (p Pair[V]) Type() TypeEnum                       { return p.Value.Type() }
func (p Pair[V]) Len() int                             { return 1 }

func (p Pair[V]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return p, true
	}
	return nil, false
}
