package view

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"slices"
)

// Field is one named entry of a Record.
type Field struct {
	// Name is the external name the field is looked up by.
	Name string
	// Value is the field's view. A nil Value is treated as Null.
	Value View
	// Render, when set, replaces Value's own Render.
	Render func(w io.Writer) error
	// Flatten makes Value a fallback scope instead of a named entry.
	Flatten bool
}

type recordEntry struct {
	hash uint64
	name string
	view View
}

// Record is a dispatch table built once from a field list. Lookups hash the
// key and binary search the table sorted by fingerprint; the stored name is
// compared before a hit is reported.
type Record struct {
	entries []recordEntry
	ordered []recordEntry
	flatten []View
	hint    int

	fingerprint func(string) uint64
}

// RecordOption configures NewRecord.
type RecordOption func(*recordOptions)

type recordOptions struct {
	fingerprint func(string) uint64
}

// WithFingerprint replaces the hash function used by the table.
func WithFingerprint(fn func(string) uint64) RecordOption {
	return func(o *recordOptions) {
		o.fingerprint = fn
	}
}

// NewRecord builds a Record from fields given in declaration order.
func NewRecord(fields []Field, opts ...RecordOption) (*Record, error) {
	o := recordOptions{fingerprint: Fingerprint}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Record{}
	for _, f := range fields {
		v := Nullable(f.Value)
		r.hint += v.RenderCapacityHint()
		if f.Flatten {
			r.flatten = append(r.flatten, v)
			continue
		}
		if f.Render != nil {
			v = WithRender(v, f.Render)
		}
		r.ordered = append(r.ordered, recordEntry{hash: o.fingerprint(f.Name), name: f.Name, view: v})
	}

	r.entries = slices.Clone(r.ordered)
	slices.SortStableFunc(r.entries, func(a, b recordEntry) int {
		return cmp.Compare(a.hash, b.hash)
	})
	for i := 1; i < len(r.entries); i++ {
		prev, cur := r.entries[i-1], r.entries[i]
		if prev.hash != cur.hash {
			continue
		}
		if prev.name == cur.name {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, cur.name)
		}
		return nil, fmt.Errorf("%w: %q and %q hash to 0x%016x", ErrFingerprintCollision, prev.name, cur.name, cur.hash)
	}

	r.fingerprint = o.fingerprint
	return r, nil
}

func (r *Record) IsTruthy() bool          { return true }
func (r *Record) RenderCapacityHint() int { return r.hint }
func (r *Record) Render(io.Writer) error  { return nil }
func (r *Record) Type() TypeEnum          { return TypeObject }

func (r *Record) lookup(key string) (View, bool) {
	h := r.fingerprint(key)
	i, ok := slices.BinarySearchFunc(r.entries, h, func(e recordEntry, h uint64) int {
		return cmp.Compare(e.hash, h)
	})
	if !ok || r.entries[i].name != key {
		return nil, false
	}
	return r.entries[i].view, true
}

func (r *Record) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return r, true
	}
	if v, ok := r.lookup(key); ok {
		return v, true
	}
	for _, scope := range r.flatten {
		if v, ok := scope.Pointer(key); ok {
			return v, true
		}
	}
	return nil, false
}

// RenderField renders the field named key. It reports false when no field
// or flattened scope has that name.
func (r *Record) RenderField(key string, w io.Writer) (bool, error) {
	v, ok := r.Pointer(key)
	if !ok {
		return false, nil
	}
	return true, v.Render(w)
}

// ContextIter yields the named fields in declaration order, then the pairs
// of each flattened scope.
func (r *Record) ContextIter() iter.Seq2[string, View] {
	return func(yield func(string, View) bool) {
		for _, e := range r.ordered {
			if !yield(e.name, e.view) {
				return
			}
		}
		for _, scope := range r.flatten {
			for k, v := range Iter(scope) {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

func (r *Record) Len() int {
	n := len(r.ordered)
	for _, scope := range r.flatten {
		n += Count(scope.ContextIter())
	}
	return n
}
