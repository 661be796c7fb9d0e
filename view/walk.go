package view

import (
	"bytes"
	"io"
	"iter"
	"strings"
)

// Lookup resolves a dotted path such as "user.tags.0" one segment at a time.
// An empty path resolves to v itself.
func Lookup(v View, path string) (View, bool) {
	if v == nil {
		return nil, false
	}
	if IsSelf(path) {
		return v.Pointer(path)
	}
	for segment := range strings.SplitSeq(path, ".") {
		next, ok := v.Pointer(segment)
		if !ok || next == nil {
			return nil, false
		}
		v = next
	}
	return v, true
}

// RenderString renders v into a buffer grown by its capacity hint.
func RenderString(v View) (string, error) {
	var buf bytes.Buffer
	buf.Grow(v.RenderCapacityHint())
	if err := v.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderKey renders the entry named key of v. Views implementing
// FieldRenderer dispatch directly; others go through Pointer.
func RenderKey(v View, key string, w io.Writer) (bool, error) {
	if fr, ok := v.(FieldRenderer); ok && !IsSelf(key) {
		return fr.RenderField(key, w)
	}
	child, ok := v.Pointer(key)
	if !ok {
		return false, nil
	}
	return true, child.Render(w)
}

// Iter returns v.ContextIter(), or an empty sequence for scalars.
func Iter(v View) iter.Seq2[string, View] {
	if seq := v.ContextIter(); seq != nil {
		return seq
	}
	return func(func(string, View) bool) {}
}

// Count returns the number of pairs seq yields. A nil seq counts as zero.
func Count(seq iter.Seq2[string, View]) int {
	n := 0
	if seq == nil {
		return n
	}
	for range seq {
		n++
	}
	return n
}
