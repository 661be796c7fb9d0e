package view

import (
	"io"
	"iter"
)

// Indirect forwards every call to the view behind a pointer. A nil pointer
// behaves like Null.
type Indirect[T View] struct {
	p *T
}

// Ref returns an Indirect over p.
func Ref[T View](p *T) Indirect[T] {
	return Indirect[T]{p: p}
}

func (r Indirect[T]) target() View {
	if r.p == nil {
		return Null{}
	}
	return *r.p
}

func (r Indirect[T]) IsTruthy() bool                       { return r.target().IsTruthy() }
func (r Indirect[T]) RenderCapacityHint() int              { return r.target().RenderCapacityHint() }
func (r Indirect[T]) Render(w io.Writer) error             { return r.target().Render(w) }
func (r Indirect[T]) ContextIter() iter.Seq2[string, View] { return r.target().ContextIter() }
func (r Indirect[T]) Type() TypeEnum                       { return r.target().Type() }
func (r Indirect[T]) Len() int                             { return r.target().Len() }

func (r Indirect[T]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return r, true
	}
	return r.target().Pointer(key)
}

// PtrOf converts the value behind p on access. A nil p yields Null.
func PtrOf[E any](p *E, conv func(*E) View) View {
	if p == nil {
		return Null{}
	}
	return conv(p)
}

// RenderFunc is a view whose text is produced by calling the function.
type RenderFunc func(w io.Writer) error

func (f RenderFunc) IsTruthy() bool                       { return true }
func (f RenderFunc) RenderCapacityHint() int              { return 0 }
func (f RenderFunc) Render(w io.Writer) error             { return f(w) }
func (f RenderFunc) ContextIter() iter.Seq2[string, View] { return nil }
func (f RenderFunc) Type() TypeEnum                       { return TypeString }
func (f RenderFunc) Len() int                             { return 1 }

func (f RenderFunc) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return f, true
	}
	return nil, false
}

// rendered replaces the Render routine of a view.
type rendered struct {
	View
	render RenderFunc
}

// WithRender returns v with its Render replaced by fn. Every other call is
// forwarded to v.
func WithRender(v View, fn func(w io.Writer) error) View {
	return rendered{View: Nullable(v), render: fn}
}

func (r rendered) Render(w io.Writer) error {
	return r.render(w)
}

func (r rendered) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return r, true
	}
	return r.View.Pointer(key)
}
