package view

import (
	"io"
	"iter"
)

// Option holds a view that may be absent. The zero value is absent.
type Option[T View] struct {
	value T
	ok    bool
}

// Some returns a present Option.
func Some[T View](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent Option.
func None[T View]() Option[T] {
	return Option[T]{}
}

// Get returns the inner view and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsTruthy reports presence; the inner value's own truthiness is not consulted.
func (o Option[T]) IsTruthy() bool {
	return o.ok
}

func (o Option[T]) RenderCapacityHint() int {
	if !o.ok {
		return 0
	}
	return o.value.RenderCapacityHint()
}

func (o Option[T]) Render(w io.Writer) error {
	if !o.ok {
		return nil
	}
	return o.value.Render(w)
}

func (o Option[T]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return o, true
	}
	if !o.ok {
		return nil, false
	}
	return o.value.Pointer(key)
}

func (o Option[T]) ContextIter() iter.Seq2[string, View] {
	if !o.ok {
		return nil
	}
	return o.value.ContextIter()
}

func (o Option[T]) Type() TypeEnum {
	if !o.ok {
		return TypeNull
	}
	return o.value.Type()
}

func (o Option[T]) Len() int {
	if !o.ok {
		return 0
	}
	return o.value.Len()
}

// Result holds either a view or the error that prevented producing it.
// A failed Result behaves like Null; the error is only reachable through Err.
type Result[T View] struct {
	value T
	err   error
}

// Ok returns a successful Result.
func Ok[T View](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result. A nil err is replaced by ErrNoValue so the
// Result still counts as failed.
func Fail[T View](err error) Result[T] {
	if err == nil {
		err = ErrNoValue
	}
	return Result[T]{err: err}
}

// ResultOf builds a Result from a (value, error) pair.
func ResultOf[T View](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: v}
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the inner view and whether the Result succeeded.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.err == nil
}

func (r Result[T]) IsTruthy() bool {
	return r.err == nil
}

func (r Result[T]) RenderCapacityHint() int {
	if r.err != nil {
		return 0
	}
	return r.value.RenderCapacityHint()
}

func (r Result[T]) Render(w io.Writer) error {
	if r.err != nil {
		return nil
	}
	return r.value.Render(w)
}

func (r Result[T]) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return r, true
	}
	if r.err != nil {
		return nil, false
	}
	return r.value.Pointer(key)
}

func (r Result[T]) ContextIter() iter.Seq2[string, View] {
	if r.err != nil {
		return nil
	}
	return r.value.ContextIter()
}

func (r Result[T]) Type() TypeEnum {
	if r.err != nil {
		return TypeNull
	}
	return r.value.Type()
}

func (r Result[T]) Len() int {
	if r.err != nil {
		return 0
	}
	return r.value.Len()
}
