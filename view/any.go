package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Any adapts a dynamically typed value such as a tree decoded from JSON or
// YAML. Objects iterate in ascending key order. Values of unknown types
// become Null; fmt.Stringer and error values render their text.
func Any(v any) View {
	switch x := v.(type) {
	case nil:
		return Null{}
	case View:
		return x
	case string:
		return String(x)
	case []byte:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Num(x)
	case int8:
		return Num(x)
	case int16:
		return Num(x)
	case int32:
		return Num(x)
	case int64:
		return Num(x)
	case uint:
		return Num(x)
	case uint8:
		return Num(x)
	case uint16:
		return Num(x)
	case uint32:
		return Num(x)
	case uint64:
		return Num(x)
	case float32:
		return Num(x)
	case float64:
		return Num(x)
	case json.Number:
		return jsonNumber(x)
	case []any:
		return SliceOf(x, func(e *any) View { return Any(*e) })
	case map[string]any:
		return SortedMapOf(x, Any)
	case map[any]any:
		return dynamicObject(x)
	case fmt.Stringer:
		return String(x.String())
	case error:
		return String(x.Error())
	default:
		return Null{}
	}
}

// jsonNumber is a decoded number. It renders like Num when the literal fits
// an int64 or float64 and falls back to the literal text otherwise.
type jsonNumber json.Number

// number converts the literal. Integer literals that overflow int64 are
// left alone so that no digits are lost.
func (n jsonNumber) number() (View, bool) {
	s := string(n)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Num(i), true
	}
	if !strings.ContainsAny(s, ".eE") {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return Num(f), true
}

func (n jsonNumber) IsTruthy() bool {
	if v, ok := n.number(); ok {
		return v.IsTruthy()
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return false
	}
	return f != 0 && !math.IsNaN(f)
}

func (n jsonNumber) RenderCapacityHint() int { return numberHint }

func (n jsonNumber) Render(w io.Writer) error {
	if v, ok := n.number(); ok {
		return v.Render(w)
	}
	_, err := io.WriteString(w, string(n))
	return err
}

func (n jsonNumber) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return n, true
	}
	return nil, false
}

func (n jsonNumber) ContextIter() iter.Seq2[string, View] { return nil }
func (n jsonNumber) Type() TypeEnum                       { return TypeNumber }
func (n jsonNumber) Len() int                             { return 1 }

// dynamicObject is a map with keys of any type, as some YAML decoders
// produce. Keys are rendered with fmt and iterated in sorted order.
type dynamicObject map[any]any

func (o dynamicObject) keys() map[string]any {
	m := make(map[string]any, len(o))
	for k, v := range o {
		m[fmt.Sprint(k)] = v
	}
	return m
}

func (o dynamicObject) IsTruthy() bool { return len(o) > 0 }

func (o dynamicObject) RenderCapacityHint() int {
	n := 0
	for _, v := range o {
		n += Any(v).RenderCapacityHint()
	}
	return n
}

func (o dynamicObject) Render(io.Writer) error { return nil }

func (o dynamicObject) Pointer(key string) (View, bool) {
	if IsSelf(key) {
		return o, true
	}
	if v, ok := o[key]; ok {
		return Any(v), true
	}
	for k, v := range o {
		if fmt.Sprint(k) == key {
			return Any(v), true
		}
	}
	return nil, false
}

func (o dynamicObject) ContextIter() iter.Seq2[string, View] {
	return func(yield func(string, View) bool) {
		m := o.keys()
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, Any(m[k])) {
				return
			}
		}
	}
}

func (o dynamicObject) Type() TypeEnum { return TypeObject }
func (o dynamicObject) Len() int       { return len(o.keys()) }
