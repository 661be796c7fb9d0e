package plan

import (
	"fmt"
	"go/types"
	"strconv"

	"context-generator/internal/analyze"
)

// conversion is the outcome of adapting a Go value to a view.
type conversion struct {
	expr     string
	strategy Strategy
}

// converter spells view expressions for Go values.
type converter struct {
	view    string          // local name of the view package
	imports *importSet      // collects packages referenced by type names
	records map[string]bool // record types of this run, views through *T
	local   *types.Package

	visiting map[*types.Named]bool // named types being expanded
}

// unsupportedError explains why a type has no view.
type unsupportedError struct {
	typ    string
	reason string
}

func (e *unsupportedError) Error() string {
	return fmt.Sprintf("%s %s", e.typ, e.reason)
}

// convert adapts the value x of type t. addr is an expression for &x; x is
// always addressable in generated code. depth numbers closure parameters.
func (c *converter) convert(t types.Type, x, addr string, depth int) (conversion, error) {
	t = types.Unalias(t)

	if p, ok := t.(*types.Pointer); ok {
		return c.pointer(p, x, depth)
	}

	if types.IsInterface(t) {
		if analyze.IsViewInterface(t) {
			return conversion{c.call("Nullable", x), StrategyInterface}, nil
		}
		return conversion{c.call("Any", x), StrategyDynamic}, nil
	}

	switch {
	case analyze.ViewOf(t) == analyze.ViewValue:
		return conversion{x, StrategyDirect}, nil
	case analyze.ViewOf(t) == analyze.ViewPointer || c.isRecord(t):
		return conversion{addr, StrategyAddress}, nil
	}

	if named, ok := t.(*types.Named); ok {
		if c.visiting[named] {
			return conversion{}, c.unsupported(t, "refers to itself")
		}
		if c.visiting == nil {
			c.visiting = make(map[*types.Named]bool)
		}
		c.visiting[named] = true
		defer delete(c.visiting, named)
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return c.basic(t, u, x)

	case *types.Slice:
		if isByte(u.Elem()) {
			return conversion{c.call("String", x), StrategyBytes}, nil
		}
		return c.sequence(t, u.Elem(), x, depth)

	case *types.Array:
		return c.sequence(t, u.Elem(), Operand(x)+"[:]", depth)

	case *types.Map:
		return c.mapping(t, u, x, depth)
	}

	return conversion{}, c.unsupported(t, "has no view adapter")
}

func (c *converter) basic(t types.Type, b *types.Basic, x string) (conversion, error) {
	info := b.Info()
	switch {
	case info&types.IsString != 0:
		return conversion{c.call("String", x), StrategyString}, nil
	case info&types.IsBoolean != 0:
		return conversion{c.call("Bool", x), StrategyBool}, nil
	case info&types.IsComplex != 0:
		return conversion{}, c.unsupported(t, "is complex; complex numbers have no canonical text")
	case info&(types.IsInteger|types.IsFloat) != 0:
		return conversion{c.call("Num", x), StrategyNumber}, nil
	}

	return conversion{}, c.unsupported(t, "has no view adapter")
}

func (c *converter) pointer(p *types.Pointer, x string, depth int) (conversion, error) {
	param := paramName("p", depth)
	elem, err := c.convert(p.Elem(), "*"+param, param, depth+1)
	if err != nil {
		return conversion{}, err
	}

	fn := c.closure(param, types.TypeString(p, c.imports.qualifier), elem.expr)
	return conversion{c.call("PtrOf", x, fn), StrategyPointer}, nil
}

func (c *converter) sequence(t, elemType types.Type, x string, depth int) (conversion, error) {
	param := paramName("e", depth)
	elem, err := c.convert(elemType, "*"+param, param, depth+1)
	if err != nil {
		return conversion{}, c.wrap(t, err)
	}

	ptr := "*" + types.TypeString(elemType, c.imports.qualifier)
	fn := c.closure(param, ptr, elem.expr)
	return conversion{c.call("SliceOf", x, fn), StrategySlice}, nil
}

func (c *converter) mapping(t types.Type, m *types.Map, x string, depth int) (conversion, error) {
	key, ok := m.Key().Underlying().(*types.Basic)
	if !ok || key.Info()&types.IsString == 0 {
		return conversion{}, c.unsupported(t, "has a non-string key")
	}

	param := paramName("v", depth)
	elem, err := c.convert(m.Elem(), param, "&"+param, depth+1)
	if err != nil {
		return conversion{}, c.wrap(t, err)
	}

	fn := c.closure(param, types.TypeString(m.Elem(), c.imports.qualifier), elem.expr)
	return conversion{c.call("SortedMapOf", x, fn), StrategyMap}, nil
}

func (c *converter) isRecord(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()

	return obj.Pkg() == c.local && c.records[obj.Name()]
}

func (c *converter) call(fn string, args ...string) string {
	s := c.view + "." + fn + "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a
	}

	return s + ")"
}

func (c *converter) closure(param, paramType, body string) string {
	return fmt.Sprintf("func(%s %s) %s.View { return %s }", param, paramType, c.view, body)
}

func (c *converter) typeString(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		if pkg == c.local {
			return ""
		}
		return pkg.Name()
	})
}

func (c *converter) unsupported(t types.Type, reason string) error {
	return &unsupportedError{typ: c.typeString(t), reason: reason}
}

// wrap reports an element failure against the enclosing type.
func (c *converter) wrap(t types.Type, err error) error {
	return &unsupportedError{typ: c.typeString(t), reason: "has elements that are unsupported: " + err.Error()}
}

func paramName(base string, depth int) string {
	if depth == 0 {
		return base
	}

	return base + strconv.Itoa(depth)
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Byte
}
