package analyze

import (
	"go/types"
	"strings"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "Order" for a record
//   - "Order.Lines" for a field
//   - "Order.Lines[]" for the elements of a slice field
//   - "Order.*Customer" for the target of a pointer field
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends a slice indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	return p.decorate("", "[]")
}

// Pointer prefixes the last element with a pointer indicator "*".
func (p *TypePath) Pointer() *TypePath {
	return p.decorate("*", "")
}

// MapValue appends a map value indicator "[*]" to the path.
func (p *TypePath) MapValue() *TypePath {
	return p.decorate("", "[*]")
}

func (p *TypePath) decorate(prefix, suffix string) *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{prefix + suffix}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	last := len(newParts) - 1
	newParts[last] = prefix + newParts[last] + suffix
	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders types relative to one package, the way they are
// spelled inside that package.
type TypeStringer struct {
	pkg *types.Package
}

// NewTypeStringer creates a new TypeStringer relative to pkg. A nil pkg
// qualifies every named type with its package name.
func NewTypeStringer(pkg *types.Package) *TypeStringer {
	return &TypeStringer{pkg: pkg}
}

// TypeString returns a human-readable representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil || t.GoType == nil {
		return "<nil>"
	}

	return types.TypeString(t.GoType, s.qualify)
}

func (s *TypeStringer) qualify(pkg *types.Package) string {
	if s.pkg != nil && pkg.Path() == s.pkg.Path() {
		return ""
	}

	return pkg.Name()
}

// FieldPath returns a path string for a field within a type.
// Example: Order, Lines -> "Order.Lines"
func (s *TypeStringer) FieldPath(typeName string, fieldNames ...string) string {
	path := NewTypePath(typeName)
	for _, fn := range fieldNames {
		path = path.Field(fn)
	}
	return path.String()
}
