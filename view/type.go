package view

//go:generate go tool stringer -type=TypeEnum -trimprefix=Type -output=type_string.go

// TypeEnum classifies the shape of a View, similarly to JSON types.
type TypeEnum int

const (
	TypeObject TypeEnum = iota // maps and records; the default classification
	TypeArray
	TypeNumber
	TypeString
	TypeBool
	TypeNull

	// TypeTotal is a constant that represents the total number of types defined
	TypeTotal = int(iota)
)

// IsContainer reports whether views of this type may yield pairs from
// ContextIter.
func (t TypeEnum) IsContainer() bool {
	return t == TypeObject || t == TypeArray
}

// IsScalar reports whether the type has a direct textual form.
func (t TypeEnum) IsScalar() bool {
	switch t {
	default:
		return false
	case TypeNumber, TypeString, TypeBool:
		return true
	}
}
