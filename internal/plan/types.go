package plan

import (
	"cmp"
	"slices"

	"context-generator/internal/analyze"
	"context-generator/internal/common"
	"context-generator/internal/diagnostic"
)

// Plan is the output of planning. It holds everything code generation needs.
type Plan struct {
	// Package is the package the records live in and the code is generated for.
	Package *analyze.PackageInfo
	// Records are the planned records in request order.
	Records []RecordPlan
	// Imports are the packages generated code refers to, sorted by path.
	Imports []Import
	// ViewName is the name generated code refers to the view package by.
	ViewName string
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// Import is one import of the generated file.
type Import struct {
	Alias string // empty when the package name is used as is
	Path  string
	Std   bool // standard library; grouped first
}

// RecordPlan is the dispatch plan of one record type.
type RecordPlan struct {
	// Name is the Go type name.
	Name string
	// Receiver is the receiver name used in generated methods.
	Receiver string
	// Fields are the directly addressable fields sorted by ascending Hash.
	Fields []FieldPlan
	// Flatten are the fallback scopes in declaration order.
	Flatten []FlattenPlan
	// Skipped lists the Go names of skipped fields.
	Skipped []string
}

// Ordered returns the directly addressable fields in declaration order.
func (r *RecordPlan) Ordered() []FieldPlan {
	out := slices.Clone(r.Fields)
	slices.SortFunc(out, func(a, b FieldPlan) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return out
}

// HintExprs returns the capacity hint expression of every non-skipped
// field, flattened ones included, in declaration order.
func (r *RecordPlan) HintExprs() []string {
	type hint struct {
		index int
		expr  string
	}

	hints := make([]hint, 0, len(r.Fields)+len(r.Flatten))
	for _, f := range r.Fields {
		hints = append(hints, hint{f.Index, f.Expr})
	}
	for _, f := range r.Flatten {
		hints = append(hints, hint{f.Index, f.Expr})
	}
	slices.SortFunc(hints, func(a, b hint) int {
		return cmp.Compare(a.index, b.index)
	})

	exprs := make([]string, 0, len(hints))
	for _, h := range hints {
		exprs = append(exprs, h.expr)
	}

	return exprs
}

// Field returns the plan of the field exposed under name, or nil.
func (r *RecordPlan) Field(name string) *FieldPlan {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}

	return nil
}

// FieldPlan is one entry of a record's dispatch table.
type FieldPlan struct {
	// Hash is the fingerprint of Name.
	Hash uint64
	// Name is the external name.
	Name string
	// GoName is the Go field name.
	GoName string
	// Index is the position of the field in the struct declaration.
	Index int
	// Expr is the view expression of the field, callback included.
	Expr string
	// RenderExpr renders the field into w and evaluates to an error.
	RenderExpr string
	// Strategy tells how the field becomes a view.
	Strategy Strategy
	// Callback names the render callback, if any.
	Callback string
	// Source tells where the field's directives came from.
	Source DirectiveSource
}

// FlattenPlan is a field registered as a fallback scope.
type FlattenPlan struct {
	GoName   string
	Index    int
	Expr     string
	Strategy Strategy
}

// Strategy describes how a field value is adapted to a view.
type Strategy int

const (
	// StrategyDirect - the value implements the view contract.
	StrategyDirect Strategy = iota
	// StrategyAddress - the value's pointer implements the view contract.
	StrategyAddress
	// StrategyInterface - an interface holding views; nil becomes Null.
	StrategyInterface
	// StrategyDynamic - any other interface, adapted at run time.
	StrategyDynamic
	// StrategyString - string kinds.
	StrategyString
	// StrategyBytes - byte slices rendered as text.
	StrategyBytes
	// StrategyBool - boolean kinds.
	StrategyBool
	// StrategyNumber - integer and float kinds.
	StrategyNumber
	// StrategySlice - slices and arrays, adapted per element.
	StrategySlice
	// StrategyMap - string-keyed maps in ascending key order.
	StrategyMap
	// StrategyPointer - pointers; nil becomes Null.
	StrategyPointer
	// StrategyRenderFunc - a callback is the only way to render the field.
	StrategyRenderFunc
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyAddress:
		return "address"
	case StrategyInterface:
		return "interface"
	case StrategyDynamic:
		return "dynamic"
	case StrategyString:
		return "string"
	case StrategyBytes:
		return "bytes"
	case StrategyBool:
		return "bool"
	case StrategyNumber:
		return "number"
	case StrategySlice:
		return "slice"
	case StrategyMap:
		return "map"
	case StrategyPointer:
		return "pointer"
	case StrategyRenderFunc:
		return "render-func"
	default:
		return common.UnknownStr
	}
}

// DirectiveSource indicates where a field's directives came from.
type DirectiveSource int

const (
	// SourceNone - no directives at all.
	SourceNone DirectiveSource = iota
	// SourceTag - the struct tag.
	SourceTag
	// SourceConfig - the YAML config file.
	SourceConfig
)

// String returns a human-readable source name.
func (s DirectiveSource) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceTag:
		return "tag"
	case SourceConfig:
		return "config"
	default:
		return common.UnknownStr
	}
}
