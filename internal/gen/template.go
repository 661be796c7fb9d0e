package gen

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"context-generator/internal/plan"
)

// templateData holds everything the file template needs.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []plan.Import
	View        string
	Records     []recordData
	Comments    bool
}

// recordData is one record as the template sees it.
type recordData struct {
	Name    string
	Recv    string
	Fields  []plan.FieldPlan // by hash
	Ordered []plan.FieldPlan // by declaration
	Flatten []plan.FlattenPlan
	Hints   []string
}

func buildRecordData(rec *plan.RecordPlan) recordData {
	return recordData{
		Name:    rec.Name,
		Recv:    rec.Receiver,
		Fields:  rec.Fields,
		Ordered: rec.Ordered(),
		Flatten: rec.Flatten,
		Hints:   rec.HintExprs(),
	}
}

var funcs = template.FuncMap{
	"hex":     func(h uint64) string { return fmt.Sprintf("0x%016x", h) },
	"quote":   strconv.Quote,
	"operand": plan.Operand,
	"comment": comment,
}

// comment makes name safe to place after //.
func comment(name string) string {
	if strings.ContainsAny(name, "\r\n") || !strconv.CanBackquote(name) {
		return strconv.Quote(name)
	}

	return name
}

var fileTemplate = template.Must(template.New("view").Funcs(funcs).Parse(`// Code generated by context-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}{{if .Std}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}}
{{range .Imports}}{{if not .Std}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}})
{{$view := .View}}{{$comments := .Comments}}
{{range .Records}}{{$r := .Recv}}
var (
	_ {{$view}}.View          = (*{{.Name}})(nil)
	_ {{$view}}.FieldRenderer = (*{{.Name}})(nil)
)

{{if $comments}}// IsTruthy reports true: a record is always truthy.
{{end}}func ({{$r}} *{{.Name}}) IsTruthy() bool { return true }

{{if $comments}}// RenderCapacityHint sums the hints of every exposed field.
{{end}}func ({{$r}} *{{.Name}}) RenderCapacityHint() int {
	n := 0
{{range .Hints}}	n += {{operand .}}.RenderCapacityHint()
{{end}}	return n
}

{{if $comments}}// Render writes nothing; records are rendered field by field.
{{end}}func ({{$r}} *{{.Name}}) Render(io.Writer) error { return nil }

{{if $comments}}// Pointer resolves key to a field, then to a key of a flattened field.
{{end}}func ({{$r}} *{{.Name}}) Pointer(key string) ({{$view}}.View, bool) {
	if {{$view}}.IsSelf(key) {
		return {{$r}}, true
	}
{{if .Fields}}
	switch {{$view}}.Fingerprint(key) {
{{range .Fields}}	case {{hex .Hash}}:{{if $comments}} // {{comment .Name}}{{end}}
		if key == {{quote .Name}} {
			return {{.Expr}}, true
		}
{{end}}	}
{{end}}{{range .Flatten}}
	if v, ok := {{operand .Expr}}.Pointer(key); ok {
		return v, true
	}
{{end}}
	return nil, false
}

{{if $comments}}// RenderField renders the field key resolves to into w.
{{end}}func ({{$r}} *{{.Name}}) RenderField(key string, w io.Writer) (bool, error) {
	if {{$view}}.IsSelf(key) {
		return true, {{$r}}.Render(w)
	}
{{if .Fields}}
	switch {{$view}}.Fingerprint(key) {
{{range .Fields}}	case {{hex .Hash}}:{{if $comments}} // {{comment .Name}}{{end}}
		if key == {{quote .Name}} {
			return true, {{.RenderExpr}}
		}
{{end}}	}
{{end}}{{range .Flatten}}
	if hit, err := {{$view}}.RenderKey({{.Expr}}, key, w); hit {
		return true, err
	}
{{end}}
	return false, nil
}

{{if $comments}}// ContextIter yields the fields in declaration order, then the entries of
// flattened fields.
{{end}}func ({{$r}} *{{.Name}}) ContextIter() iter.Seq2[string, {{$view}}.View] {
	return func(yield func(string, {{$view}}.View) bool) {
{{range .Ordered}}		if !yield({{quote .Name}}, {{.Expr}}) {
			return
		}
{{end}}{{range .Flatten}}		for k, v := range {{$view}}.Iter({{.Expr}}) {
			if !yield(k, v) {
				return
			}
		}
{{end}}	}
}

func ({{$r}} *{{.Name}}) Type() {{$view}}.TypeEnum { return {{$view}}.TypeObject }

func ({{$r}} *{{.Name}}) Len() int {
	return {{len .Ordered}}{{range .Flatten}} + {{$view}}.Count({{$view}}.Iter({{.Expr}})){{end}}
}
{{end}}`))
