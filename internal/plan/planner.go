package plan

import (
	"cmp"
	"errors"
	"fmt"
	"go/types"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"context-generator/internal/analyze"
	"context-generator/internal/common"
	"context-generator/internal/config"
	"context-generator/internal/diagnostic"
	"context-generator/internal/directive"
	"context-generator/internal/match"
	"context-generator/view"
)

// Config holds configuration for planning.
type Config struct {
	// TagKey is the struct tag key holding field directives.
	TagKey string
	// ViewPkgPath is the import path of the view package.
	ViewPkgPath string
	// ViewPkgName is the name the view package is imported under.
	ViewPkgName string
	// Fingerprint hashes external names. It must match the hash used by
	// the view package at run time.
	Fingerprint func(string) uint64
	// Overrides are directives from a config file; they replace struct tags
	// field by field.
	Overrides *config.File
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		TagKey:      "view",
		ViewPkgPath: "context-generator/view",
		ViewPkgName: "view",
		Fingerprint: view.Fingerprint,
	}
}

// reservedReceivers are names used by generated method parameters and locals.
var reservedReceivers = []string{"e", "k", "n", "p", "v", "w"}

// Planner builds dispatch plans for record types of one package.
type Planner struct {
	graph  *analyze.TypeGraph
	pkg    *analyze.PackageInfo
	config Config
}

// NewPlanner creates a Planner for the record types of pkgPath.
func NewPlanner(graph *analyze.TypeGraph, pkgPath string, config Config) (*Planner, error) {
	pkg, ok := graph.Packages[pkgPath]
	if !ok {
		return nil, fmt.Errorf("%w: package %s", analyze.ErrTypeNotFound, pkgPath)
	}

	def := DefaultConfig()
	if config.TagKey == "" {
		config.TagKey = def.TagKey
	}
	if config.ViewPkgPath == "" {
		config.ViewPkgPath = def.ViewPkgPath
	}
	if config.ViewPkgName == "" {
		config.ViewPkgName = common.PkgAlias(config.ViewPkgPath)
	}
	if config.Fingerprint == nil {
		config.Fingerprint = def.Fingerprint
	}

	return &Planner{graph: graph, pkg: pkg, config: config}, nil
}

// Plan plans the named record types. The plan is returned even when it has
// errors, so diagnostics can be reported; the error summarizes them.
func (p *Planner) Plan(typeNames ...string) (*Plan, error) {
	out := &Plan{Package: p.pkg}

	imports := newImportSet(p.pkg.Pkg)
	imports.add("io", "io")
	imports.add("iter", "iter")

	conv := &converter{
		view:    imports.add(p.config.ViewPkgPath, p.config.ViewPkgName),
		imports: imports,
		records: make(map[string]bool, len(typeNames)),
		local:   p.pkg.Pkg,
	}

	var names []string
	for _, name := range typeNames {
		if !conv.records[name] {
			conv.records[name] = true
			names = append(names, name)
		}
	}

	if common.IsEmpty(names) {
		out.Diagnostics.AddError(diagnostic.CodeTypeNotFound, "no record types requested", "", "")
	}

	for _, name := range names {
		info, err := p.graph.Struct(p.pkg.Path, name)
		if err != nil {
			p.addLookupError(&out.Diagnostics, name, err)
			continue
		}

		if named, ok := info.GoType.(*types.Named); ok && named.TypeParams().Len() > 0 {
			d := out.Diagnostics.AddError(diagnostic.CodeUnsupportedType,
				fmt.Sprintf("%s is generic; methods can only be generated for plain records", name), name, "")
			d.Suggest("declare a record with a field of an instantiated %s and flatten it", name)
			continue
		}

		rec := p.planRecord(info, conv, &out.Diagnostics)
		out.Records = append(out.Records, rec)

		logDebug(p.config.Logger, "planned record",
			"type", name, "fields", len(rec.Fields), "flatten", len(rec.Flatten), "skipped", len(rec.Skipped))
	}

	for _, name := range p.config.Overrides.Types() {
		if !conv.records[name] {
			out.Diagnostics.AddWarning(diagnostic.CodeUnusedOverride,
				"config overrides a type that is not generated", name, "")
		}
	}

	out.Imports = imports.list()
	for i := range out.Imports {
		if out.Imports[i].Path == p.config.ViewPkgPath {
			out.Imports[i].Std = false
		}
	}
	out.ViewName = conv.view

	return out, out.Diagnostics.Error()
}

func (p *Planner) addLookupError(diags *diagnostic.Diagnostics, name string, err error) {
	if errors.Is(err, analyze.ErrNotAStruct) {
		diags.AddError(diagnostic.CodeNotAStruct, err.Error(), name, "")
		return
	}

	d := diags.AddError(diagnostic.CodeTypeNotFound,
		fmt.Sprintf("no type %s in package %s", name, p.pkg.Path), name, "")
	if alt, ok := match.Closest(name, p.pkg.TypeNames()); ok {
		d.Suggest("did you mean %s?", alt)
	}
}

// fieldDirectives is the resolved directive set of one field.
type fieldDirectives struct {
	directive.Directives
	source DirectiveSource
}

func (p *Planner) planRecord(info *analyze.TypeInfo, conv *converter, diags *diagnostic.Diagnostics) RecordPlan {
	name := info.ID.Name
	rec := RecordPlan{Name: name, Receiver: receiverName(name)}

	record := p.config.Overrides.Record(name)
	overrides := record.Overrides()
	for _, goName := range record.FieldNames() {
		if info.FieldByName(goName) != nil {
			continue
		}
		d := diags.AddError(diagnostic.CodeUnknownField,
			fmt.Sprintf("config names field %s, which %s does not have", goName, name), name, goName)
		if alt, ok := match.Closest(goName, info.FieldNames()); ok {
			d.Suggest("did you mean %s?", alt)
		}
	}

	owners := make(map[string]string)
	for i := range info.Fields {
		field := &info.Fields[i]

		dirs, ok := p.directives(field, overrides, name, diags)
		if !ok {
			continue
		}

		if dirs.Skip {
			rec.Skipped = append(rec.Skipped, field.Name)
			diags.AddInfo(diagnostic.CodeSkippedField, "field is skipped", name, field.Name)
			continue
		}

		x := rec.Receiver + "." + field.Name
		addr := "&" + x

		if dirs.Flatten {
			c, err := conv.convert(field.Type.GoType, x, addr, 0)
			if err != nil {
				p.addUnsupported(diags, name, field, err)
				continue
			}
			rec.Flatten = append(rec.Flatten, FlattenPlan{
				GoName:   field.Name,
				Index:    field.Index,
				Expr:     c.expr,
				Strategy: c.strategy,
			})
			continue
		}

		external := dirs.ExternalName(field.Name)
		if prev, taken := owners[external]; taken {
			d := diags.AddError(diagnostic.CodeDuplicateName,
				fmt.Sprintf("fields %s and %s are both exposed as %q", prev, field.Name, external), name, field.Name)
			d.Suggest("rename one of them with %s:\"rename=...\"", p.config.TagKey)
			continue
		}
		owners[external] = field.Name

		fp, ok := p.planField(field, dirs, x, addr, conv, name, diags)
		if !ok {
			continue
		}
		fp.Hash = p.config.Fingerprint(external)
		fp.Name = external
		rec.Fields = append(rec.Fields, fp)
	}

	slices.SortStableFunc(rec.Fields, func(a, b FieldPlan) int {
		return cmp.Compare(a.Hash, b.Hash)
	})
	for i := 1; i < len(rec.Fields); i++ {
		a, b := rec.Fields[i-1], rec.Fields[i]
		if a.Hash == b.Hash {
			d := diags.AddError(diagnostic.CodeFingerprintCollision,
				fmt.Sprintf("%q and %q hash to 0x%016x", a.Name, b.Name, a.Hash), name, b.GoName)
			d.Suggest("rename %s or %s", a.GoName, b.GoName)
		}
	}

	if common.IsEmpty(rec.Fields) && common.IsEmpty(rec.Flatten) {
		diags.AddWarning(diagnostic.CodeEmptyRecord, "record exposes no fields", name, "")
	}

	return rec
}

// directives resolves a field's directives. A config override replaces the
// struct tag of that field.
func (p *Planner) directives(
	field *analyze.FieldInfo,
	overrides map[string]string,
	record string,
	diags *diagnostic.Diagnostics,
) (fieldDirectives, bool) {
	text, source := "", SourceNone
	if o, ok := overrides[field.Name]; ok {
		text, source = o, SourceConfig
	} else if field.HasTag(p.config.TagKey) {
		text, source = field.GetTag(p.config.TagKey), SourceTag
	}

	dirs, err := directive.Parse(text)
	if err != nil {
		p.addDirectiveError(diags, record, field, source, err)
		return fieldDirectives{}, false
	}

	return fieldDirectives{Directives: dirs, source: source}, true
}

func (p *Planner) addDirectiveError(
	diags *diagnostic.Diagnostics,
	record string,
	field *analyze.FieldInfo,
	source DirectiveSource,
	err error,
) {
	code := diagnostic.CodeMalformedDirective
	switch {
	case errors.Is(err, directive.ErrUnknownKey):
		code = diagnostic.CodeUnknownDirective
	case errors.Is(err, directive.ErrEmptyValue):
		code = diagnostic.CodeEmptyDirective
	case errors.Is(err, directive.ErrConflict):
		code = diagnostic.CodeConflictingDirectives
	}

	d := diags.AddError(code, fmt.Sprintf("%s directive: %v", source, err), record, fieldPath(field))

	var ke *directive.KeyError
	if errors.As(err, &ke) {
		if alt, ok := match.Closest(ke.Key, directive.Keys); ok {
			d.Suggest("did you mean %s?", alt)
		}
	}
}

func (p *Planner) planField(
	field *analyze.FieldInfo,
	dirs fieldDirectives,
	x, addr string,
	conv *converter,
	record string,
	diags *diagnostic.Diagnostics,
) (FieldPlan, bool) {
	fp := FieldPlan{
		GoName: field.Name,
		Index:  field.Index,
		Source: dirs.source,
	}

	c, convErr := conv.convert(field.Type.GoType, x, addr, 0)

	if dirs.Callback == "" {
		if convErr != nil {
			p.addUnsupported(diags, record, field, convErr)
			return fp, false
		}
		fp.Expr = c.expr
		fp.Strategy = c.strategy
		fp.RenderExpr = Operand(c.expr) + ".Render(w)"

		return fp, true
	}

	arg, ok := p.callbackArg(field, dirs.Callback, x, addr, record, diags)
	if !ok {
		return fp, false
	}

	fp.Callback = dirs.Callback
	fp.RenderExpr = fmt.Sprintf("%s(%s, w)", dirs.Callback, arg)
	render := fmt.Sprintf("func(w io.Writer) error { return %s }", fp.RenderExpr)

	if convErr != nil {
		fp.Expr = fmt.Sprintf("%s.RenderFunc(%s)", conv.view, render)
		fp.Strategy = StrategyRenderFunc
	} else {
		fp.Expr = fmt.Sprintf("%s.WithRender(%s, %s)", conv.view, c.expr, render)
		fp.Strategy = c.strategy
	}

	return fp, true
}

// callbackArg checks the callback signature, func(T, io.Writer) error or
// func(*T, io.Writer) error, and returns the argument to pass.
func (p *Planner) callbackArg(
	field *analyze.FieldInfo,
	name, x, addr, record string,
	diags *diagnostic.Diagnostics,
) (string, bool) {
	fn := p.pkg.Func(name)
	if fn == nil {
		d := diags.AddError(diagnostic.CodeUnknownCallback,
			fmt.Sprintf("no function %s in package %s", name, p.pkg.Name), record, fieldPath(field))
		if alt, ok := match.Closest(name, p.pkg.FuncNames()); ok {
			d.Suggest("did you mean %s?", alt)
		}
		return "", false
	}

	fieldType := field.Type.GoType
	sig := fn.Type().(*types.Signature)
	params, results := sig.Params(), sig.Results()

	want := fmt.Sprintf("func(%[1]s, io.Writer) error or func(*%[1]s, io.Writer) error",
		types.TypeString(fieldType, types.RelativeTo(p.pkg.Pkg)))

	bad := func(reason string) (string, bool) {
		d := diags.AddError(diagnostic.CodeCallbackSignature,
			fmt.Sprintf("callback %s %s", name, reason), record, fieldPath(field))
		d.Suggest("declare %s as %s", name, want)
		return "", false
	}

	switch {
	case sig.TypeParams().Len() > 0:
		return bad("is generic")
	case sig.Variadic() || params.Len() != 2:
		return bad("must take exactly two parameters")
	case results.Len() != 1 || !types.Identical(results.At(0).Type(), errorType):
		return bad("must return exactly one error")
	case !isWriter(params.At(1).Type()):
		return bad("must take an io.Writer as second parameter")
	}

	first := params.At(0).Type()
	switch {
	case types.Identical(first, fieldType):
		return x, true
	case types.Identical(first, types.NewPointer(fieldType)):
		return addr, true
	}

	return bad(fmt.Sprintf("takes %s, not the field type",
		types.TypeString(first, types.RelativeTo(p.pkg.Pkg))))
}

func (p *Planner) addUnsupported(diags *diagnostic.Diagnostics, record string, field *analyze.FieldInfo, err error) {
	d := diags.AddError(diagnostic.CodeUnsupportedType, err.Error(), record, fieldPath(field))

	if named, ok := types.Unalias(field.Type.GoType).(*types.Named); ok {
		obj := named.Obj()
		if _, isStruct := named.Underlying().(*types.Struct); isStruct && obj.Pkg() == p.pkg.Pkg {
			d.Suggest("add %s to the generated types", obj.Name())
		}
	}
	d.Suggest("render it with %s:\"callback=...\" or leave it out with %s:\"-\"", p.config.TagKey, p.config.TagKey)
}

// Operand returns expr in a form that accepts a method call.
func Operand(expr string) string {
	if strings.HasPrefix(expr, "&") || strings.HasPrefix(expr, "*") {
		return "(" + expr + ")"
	}

	return expr
}

func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	recv := common.LowerFirst(string(r))
	if slices.Contains(reservedReceivers, recv) {
		return "r"
	}

	return recv
}

func fieldPath(field *analyze.FieldInfo) string {
	if field.Pos == "" {
		return field.Name
	}

	return field.Name + " (" + field.Pos + ")"
}

var errorType = types.Universe.Lookup("error").Type()

func isWriter(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "io" && obj.Name() == "Writer"
}

func logDebug(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}

	logger.Debug(msg, args...)
}
