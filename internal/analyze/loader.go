package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ErrNoPackages is returned when the patterns match nothing.
var ErrNoPackages = errors.New("no packages matched")

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	fset      *token.FileSet

	dir     string
	exclude map[string]bool
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved against.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithExclude loads the named files with their declarations removed. The
// generator excludes the file it is about to overwrite so a stale version
// cannot break type checking.
func WithExclude(paths ...string) Option {
	return func(a *Analyzer) {
		for _, p := range paths {
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
			a.exclude[p] = true
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
		fset:      token.NewFileSet(),
		exclude:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., ".", "context-generator/examples/records").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context:   ctx,
		Mode:      LoadMode,
		Dir:       a.dir,
		Fset:      a.fset,
		ParseFile: a.parseFile,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	// Check for package errors
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		dir := ""
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}
		a.AddPackage(pkg.Types, dir)
		logDebug(a.logger, "loaded package", "path", pkg.PkgPath, "dir", dir, "files", len(pkg.GoFiles))
	}

	return a.graph, nil
}

// parseFile parses a source file, reducing excluded files to their package
// clause.
func (a *Analyzer) parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	const mode = parser.AllErrors | parser.ParseComments
	if !a.exclude[filename] {
		return parser.ParseFile(fset, filename, src, mode)
	}

	f, err := parser.ParseFile(fset, filename, src, parser.PackageClauseOnly)
	if err != nil {
		return nil, err
	}
	logDebug(a.logger, "excluding file from analysis", "file", filename)

	return f, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// AddPackage extracts types and functions from a type-checked package.
func (a *Analyzer) AddPackage(pkg *types.Package, dir string) *PackageInfo {
	pkgInfo := &PackageInfo{
		Path:  pkg.Path(),
		Name:  pkg.Name(),
		Dir:   dir,
		Funcs: make(map[string]*types.Func),
		Pkg:   pkg,
	}
	// Registered first so types of this package are not treated as external.
	a.graph.Packages[pkg.Path()] = pkgInfo

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			if obj.IsAlias() {
				continue
			}

			typeID := TypeID{
				PkgPath: pkg.Path(),
				Name:    name,
			}

			typeInfo := a.analyzeType(obj.Type())
			typeInfo.ID = typeID

			a.graph.Types[typeID] = typeInfo
			pkgInfo.Types = append(pkgInfo.Types, typeID)

		case *types.Func:
			pkgInfo.Funcs[name] = obj
		}
	}

	return pkgInfo
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
		View:   ViewOf(t),
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Channels, functions, type parameters and tuples are not supported
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	pkgPath := ""
	if obj.Pkg() != nil {
		pkgPath = obj.Pkg().Path()
	}
	info.ID = TypeID{
		PkgPath: pkgPath,
		Name:    obj.Name(),
	}

	underlying := named.Underlying()

	if a.isExternalPackage(pkgPath) {
		// External/opaque type (e.g., time.Time); its fields are never read
		info.Kind = TypeKindExternal
		info.Underlying = a.analyzeType(underlying)
		return
	}

	switch ut := underlying.(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else (e.g., type Status string)
		info.Kind = TypeKindNamed
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported fields
// are kept since generated code lives in the same package; blank fields are
// dropped.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" {
			continue
		}

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		}
		if pos := a.fset.Position(field.Pos()); pos.IsValid() {
			fieldInfo.Pos = fmt.Sprintf("%s:%d", filepath.Base(pos.Filename), pos.Line)
		}

		info.Fields = append(info.Fields, fieldInfo)
	}
}

// GetStruct returns the TypeInfo for a named struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	return a.graph.Struct(pkgPath, typeName)
}

// ErrTypeNotFound and ErrNotAStruct are returned by Struct lookups.
var (
	ErrTypeNotFound = errors.New("type not found")
	ErrNotAStruct   = errors.New("type is not a struct")
)

// Struct returns the TypeInfo for a named struct of an analyzed package.
func (g *TypeGraph) Struct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := g.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}
	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("%w: %s (kind: %s)", ErrNotAStruct, id, info.Kind)
	}

	return info, nil
}
