// Package analyzetest type-checks Go source held in memory so analysis and
// planning can be tested without packages on disk.
package analyzetest

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"context-generator/internal/analyze"
)

// PkgPath is the import path given to checked sources.
const PkgPath = "example.com/fixture"

// Prelude declares a minimal view contract so fixtures can define view
// types without importing the real view package.
const Prelude = `
type View interface {
	IsTruthy() bool
	RenderCapacityHint() int
	Render(w io.Writer) error
	Pointer(key string) (View, bool)
	ContextIter() iter.Seq2[string, View]
	Type() int
	Len() int
}
`

// Check type-checks the given files, each a complete Go source, and returns
// the analyzed package.
func Check(t testing.TB, files ...string) (*analyze.TypeGraph, *analyze.PackageInfo) {
	t.Helper()

	fset := token.NewFileSet()
	parsed := make([]*ast.File, 0, len(files))
	for i, src := range files {
		f, err := parser.ParseFile(fset, fileName(i), src, parser.ParseComments)
		require.NoError(t, err)
		parsed = append(parsed, f)
	}

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check(PkgPath, fset, parsed, nil)
	require.NoError(t, err)

	a := analyze.NewAnalyzer()
	info := a.AddPackage(pkg, "")

	return a.Graph(), info
}

// Struct is Check followed by a lookup of the named struct.
func Struct(t testing.TB, name string, files ...string) *analyze.TypeInfo {
	t.Helper()

	graph, _ := Check(t, files...)
	info, err := graph.Struct(PkgPath, name)
	require.NoError(t, err)

	return info
}

func fileName(i int) string {
	return "fixture" + string(rune('a'+i)) + ".go"
}
