package plan

import (
	"cmp"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"context-generator/internal/analyze/analyzetest"
	"context-generator/internal/config"
	"context-generator/internal/diagnostic"
	"context-generator/view"
)

const fixture = `package fixture

import (
	"fmt"
	"io"
	"iter"
)
` + analyzetest.Prelude + `
type Label string

func (Label) IsTruthy() bool                       { return true }
func (Label) RenderCapacityHint() int              { return 0 }
func (Label) Render(io.Writer) error               { return nil }
func (l Label) Pointer(string) (View, bool)        { return l, true }
func (Label) ContextIter() iter.Seq2[string, View] { return nil }
func (Label) Type() int                            { return 0 }
func (Label) Len() int                             { return 1 }

type Node struct{ Name string }

func (*Node) IsTruthy() bool                       { return true }
func (*Node) RenderCapacityHint() int              { return 0 }
func (*Node) Render(io.Writer) error               { return nil }
func (n *Node) Pointer(string) (View, bool)        { return n, true }
func (*Node) ContextIter() iter.Seq2[string, View] { return nil }
func (*Node) Type() int                            { return 0 }
func (*Node) Len() int                             { return 0 }

type Status string

type Key string

type Item struct {
	a string
	b int
}

type Renamed struct {
	a string
	b int ` + "`view:\"rename=c\"`" + `
}

type Scope struct {
	z string
}

type Outer struct {
	name string
	f    Scope ` + "`view:\"flatten\"`" + `
}

type Kinds struct {
	Label  Label
	Node   Node
	Ptr    *Node
	Any    any
	Dyn    View
	Tags   [2]string
	ByKey  map[Key]int
	Raw    []byte
	Nested [][]*int
	Status Status
	Ok     bool
	Ratio  float64
	Item   Item
	Items  []Item
}

type Grid struct {
	Cells  [][2]int
	Fixed  *[3]int
	Rows   [2][2]int
	ByName map[string]*[2]string
}

type Tree []Tree

type Graph map[string]Graph

type Cyclic struct {
	Tree  Tree
	Graph Graph
	Count int
}

type Bad struct {
	Ch      chan int
	Pair    map[int]string
	Scope   Scope
	Stamp   complex64
	Skipped chan int ` + "`view:\"-\"`" + `
}

type Cents int64

type Priced struct {
	Total  Cents ` + "`view:\"callback=FormatCents\"`" + `
	Ref    Cents ` + "`view:\"rename=ref,callback=FormatRef\"`" + `
	Ch     chan int ` + "`view:\"callback=FormatChan\"`" + `
	Miss   Cents ` + "`view:\"callback=FormatCent\"`" + `
	Wrong  Cents ` + "`view:\"callback=Wrong\"`" + `
	Result Cents ` + "`view:\"callback=NoError\"`" + `
}

func FormatCents(c Cents, w io.Writer) error { _, err := fmt.Fprint(w, int64(c)); return err }
func FormatRef(c *Cents, w io.Writer) error  { return FormatCents(*c, w) }
func FormatChan(c chan int, w io.Writer) error { return nil }
func Wrong(c int, w io.Writer) error          { return nil }
func NoError(c Cents, w io.Writer)             {}

type Dup struct {
	A string ` + "`view:\"rename=x\"`" + `
	B string ` + "`view:\"rename=x\"`" + `
}

type Tagged struct {
	A string ` + "`view:\"flaten\"`" + `
	B string ` + "`view:\"skip,rename=b\"`" + `
	C string ` + "`view:\"rename\"`" + `
	D string ` + "`view:\"rename=d,rename=e\"`" + `
}

type Empty struct{}

type Events []string

type Box[T any] struct{ v T }
`

func newPlanner(t *testing.T, cfg Config) *Planner {
	t.Helper()

	graph, _ := analyzetest.Check(t, fixture)
	p, err := NewPlanner(graph, analyzetest.PkgPath, cfg)
	require.NoError(t, err)

	return p
}

func TestPlan_Item(t *testing.T) {
	t.Parallel()

	p := newPlanner(t, DefaultConfig())
	plan, err := p.Plan("Item", "Renamed")
	require.NoError(t, err)
	require.Len(t, plan.Records, 2)

	item := plan.Records[0]
	assert.Equal(t, "Item", item.Name)
	assert.Equal(t, "i", item.Receiver)

	want := []FieldPlan{
		{Name: "a", GoName: "a", Index: 0, Expr: "view.String(i.a)", RenderExpr: "view.String(i.a).Render(w)", Strategy: StrategyString},
		{Name: "b", GoName: "b", Index: 1, Expr: "view.Num(i.b)", RenderExpr: "view.Num(i.b).Render(w)", Strategy: StrategyNumber},
	}
	diff := gocmp.Diff(want, item.Ordered(), cmpopts.IgnoreFields(FieldPlan{}, "Hash"))
	assert.Empty(t, diff)

	assert.Equal(t, view.Fingerprint("a"), item.Field("a").Hash)
	assert.True(t, slices.IsSortedFunc(item.Fields, func(a, b FieldPlan) int {
		return cmp.Compare(a.Hash, b.Hash)
	}))

	renamed := plan.Records[1]
	assert.Nil(t, renamed.Field("b"))
	c := renamed.Field("c")
	require.NotNil(t, c)
	assert.Equal(t, "b", c.GoName)
	assert.Equal(t, SourceTag, c.Source)
	assert.Equal(t, view.Fingerprint("c"), c.Hash)

	assert.Equal(t, []Import{
		{Path: "context-generator/view"},
		{Path: "io", Std: true},
		{Path: "iter", Std: true},
	}, plan.Imports)
}

func TestPlan_Flatten(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Outer", "Scope")
	require.NoError(t, err)

	outer := plan.Records[0]
	require.Len(t, outer.Fields, 1)
	assert.Equal(t, "name", outer.Fields[0].Name)
	assert.Equal(t, []FlattenPlan{{GoName: "f", Index: 1, Expr: "&o.f", Strategy: StrategyAddress}}, outer.Flatten)
	assert.Equal(t, []string{"view.String(o.name)", "&o.f"}, outer.HintExprs())
}

func TestPlan_Strategies(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Kinds", "Item")
	require.NoError(t, err)
	rec := plan.Records[0]
	assert.Equal(t, "r", rec.Receiver)

	tests := []struct {
		field    string
		expr     string
		strategy Strategy
	}{
		{"Label", "r.Label", StrategyDirect},
		{"Node", "&r.Node", StrategyAddress},
		{"Ptr", "view.PtrOf(r.Ptr, func(p *Node) view.View { return p })", StrategyPointer},
		{"Any", "view.Any(r.Any)", StrategyDynamic},
		{"Dyn", "view.Nullable(r.Dyn)", StrategyInterface},
		{"Tags", "view.SliceOf(r.Tags[:], func(e *string) view.View { return view.String(*e) })", StrategySlice},
		{"ByKey", "view.SortedMapOf(r.ByKey, func(v int) view.View { return view.Num(v) })", StrategyMap},
		{"Raw", "view.String(r.Raw)", StrategyBytes},
		{"Nested", "view.SliceOf(r.Nested, func(e *[]*int) view.View { return view.SliceOf(*e, " +
			"func(e1 **int) view.View { return view.PtrOf(*e1, func(p2 *int) view.View { return view.Num(*p2) }) }) })",
			StrategySlice},
		{"Status", "view.String(r.Status)", StrategyString},
		{"Ok", "view.Bool(r.Ok)", StrategyBool},
		{"Ratio", "view.Num(r.Ratio)", StrategyNumber},
		{"Item", "&r.Item", StrategyAddress},
		{"Items", "view.SliceOf(r.Items, func(e *Item) view.View { return e })", StrategySlice},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := rec.Field(tt.field)
			require.NotNil(t, f)
			assert.Equal(t, tt.expr, f.Expr)
			assert.Equal(t, tt.strategy, f.Strategy)
		})
	}

	assert.Equal(t, "(&r.Node).Render(w)", rec.Field("Node").RenderExpr)
}

func TestPlan_Arrays(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Grid")
	require.NoError(t, err)
	rec := plan.Records[0]

	tests := []struct {
		field string
		expr  string
	}{
		{"Cells", "view.SliceOf(g.Cells, func(e *[2]int) view.View { return view.SliceOf((*e)[:], " +
			"func(e1 *int) view.View { return view.Num(*e1) }) })"},
		{"Fixed", "view.PtrOf(g.Fixed, func(p *[3]int) view.View { return view.SliceOf((*p)[:], " +
			"func(e1 *int) view.View { return view.Num(*e1) }) })"},
		{"Rows", "view.SliceOf(g.Rows[:], func(e *[2]int) view.View { return view.SliceOf((*e)[:], " +
			"func(e1 *int) view.View { return view.Num(*e1) }) })"},
		{"ByName", "view.SortedMapOf(g.ByName, func(v *[2]string) view.View { return view.PtrOf(v, " +
			"func(p1 *[2]string) view.View { return view.SliceOf((*p1)[:], func(e2 *string) view.View { return view.String(*e2) }) }) })"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := rec.Field(tt.field)
			require.NotNil(t, f)
			assert.Equal(t, tt.expr, f.Expr)
		})
	}
}

func TestPlan_SelfReferentialTypes(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Cyclic")
	require.Error(t, err)

	assert.Equal(t, []string{diagnostic.CodeUnsupportedType, diagnostic.CodeUnsupportedType}, plan.Diagnostics.Codes())
	for _, d := range plan.Diagnostics.Errors {
		assert.Contains(t, d.Message, "refers to itself")
	}
	assert.Contains(t, plan.Diagnostics.Errors[0].Message, "Tree")
	assert.Contains(t, plan.Diagnostics.Errors[1].Message, "Graph")
}

func TestPlan_Unsupported(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Bad")
	require.Error(t, err)

	assert.Equal(t, []string{
		diagnostic.CodeUnsupportedType,
		diagnostic.CodeUnsupportedType,
		diagnostic.CodeUnsupportedType,
		diagnostic.CodeUnsupportedType,
	}, plan.Diagnostics.Codes())

	scope := plan.Diagnostics.Errors[2]
	assert.Contains(t, scope.FieldPath, "Scope")
	assert.Contains(t, scope.Suggestions, "add Scope to the generated types")
	assert.Contains(t, plan.Diagnostics.Errors[1].Message, "non-string key")

	require.Len(t, plan.Records, 1)
	assert.Equal(t, []string{"Skipped"}, plan.Records[0].Skipped)
	assert.Len(t, plan.Diagnostics.Infos, 1)
}

func TestPlan_Callbacks(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Priced")
	require.Error(t, err)
	rec := plan.Records[0]

	total := rec.Field("Total")
	require.NotNil(t, total)
	assert.Equal(t, "FormatCents", total.Callback)
	assert.Equal(t, "FormatCents(r.Total, w)", total.RenderExpr)
	assert.Equal(t,
		"view.WithRender(view.Num(r.Total), func(w io.Writer) error { return FormatCents(r.Total, w) })",
		total.Expr)
	assert.Equal(t, StrategyNumber, total.Strategy)

	ref := rec.Field("ref")
	require.NotNil(t, ref)
	assert.Equal(t, "FormatRef(&r.Ref, w)", ref.RenderExpr)

	ch := rec.Field("Ch")
	require.NotNil(t, ch)
	assert.Equal(t, StrategyRenderFunc, ch.Strategy)
	assert.Equal(t, "view.RenderFunc(func(w io.Writer) error { return FormatChan(r.Ch, w) })", ch.Expr)

	assert.Equal(t, []string{
		diagnostic.CodeUnknownCallback,
		diagnostic.CodeCallbackSignature,
		diagnostic.CodeCallbackSignature,
	}, plan.Diagnostics.Codes())
	assert.Equal(t, []string{"did you mean FormatCents?"}, plan.Diagnostics.Errors[0].Suggestions)
	assert.Contains(t, plan.Diagnostics.Errors[1].Message, "takes int")
	assert.Contains(t, plan.Diagnostics.Errors[2].Message, "must return exactly one error")
}

func TestPlan_Names(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Dup")
	require.Error(t, err)
	assert.Equal(t, []string{diagnostic.CodeDuplicateName}, plan.Diagnostics.Codes())
	assert.Len(t, plan.Records[0].Fields, 1)

	cfg := DefaultConfig()
	cfg.Fingerprint = func(string) uint64 { return 42 }
	plan, err = newPlanner(t, cfg).Plan("Item")
	require.Error(t, err)
	assert.Equal(t, []string{diagnostic.CodeFingerprintCollision}, plan.Diagnostics.Codes())
	assert.Contains(t, plan.Diagnostics.Errors[0].Message, "0x000000000000002a")
}

func TestPlan_Directives(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Tagged")
	require.Error(t, err)

	assert.Equal(t, []string{
		diagnostic.CodeUnknownDirective,
		diagnostic.CodeConflictingDirectives,
		diagnostic.CodeEmptyDirective,
		diagnostic.CodeMalformedDirective,
	}, plan.Diagnostics.Codes())
	assert.Equal(t, []string{"did you mean flatten?"}, plan.Diagnostics.Errors[0].Suggestions)
}

func TestPlan_ConfigOverrides(t *testing.T) {
	t.Parallel()

	file, err := config.Parse([]byte(`
version: "1"
records:
  - type: Renamed
    rename:
      a: first
    fields:
      b: "-"
  - type: Item
    skip: [c]
  - type: Ghost
`))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Overrides = file
	plan, err := newPlanner(t, cfg).Plan("Renamed", "Item")
	require.Error(t, err)

	renamed := plan.Records[0]
	first := renamed.Field("first")
	require.NotNil(t, first)
	assert.Equal(t, SourceConfig, first.Source)
	assert.Nil(t, renamed.Field("c"), "config replaces the struct tag")
	assert.Equal(t, []string{"b"}, renamed.Skipped)

	assert.Equal(t, []string{diagnostic.CodeUnknownField}, plan.Diagnostics.Codes())
	require.Len(t, plan.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnusedOverride, plan.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "Ghost", plan.Diagnostics.Warnings[0].Record)
}

func TestPlan_Lookup(t *testing.T) {
	t.Parallel()

	plan, err := newPlanner(t, DefaultConfig()).Plan("Iteem", "Events", "Empty")
	require.Error(t, err)

	assert.Equal(t, []string{diagnostic.CodeTypeNotFound, diagnostic.CodeNotAStruct}, plan.Diagnostics.Codes())
	assert.Equal(t, []string{"did you mean Item?"}, plan.Diagnostics.Errors[0].Suggestions)

	require.Len(t, plan.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeEmptyRecord, plan.Diagnostics.Warnings[0].Code)

	_, err = newPlanner(t, DefaultConfig()).Plan()
	require.Error(t, err)

	plan, err = newPlanner(t, DefaultConfig()).Plan("Box")
	require.Error(t, err)
	assert.Equal(t, []string{diagnostic.CodeUnsupportedType}, plan.Diagnostics.Codes())
	assert.Empty(t, plan.Records)
}

func TestNewPlanner_UnknownPackage(t *testing.T) {
	t.Parallel()

	graph, _ := analyzetest.Check(t, fixture)
	_, err := NewPlanner(graph, "example.com/missing", DefaultConfig())
	require.Error(t, err)
}

func TestReceiverName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "o", receiverName("Order"))
	assert.Equal(t, "r", receiverName("Walker"))
	assert.Equal(t, "r", receiverName("Event"))
	assert.Equal(t, "é", receiverName("Été"))
}

func TestOperand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(&o.a)", Operand("&o.a"))
	assert.Equal(t, "(*p)", Operand("*p"))
	assert.Equal(t, "view.Num(o.b)", Operand("view.Num(o.b)"))
}
