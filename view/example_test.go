package view_test

import (
	"fmt"
	"os"

	"context-generator/view"
)

func ExampleTypeEnum() {
	for i := range view.TypeTotal {
		t := view.TypeEnum(i)
		fmt.Println(t, t.IsContainer(), t.IsScalar())
	}

	// Output:
	// Object true false
	// Array true false
	// Number false true
	// String false true
	// Bool false true
	// Null false false
}

func ExampleSortedMap() {
	scores := view.SortedMap[string, view.Number[int]]{
		"carol": view.Num(7),
		"alice": view.Num(12),
		"bob":   view.Num(0),
	}
	for name, score := range scores.ContextIter() {
		fmt.Print(name, "=")
		_ = score.Render(os.Stdout)
		fmt.Println(" truthy:", score.IsTruthy())
	}

	// Output:
	// alice=12 truthy: true
	// bob=0 truthy: false
	// carol=7 truthy: true
}

func ExampleNewRecord() {
	address, _ := view.NewRecord([]view.Field{
		{Name: "city", Value: view.String("Lisbon")},
	})
	user, err := view.NewRecord([]view.Field{
		{Name: "name", Value: view.String("Ada")},
		{Name: "tags", Value: view.Seq[view.String]{"admin", "ops"}},
		{Name: "address", Value: address, Flatten: true},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, path := range []string{"name", "tags.1", "city", "address"} {
		v, ok := view.Lookup(user, path)
		if !ok {
			fmt.Println(path, "-> none")
			continue
		}
		s, _ := view.RenderString(v)
		fmt.Println(path, "->", s)
	}

	// Output:
	// name -> Ada
	// tags.1 -> ops
	// city -> Lisbon
	// address -> none
}

func ExampleAny() {
	tree := map[string]any{
		"title": "Q3",
		"items": []any{map[string]any{"sku": "A1", "qty": 2}},
	}
	v := view.Any(tree)
	qty, _ := view.Lookup(v, "items.0.qty")
	s, _ := view.RenderString(qty)
	fmt.Println(v.Type(), v.Len(), s)

	// Output:
	// Object 2 2
}
