package analyze

import "go/types"

// viewMethods lists the view contract by method name with its parameter and
// result counts.
var viewMethods = map[string][2]int{
	"IsTruthy":           {0, 1},
	"RenderCapacityHint": {0, 1},
	"Render":             {1, 1},
	"Pointer":            {1, 2},
	"ContextIter":        {0, 1},
	"Type":               {0, 1},
	"Len":                {0, 1},
}

// hasViewMethods reports whether the method set carries the whole view
// contract. Methods are matched by name and arity, so records using a view
// package under any import path are recognized.
func hasViewMethods(ms *types.MethodSet) bool {
	found := 0
	for i := range ms.Len() {
		fn, ok := ms.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		want, ok := viewMethods[fn.Name()]
		if !ok {
			continue
		}
		sig := fn.Signature()
		if sig.Params().Len() != want[0] || sig.Results().Len() != want[1] {
			return false
		}
		found++
	}

	return found == len(viewMethods)
}

// ViewOf reports how t implements the view contract.
func ViewOf(t types.Type) ViewImpl {
	if hasViewMethods(types.NewMethodSet(t)) {
		return ViewValue
	}
	if _, isPtr := t.(*types.Pointer); isPtr || types.IsInterface(t) {
		return ViewNone
	}
	if hasViewMethods(types.NewMethodSet(types.NewPointer(t))) {
		return ViewPointer
	}

	return ViewNone
}

// IsViewInterface reports whether t is an interface type whose method set
// is the view contract or a superset of it.
func IsViewInterface(t types.Type) bool {
	return types.IsInterface(t) && hasViewMethods(types.NewMethodSet(t))
}
