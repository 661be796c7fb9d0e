// Package analyze loads Go packages and extracts the records a view is
// generated for.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory model of named types, their fields and the package-level
// functions that may serve as render callbacks.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: kind (struct/basic/named/pointer/slice/array/map/interface/external)
//     and whether the type already satisfies the view contract
//   - FieldInfo: field name, type, raw tag and position
package analyze
