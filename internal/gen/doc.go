// Package gen renders dispatch plans as Go source.
//
// Generation uses text/template + go/format. For every record the generated
// file holds the full view method set on the pointer receiver:
//   - Pointer dispatches on the key's fingerprint with a switch whose cases
//     are sorted by value, then tries flattened fields in order
//   - RenderField dispatches the same way but writes straight to the sink
//   - ContextIter yields fields in declaration order, flattened ones last
//   - RenderCapacityHint sums the hints of every exposed field
package gen
