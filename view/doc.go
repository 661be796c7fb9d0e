// Package view provides the renderable context contract consumed by text
// templating engines.
//
// Every value taking part in a context tree is seen through the View
// interface: truthiness for conditional sections, a capacity hint for output
// buffers, byte-level rendering, single-segment path lookup and key-ordered
// iteration for loops.
//
// Built-in adapters:
//   - Number, Bool, String, Null: scalars
//   - Option, Result: present/absent and success/failure wrappers
//   - Seq, SliceOf: sequences, iterated by decimal index
//   - Map, SortedMap, SortedMapOf: string-keyed maps
//   - Pair: a single name/value entry
//   - Indirect, PtrOf: transparent forwarding through pointers
//   - Any: decoded JSON/YAML trees
//   - Record: a fingerprint-sorted field table built at runtime
//
// Record types get their View implementation from cmd/context-generator,
// which emits a fingerprint switch per type instead of using reflection.
package view
