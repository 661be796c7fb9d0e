// Package plan turns analyzed record types into dispatch plans consumed by
// code generation.
//
// Planning pipeline:
//  1. Look up every requested record in the type graph
//  2. Read field directives from struct tags, with YAML overrides winning
//  3. Decide how each field becomes a view (adapter expression)
//  4. Validate render callbacks against the package's functions
//  5. Fingerprint external names, reject duplicates and collisions, and sort
//     the dispatch table by fingerprint
//  6. Emit diagnostics; any error blocks generation
package plan
