// Package match compares identifiers. It backs the "did you mean"
// suggestions of generator diagnostics and derives file names from type
// names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Rank, Closest: rank candidate names by similarity
//   - SnakeCase: converts CamelCase identifiers to snake_case
package match
