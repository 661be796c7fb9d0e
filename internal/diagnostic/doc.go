// Package diagnostic collects structured errors, warnings and notes produced
// while planning view code for record types.
//
// Every error blocks code emission. Diagnostics carry a stable code, the
// record they concern and, when relevant, the Go field path.
package diagnostic
