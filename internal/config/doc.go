// Package config reads the optional YAML file that steers view generation
// without editing struct tags.
//
// The file has the following structure:
//
//	version: "1"
//	output: records_view.go   # default output file
//	tag: view                 # struct tag key
//	records:
//	  - type: Order
//	    # field directives in tag syntax (highest priority)
//	    fields:
//	      Total: rename=total,callback=FormatCents
//	    # shorthand renames
//	    rename:
//	      ID: id
//	    # fields to leave out
//	    skip: [revision]
//	    # fields to flatten
//	    flatten: Audit
//
// # Priority Order
//
// For each field the first source that mentions it wins:
//  1. "fields" directives
//  2. "rename", "skip" and "flatten" shorthands
//  3. the struct tag
package config
