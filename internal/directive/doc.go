// Package directive parses the per-field directives that steer view
// generation.
//
// Directives are written in a struct tag under the "view" key (or a
// configured key), as a comma-separated list of flags and key=value pairs:
//
//	Name   string `view:"rename=name"`
//	Price  Cents  `view:"rename=price,callback=FormatCents"`
//	Meta   Meta   `view:"flatten"`
//	secret string `view:"-"`
//
// Values containing commas or spaces may be single-quoted: rename='a b'.
package directive
