package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"context-generator/internal/diagnostic"
)

// printDiagnostics writes errors and warnings, most severe first. Infos are
// only shown when verbose.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics, verbose, colored bool) {
	var (
		errStyle  = color.New(color.FgRed, color.Bold)
		warnStyle = color.New(color.FgYellow)
		infoStyle = color.New(color.FgCyan)
		hint      = color.New(color.Faint)
	)
	for _, c := range []*color.Color{errStyle, warnStyle, infoStyle, hint} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	styles := map[diagnostic.Severity]*color.Color{
		diagnostic.SeverityError:   errStyle,
		diagnostic.SeverityWarning: warnStyle,
		diagnostic.SeverityInfo:    infoStyle,
	}

	for _, d := range diags.All() {
		if d.Severity == diagnostic.SeverityInfo && !verbose {
			continue
		}

		styles[d.Severity].Fprintf(w, "%s: ", d.Severity)
		fmt.Fprintln(w, d.String())
		for _, s := range d.Suggestions {
			hint.Fprintf(w, "\thint: %s\n", s)
		}
	}
}
