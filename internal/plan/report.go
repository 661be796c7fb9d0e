package plan

import (
	"fmt"
	"strings"
)

// Report summarizes a plan for humans.
type Report struct {
	Records []RecordReport
}

// RecordReport describes the dispatch table of one record.
type RecordReport struct {
	Name    string
	Fields  []FieldReport
	Flatten []string
	Skipped []string
}

// FieldReport describes one dispatch entry.
type FieldReport struct {
	Hash     uint64
	Name     string
	GoName   string
	Strategy string
	Callback string
	Source   string
}

// GenerateReport creates a report from a plan.
func GenerateReport(plan *Plan) *Report {
	report := &Report{}

	for _, rec := range plan.Records {
		rr := RecordReport{
			Name:    rec.Name,
			Skipped: rec.Skipped,
		}

		for _, f := range rec.Fields {
			rr.Fields = append(rr.Fields, FieldReport{
				Hash:     f.Hash,
				Name:     f.Name,
				GoName:   f.GoName,
				Strategy: f.Strategy.String(),
				Callback: f.Callback,
				Source:   f.Source.String(),
			})
		}

		for _, f := range rec.Flatten {
			rr.Flatten = append(rr.Flatten, f.GoName)
		}

		report.Records = append(report.Records, rr)
	}

	return report
}

// FormatReport formats a report as human-readable text.
func FormatReport(report *Report) string {
	var sb strings.Builder

	for _, rec := range report.Records {
		fmt.Fprintf(&sb, "\n=== %s ===\n", rec.Name)
		fmt.Fprintf(&sb, "Fields: %d, Flattened: %d, Skipped: %d\n",
			len(rec.Fields), len(rec.Flatten), len(rec.Skipped))

		for _, f := range rec.Fields {
			fmt.Fprintf(&sb, "  0x%016x %-16s <- %s (%s", f.Hash, f.Name, f.GoName, f.Strategy)
			if f.Callback != "" {
				fmt.Fprintf(&sb, ", callback %s", f.Callback)
			}
			if f.Source != SourceNone.String() {
				fmt.Fprintf(&sb, ", from %s", f.Source)
			}
			sb.WriteString(")\n")
		}

		for _, name := range rec.Flatten {
			fmt.Fprintf(&sb, "  flatten %s\n", name)
		}

		if len(rec.Skipped) > 0 {
			fmt.Fprintf(&sb, "  skipped %s\n", strings.Join(rec.Skipped, ", "))
		}
	}

	return sb.String()
}
