package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"context-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeTypeNotFound          = "type-not-found"
	CodeNotAStruct            = "not-a-struct"
	CodeMalformedDirective    = "malformed-directive"
	CodeUnknownDirective      = "unknown-directive"
	CodeEmptyDirective        = "empty-directive"
	CodeConflictingDirectives = "conflicting-directives"
	CodeDuplicateName         = "duplicate-name"
	CodeFingerprintCollision  = "fingerprint-collision"
	CodeUnknownCallback       = "unknown-callback"
	CodeCallbackSignature     = "callback-signature"
	CodeUnsupportedType       = "unsupported-type"
	CodeUnknownField          = "unknown-field"
	CodeEmptyRecord           = "empty-record"
	CodeSkippedField          = "skipped-field"
	CodeUnusedOverride        = "unused-override"
)

// Diagnostics holds every diagnostic of one planning run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record names the record type this relates to (if any).
	Record string
	// FieldPath identifies the Go field this relates to (if any).
	FieldPath string
	// Suggestions are potential fixes.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic and returns it for further decoration.
func (d *Diagnostics) AddError(code, message, record, fieldPath string) *Diagnostic {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, record, fieldPath))
	return &d.Errors[len(d.Errors)-1]
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record, fieldPath string) *Diagnostic {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, record, fieldPath))
	return &d.Warnings[len(d.Warnings)-1]
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, record, fieldPath string) *Diagnostic {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, record, fieldPath))
	return &d.Infos[len(d.Infos)-1]
}

func newDiagnostic(s Severity, code, message, record, fieldPath string) Diagnostic {
	return Diagnostic{
		Severity:  s,
		Code:      code,
		Message:   message,
		Record:    record,
		FieldPath: fieldPath,
	}
}

// Suggest appends a suggested fix.
func (d *Diagnostic) Suggest(format string, args ...any) {
	d.Suggestions = append(d.Suggestions, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns every diagnostic, most severe first. Within one severity the
// order of insertion is kept.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)
	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		return cmp.Compare(b.Severity, a.Severity)
	})
	return all
}

// Codes returns the codes of all error diagnostics, in order.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}
	return codes
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Record != "" {
		prefix = append(prefix, "["+d.Record+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
