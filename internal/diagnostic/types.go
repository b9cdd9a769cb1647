package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/chRyNaN/glimpse/internal/common"
)

// Diagnostic codes.
const (
	CodeResolved         = "resolved"
	CodeUnresolvedSymbol = "unresolved_symbol"
	CodeInvalidField     = "invalid_field"
	CodeAnnotationSyntax = "annotation_syntax"
	CodeIgnoredMarker    = "ignored_marker"
	CodeGenerationFailed = "generation_failed"
	CodeWriteFailed      = "write_failed"
	CodeOmittedDefault   = "omitted_default"
	CodeTypeError        = "type_error"
	CodeRemovedStale     = "removed_stale"
)

// Sink accepts diagnostics. Reporting never influences generation decisions.
type Sink interface {
	Report(d Diagnostic)
}

// Diagnostics holds all diagnostic information from one generation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Notes    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Target identifies the target type this relates to (if any).
	Target string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Pos is the source position (zero when unknown).
	Pos token.Position
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Report implements Sink.
func (d *Diagnostics) Report(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Notes = append(d.Notes, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, target, fieldPath string) {
	d.Report(Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Message:   message,
		Target:    target,
		FieldPath: fieldPath,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, target, fieldPath string) {
	d.Report(Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Target:    target,
		FieldPath: fieldPath,
	})
}

// AddNote adds a note diagnostic.
func (d *Diagnostics) AddNote(code, message, target, fieldPath string) {
	d.Report(Diagnostic{
		Severity:  SeverityNote,
		Code:      code,
		Message:   message,
		Target:    target,
		FieldPath: fieldPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Notes = append(d.Notes, other.Notes...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Notes))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Notes...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
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
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String())
	}

	if d.Target != "" {
		prefix = append(prefix, "["+d.Target+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
