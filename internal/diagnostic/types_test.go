package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiagnostics_ReportRoutesBySeverity(t *testing.T) {
	var d Diagnostics

	d.AddNote(CodeResolved, "resolved Value", "widget.Widget", "TitleColor")
	d.AddWarning(CodeIgnoredMarker, "marker ignored", "widget.Widget", "Label")
	d.AddError(CodeInvalidField, "field is embedded", "widget.Widget", "Base")

	assert.Len(t, d.Notes, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Errors, 1)
	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 3)
	assert.Equal(t, SeverityError, d.All()[0].Severity)
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddError(CodeUnresolvedSymbol, "not a registry reference", "w.Widget", "Size")
	d.AddError(CodeInvalidField, "unexported", "w.Widget", "size")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"[w.Widget] Size: [unresolved_symbol] not a registry reference; [w.Widget] size: [invalid_field] unexported",
		err.Error())
}

func TestDiagnostic_StringWithPositionAndSuggestions(t *testing.T) {
	d := Diagnostic{
		Severity:    SeverityError,
		Code:        CodeUnresolvedSymbol,
		Message:     "res.Styleable.Widget_colr is not declared",
		Pos:         token.Position{Filename: "widget.go", Line: 12, Column: 2},
		Suggestions: []string{"Widget_color"},
	}

	assert.Equal(t,
		"widget.go:12:2: [unresolved_symbol] res.Styleable.Widget_colr is not declared (did you mean Widget_color?)",
		d.String())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddNote(CodeResolved, "a", "", "")
	b.AddError(CodeWriteFailed, "b", "", "")

	a.Merge(b)
	assert.Len(t, a.Notes, 1)
	assert.Len(t, a.Errors, 1)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "note", SeverityNote.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestLogTo(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var d Diagnostics
	d.AddNote(CodeResolved, "resolved", "w.Widget", "Color")
	d.AddError(CodeGenerationFailed, "boom", "w.Widget", "")

	LogTo(zap.New(core), &d)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "Color", entries[1].ContextMap()["field"])
}
