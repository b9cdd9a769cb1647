package gen

import (
	"fmt"
	"strings"

	"github.com/chRyNaN/glimpse/internal/dispatch"
	"github.com/chRyNaN/glimpse/internal/model"
	"github.com/chRyNaN/glimpse/internal/resolve"
)

// emitter renders dispatch plans as Go statements. One emitter serves one
// constructor, so tier numbers never repeat inside it.
type emitter struct {
	imports  *importSet
	stylePkg string
	tier     int
	// usesResources is set once any statement reads from resources.
	usesResources bool
}

// scope is where statements are emitted.
type scope struct {
	// array is the typed array variable, empty on the default path.
	array string
	// result precedes the error in return statements ("nil, " in the
	// constructor body).
	result string
}

func (e *emitter) next() int {
	n := e.tier
	e.tier++

	return n
}

// st qualifies a member of the style package.
func (e *emitter) st(name string) string {
	return e.imports.qualify(e.stylePkg, name)
}

func (e *emitter) ref(sym resolve.SymbolReference) string {
	return e.imports.qualify(sym.Registry, sym.FullLocalName)
}

// plan writes the statements populating one field.
func (e *emitter) plan(w *strings.Builder, p dispatch.Plan, sc scope) {
	field := "target." + p.Field.Name

	fail := func(errVar string) string {
		return fmt.Sprintf("return %s&%s{Field: %q, Err: %s}\n", sc.result, e.st("FieldError"), p.Field.Name, errVar)
	}

	var value string

	if p.Probes() {
		typ := e.valueType(p.Field.Kind)
		zero := zeroValue(p.Field.Kind)

		var attempts strings.Builder

		for _, s := range p.Steps {
			fmt.Fprintf(&attempts, "%s[%s]{\nGet: func() (%s, error) {\n", e.st("Attempt"), typ, typ)

			onErr := func(errVar string) string {
				return fmt.Sprintf("return %s, %s\n", zero, errVar)
			}

			fmt.Fprintf(&attempts, "return %s\n},\n", e.call(&attempts, s.Call, sc, onErr))

			switch s.Recover {
			case dispatch.RecoverKindMismatch:
				fmt.Fprintf(&attempts, "Recover: %s,\n", e.st("IsKindMismatch"))
			case dispatch.RecoverAny:
				fmt.Fprintf(&attempts, "Recover: %s,\n", e.st("Always"))
			case dispatch.RecoverNone:
			}

			attempts.WriteString("},\n")
		}

		n := e.next()
		value = fmt.Sprintf("v%d", n)
		fmt.Fprintf(w, "v%d, err%d := %s(\n%s)\n", n, n, e.st("Probe"), attempts.String())
		fmt.Fprintf(w, "if err%d != nil {\n%s}\n", n, fail(fmt.Sprintf("err%d", n)))
	} else {
		call := e.call(w, p.Steps[0].Call, sc, fail)

		n := e.next()
		value = fmt.Sprintf("v%d", n)
		fmt.Fprintf(w, "v%d, err%d := %s\n", n, n, call)
		fmt.Fprintf(w, "if err%d != nil {\n%s}\n", n, fail(fmt.Sprintf("err%d", n)))
	}

	fmt.Fprintf(w, "%s = %s\n", field, value)

	if p.Convert {
		e.usesResources = true
		fmt.Fprintf(w, "%s = int(float32(%s) / (float32(resources.DisplayMetrics().DensityDPI) / %s))\n",
			field, field, e.st("DensityDefault"))
	}

	if p.Fallback != nil {
		fmt.Fprintf(w, "if %s == %s {\n", field, zeroValue(p.Field.Kind))

		call := e.call(w, *p.Fallback, sc, fail)

		n := e.next()
		fmt.Fprintf(w, "v%d, err%d := %s\n", n, n, call)
		fmt.Fprintf(w, "if err%d != nil {\n%s}\n", n, fail(fmt.Sprintf("err%d", n)))
		fmt.Fprintf(w, "%s = v%d\n}\n", field, n)
	}
}

// call returns the accessor call expression for c. Statements looking up
// its default are written to w first; onErr renders their failure.
func (e *emitter) call(w *strings.Builder, c dispatch.Call, sc scope, onErr func(errVar string) string) string {
	args := e.ref(c.Symbol)

	if c.Source == dispatch.SourceResources {
		e.usesResources = true

		if c.Accessor == dispatch.Fraction {
			args += fmt.Sprintf(", %d, %d", c.Base, c.PBase)
		}

		return "resources." + c.Accessor.String() + "(" + args + ")"
	}

	if c.Accessor == dispatch.Fraction {
		args += fmt.Sprintf(", %d, %d", c.Base, c.PBase)
	}

	if c.Accessor.TakesDefault() {
		def := c.Zero

		if c.Default != nil {
			defCall := e.call(w, *c.Default, sc, onErr)

			n := e.next()
			def = fmt.Sprintf("def%d", n)
			fmt.Fprintf(w, "def%d, err%d := %s\n", n, n, defCall)
			fmt.Fprintf(w, "if err%d != nil {\n%s}\n", n, onErr(fmt.Sprintf("err%d", n)))
		}

		args += ", " + def
	}

	return sc.array + "." + c.Accessor.String() + "(" + args + ")"
}

// valueType is the Go type an accessor returns for kind.
func (e *emitter) valueType(kind model.ValueKind) string {
	switch kind {
	case model.KindBool:
		return "bool"
	case model.KindInt:
		return "int"
	case model.KindFloat:
		return "float32"
	case model.KindString:
		return "string"
	case model.KindColorStateList:
		return "*" + e.st("ColorStateList")
	case model.KindDrawable:
		return e.st("Drawable")
	case model.KindText:
		return e.st("Text")
	case model.KindTextArray:
		return "[]" + e.st("Text")
	default:
		return "any"
	}
}

func zeroValue(kind model.ValueKind) string {
	switch kind {
	case model.KindBool:
		return "false"
	case model.KindInt, model.KindFloat:
		return "0"
	case model.KindString:
		return `""`
	default:
		return "nil"
	}
}
