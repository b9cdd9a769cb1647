package model

import (
	"fmt"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"github.com/chRyNaN/glimpse/internal/analyze"
	"github.com/chRyNaN/glimpse/internal/annotation"
	"github.com/chRyNaN/glimpse/internal/diagnostic"
	"github.com/chRyNaN/glimpse/internal/expr"
	"github.com/chRyNaN/glimpse/internal/resolve"
)

// Default marker annotation names.
const (
	DefaultColorInt  = "ColorInt"
	DefaultDimension = "Dimension"
)

// UnitArgument is the Dimension annotation's unit argument.
const UnitArgument = "Unit"

// Input is one field element with its resolved annotation values.
type Input struct {
	Target    analyze.TypeID
	Element   analyze.FieldElement
	Attribute resolve.SymbolReference
	Default   *resolve.SymbolReference
}

// Builder turns analyzed field elements into descriptors.
type Builder struct {
	// StylePkg is the import path of the runtime style package.
	StylePkg string
	// OutputPkg is the import path the binding is generated into.
	OutputPkg string
	// ColorInt and Dimension are the marker annotation names.
	ColorInt  string
	Dimension string
	// Sink receives warnings for ignored markers. Nil discards them.
	Sink diagnostic.Sink
}

// Build validates the element and returns its descriptor.
func (b *Builder) Build(in Input) (FieldDescriptor, error) {
	elem := in.Element

	invalid := func(format string, args ...any) error {
		return &InvalidFieldError{Field: elem.Name, Reason: fmt.Sprintf(format, args...), Pos: elem.Pos}
	}

	switch {
	case elem.Embedded:
		return FieldDescriptor{}, invalid("embedded fields cannot be bound")
	case elem.Name == "_" || elem.Name == "":
		return FieldDescriptor{}, invalid("blank fields cannot be bound")
	case !elem.Exported && b.OutputPkg != "" && b.OutputPkg != in.Target.PkgPath:
		return FieldDescriptor{}, invalid("unexported field is not visible from %s", b.OutputPkg)
	}

	kind, ok := b.kindOf(elem.GoType)
	if !ok {
		return FieldDescriptor{}, invalid("unsupported type %s", analyze.TypeString(elem.GoType, nil))
	}

	if in.Attribute.GroupLocalName == "" {
		return FieldDescriptor{}, invalid("attribute %s has no group", in.Attribute)
	}

	d := FieldDescriptor{
		Name:      elem.Name,
		Kind:      kind,
		Attribute: in.Attribute,
		Default:   in.Default,
		Pos:       elem.Pos,
	}

	colorInt := annotation.Find(elem.Annotations, b.colorIntName())
	dimension := annotation.Find(elem.Annotations, b.dimensionName())

	if colorInt != nil && kind != KindInt {
		b.warn(in, "@%s ignored on %s field", colorInt.Name, kind)
		colorInt = nil
	}

	if dimension != nil && kind != KindInt && kind != KindFloat {
		b.warn(in, "@%s ignored on %s field", dimension.Name, kind)
		dimension = nil
	}

	switch {
	case colorInt != nil:
		d.Hint = HintColor

		if dimension != nil {
			b.warn(in, "@%s ignored: @%s takes precedence", dimension.Name, colorInt.Name)
		}
	case dimension != nil:
		unit, err := parseUnit(expr.Argument(dimension, UnitArgument))
		if err != nil {
			return FieldDescriptor{}, invalid("%v", err)
		}

		d.Hint = HintDimension
		d.Unit = unit
	}

	return d, nil
}

func (b *Builder) colorIntName() string {
	if b.ColorInt == "" {
		return DefaultColorInt
	}

	return b.ColorInt
}

func (b *Builder) dimensionName() string {
	if b.Dimension == "" {
		return DefaultDimension
	}

	return b.Dimension
}

func (b *Builder) warn(in Input, format string, args ...any) {
	if b.Sink == nil {
		return
	}

	b.Sink.Report(diagnostic.Diagnostic{
		Severity:  diagnostic.SeverityWarning,
		Code:      diagnostic.CodeIgnoredMarker,
		Message:   fmt.Sprintf(format, args...),
		Target:    in.Target.String(),
		FieldPath: analyze.FieldPath(in.Target.Name, in.Element.Name),
		Pos:       in.Element.Pos,
	})
}

// kindOf maps a Go field type onto a value kind.
func (b *Builder) kindOf(t types.Type) (ValueKind, bool) {
	switch t := t.(type) {
	case *types.Basic:
		switch t.Kind() {
		case types.Bool:
			return KindBool, true
		case types.Int:
			return KindInt, true
		case types.Float32:
			return KindFloat, true
		case types.String:
			return KindString, true
		}
	case *types.Pointer:
		if b.isStyle(t.Elem(), "ColorStateList") {
			return KindColorStateList, true
		}
	case *types.Slice:
		if b.isStyle(t.Elem(), "Text") {
			return KindTextArray, true
		}
	case *types.Named:
		switch {
		case b.isStyle(t, "Drawable"):
			return KindDrawable, true
		case b.isStyle(t, "Text"):
			return KindText, true
		}
	}

	return 0, false
}

func (b *Builder) isStyle(t types.Type, name string) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == b.StylePkg && obj.Name() == name
}

// parseUnit reads a Dimension unit: PX, DP or SP written as an identifier,
// a qualified identifier or a string, or the integers 0 (DP), 1 (PX) and
// 2 (SP). A missing unit is PX.
func parseUnit(n expr.Node) (Unit, error) {
	if n == nil {
		return UnitPX, nil
	}

	var name string

	switch v := n.(type) {
	case *expr.Identifier:
		name = v.Name
	case *expr.MemberSelect:
		name = v.Sel.Name
	case *expr.Literal:
		switch v.Kind {
		case token.STRING:
			s, err := strconv.Unquote(v.Value)
			if err != nil {
				return UnitUnset, fmt.Errorf("invalid dimension unit %s", v.Value)
			}

			name = s
		case token.INT:
			switch v.Value {
			case "0":
				return UnitDP, nil
			case "1":
				return UnitPX, nil
			case "2":
				return UnitSP, nil
			}
		}
	}

	switch strings.ToUpper(name) {
	case "PX":
		return UnitPX, nil
	case "DP", "DIP":
		return UnitDP, nil
	case "SP":
		return UnitSP, nil
	}

	return UnitUnset, fmt.Errorf("unknown dimension unit %s", expr.Render(n))
}
