package model

import (
	"fmt"
	"go/token"

	"github.com/chRyNaN/glimpse/internal/analyze"
	"github.com/chRyNaN/glimpse/internal/common"
	"github.com/chRyNaN/glimpse/internal/resolve"
)

// ValueKind is the closed set of field value kinds a binding can populate.
type ValueKind int

const (
	KindBool ValueKind = iota + 1
	KindInt
	KindFloat
	KindColorStateList
	KindDrawable
	KindText
	KindTextArray
	KindString
)

// String returns a human-readable representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindColorStateList:
		return "color-state-list"
	case KindDrawable:
		return "drawable"
	case KindText:
		return "text"
	case KindTextArray:
		return "text-array"
	case KindString:
		return "string"
	default:
		return common.UnknownStr
	}
}

// IsReference reports whether values of the kind may be nil, so that a
// declared default is applied only when the attribute yields nothing.
func (k ValueKind) IsReference() bool {
	switch k {
	case KindColorStateList, KindDrawable, KindText, KindTextArray, KindString:
		return true
	default:
		return false
	}
}

// Hint says how an int field is read. HintNone leaves it ambiguous.
type Hint int

const (
	HintNone Hint = iota
	HintColor
	HintDimension
)

// String returns a human-readable representation of the Hint.
func (h Hint) String() string {
	switch h {
	case HintNone:
		return "none"
	case HintColor:
		return "color"
	case HintDimension:
		return "dimension"
	default:
		return common.UnknownStr
	}
}

// Unit is the measurement unit of a dimension field.
type Unit int

const (
	UnitUnset Unit = iota
	UnitPX
	UnitDP
	UnitSP
)

// String returns a human-readable representation of the Unit.
func (u Unit) String() string {
	switch u {
	case UnitUnset:
		return "unset"
	case UnitPX:
		return "PX"
	case UnitDP:
		return "DP"
	case UnitSP:
		return "SP"
	default:
		return common.UnknownStr
	}
}

// Converts reports whether values in the unit are converted from pixels.
func (u Unit) Converts() bool {
	return u == UnitDP || u == UnitSP
}

// FieldDescriptor is everything the generator needs to know about one
// bound field. It is built once and never modified.
type FieldDescriptor struct {
	Name      string
	Kind      ValueKind
	Attribute resolve.SymbolReference
	// Default is nil when no default resource was declared.
	Default *resolve.SymbolReference
	Hint    Hint
	Unit    Unit
	Pos     token.Position
}

// HasDefault reports whether a default resource was declared.
func (f FieldDescriptor) HasDefault() bool {
	return f.Default != nil
}

// Group returns the attribute group the field is read from.
func (f FieldDescriptor) Group() resolve.AttributeGroupSymbol {
	return f.Attribute.Group()
}

// TargetType is a struct type together with its bound fields, in
// declaration order.
type TargetType struct {
	ID          analyze.TypeID
	PackageName string
	Dir         string
	Fields      []FieldDescriptor
}

// Group is one attribute group and the fields read from it, in
// declaration order.
type Group struct {
	Symbol resolve.AttributeGroupSymbol
	Fields []FieldDescriptor
}

// InvalidFieldError reports a field that cannot be bound.
type InvalidFieldError struct {
	Field  string
	Reason string
	Pos    token.Position
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}
