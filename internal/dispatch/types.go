package dispatch

import (
	"errors"

	"github.com/chRyNaN/glimpse/internal/common"
	"github.com/chRyNaN/glimpse/internal/model"
	"github.com/chRyNaN/glimpse/internal/resolve"
)

// ErrNoDefault is returned when a default-path plan is requested for a
// field without a declared default.
var ErrNoDefault = errors.New("field has no default resource")

// Path selects where a field value comes from.
type Path int

const (
	// GroupPath reads the attribute from a typed array.
	GroupPath Path = iota
	// DefaultPath reads the declared default from resources.
	DefaultPath
)

// String returns a human-readable representation of the Path.
func (p Path) String() string {
	switch p {
	case GroupPath:
		return "group"
	case DefaultPath:
		return "default"
	default:
		return common.UnknownStr
	}
}

// Source is the receiver of an accessor call.
type Source int

const (
	SourceTypedArray Source = iota
	SourceResources
)

// Accessor is a style accessor method. Its String form is the method name.
type Accessor int

const (
	Boolean Accessor = iota + 1
	Color
	ColorStateList
	Dimension
	DimensionPixelOffset
	DimensionPixelSize
	Drawable
	Float
	Fraction
	Integer
	String
	Text
	TextArray
)

// String returns the accessor method name.
func (a Accessor) String() string {
	switch a {
	case Boolean:
		return "Boolean"
	case Color:
		return "Color"
	case ColorStateList:
		return "ColorStateList"
	case Dimension:
		return "Dimension"
	case DimensionPixelOffset:
		return "DimensionPixelOffset"
	case DimensionPixelSize:
		return "DimensionPixelSize"
	case Drawable:
		return "Drawable"
	case Float:
		return "Float"
	case Fraction:
		return "Fraction"
	case Integer:
		return "Integer"
	case String:
		return "String"
	case Text:
		return "Text"
	case TextArray:
		return "TextArray"
	default:
		return common.UnknownStr
	}
}

// TakesDefault reports whether the typed array form of the accessor takes
// a default value argument.
func (a Accessor) TakesDefault() bool {
	switch a {
	case Boolean, Color, Dimension, DimensionPixelOffset, DimensionPixelSize, Float, Fraction, Integer:
		return true
	default:
		return false
	}
}

// Recovery is the set of failures after which the next step is tried.
type Recovery int

const (
	// RecoverNone propagates every failure.
	RecoverNone Recovery = iota
	// RecoverKindMismatch moves on when the stored value has another kind.
	RecoverKindMismatch
	// RecoverAny moves on after any failure.
	RecoverAny
)

// String returns a human-readable representation of the Recovery.
func (r Recovery) String() string {
	switch r {
	case RecoverNone:
		return "none"
	case RecoverKindMismatch:
		return "kind-mismatch"
	case RecoverAny:
		return "any"
	default:
		return common.UnknownStr
	}
}

// Call is one accessor invocation.
type Call struct {
	Source   Source
	Accessor Accessor
	// Symbol is the attribute index on a typed array or the resource id on
	// resources.
	Symbol resolve.SymbolReference
	// Default is the resources call supplying the typed array default.
	Default *Call
	// Zero is the literal default used when Default is nil.
	Zero string
	// Base and PBase are the Fraction arguments.
	Base, PBase int
}

// Step is a call and the failures that let the next step run.
type Step struct {
	Call    Call
	Recover Recovery
}

// Plan is how one field is populated on one path.
type Plan struct {
	Field model.FieldDescriptor
	Path  Path
	// Steps are tried in order; the first success is assigned.
	Steps []Step
	// Convert divides the assigned pixel value by the display density scale.
	Convert bool
	// Fallback is called when the assigned value is nil or empty.
	Fallback *Call
}

// Probes reports whether the plan tries more than one call.
func (p Plan) Probes() bool {
	return len(p.Steps) > 1
}
