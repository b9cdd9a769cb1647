package dispatch

import (
	"fmt"

	"github.com/chRyNaN/glimpse/internal/model"
)

// Decide returns the plan populating field on path.
func Decide(field model.FieldDescriptor, path Path) (Plan, error) {
	switch path {
	case GroupPath:
		return decideGroup(field)
	case DefaultPath:
		if !field.HasDefault() {
			return Plan{}, fmt.Errorf("field %s: %w", field.Name, ErrNoDefault)
		}

		return decideDefault(field)
	default:
		return Plan{}, fmt.Errorf("field %s: unknown path %d", field.Name, path)
	}
}

func decideGroup(f model.FieldDescriptor) (Plan, error) {
	p := Plan{Field: f, Path: GroupPath}

	// attr reads the attribute with a default taken from resources through
	// defAcc, or the zero literal when no default was declared.
	attr := func(acc, defAcc Accessor, zero string) Call {
		c := Call{Source: SourceTypedArray, Accessor: acc, Symbol: f.Attribute, Zero: zero}
		if f.HasDefault() {
			def := res(f, defAcc)
			c.Default = &def
		}

		return c
	}

	switch f.Kind {
	case model.KindBool:
		p.Steps = steps(attr(Boolean, Boolean, "false"))
	case model.KindInt:
		switch f.Hint {
		case model.HintColor:
			p.Steps = steps(attr(Color, Color, "0"))
		case model.HintDimension:
			acc := DimensionPixelOffset
			if f.Unit == model.UnitSP {
				acc = DimensionPixelSize
			}

			p.Steps = steps(attr(acc, DimensionPixelOffset, "0"))
			p.Convert = f.Unit.Converts()
		default:
			p.Steps = []Step{
				{Call: attr(Color, Color, "0"), Recover: RecoverKindMismatch},
				{Call: attr(DimensionPixelOffset, DimensionPixelOffset, "0"), Recover: RecoverKindMismatch},
				{Call: attr(Integer, Integer, "0")},
			}
		}
	case model.KindFloat:
		if f.Hint == model.HintDimension {
			p.Steps = steps(attr(Dimension, Dimension, "0"))

			break
		}

		// Fraction(default, 0, 0) here but Fraction(default, 0, 1) on the
		// default path.
		p.Steps = []Step{
			{Call: attr(Dimension, Dimension, "0"), Recover: RecoverKindMismatch},
			{Call: attr(Float, Fraction, "0")},
		}
	case model.KindColorStateList:
		p.Steps, p.Fallback = nilFallback(f, ColorStateList)
	case model.KindDrawable:
		p.Steps, p.Fallback = nilFallback(f, Drawable)
	case model.KindText:
		p.Steps, p.Fallback = nilFallback(f, Text)
	case model.KindString:
		p.Steps, p.Fallback = nilFallback(f, String)
	case model.KindTextArray:
		read := Call{Source: SourceTypedArray, Accessor: TextArray, Symbol: f.Attribute}
		if !f.HasDefault() {
			p.Steps = steps(read)

			break
		}

		p.Steps = []Step{
			{Call: read, Recover: RecoverAny},
			{Call: res(f, TextArray)},
		}
	default:
		return Plan{}, fmt.Errorf("field %s: unsupported kind %s", f.Name, f.Kind)
	}

	return p, nil
}

func decideDefault(f model.FieldDescriptor) (Plan, error) {
	p := Plan{Field: f, Path: DefaultPath}

	switch f.Kind {
	case model.KindBool:
		p.Steps = steps(res(f, Boolean))
	case model.KindInt:
		switch f.Hint {
		case model.HintColor:
			p.Steps = steps(res(f, Color))
		case model.HintDimension:
			acc := DimensionPixelOffset
			if f.Unit == model.UnitSP {
				acc = DimensionPixelSize
			}

			p.Steps = steps(res(f, acc))
			p.Convert = f.Unit.Converts()
		default:
			p.Steps = []Step{
				{Call: res(f, Color), Recover: RecoverKindMismatch},
				{Call: res(f, DimensionPixelOffset), Recover: RecoverKindMismatch},
				{Call: res(f, Integer)},
			}
		}
	case model.KindFloat:
		if f.Hint == model.HintDimension {
			p.Steps = steps(res(f, Dimension))

			break
		}

		fraction := res(f, Fraction)
		fraction.Base, fraction.PBase = 0, 1

		p.Steps = []Step{
			{Call: res(f, Dimension), Recover: RecoverKindMismatch},
			{Call: fraction},
		}
	case model.KindColorStateList:
		p.Steps = steps(res(f, ColorStateList))
	case model.KindDrawable:
		p.Steps = steps(res(f, Drawable))
	case model.KindText:
		p.Steps = steps(res(f, Text))
	case model.KindTextArray:
		p.Steps = steps(res(f, TextArray))
	case model.KindString:
		p.Steps = steps(res(f, String))
	default:
		return Plan{}, fmt.Errorf("field %s: unsupported kind %s", f.Name, f.Kind)
	}

	return p, nil
}

// nilFallback reads a reference attribute and, when a default was
// declared, re-reads it from resources if the attribute yields nothing.
func nilFallback(f model.FieldDescriptor, acc Accessor) ([]Step, *Call) {
	read := steps(Call{Source: SourceTypedArray, Accessor: acc, Symbol: f.Attribute})
	if !f.HasDefault() {
		return read, nil
	}

	def := res(f, acc)

	return read, &def
}

// res reads the field's default resource.
func res(f model.FieldDescriptor, acc Accessor) Call {
	return Call{Source: SourceResources, Accessor: acc, Symbol: *f.Default}
}

func steps(c Call) []Step {
	return []Step{{Call: c}}
}
