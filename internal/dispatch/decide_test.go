package dispatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chRyNaN/glimpse/internal/model"
	"github.com/chRyNaN/glimpse/internal/resolve"
)

const resPath = "example.com/app/res"

func ref(local, group string) resolve.SymbolReference {
	return resolve.SymbolReference{Registry: resPath, FullLocalName: local, GroupLocalName: group}
}

func fieldOf(name string, kind model.ValueKind, def string) model.FieldDescriptor {
	f := model.FieldDescriptor{Name: name, Kind: kind, Attribute: ref("Styleable.Widget_"+name, "Styleable.Widget")}
	if def != "" {
		d := ref(def, "")
		f.Default = &d
	}

	return f
}

func accessors(p Plan) []Accessor {
	out := make([]Accessor, 0, len(p.Steps))
	for _, s := range p.Steps {
		out = append(out, s.Call.Accessor)
	}

	return out
}

func decide(t *testing.T, f model.FieldDescriptor, path Path) Plan {
	t.Helper()

	p, err := Decide(f, path)
	require.NoError(t, err)

	return p
}

func TestDecide_AmbiguousIntWithoutDefault(t *testing.T) {
	p := decide(t, fieldOf("titleColor", model.KindInt, ""), GroupPath)

	assert.Equal(t, []Accessor{Color, DimensionPixelOffset, Integer}, accessors(p))
	assert.Equal(t, RecoverKindMismatch, p.Steps[0].Recover)
	assert.Equal(t, RecoverKindMismatch, p.Steps[1].Recover)
	assert.Equal(t, RecoverNone, p.Steps[2].Recover)

	for _, s := range p.Steps {
		assert.Equal(t, SourceTypedArray, s.Call.Source)
		assert.Nil(t, s.Call.Default)
		assert.Equal(t, "0", s.Call.Zero)
	}

	assert.True(t, p.Probes())
	assert.False(t, p.Convert)
}

func TestDecide_AmbiguousIntDefaultsMatchEachStep(t *testing.T) {
	p := decide(t, fieldOf("maxLines", model.KindInt, "Integer.MaxLines"), GroupPath)

	want := []Accessor{Color, DimensionPixelOffset, Integer}
	for i, s := range p.Steps {
		require.NotNil(t, s.Call.Default)
		assert.Equal(t, want[i], s.Call.Default.Accessor)
		assert.Equal(t, SourceResources, s.Call.Default.Source)
		assert.Equal(t, "Integer.MaxLines", s.Call.Default.Symbol.FullLocalName)
	}

	d := decide(t, fieldOf("maxLines", model.KindInt, "Integer.MaxLines"), DefaultPath)
	assert.Equal(t, want, accessors(d))
	assert.Equal(t, SourceResources, d.Steps[0].Call.Source)
}

func TestDecide_IntHints(t *testing.T) {
	tests := []struct {
		name        string
		hint        model.Hint
		unit        model.Unit
		group       Accessor
		groupDef    Accessor
		defaultPath Accessor
		convert     bool
	}{
		{"color", model.HintColor, model.UnitUnset, Color, Color, Color, false},
		{"px", model.HintDimension, model.UnitPX, DimensionPixelOffset, DimensionPixelOffset, DimensionPixelOffset, false},
		{"unset", model.HintDimension, model.UnitUnset, DimensionPixelOffset, DimensionPixelOffset, DimensionPixelOffset, false},
		{"dp", model.HintDimension, model.UnitDP, DimensionPixelOffset, DimensionPixelOffset, DimensionPixelOffset, true},
		{"sp", model.HintDimension, model.UnitSP, DimensionPixelSize, DimensionPixelOffset, DimensionPixelSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fieldOf("size", model.KindInt, "Dimen.Size")
			f.Hint, f.Unit = tt.hint, tt.unit

			g := decide(t, f, GroupPath)
			require.Len(t, g.Steps, 1)
			assert.Equal(t, tt.group, g.Steps[0].Call.Accessor)
			assert.Equal(t, tt.groupDef, g.Steps[0].Call.Default.Accessor)
			assert.Equal(t, tt.convert, g.Convert)

			d := decide(t, f, DefaultPath)
			assert.Equal(t, []Accessor{tt.defaultPath}, accessors(d))
			assert.Equal(t, tt.convert, d.Convert)
		})
	}
}

func TestDecide_FloatFractionAsymmetry(t *testing.T) {
	f := fieldOf("alpha", model.KindFloat, "Fraction.Alpha")

	g := decide(t, f, GroupPath)
	assert.Equal(t, []Accessor{Dimension, Float}, accessors(g))
	assert.Equal(t, RecoverKindMismatch, g.Steps[0].Recover)
	assert.Equal(t, Dimension, g.Steps[0].Call.Default.Accessor)

	frac := g.Steps[1].Call.Default
	require.NotNil(t, frac)
	assert.Equal(t, Fraction, frac.Accessor)
	assert.Equal(t, 0, frac.Base)
	assert.Equal(t, 0, frac.PBase)

	d := decide(t, f, DefaultPath)
	assert.Equal(t, []Accessor{Dimension, Fraction}, accessors(d))
	assert.Equal(t, 0, d.Steps[1].Call.Base)
	assert.Equal(t, 1, d.Steps[1].Call.PBase)
}

func TestDecide_FloatDimension(t *testing.T) {
	f := fieldOf("elevation", model.KindFloat, "")
	f.Hint, f.Unit = model.HintDimension, model.UnitDP

	g := decide(t, f, GroupPath)
	assert.Equal(t, []Accessor{Dimension}, accessors(g))
	assert.False(t, g.Convert)
}

func TestDecide_ReferenceKinds(t *testing.T) {
	tests := []struct {
		kind model.ValueKind
		acc  Accessor
	}{
		{model.KindColorStateList, ColorStateList},
		{model.KindDrawable, Drawable},
		{model.KindText, Text},
		{model.KindString, String},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			withDef := decide(t, fieldOf("v", tt.kind, "Res.V"), GroupPath)
			assert.Equal(t, []Accessor{tt.acc}, accessors(withDef))
			require.NotNil(t, withDef.Fallback)
			assert.Equal(t, Call{Source: SourceResources, Accessor: tt.acc, Symbol: ref("Res.V", "")}, *withDef.Fallback)

			noDef := decide(t, fieldOf("v", tt.kind, ""), GroupPath)
			assert.Nil(t, noDef.Fallback)
			assert.False(t, tt.acc.TakesDefault())
		})
	}
}

func TestDecide_LabelScenario(t *testing.T) {
	p := decide(t, fieldOf("label", model.KindText, "String.Label"), GroupPath)

	want := Plan{
		Field: fieldOf("label", model.KindText, "String.Label"),
		Path:  GroupPath,
		Steps: []Step{{Call: Call{Source: SourceTypedArray, Accessor: Text, Symbol: ref("Styleable.Widget_label", "Styleable.Widget")}}},
		Fallback: &Call{
			Source:   SourceResources,
			Accessor: Text,
			Symbol:   ref("String.Label", ""),
		},
	}

	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestDecide_TextArray(t *testing.T) {
	withDef := decide(t, fieldOf("entries", model.KindTextArray, "Array.Entries"), GroupPath)
	assert.Equal(t, []Accessor{TextArray, TextArray}, accessors(withDef))
	assert.Equal(t, RecoverAny, withDef.Steps[0].Recover)
	assert.Equal(t, SourceTypedArray, withDef.Steps[0].Call.Source)
	assert.Equal(t, SourceResources, withDef.Steps[1].Call.Source)
	assert.Nil(t, withDef.Fallback)

	noDef := decide(t, fieldOf("entries", model.KindTextArray, ""), GroupPath)
	assert.Len(t, noDef.Steps, 1)
	assert.False(t, noDef.Probes())
}

func TestDecide_Bool(t *testing.T) {
	g := decide(t, fieldOf("enabled", model.KindBool, ""), GroupPath)
	assert.Equal(t, "false", g.Steps[0].Call.Zero)
	assert.Nil(t, g.Steps[0].Call.Default)

	d := decide(t, fieldOf("enabled", model.KindBool, "Bool.Enabled"), DefaultPath)
	assert.Equal(t, []Accessor{Boolean}, accessors(d))
}

func TestDecide_DefaultPathRequiresDefault(t *testing.T) {
	_, err := Decide(fieldOf("titleColor", model.KindInt, ""), DefaultPath)
	require.ErrorIs(t, err, ErrNoDefault)
}

func TestDecide_UnknownKind(t *testing.T) {
	_, err := Decide(model.FieldDescriptor{Name: "x"}, GroupPath)
	require.Error(t, err)
}

func TestDecide_Pure(t *testing.T) {
	f := fieldOf("titleColor", model.KindInt, "Color.Primary")

	first := decide(t, f, GroupPath)
	second := decide(t, f, GroupPath)

	assert.Empty(t, cmp.Diff(first, second))
	assert.NotSame(t, first.Steps[0].Call.Default, second.Steps[0].Call.Default)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "DimensionPixelOffset", DimensionPixelOffset.String())
	assert.Equal(t, "unknown", Accessor(0).String())
	assert.Equal(t, "kind-mismatch", RecoverKindMismatch.String())
	assert.Equal(t, "default", DefaultPath.String())
}
