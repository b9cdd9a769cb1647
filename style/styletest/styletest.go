// Package styletest provides in-memory implementations of the style
// interfaces for tests.
package styletest

import (
	"fmt"
	"math"
	"sync"

	"github.com/chRyNaN/glimpse/style"
)

// Stored value kinds. Plain Go values are used for the remaining kinds:
// bool, string, style.Text, []style.Text, style.Drawable and
// *style.ColorStateList.
type (
	// Color is a packed ARGB color.
	Color int
	// Dimension is a length already expressed in pixels.
	Dimension float32
	// Integer is a plain integer.
	Integer int
	// Float is a plain float.
	Float float32
	// Fraction is a fraction of a base (or of the parent base when Parent is set).
	Fraction struct {
		Value  float32
		Parent bool
	}
)

// AttributeSet maps attribute identifiers to values.
type AttributeSet map[int]any

// AttributeCount implements style.AttributeSet.
func (s AttributeSet) AttributeCount() int {
	return len(s)
}

// Resources is an in-memory resource table.
type Resources struct {
	Metrics style.DisplayMetrics
	Values  map[int]any
}

// Context hands out typed arrays over an AttributeSet and records their
// lifecycle.
type Context struct {
	Res *Resources
	// Styles maps a default style resource to its attribute values.
	Styles map[int]map[int]any

	mu     sync.Mutex
	arrays []*TypedArray
}

// NewContext returns a Context with the reference density.
func NewContext() *Context {
	return &Context{
		Res: &Resources{
			Metrics: style.DisplayMetrics{DensityDPI: style.DensityDefault},
			Values:  map[int]any{},
		},
		Styles: map[int]map[int]any{},
	}
}

// Resources implements style.Context.
func (c *Context) Resources() style.Resources {
	return c.Res
}

// ObtainStyledAttributes implements style.Context.
func (c *Context) ObtainStyledAttributes(set style.AttributeSet, attrs []int) (style.TypedArray, error) {
	return c.obtain(set, attrs, nil)
}

// ObtainStyledAttributesWithStyle implements style.Context. Values missing
// from the set are looked up in Styles[defStyleRes].
func (c *Context) ObtainStyledAttributesWithStyle(
	set style.AttributeSet,
	attrs []int,
	_, defStyleRes int,
) (style.TypedArray, error) {
	return c.obtain(set, attrs, c.Styles[defStyleRes])
}

func (c *Context) obtain(set style.AttributeSet, attrs []int, fallback map[int]any) (style.TypedArray, error) {
	values, ok := set.(AttributeSet)
	if !ok && set != nil {
		return nil, fmt.Errorf("styletest: unsupported attribute set %T", set)
	}

	ta := &TypedArray{values: make([]any, len(attrs))}
	for i, id := range attrs {
		if v, ok := values[id]; ok {
			ta.values[i] = v
		} else if v, ok := fallback[id]; ok {
			ta.values[i] = v
		}
	}

	c.mu.Lock()
	c.arrays = append(c.arrays, ta)
	c.mu.Unlock()

	return ta, nil
}

// Obtained returns the number of typed arrays handed out.
func (c *Context) Obtained() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.arrays)
}

// Leaked returns the number of typed arrays that were not recycled exactly once.
func (c *Context) Leaked() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, ta := range c.arrays {
		if ta.recycled != 1 {
			n++
		}
	}

	return n
}

// TypedArray is an in-memory attribute view.
type TypedArray struct {
	values   []any
	recycled int
}

func (t *TypedArray) at(index int) any {
	if index < 0 || index >= len(t.values) {
		return nil
	}

	return t.values[index]
}

// Recycle implements style.TypedArray.
func (t *TypedArray) Recycle() {
	t.recycled++
}

// Boolean implements style.TypedArray.
func (t *TypedArray) Boolean(index int, def bool) (bool, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	return asBool(v, "Boolean", index)
}

// Color implements style.TypedArray.
func (t *TypedArray) Color(index, def int) (int, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	return asColor(v, "Color", index)
}

// ColorStateList implements style.TypedArray.
func (t *TypedArray) ColorStateList(index int) (*style.ColorStateList, error) {
	v := t.at(index)
	if v == nil {
		return nil, nil
	}

	return asColorStateList(v, index)
}

// Dimension implements style.TypedArray.
func (t *TypedArray) Dimension(index int, def float32) (float32, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	d, err := asDimension(v, "Dimension", index)

	return float32(d), err
}

// DimensionPixelOffset implements style.TypedArray.
func (t *TypedArray) DimensionPixelOffset(index, def int) (int, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	d, err := asDimension(v, "DimensionPixelOffset", index)

	return int(d), err
}

// DimensionPixelSize implements style.TypedArray.
func (t *TypedArray) DimensionPixelSize(index, def int) (int, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	d, err := asDimension(v, "DimensionPixelSize", index)

	return pixelSize(d), err
}

// Drawable implements style.TypedArray.
func (t *TypedArray) Drawable(index int) (style.Drawable, error) {
	v := t.at(index)
	if v == nil {
		return nil, nil
	}

	return asDrawable(v, index)
}

// Float implements style.TypedArray.
func (t *TypedArray) Float(index int, def float32) (float32, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	if f, ok := v.(Float); ok {
		return float32(f), nil
	}

	return 0, mismatch("Float", v, index)
}

// Fraction implements style.TypedArray.
func (t *TypedArray) Fraction(index, base, pbase int, def float32) (float32, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	return asFraction(v, base, pbase, index)
}

// Integer implements style.TypedArray.
func (t *TypedArray) Integer(index, def int) (int, error) {
	v := t.at(index)
	if v == nil {
		return def, nil
	}

	return asInteger(v, "Integer", index)
}

// String implements style.TypedArray.
func (t *TypedArray) String(index int) (string, error) {
	v := t.at(index)
	if v == nil {
		return "", nil
	}

	return asString(v, index)
}

// Text implements style.TypedArray.
func (t *TypedArray) Text(index int) (style.Text, error) {
	v := t.at(index)
	if v == nil {
		return nil, nil
	}

	return asText(v, index)
}

// TextArray implements style.TypedArray.
func (t *TypedArray) TextArray(index int) ([]style.Text, error) {
	v := t.at(index)
	if v == nil {
		return nil, nil
	}

	return asTextArray(v, index)
}

func (r *Resources) lookup(id int) (any, error) {
	v, ok := r.Values[id]
	if !ok {
		return nil, &style.NotFoundError{ID: id}
	}

	return v, nil
}

// DisplayMetrics implements style.Resources.
func (r *Resources) DisplayMetrics() style.DisplayMetrics {
	return r.Metrics
}

// Boolean implements style.Resources.
func (r *Resources) Boolean(id int) (bool, error) {
	v, err := r.lookup(id)
	if err != nil {
		return false, err
	}

	return asBool(v, "Boolean", id)
}

// Color implements style.Resources.
func (r *Resources) Color(id int) (int, error) {
	v, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	return asColor(v, "Color", id)
}

// ColorStateList implements style.Resources.
func (r *Resources) ColorStateList(id int) (*style.ColorStateList, error) {
	v, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	return asColorStateList(v, id)
}

// Dimension implements style.Resources.
func (r *Resources) Dimension(id int) (float32, error) {
	v, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	d, err := asDimension(v, "Dimension", id)

	return float32(d), err
}

// DimensionPixelOffset implements style.Resources.
func (r *Resources) DimensionPixelOffset(id int) (int, error) {
	v, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	d, err := asDimension(v, "DimensionPixelOffset", id)

	return int(d), err
}

// DimensionPixelSize implements style.Resources.
func (r *Resources) DimensionPixelSize(id int) (int, error) {
	v, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	d, err := asDimension(v, "DimensionPixelSize", id)

	return pixelSize(d), err
}

// Drawable implements style.Resources.
func (r *Resources) Drawable(id int) (style.Drawable, error) {
	v, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	return asDrawable(v, id)
}

// Fraction implements style.Resources.
func (r *Resources) Fraction(id, base, pbase int) (float32, error) {
	v, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	return asFraction(v, base, pbase, id)
}

// Integer implements style.Resources.
func (r *Resources) Integer(id int) (int, error) {
	v, err := r.lookup(id)
	if err != nil {
		return 0, err
	}

	return asInteger(v, "Integer", id)
}

// String implements style.Resources.
func (r *Resources) String(id int) (string, error) {
	v, err := r.lookup(id)
	if err != nil {
		return "", err
	}

	return asString(v, id)
}

// Text implements style.Resources.
func (r *Resources) Text(id int) (style.Text, error) {
	v, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	return asText(v, id)
}

// TextArray implements style.Resources.
func (r *Resources) TextArray(id int) ([]style.Text, error) {
	v, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	return asTextArray(v, id)
}

func mismatch(accessor string, v any, index int) error {
	return &style.KindMismatchError{Accessor: accessor, Stored: fmt.Sprintf("%T", v), Index: index}
}

func asBool(v any, accessor string, index int) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}

	return false, mismatch(accessor, v, index)
}

func asColor(v any, accessor string, index int) (int, error) {
	if c, ok := v.(Color); ok {
		return int(c), nil
	}

	return 0, mismatch(accessor, v, index)
}

func asInteger(v any, accessor string, index int) (int, error) {
	if i, ok := v.(Integer); ok {
		return int(i), nil
	}

	return 0, mismatch(accessor, v, index)
}

func asDimension(v any, accessor string, index int) (Dimension, error) {
	if d, ok := v.(Dimension); ok {
		return d, nil
	}

	return 0, mismatch(accessor, v, index)
}

func asFraction(v any, base, pbase, index int) (float32, error) {
	f, ok := v.(Fraction)
	if !ok {
		return 0, mismatch("Fraction", v, index)
	}

	if f.Parent {
		return f.Value * float32(pbase), nil
	}

	return f.Value * float32(base), nil
}

func asColorStateList(v any, index int) (*style.ColorStateList, error) {
	switch c := v.(type) {
	case *style.ColorStateList:
		return c, nil
	case Color:
		return &style.ColorStateList{States: [][]int{{}}, Colors: []int{int(c)}}, nil
	default:
		return nil, mismatch("ColorStateList", v, index)
	}
}

func asDrawable(v any, index int) (style.Drawable, error) {
	if d, ok := v.(style.Drawable); ok {
		return d, nil
	}

	return nil, mismatch("Drawable", v, index)
}

func asString(v any, index int) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case style.Text:
		return s.String(), nil
	default:
		return "", mismatch("String", v, index)
	}
}

func asText(v any, index int) (style.Text, error) {
	switch s := v.(type) {
	case style.Text:
		return s, nil
	case string:
		return style.PlainText(s), nil
	default:
		return nil, mismatch("Text", v, index)
	}
}

func asTextArray(v any, index int) ([]style.Text, error) {
	if a, ok := v.([]style.Text); ok {
		return a, nil
	}

	return nil, mismatch("TextArray", v, index)
}

// pixelSize rounds a pixel dimension the way a size is rounded: at least one
// pixel for any non-zero value.
func pixelSize(d Dimension) int {
	size := int(math.Round(float64(d)))
	if size == 0 && d != 0 {
		if d > 0 {
			return 1
		}

		return -1
	}

	return size
}
