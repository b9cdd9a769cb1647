package style

// DensityDefault is the reference screen density in dots per inch.
const DensityDefault = 160

// AttributeSet is the raw set of attributes supplied when a component is
// inflated. It is opaque to generated code.
type AttributeSet interface {
	AttributeCount() int
}

// DisplayMetrics describes the active display.
type DisplayMetrics struct {
	DensityDPI int
}

// Context supplies attribute views and the resource table.
type Context interface {
	Resources() Resources
	ObtainStyledAttributes(set AttributeSet, attrs []int) (TypedArray, error)
	ObtainStyledAttributesWithStyle(set AttributeSet, attrs []int, defStyleAttr, defStyleRes int) (TypedArray, error)
}

// TypedArray is an attribute view over one attribute group. Indexes are the
// positions of the attributes inside the group. Reference accessors return
// the zero value when the attribute is absent.
type TypedArray interface {
	Boolean(index int, def bool) (bool, error)
	Color(index, def int) (int, error)
	ColorStateList(index int) (*ColorStateList, error)
	Dimension(index int, def float32) (float32, error)
	DimensionPixelOffset(index, def int) (int, error)
	DimensionPixelSize(index, def int) (int, error)
	Drawable(index int) (Drawable, error)
	Float(index int, def float32) (float32, error)
	Fraction(index, base, pbase int, def float32) (float32, error)
	Integer(index, def int) (int, error)
	String(index int) (string, error)
	Text(index int) (Text, error)
	TextArray(index int) ([]Text, error)

	// Recycle releases the view. It must be called exactly once.
	Recycle()
}

// Resources resolves static resource identifiers.
type Resources interface {
	DisplayMetrics() DisplayMetrics
	Boolean(id int) (bool, error)
	Color(id int) (int, error)
	ColorStateList(id int) (*ColorStateList, error)
	Dimension(id int) (float32, error)
	DimensionPixelOffset(id int) (int, error)
	DimensionPixelSize(id int) (int, error)
	Drawable(id int) (Drawable, error)
	Fraction(id, base, pbase int) (float32, error)
	Integer(id int) (int, error)
	String(id int) (string, error)
	Text(id int) (Text, error)
	TextArray(id int) ([]Text, error)
}

// ColorStateList maps view state sets to colors.
type ColorStateList struct {
	States [][]int
	Colors []int
}

// DefaultColor returns the color used when no state set matches.
func (c *ColorStateList) DefaultColor() int {
	if c == nil || len(c.Colors) == 0 {
		return 0
	}

	return c.Colors[len(c.Colors)-1]
}

// ColorFor returns the first color whose state set is fully contained in
// state, or the default color.
func (c *ColorStateList) ColorFor(state []int) int {
	if c == nil {
		return 0
	}

	for i, set := range c.States {
		if i < len(c.Colors) && containsAll(state, set) {
			return c.Colors[i]
		}
	}

	return c.DefaultColor()
}

func containsAll(have, want []int) bool {
	for _, w := range want {
		found := false

		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// Drawable is anything that can be drawn into a bounded area.
type Drawable interface {
	IntrinsicWidth() int
	IntrinsicHeight() int
}

// Text is styled or plain character data.
type Text interface {
	String() string
}

// PlainText is Text without styling.
type PlainText string

// String returns the text.
func (t PlainText) String() string {
	return string(t)
}
