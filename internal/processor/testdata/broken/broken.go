package broken

import (
	"github.com/chRyNaN/glimpse/examples/res"
	"github.com/chRyNaN/glimpse/style"
)

var _ = res.Styleable

// Panel mixes valid and invalid bindings.
type Panel struct {
	// @Styleable{Value: res.Styleable.Widget_titleColr}
	Title int

	// @Styleable{Value: res.Styleable.Widget_tint}
	Tint complex64

	// @Styleable{Value: res.Styleable.Widget_label
	Label style.Text

	// @Styleable{Value: res.Styleable.Widget_hint, DefaultRes: res.String.Hint}
	// @ColorInt
	Hint string

	// @ColorInt
	Stray int
}

// Empty has no field that survives resolution.
type Empty struct {
	// @Styleable{Value: res.Styleable.Nope_x}
	X int
}
