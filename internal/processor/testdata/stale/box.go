package stale

import (
	"github.com/chRyNaN/glimpse/examples/res"
)

var _ = res.Styleable

// Box lost the Removed field its committed binding still sets.
type Box struct {
	// @Styleable{Value: res.Styleable.Widget_tint, DefaultRes: res.Color.Accent}
	// @ColorInt
	Tint int
}

// Gauge has a field of an undeclared type.
type Gauge struct {
	// @Styleable{Value: res.Styleable.Widget_maxLines}
	Level Level
}
