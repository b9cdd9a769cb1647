// Package annotation extracts @-annotations from Go comments.
//
// An annotation is written inside a field's doc or line comment:
//
//	// @Styleable{Value: res.Styleable.Widget_color, DefaultRes: res.Color.Primary}
//	// @ColorInt
//	Color int
//
// A bare @Name is a marker. @Name{...} is parsed as a Go composite literal
// and adapted into an expr.Annotation, so arguments keep their expression
// structure (identifiers, member selects, literals).
//
// Go checks imports per file and never looks inside comments, so a file
// importing a registry only for its annotations needs var _ = res.Styleable
// or similar to keep the import used.
package annotation
