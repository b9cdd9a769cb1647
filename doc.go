// Package glimpse locates and invokes the attribute bindings produced by
// glimpse-generator.
//
// A generated binding registers its two constructors under the fully
// qualified name of its target type. Obtain and ObtainWithStyle look the
// binding up from the dynamic type of the target, falling back to the
// bindings of embedded structs, and run it:
//
//	w := &widget.Widget{}
//	if _, err := glimpse.Obtain(w, ctx, attrs); err != nil {
//		return err
//	}
package glimpse
