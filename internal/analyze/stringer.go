package analyze

import (
	"go/types"
	"strings"
)

// TypeString renders t with package qualifiers relative to pkg, so types
// from pkg itself print unqualified and others use the package name
// ("*style.ColorStateList", "map[string]int", "Widget").
func TypeString(t types.Type, pkg *types.Package) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, func(other *types.Package) string {
		if pkg != nil && other.Path() == pkg.Path() {
			return ""
		}

		return other.Name()
	})
}

// FieldPath joins a type name and field names into a readable path
// ("Widget", "Padding" -> "Widget.Padding").
func FieldPath(typeName string, fieldNames ...string) string {
	parts := append([]string{typeName}, fieldNames...)

	return strings.Join(parts, ".")
}
