package analyze

import (
	"go/types"
	"sort"
)

// Members lists the names selectable after chain inside the package at
// path: package-level names for an empty chain, otherwise the fields of
// the value chain denotes. ok is false when the package is not loaded or
// the chain itself does not exist.
func (p *Program) Members(path string, chain []string) ([]string, bool) {
	pkg := p.packages[path]
	if pkg == nil {
		return nil, false
	}

	if len(chain) == 0 {
		return pkg.Scope().Names(), true
	}

	obj := pkg.Scope().Lookup(chain[0])
	if obj == nil {
		return nil, false
	}

	t := obj.Type()

	for _, name := range chain[1:] {
		sel, _, _ := types.LookupFieldOrMethod(t, true, pkg, name)
		if sel == nil {
			return nil, false
		}

		t = sel.Type()
	}

	return fieldNames(t), true
}

func fieldNames(t types.Type) []string {
	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return nil
	}

	names := make([]string, 0, st.NumFields())
	for i := range st.NumFields() {
		names = append(names, st.Field(i).Name())
	}

	sort.Strings(names)

	return names
}
