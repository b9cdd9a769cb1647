package analyze

import (
	"go/token"
	"go/types"

	"github.com/chRyNaN/glimpse/internal/common"
	"github.com/chRyNaN/glimpse/internal/expr"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "github.com/chRyNaN/glimpse/examples/widget"
	Name    string // e.g., "Widget"
}

// String returns the fully qualified name, which is also the runtime
// registry key of the type's binding.
func (t TypeID) String() string {
	return common.QualifiedName(t.PkgPath, t.Name)
}

// Target is a struct type with at least one annotated field.
type Target struct {
	ID          TypeID
	PackageName string
	// Dir is the directory holding the file that declares the type.
	Dir string
	// File is the declaring file's path.
	File string
	Pos  token.Position
	// Fields lists every field of the struct in declaration order,
	// annotated or not.
	Fields []FieldElement
	// FileScope and PackageScope are the scope chain for registry
	// references, innermost first.
	FileScope    *FileScope
	PackageScope *PackageScope

	Types *types.Package
	// TypeErrors are the type-check errors reported inside the struct
	// declaration. A target with any cannot be bound.
	TypeErrors []TypeError
}

// TypeError is a type-check error of a loaded package. Loading goes on
// past type errors so one broken declaration does not hide every other
// target.
type TypeError struct {
	PkgPath string
	Pos     token.Position
	Msg     string
	// Generated is set when the error lies in a file glimpse-generator
	// wrote. Such files are rewritten by the run, so the error is stale.
	Generated bool
}

func (e TypeError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Annotated returns the fields that carry any annotation or a malformed one.
func (t *Target) Annotated() []FieldElement {
	var out []FieldElement

	for _, f := range t.Fields {
		if len(f.Annotations) > 0 || f.AnnotationErr != nil {
			out = append(out, f)
		}
	}

	return out
}

// FieldElement describes one struct field as declared.
type FieldElement struct {
	Name     string     // Go field name, "_" for blank fields
	Exported bool       // Whether the field is exported
	Embedded bool       // Whether the field is embedded (anonymous)
	Index    int        // Field index in the struct
	GoType   types.Type // Declared type
	Pos      token.Position

	// Annotations are parsed from the field's doc and line comments.
	Annotations []*expr.Annotation
	// AnnotationErr is set when a comment holds a malformed annotation.
	AnnotationErr error
}

// TypeString renders the field type relative to pkg.
func (f FieldElement) TypeString(pkg *types.Package) string {
	return TypeString(f.GoType, pkg)
}

// FileScope maps the import names visible in one file to package paths.
type FileScope struct {
	File    string
	Imports map[string]string
}

// Lookup reports the package imported under name. The name is a package
// qualifier, so it is not part of the referenced member's local name.
func (s *FileScope) Lookup(name string) (path string, qualifier, ok bool) {
	if s == nil {
		return "", false, false
	}

	path, ok = s.Imports[name]

	return path, true, ok
}

// PackageScope holds the package-level names of one package.
type PackageScope struct {
	Path  string
	Names map[string]bool
}

// Lookup reports whether name is declared at package level. The name is
// part of the referenced member's local name.
func (s *PackageScope) Lookup(name string) (path string, qualifier, ok bool) {
	if s == nil || !s.Names[name] {
		return "", false, false
	}

	return s.Path, false, true
}
