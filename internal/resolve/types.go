package resolve

import (
	"fmt"
	"go/token"
	"strings"
)

// SymbolReference names one member of a resource registry.
type SymbolReference struct {
	// Registry is the import path of the registry package.
	Registry string
	// FullLocalName is the member path below the package qualifier
	// ("Styleable.Widget_titleColor").
	FullLocalName string
	// GroupLocalName is FullLocalName up to the first underscore
	// ("Styleable.Widget"), empty when there is none.
	GroupLocalName string
	Pos            token.Pos
}

// String returns the registry-qualified name.
func (r SymbolReference) String() string {
	return r.Registry + "." + r.FullLocalName
}

// Group returns the attribute group the reference belongs to.
func (r SymbolReference) Group() AttributeGroupSymbol {
	return AttributeGroupSymbol{Registry: r.Registry, Group: r.GroupLocalName}
}

// AttributeGroupSymbol identifies an attribute group. It is comparable and
// used as a grouping key.
type AttributeGroupSymbol struct {
	Registry string
	Group    string
}

func (g AttributeGroupSymbol) String() string {
	return g.Registry + "." + g.Group
}

// IsZero reports whether the reference has no group.
func (g AttributeGroupSymbol) IsZero() bool {
	return g.Group == ""
}

// UnresolvedSymbolError reports an annotation argument that does not name a
// registry member.
type UnresolvedSymbolError struct {
	Argument    string
	Expr        string
	Reason      string
	Pos         token.Pos
	Suggestions []string
}

func (e *UnresolvedSymbolError) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("cannot resolve %s: %s", e.Argument, e.Reason)
	}

	return fmt.Sprintf("cannot resolve %s = %s: %s", e.Argument, e.Expr, e.Reason)
}

// Scope binds names visible at the annotated element.
type Scope interface {
	// Lookup returns the registry package path bound to name. qualifier is
	// true when name is a package name and so not part of the local name.
	Lookup(name string) (path string, qualifier, ok bool)
}

// Registry answers member lookups against registry packages.
type Registry interface {
	// Members lists the names selectable after chain in the package at
	// path. ok is false when the chain does not exist.
	Members(path string, chain []string) (names []string, ok bool)
}

// Site locates the annotated element for diagnostics.
type Site struct {
	Target string
	Field  string
	Pos    token.Position
}

func groupLocalName(full string) string {
	before, _, found := strings.Cut(full, "_")
	if !found {
		return ""
	}

	return before
}
