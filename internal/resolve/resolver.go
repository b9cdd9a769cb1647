package resolve

import (
	"fmt"
	"slices"
	"strings"

	"github.com/chRyNaN/glimpse/internal/diagnostic"
	"github.com/chRyNaN/glimpse/internal/expr"
	"github.com/chRyNaN/glimpse/internal/match"
)

// Argument names of the styleable annotation.
const (
	ValueArgument      = expr.ImplicitArgument
	DefaultResArgument = "DefaultRes"
)

const maxSuggestions = 3

// Resolver resolves annotation arguments. It keeps no state between calls.
type Resolver struct {
	// Registry validates members below the chain root. Nil skips the check.
	Registry Registry
	// Sink receives a note for every resolved reference. Nil discards them.
	Sink diagnostic.Sink
}

// Resolve resolves a required argument.
func (r *Resolver) Resolve(ann *expr.Annotation, argument string, scopes []Scope, site Site) (SymbolReference, error) {
	value := expr.Argument(ann, argument)
	if value == nil {
		return SymbolReference{}, &UnresolvedSymbolError{
			Argument: argument,
			Reason:   fmt.Sprintf("@%s has no %s argument", ann.Name, argument),
			Pos:      ann.Pos(),
		}
	}

	return r.resolveValue(value, argument, scopes, site)
}

// ResolveOptional resolves an argument that may be absent, returning nil
// when it is.
func (r *Resolver) ResolveOptional(ann *expr.Annotation, argument string, scopes []Scope, site Site) (*SymbolReference, error) {
	value := expr.Argument(ann, argument)
	if value == nil {
		return nil, nil
	}

	ref, err := r.resolveValue(value, argument, scopes, site)
	if err != nil {
		return nil, err
	}

	return &ref, nil
}

func (r *Resolver) resolveValue(value expr.Node, argument string, scopes []Scope, site Site) (SymbolReference, error) {
	text := expr.Render(value)

	unresolved := func(reason string, suggestions ...string) error {
		return &UnresolvedSymbolError{
			Argument:    argument,
			Expr:        text,
			Reason:      reason,
			Pos:         value.Pos(),
			Suggestions: suggestions,
		}
	}

	chain, ok := expr.Chain(value)
	if !ok {
		return SymbolReference{}, unresolved("not a registry reference")
	}

	path, qualifier, found := bind(chain[0], scopes)
	if !found {
		return SymbolReference{}, unresolved(fmt.Sprintf("undefined: %s", chain[0]))
	}

	local := chain
	if qualifier {
		local = chain[1:]
	}

	if len(local) == 0 {
		return SymbolReference{}, unresolved("package name is not a registry member")
	}

	if r.Registry != nil {
		if err := r.validate(path, local, unresolved); err != nil {
			return SymbolReference{}, err
		}
	}

	full := strings.Join(local, ".")
	ref := SymbolReference{
		Registry:       path,
		FullLocalName:  full,
		GroupLocalName: groupLocalName(full),
		Pos:            value.Pos(),
	}

	if r.Sink != nil {
		r.Sink.Report(diagnostic.Diagnostic{
			Severity:  diagnostic.SeverityNote,
			Code:      diagnostic.CodeResolved,
			Message:   fmt.Sprintf("resolved %s to %s (group %s)", argument, ref, ref.GroupLocalName),
			Target:    site.Target,
			FieldPath: site.Field,
			Pos:       site.Pos,
		})
	}

	return ref, nil
}

// validate checks every step of local against the registry.
func (r *Resolver) validate(path string, local []string, unresolved func(string, ...string) error) error {
	for i, name := range local {
		members, ok := r.Registry.Members(path, local[:i])
		if !ok {
			return unresolved(fmt.Sprintf("cannot look up members of %s", qualified(path, local[:i])))
		}

		if !slices.Contains(members, name) {
			return unresolved(
				fmt.Sprintf("%s has no member %s", qualified(path, local[:i]), name),
				match.Suggest(name, members, maxSuggestions)...,
			)
		}
	}

	return nil
}

// bind walks scopes innermost first; the first scope binding name wins.
func bind(name string, scopes []Scope) (path string, qualifier, ok bool) {
	for _, s := range scopes {
		if s == nil {
			continue
		}

		if path, qualifier, ok = s.Lookup(name); ok {
			return path, qualifier, true
		}
	}

	return "", false, false
}

func qualified(path string, chain []string) string {
	if len(chain) == 0 {
		return path
	}

	return path + "." + strings.Join(chain, ".")
}
