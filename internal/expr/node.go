package expr

import (
	"go/token"
	"strings"
)

// Node is an immutable expression tree node.
type Node interface {
	Pos() token.Pos
	// Accept dispatches to the matching Visitor method.
	Accept(v Visitor) any
	node()
}

// Visitor handles every node kind. Return values are passed back through
// Accept; a nil return means "nothing found".
type Visitor interface {
	VisitAnnotation(n *Annotation) any
	VisitAssignment(n *Assignment) any
	VisitIdentifier(n *Identifier) any
	VisitMemberSelect(n *MemberSelect) any
	VisitLiteral(n *Literal) any
	VisitOpaque(n *Opaque) any
}

// Annotation is a named annotation and its arguments.
type Annotation struct {
	At   token.Pos
	Name string
	Args []Node
}

// Assignment binds Value to the argument named by Target.
type Assignment struct {
	At     token.Pos
	Target *Identifier
	Value  Node
	// Implicit is set when the argument was written positionally.
	Implicit bool
}

// Identifier is a bare name.
type Identifier struct {
	At   token.Pos
	Name string
}

// MemberSelect is X.Sel.
type MemberSelect struct {
	At  token.Pos
	X   Node
	Sel *Identifier
}

// Literal is a basic literal with its source text.
type Literal struct {
	At    token.Pos
	Kind  token.Token
	Value string
}

// Opaque is an expression this tree does not model.
type Opaque struct {
	At   token.Pos
	Text string
}

func (n *Annotation) Pos() token.Pos   { return n.At }
func (n *Assignment) Pos() token.Pos   { return n.At }
func (n *Identifier) Pos() token.Pos   { return n.At }
func (n *MemberSelect) Pos() token.Pos { return n.At }
func (n *Literal) Pos() token.Pos      { return n.At }
func (n *Opaque) Pos() token.Pos       { return n.At }

func (n *Annotation) Accept(v Visitor) any   { return v.VisitAnnotation(n) }
func (n *Assignment) Accept(v Visitor) any   { return v.VisitAssignment(n) }
func (n *Identifier) Accept(v Visitor) any   { return v.VisitIdentifier(n) }
func (n *MemberSelect) Accept(v Visitor) any { return v.VisitMemberSelect(n) }
func (n *Literal) Accept(v Visitor) any      { return v.VisitLiteral(n) }
func (n *Opaque) Accept(v Visitor) any       { return v.VisitOpaque(n) }

func (*Annotation) node()   {}
func (*Assignment) node()   {}
func (*Identifier) node()   {}
func (*MemberSelect) node() {}
func (*Literal) node()      {}
func (*Opaque) node()       {}

// Render returns the source text of n.
func Render(n Node) string {
	var sb strings.Builder
	render(&sb, n)

	return sb.String()
}

func render(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Annotation:
		sb.WriteString("@")
		sb.WriteString(n.Name)

		if len(n.Args) == 0 {
			return
		}

		sb.WriteString("{")

		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			render(sb, a)
		}

		sb.WriteString("}")
	case *Assignment:
		if !n.Implicit {
			sb.WriteString(n.Target.Name)
			sb.WriteString(": ")
		}

		render(sb, n.Value)
	case *Identifier:
		sb.WriteString(n.Name)
	case *MemberSelect:
		render(sb, n.X)
		sb.WriteString(".")
		sb.WriteString(n.Sel.Name)
	case *Literal:
		sb.WriteString(n.Value)
	case *Opaque:
		sb.WriteString(n.Text)
	}
}

// Chain flattens a member-select chain of identifiers into its names
// ("res.Styleable.Widget_color" -> [res Styleable Widget_color]). It reports
// false when n contains anything other than identifiers and member selects.
func Chain(n Node) ([]string, bool) {
	switch n := n.(type) {
	case *Identifier:
		return []string{n.Name}, true
	case *MemberSelect:
		head, ok := Chain(n.X)
		if !ok {
			return nil, false
		}

		return append(head, n.Sel.Name), true
	default:
		return nil, false
	}
}
