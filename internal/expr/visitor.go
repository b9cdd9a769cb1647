package expr

// BaseVisitor returns nil for every node. Embed it to handle only the kinds
// of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitAnnotation(*Annotation) any     { return nil }
func (BaseVisitor) VisitAssignment(*Assignment) any     { return nil }
func (BaseVisitor) VisitIdentifier(*Identifier) any     { return nil }
func (BaseVisitor) VisitMemberSelect(*MemberSelect) any { return nil }
func (BaseVisitor) VisitLiteral(*Literal) any           { return nil }
func (BaseVisitor) VisitOpaque(*Opaque) any             { return nil }

// ArgumentFinder finds the value assigned to one named argument of an
// annotation.
type ArgumentFinder struct {
	BaseVisitor

	Name string
}

// VisitAnnotation scans the argument list for an assignment to f.Name.
func (f ArgumentFinder) VisitAnnotation(n *Annotation) any {
	for _, arg := range n.Args {
		if found := arg.Accept(f); found != nil {
			return found
		}
	}

	return nil
}

// VisitAssignment returns the assigned value when the target matches.
func (f ArgumentFinder) VisitAssignment(n *Assignment) any {
	if n.Target != nil && n.Target.Name == f.Name {
		return n.Value
	}

	return nil
}

// Argument returns the value assigned to name in a, or nil.
func Argument(a *Annotation, name string) Node {
	if a == nil {
		return nil
	}

	found, _ := a.Accept(ArgumentFinder{Name: name}).(Node)

	return found
}
