// Package expr is a small immutable expression tree for annotation
// arguments.
//
// Node kinds:
//   - Annotation: a named annotation with its argument list
//   - Assignment: Target = Value inside an argument list
//   - Identifier: a bare name
//   - MemberSelect: X.Sel
//   - Literal: a basic literal (number, string, char)
//   - Opaque: any other expression, kept only as rendered text
//
// Trees are built by adapters (see FromGoExpr) and walked with a Visitor.
package expr
