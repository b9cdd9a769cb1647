package expr

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
)

// ImplicitArgument is the argument name given to a single positional
// annotation argument.
const ImplicitArgument = "Value"

// FromGoExpr adapts a go/ast expression. Composite literals become
// annotations named after their type; every other unsupported shape becomes
// an Opaque node. offset is added to every position so that nodes parsed
// from a comment point back into the original file.
func FromGoExpr(fset *token.FileSet, e ast.Expr, offset token.Pos) Node {
	a := goAdapter{fset: fset, offset: offset}

	return a.expr(e)
}

type goAdapter struct {
	fset   *token.FileSet
	offset token.Pos
}

func (a goAdapter) pos(p token.Pos) token.Pos {
	if !p.IsValid() {
		return p
	}

	return p + a.offset
}

func (a goAdapter) expr(e ast.Expr) Node {
	switch e := e.(type) {
	case *ast.Ident:
		return &Identifier{At: a.pos(e.Pos()), Name: e.Name}
	case *ast.SelectorExpr:
		return &MemberSelect{
			At:  a.pos(e.Pos()),
			X:   a.expr(e.X),
			Sel: &Identifier{At: a.pos(e.Sel.Pos()), Name: e.Sel.Name},
		}
	case *ast.BasicLit:
		return &Literal{At: a.pos(e.Pos()), Kind: e.Kind, Value: e.Value}
	case *ast.ParenExpr:
		return a.expr(e.X)
	case *ast.CompositeLit:
		return a.annotation(e)
	default:
		return &Opaque{At: a.pos(e.Pos()), Text: a.text(e)}
	}
}

func (a goAdapter) annotation(c *ast.CompositeLit) Node {
	name, ok := Chain(a.expr(c.Type))
	if !ok || len(name) == 0 {
		return &Opaque{At: a.pos(c.Pos()), Text: a.text(c)}
	}

	ann := &Annotation{At: a.pos(c.Pos()), Name: name[len(name)-1]}

	for _, elt := range c.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			if len(c.Elts) == 1 {
				ann.Args = append(ann.Args, &Assignment{
					At:       a.pos(elt.Pos()),
					Target:   &Identifier{At: a.pos(elt.Pos()), Name: ImplicitArgument},
					Value:    a.expr(elt),
					Implicit: true,
				})

				continue
			}

			ann.Args = append(ann.Args, &Opaque{At: a.pos(elt.Pos()), Text: a.text(elt)})

			continue
		}

		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			ann.Args = append(ann.Args, &Opaque{At: a.pos(kv.Pos()), Text: a.text(kv)})

			continue
		}

		ann.Args = append(ann.Args, &Assignment{
			At:     a.pos(kv.Pos()),
			Target: &Identifier{At: a.pos(key.Pos()), Name: key.Name},
			Value:  a.expr(kv.Value),
		})
	}

	return ann
}

func (a goAdapter) text(n ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, a.fset, n); err != nil {
		return fmt.Sprintf("%T", n)
	}

	return buf.String()
}
