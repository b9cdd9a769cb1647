package annotation

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/chRyNaN/glimpse/internal/expr"
)

// SyntaxError reports a malformed annotation.
type SyntaxError struct {
	Pos  token.Pos
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed annotation %q: %v", e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

var errUnbalanced = errors.New("unbalanced braces")

// Parse returns every annotation found in groups, in source order.
func Parse(groups ...*ast.CommentGroup) ([]*expr.Annotation, error) {
	var out []*expr.Annotation

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			anns, err := parseComment(c)
			if err != nil {
				return nil, err
			}

			out = append(out, anns...)
		}
	}

	return out, nil
}

// Find returns the first annotation named name, or nil.
func Find(anns []*expr.Annotation, name string) *expr.Annotation {
	for _, a := range anns {
		if a.Name == name {
			return a
		}
	}

	return nil
}

func parseComment(c *ast.Comment) ([]*expr.Annotation, error) {
	var out []*expr.Annotation

	text := c.Text
	for i := 0; i < len(text); i++ {
		if text[i] != '@' || !atBoundary(text, i) {
			continue
		}

		nameEnd := scanName(text, i+1)
		if nameEnd == i+1 {
			continue
		}

		start := c.Slash + token.Pos(i+1)

		if nameEnd < len(text) && text[nameEnd] == '{' {
			end, err := matchBrace(text, nameEnd)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Text: text[i:], Err: err}
			}

			ann, err := parseLiteral(text[i+1:end+1], start)
			if err != nil {
				return nil, err
			}

			out = append(out, ann)
			i = end

			continue
		}

		out = append(out, &expr.Annotation{At: start, Name: lastSegment(text[i+1 : nameEnd])})
		i = nameEnd - 1
	}

	return out, nil
}

func parseLiteral(src string, start token.Pos) (*expr.Annotation, error) {
	fset := token.NewFileSet()

	e, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return nil, &SyntaxError{Pos: start, Text: "@" + src, Err: err}
	}

	// The parsed source starts at base 1; shift positions onto the comment.
	n := expr.FromGoExpr(fset, e, start-1)

	ann, ok := n.(*expr.Annotation)
	if !ok {
		return nil, &SyntaxError{Pos: start, Text: "@" + src, Err: errors.New("not an annotation literal")}
	}

	return ann, nil
}

// atBoundary reports whether the '@' at i starts a word, so addresses such
// as user@example.com in prose are skipped.
func atBoundary(text string, i int) bool {
	if i == 0 {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(text[:i])

	return unicode.IsSpace(r) || r == '/' || r == '*' || r == '('
}

// scanName returns the end of a possibly qualified identifier starting at i.
// A trailing dot is not part of the name.
func scanName(text string, i int) int {
	end := i

	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r != '.' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		end += size
	}

	for end > i && text[end-1] == '.' {
		end--
	}

	return end
}

// matchBrace returns the index of the brace closing the one at open,
// skipping braces inside string and rune literals.
func matchBrace(text string, open int) (int, error) {
	depth := 0

	var quote byte

	for i := open; i < len(text); i++ {
		ch := text[i]

		if quote != 0 {
			switch {
			case ch == '\\' && quote != '`':
				i++
			case ch == quote:
				quote = 0
			}

			continue
		}

		switch ch {
		case '"', '\'', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, errUnbalanced
}

func lastSegment(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}

	return name
}
