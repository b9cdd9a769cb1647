package annotation

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chRyNaN/glimpse/internal/expr"
)

const src = `package widget

type Widget struct {
	// TitleColor is drawn behind the title. Contact ui@example.com.
	//
	// @Styleable{Value: res.Styleable.Widget_titleColor}
	TitleColor int

	// @glimpse.Styleable{Value: res.Styleable.Widget_padding, DefaultRes: res.Dimen.Padding}
	// @Dimension{Unit: DP}
	Padding int

	Tint int // @Styleable{res.Styleable.Widget_tint} @ColorInt.

	// @Styleable{Value: res.Styleable.Widget_label
	Label string
}
`

func fields(t *testing.T) (*token.FileSet, []*ast.Field) {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "widget.go", src, parser.ParseComments)
	require.NoError(t, err)

	st := f.Decls[0].(*ast.GenDecl).Specs[0].(*ast.TypeSpec).Type.(*ast.StructType)

	return fset, st.Fields.List
}

func TestParse_DocComment(t *testing.T) {
	_, list := fields(t)

	anns, err := Parse(list[0].Doc, list[0].Comment)
	require.NoError(t, err)
	require.Len(t, anns, 1)

	assert.Equal(t, "Styleable", anns[0].Name)
	assert.Equal(t, "res.Styleable.Widget_titleColor", expr.Render(expr.Argument(anns[0], "Value")))
}

func TestParse_QualifiedNameAndMarkers(t *testing.T) {
	_, list := fields(t)

	anns, err := Parse(list[1].Doc, list[1].Comment)
	require.NoError(t, err)
	require.Len(t, anns, 2)

	assert.Equal(t, "Styleable", anns[0].Name)
	assert.Equal(t, "res.Dimen.Padding", expr.Render(expr.Argument(anns[0], "DefaultRes")))
	assert.Equal(t, "Dimension", anns[1].Name)
	assert.Equal(t, "DP", expr.Render(expr.Argument(anns[1], "Unit")))
}

func TestParse_LineCommentWithMarker(t *testing.T) {
	_, list := fields(t)

	anns, err := Parse(list[2].Doc, list[2].Comment)
	require.NoError(t, err)
	require.Len(t, anns, 2)

	assert.Equal(t, "res.Styleable.Widget_tint", expr.Render(expr.Argument(anns[0], "Value")))
	assert.Equal(t, "ColorInt", anns[1].Name)
	assert.Empty(t, anns[1].Args)
	assert.NotNil(t, Find(anns, "ColorInt"))
	assert.Nil(t, Find(anns, "Dimension"))
}

func TestParse_Unbalanced(t *testing.T) {
	_, list := fields(t)

	_, err := Parse(list[3].Doc)
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.ErrorIs(t, err, errUnbalanced)
}

func TestParse_PositionsPointIntoFile(t *testing.T) {
	fset, list := fields(t)

	anns, err := Parse(list[0].Doc)
	require.NoError(t, err)

	pos := fset.Position(anns[0].Pos())
	assert.Equal(t, "widget.go", pos.Filename)
	assert.Equal(t, 6, pos.Line)
	assert.Equal(t, 6, pos.Column)

	value := expr.Argument(anns[0], "Value")
	assert.Equal(t, 6, fset.Position(value.Pos()).Line)
}

func TestParse_BadExpression(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", "package x\n\n// @Styleable{Value: }\nvar X int\n", parser.ParseComments)
	require.NoError(t, err)

	_, err = Parse(f.Decls[0].(*ast.GenDecl).Doc)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "@Styleable{Value: }", syntaxErr.Text)
}

func TestMatchBrace_SkipsStrings(t *testing.T) {
	text := `{Name: "}{", Other: '}'}`

	end, err := matchBrace(text, 0)
	require.NoError(t, err)
	assert.Equal(t, len(text)-1, end)
}
