package glimpse_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/chRyNaN/glimpse"
	"github.com/chRyNaN/glimpse/examples/res"
	"github.com/chRyNaN/glimpse/examples/widget"
	"github.com/chRyNaN/glimpse/style"
	"github.com/chRyNaN/glimpse/style/styletest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Base struct {
	Color int
}

type Derived struct {
	Base
	Name string
}

type Deeper struct {
	*Derived
}

type Unbound struct {
	Value int
}

type baseAttr struct{}

func newBaseConstructors(calls *int, mu *sync.Mutex) glimpse.Constructors {
	return glimpse.Bind(
		func(b *Base, _ style.Context, _ style.AttributeSet) (*baseAttr, error) {
			mu.Lock()
			defer mu.Unlock()

			*calls++
			b.Color = 1

			return &baseAttr{}, nil
		},
		func(b *Base, _ style.Context, _ style.AttributeSet, defStyle, defStyleRes int) (*baseAttr, error) {
			mu.Lock()
			defer mu.Unlock()

			*calls++
			b.Color = defStyle + defStyleRes

			return &baseAttr{}, nil
		},
	)
}

func newDispatcher(t *testing.T) (*glimpse.Dispatcher, *int) {
	t.Helper()

	var (
		calls int
		mu    sync.Mutex
	)

	d := glimpse.NewDispatcher(glimpse.WithLogger(zaptest.NewLogger(t)))
	d.Register("github.com/chRyNaN/glimpse_test.Base", newBaseConstructors(&calls, &mu))

	return d, &calls
}

func TestDispatcher_SelectsConstructorByArity(t *testing.T) {
	d, calls := newDispatcher(t)
	ctx := styletest.NewContext()

	b := &Base{}
	bound, err := d.Bind(b, ctx, nil)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, 1, b.Color)

	bound, err = d.Bind(b, ctx, nil, 2, 3)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, 5, b.Color)
	assert.Equal(t, 2, *calls)

	_, err = d.Bind(b, ctx, nil, 1)
	require.ErrorIs(t, err, glimpse.ErrExtras)

	_, err = d.Bind(b, ctx, nil, 1, 2, 3)
	require.ErrorIs(t, err, glimpse.ErrExtras)
}

func TestDispatcher_WalksEmbeddedStructs(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := styletest.NewContext()

	derived := &Derived{Name: "x"}
	bound, err := d.Bind(derived, ctx, nil)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, 1, derived.Color)

	deeper := &Deeper{Derived: &Derived{}}
	bound, err = d.Bind(deeper, ctx, nil, 4, 4)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, 8, deeper.Color)

	_, err = d.Bind(&Deeper{}, ctx, nil)
	assert.Error(t, err, "nil embedded pointer")
}

func TestDispatcher_UnboundTypes(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := styletest.NewContext()

	bound, err := d.Bind(&Unbound{}, ctx, nil)
	require.NoError(t, err)
	assert.False(t, bound)

	_, err = d.Bind(Unbound{}, ctx, nil)
	require.ErrorIs(t, err, glimpse.ErrInvalidTarget)

	_, err = d.Bind((*Unbound)(nil), ctx, nil)
	require.ErrorIs(t, err, glimpse.ErrInvalidTarget)

	value := 3
	_, err = d.Bind(&value, ctx, nil)
	require.ErrorIs(t, err, glimpse.ErrInvalidTarget)
}

func TestDispatcher_RegisterClearsCachedMiss(t *testing.T) {
	d := glimpse.NewDispatcher()
	ctx := styletest.NewContext()

	bound, err := d.Bind(&Unbound{}, ctx, nil)
	require.NoError(t, err)
	assert.False(t, bound)

	d.Register("github.com/chRyNaN/glimpse_test.Unbound", glimpse.Bind(
		func(u *Unbound, _ style.Context, _ style.AttributeSet) (struct{}, error) {
			u.Value = 7

			return struct{}{}, nil
		},
		func(*Unbound, style.Context, style.AttributeSet, int, int) (struct{}, error) {
			return struct{}{}, errors.New("unused")
		},
	))

	u := &Unbound{}
	bound, err = d.Bind(u, ctx, nil)
	require.NoError(t, err)
	assert.True(t, bound)
	assert.Equal(t, 7, u.Value)

	d.Reset()

	bound, err = d.Bind(u, ctx, nil, 0, 0)
	assert.True(t, bound)
	assert.EqualError(t, err, "glimpse: binding github.com/chRyNaN/glimpse_test.Unbound: unused")
}

func TestDispatcher_RegisterPanics(t *testing.T) {
	d, _ := newDispatcher(t)

	var calls int

	var mu sync.Mutex

	assert.Panics(t, func() {
		d.Register("github.com/chRyNaN/glimpse_test.Base", newBaseConstructors(&calls, &mu))
	})
	assert.Panics(t, func() {
		d.Register("example.com/x.Y", glimpse.Constructors{})
	})
}

func TestBind_RejectsForeignTarget(t *testing.T) {
	var calls int

	var mu sync.Mutex

	c := newBaseConstructors(&calls, &mu)

	_, err := c.New(&Unbound{}, styletest.NewContext(), nil)

	var typeErr *glimpse.TargetTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "*glimpse_test.Base", typeErr.Want)
	assert.Equal(t, "*glimpse_test.Unbound", typeErr.Got)
}

func TestDispatcher_ConcurrentBinds(t *testing.T) {
	d, calls := newDispatcher(t)
	ctx := styletest.NewContext()

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			bound, err := d.Bind(&Derived{}, ctx, nil)
			assert.NoError(t, err)
			assert.True(t, bound)
		}()
	}

	wg.Wait()
	assert.Equal(t, 16, *calls)
}

type shape struct{}

func (shape) IntrinsicWidth() int  { return 1 }
func (shape) IntrinsicHeight() int { return 1 }

type Fancy struct {
	widget.Widget
	Extra int
}

func TestObtain_GeneratedBindingThroughEmbedding(t *testing.T) {
	ctx := styletest.NewContext()
	ctx.Res.Values[res.Color.Accent] = styletest.Color(2)
	ctx.Res.Values[res.Dimen.Padding] = styletest.Dimension(8)
	ctx.Res.Values[res.Dimen.TextSize] = styletest.Dimension(8)
	ctx.Res.Values[res.Dimen.Elevation] = styletest.Dimension(1)
	ctx.Res.Values[res.Fraction.Alpha] = styletest.Fraction{Value: 1, Parent: true}
	ctx.Res.Values[res.String.Label] = "label"
	ctx.Res.Values[res.String.Hint] = "hint"
	ctx.Res.Values[res.Array.Entries] = []style.Text{}
	ctx.Res.Values[res.Drawable.Background] = shape{}
	ctx.Res.Values[res.Bool.Enabled] = true
	ctx.Res.Values[res.Integer.MaxLines] = styletest.Integer(1)

	f := &Fancy{}
	bound, err := glimpse.Obtain(f, ctx, styletest.AttributeSet{res.Attr.Flag: true})
	require.NoError(t, err)
	assert.True(t, bound)
	assert.True(t, f.Flag)
	assert.Equal(t, 2, f.Tint)
	assert.Equal(t, 8, f.Padding)
	assert.Equal(t, "label", f.Label.String())
	assert.Equal(t, shape{}, f.Background)
	assert.Zero(t, ctx.Leaked())
}
