package glimpse

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/chRyNaN/glimpse/style"
)

// BindingSuffix is appended to a target's name to form its binding's name.
const BindingSuffix = "StyleableAttr"

var (
	// ErrInvalidTarget is returned for targets that are not non-nil pointers
	// to structs.
	ErrInvalidTarget = errors.New("glimpse: target must be a non-nil pointer to a struct")
	// ErrExtras is returned when extras are neither empty nor a
	// (defStyle, defStyleRes) pair.
	ErrExtras = errors.New("glimpse: extras must be empty or defStyle and defStyleRes")
)

// Constructors are the two constructors of one binding with the target type
// erased.
type Constructors struct {
	New          func(target any, ctx style.Context, attrs style.AttributeSet) (any, error)
	NewWithStyle func(target any, ctx style.Context, attrs style.AttributeSet, defStyle, defStyleRes int) (any, error)
}

// TargetTypeError reports a target handed to a binding of another type.
type TargetTypeError struct {
	Want string
	Got  string
}

func (e *TargetTypeError) Error() string {
	return fmt.Sprintf("glimpse: binding for %s called with %s", e.Want, e.Got)
}

// Bind erases the target type of a binding's constructors.
func Bind[T, B any](
	newFn func(*T, style.Context, style.AttributeSet) (B, error),
	withStyle func(*T, style.Context, style.AttributeSet, int, int) (B, error),
) Constructors {
	cast := func(target any) (*T, error) {
		t, ok := target.(*T)
		if !ok {
			return nil, &TargetTypeError{Want: reflect.TypeFor[*T]().String(), Got: fmt.Sprintf("%T", target)}
		}

		return t, nil
	}

	return Constructors{
		New: func(target any, ctx style.Context, attrs style.AttributeSet) (any, error) {
			t, err := cast(target)
			if err != nil {
				return nil, err
			}

			return newFn(t, ctx, attrs)
		},
		NewWithStyle: func(target any, ctx style.Context, attrs style.AttributeSet, defStyle, defStyleRes int) (any, error) {
			t, err := cast(target)
			if err != nil {
				return nil, err
			}

			return withStyle(t, ctx, attrs, defStyle, defStyleRes)
		},
	}
}

// variant selects a constructor by the number of extras.
type variant int

const (
	plain     variant = 0
	withStyle variant = 2
)

type cacheKey struct {
	typ     reflect.Type
	variant variant
}

// located is a cached lookup. A zero located is a cached miss.
type located struct {
	ctor Constructors
	// index is the embedded field path from the target to the bound value.
	index []int
	found bool
}

// Dispatcher maps target types to bindings. It is safe for concurrent use.
type Dispatcher struct {
	logger *zap.Logger

	mu       sync.Mutex
	bindings map[string]Constructors
	cache    map[cacheKey]located
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger logs lookups at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:   zap.NewNop(),
		bindings: make(map[string]Constructors),
		cache:    make(map[cacheKey]located),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Register adds the binding for the type named key ("<import path>.<Name>").
// It panics if key is registered twice or c is incomplete.
func (d *Dispatcher) Register(key string, c Constructors) {
	if c.New == nil || c.NewWithStyle == nil {
		panic("glimpse: Register with nil constructor for " + key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, dup := d.bindings[key]; dup {
		panic("glimpse: Register called twice for " + key)
	}

	d.bindings[key] = c
	// Cached misses may now resolve.
	clear(d.cache)
}

// Reset drops every cached lookup. Registrations are kept.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.cache)
}

// Bind populates target through its binding. extras is empty or holds
// defStyle and defStyleRes. It reports false when no binding exists for the
// target or any struct it embeds.
func (d *Dispatcher) Bind(target any, ctx style.Context, attrs style.AttributeSet, extras ...int) (bool, error) {
	var v variant

	switch len(extras) {
	case 0:
		v = plain
	case 2:
		v = withStyle
	default:
		return false, fmt.Errorf("%w, got %d values", ErrExtras, len(extras))
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return false, ErrInvalidTarget
	}

	loc := d.lookup(rv.Type().Elem(), v)
	if !loc.found {
		d.logger.Debug("no binding found", zap.Stringer("type", rv.Type()))

		return false, nil
	}

	bound := rv.Elem()

	for _, i := range loc.index {
		bound = bound.Field(i)
		if bound.Kind() == reflect.Pointer {
			if bound.IsNil() {
				return false, fmt.Errorf("glimpse: embedded %s of %s is nil", bound.Type(), rv.Type())
			}

			bound = bound.Elem()
		}
	}

	ptr := bound.Addr().Interface()

	var err error
	if v == withStyle {
		_, err = loc.ctor.NewWithStyle(ptr, ctx, attrs, extras[0], extras[1])
	} else {
		_, err = loc.ctor.New(ptr, ctx, attrs)
	}

	if err != nil {
		return true, fmt.Errorf("glimpse: binding %s: %w", typeKey(bound.Type()), err)
	}

	return true, nil
}

// lookup returns the binding for t, walking embedded structs depth-first in
// declaration order when t has none. Results, misses included, are cached.
func (d *Dispatcher) lookup(t reflect.Type, v variant) located {
	key := cacheKey{typ: t, variant: v}

	d.mu.Lock()
	defer d.mu.Unlock()

	if loc, ok := d.cache[key]; ok {
		d.logger.Debug("binding cache hit", zap.Stringer("type", t), zap.Bool("found", loc.found))

		return loc
	}

	loc := d.find(t, nil, make(map[reflect.Type]bool))
	d.cache[key] = loc

	return loc
}

func (d *Dispatcher) find(t reflect.Type, index []int, seen map[reflect.Type]bool) located {
	if seen[t] {
		return located{}
	}

	seen[t] = true

	if c, ok := d.bindings[typeKey(t)]; ok {
		return located{ctor: c, index: index, found: true}
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if ft.Kind() != reflect.Struct {
			continue
		}

		path := append(append([]int(nil), index...), i)
		if loc := d.find(ft, path, seen); loc.found {
			return loc
		}
	}

	return located{}
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.Name()
}

var defaultDispatcher = NewDispatcher()

// Default returns the dispatcher generated bindings register with.
func Default() *Dispatcher {
	return defaultDispatcher
}

// Register adds a binding to the default dispatcher. Generated code calls
// it from init.
func Register(key string, c Constructors) {
	defaultDispatcher.Register(key, c)
}

// Obtain populates target from attrs through the default dispatcher.
func Obtain(target any, ctx style.Context, attrs style.AttributeSet) (bool, error) {
	return defaultDispatcher.Bind(target, ctx, attrs)
}

// ObtainWithStyle is Obtain with a default style attribute and resource.
func ObtainWithStyle(target any, ctx style.Context, attrs style.AttributeSet, defStyle, defStyleRes int) (bool, error) {
	return defaultDispatcher.Bind(target, ctx, attrs, defStyle, defStyleRes)
}
