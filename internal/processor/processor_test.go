package processor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/chRyNaN/glimpse/internal/analyze"
	"github.com/chRyNaN/glimpse/internal/config"
	"github.com/chRyNaN/glimpse/internal/diagnostic"
	"github.com/chRyNaN/glimpse/internal/gen"
)

const (
	widgetPkg = "github.com/chRyNaN/glimpse/examples/widget"
	brokenPkg = "github.com/chRyNaN/glimpse/internal/processor/testdata/broken"
	stalePkg  = "github.com/chRyNaN/glimpse/internal/processor/testdata/stale"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func load(t *testing.T, p *Processor, patterns ...string) *analyze.Program {
	t.Helper()

	prog, err := p.Load("", patterns...)
	require.NoError(t, err)

	return prog
}

func removedStale(ds []diagnostic.Diagnostic) []string {
	var out []string

	for _, d := range ds {
		if d.Code == diagnostic.CodeRemovedStale {
			out = append(out, d.Code+" "+d.Target)
		}
	}

	return out
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code+" "+d.FieldPath)
	}

	return out
}

func TestRun_Widget(t *testing.T) {
	p := New(Options{})
	res, err := p.Run(context.Background(), load(t, p, widgetPkg))
	require.NoError(t, err)

	require.Empty(t, res.Diagnostics.Errors, res.Diagnostics.Error())
	require.Len(t, res.Bindings, 1)

	b := res.Bindings[0]
	require.NotNil(t, b.File)
	assert.False(t, b.Written)
	assert.Len(t, b.Target.Fields, 14)
	assert.Equal(t, "widget_styleable_attr.go", b.File.Filename)

	src := string(b.File.Content)
	assert.Equal(t, 2, strings.Count(src, "ctx.ObtainStyledAttributes(attrs"))
	assert.Contains(t, src, "ctx.ObtainStyledAttributes(attrs, res.Styleable.Widget)")
	assert.Contains(t, src, "ctx.ObtainStyledAttributes(attrs, res.Styleable.Other)")
	assert.Contains(t, src, "// No default resource: TitleColor, TextColor, Flag.")

	var omitted []string
	for _, n := range res.Diagnostics.Notes {
		if n.Code == diagnostic.CodeOmittedDefault {
			omitted = append(omitted, n.FieldPath)
		}
	}

	assert.Equal(t, []string{"Widget.TitleColor", "Widget.TextColor", "Widget.Flag"}, omitted)
}

func TestRun_ReportsFieldErrors(t *testing.T) {
	p := New(Options{})
	res, err := p.Run(context.Background(), load(t, p, brokenPkg))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unresolved_symbol Panel.Title",
		"invalid_field Panel.Tint",
		"annotation_syntax Panel.Label",
		"unresolved_symbol Empty.X",
		"generation_failed ",
	}, codes(res.Diagnostics.Errors))

	title := res.Diagnostics.Errors[0]
	assert.Contains(t, title.Suggestions, "Widget_titleColor")
	assert.Equal(t, 12, title.Pos.Line)

	assert.Equal(t, []string{
		"ignored_marker Panel.Hint",
		"ignored_marker Panel.Stray",
	}, codes(res.Diagnostics.Warnings))

	require.Len(t, res.Bindings, 2)

	panel := res.Bindings[0]
	require.NotNil(t, panel.File)
	require.Len(t, panel.Target.Fields, 1)
	assert.Equal(t, "Hint", panel.Target.Fields[0].Name)

	assert.Nil(t, res.Bindings[1].File)
}

func TestRun_TypeErrorsStayWithTheirTarget(t *testing.T) {
	var (
		mu      sync.Mutex
		written []string
		removed []string
	)

	p := New(Options{
		Write: true,
		WriteFile: func(f *gen.GeneratedFile) error {
			mu.Lock()
			defer mu.Unlock()

			written = append(written, f.Filename)

			return nil
		},
		RemoveStale: func(dir, filename string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()

			removed = append(removed, filepath.Join(filepath.Base(dir), filename))

			return true, nil
		},
	})

	res, err := p.Run(context.Background(), load(t, p, widgetPkg, stalePkg))
	require.NoError(t, err)

	require.Len(t, res.Bindings, 3)
	assert.Equal(t, "Widget", res.Bindings[0].Target.ID.Name)
	assert.True(t, res.Bindings[0].Written)

	box := res.Bindings[1]
	assert.Equal(t, "Box", box.Target.ID.Name)
	require.NotNil(t, box.File)
	assert.True(t, box.Written)
	assert.Contains(t, string(box.File.Content), "target.Tint = ")
	assert.NotContains(t, string(box.File.Content), "Removed")

	gauge := res.Bindings[2]
	assert.Equal(t, "Gauge", gauge.Target.ID.Name)
	assert.Nil(t, gauge.File)

	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeTypeError, res.Diagnostics.Errors[0].Code)
	assert.Equal(t, stalePkg+".Gauge", res.Diagnostics.Errors[0].Target)

	var stale []diagnostic.Diagnostic
	for _, n := range res.Diagnostics.Notes {
		if n.Code == diagnostic.CodeTypeError {
			stale = append(stale, n)
		}
	}

	require.Len(t, stale, 1)
	assert.Contains(t, stale[0].Message, "stale binding")
	assert.Equal(t, "box_styleable_attr.go", filepath.Base(stale[0].Pos.Filename))

	assert.ElementsMatch(t, []string{"widget_styleable_attr.go", "box_styleable_attr.go"}, written)
	assert.Equal(t, []string{filepath.Join("stale", "gauge_styleable_attr.go")}, removed)

	assert.Equal(t, []string{"removed_stale " + stalePkg + ".Gauge"}, removedStale(res.Diagnostics.Warnings))
}

func TestRun_FailedGenerationRemovesEarlierBinding(t *testing.T) {
	var removed []string

	p := New(Options{
		Write:     true,
		WriteFile: func(*gen.GeneratedFile) error { return nil },
		RemoveStale: func(_, filename string) (bool, error) {
			removed = append(removed, filename)

			return false, errors.New("permission denied")
		},
		Config: func() *config.Config {
			cfg := config.Default()
			cfg.Parallelism = 1

			return cfg
		}(),
	})

	res, err := p.Run(context.Background(), load(t, p, brokenPkg))
	require.NoError(t, err)

	assert.Equal(t, []string{"empty_styleable_attr.go"}, removed)

	var writeFailed []string
	for _, e := range res.Diagnostics.Errors {
		if e.Code == diagnostic.CodeWriteFailed {
			writeFailed = append(writeFailed, e.Target)
		}
	}

	assert.Equal(t, []string{brokenPkg + ".Empty"}, writeFailed)
}

func TestRun_WritesFiles(t *testing.T) {
	var written []*gen.GeneratedFile

	p := New(Options{
		Write: true,
		WriteFile: func(f *gen.GeneratedFile) error {
			written = append(written, f)

			return nil
		},
	})

	res, err := p.Run(context.Background(), load(t, p, widgetPkg))
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.True(t, res.Bindings[0].Written)
}

func TestRun_WriteFailure(t *testing.T) {
	p := New(Options{
		Write:     true,
		WriteFile: func(*gen.GeneratedFile) error { return errors.New("disk full") },
	})

	res, err := p.Run(context.Background(), load(t, p, widgetPkg))
	require.NoError(t, err)

	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeWriteFailed, res.Diagnostics.Errors[0].Code)
	assert.False(t, res.Bindings[0].Written)
}

func TestRun_OutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = "styleable"

	p := New(Options{Config: cfg})
	res, err := p.Run(context.Background(), load(t, p, widgetPkg))
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics.Errors)

	src := string(res.Bindings[0].File.Content)
	assert.Contains(t, src, "package styleable")
	assert.Contains(t, src, "target *widget.Widget")
}

func TestRun_DeterministicAcrossParallelism(t *testing.T) {
	run := func(parallelism int) *Result {
		cfg := config.Default()
		cfg.Parallelism = parallelism

		p := New(Options{Config: cfg})
		res, err := p.Run(context.Background(), load(t, p, widgetPkg, brokenPkg))
		require.NoError(t, err)

		return res
	}

	serial, parallel := run(1), run(4)

	if diff := cmp.Diff(serial.Diagnostics, parallel.Diagnostics); diff != "" {
		t.Errorf("diagnostics differ (-serial +parallel):\n%s", diff)
	}

	require.Len(t, parallel.Bindings, len(serial.Bindings))

	for i := range serial.Bindings {
		assert.Equal(t, serial.Bindings[i].Target.ID, parallel.Bindings[i].Target.ID)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	p := New(Options{})
	prog := load(t, p, widgetPkg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, prog)
	assert.ErrorIs(t, err, context.Canceled)
}
