package processor

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"path"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chRyNaN/glimpse/internal/analyze"
	"github.com/chRyNaN/glimpse/internal/annotation"
	"github.com/chRyNaN/glimpse/internal/config"
	"github.com/chRyNaN/glimpse/internal/diagnostic"
	"github.com/chRyNaN/glimpse/internal/gen"
	"github.com/chRyNaN/glimpse/internal/model"
	"github.com/chRyNaN/glimpse/internal/resolve"
)

// Options configures a Processor.
type Options struct {
	Config *config.Config
	// Write enables writing generated files. Check runs leave it off.
	Write bool
	// WriteFile replaces gen.WriteFile.
	WriteFile func(*gen.GeneratedFile) error
	// RemoveStale replaces gen.RemoveStale.
	RemoveStale func(dir, filename string) (bool, error)
	Logger      *zap.Logger
}

// Processor turns analyzed programs into bindings.
type Processor struct {
	cfg         *config.Config
	write       bool
	writeFile   func(*gen.GeneratedFile) error
	removeStale func(dir, filename string) (bool, error)
	logger      *zap.Logger
}

// Binding is the outcome of one target pass.
type Binding struct {
	Target model.TargetType
	// File is nil when generation failed.
	File *gen.GeneratedFile
	// Written reports whether File reached disk.
	Written bool
}

// Result collects every pass of one run.
type Result struct {
	Bindings    []Binding
	Diagnostics diagnostic.Diagnostics
}

// New creates a Processor.
func New(opts Options) *Processor {
	p := &Processor{
		cfg:         opts.Config,
		write:       opts.Write,
		writeFile:   opts.WriteFile,
		removeStale: opts.RemoveStale,
		logger:      opts.Logger,
	}

	if p.cfg == nil {
		p.cfg = config.Default()
	}

	if p.writeFile == nil {
		p.writeFile = gen.WriteFile
	}

	if p.removeStale == nil {
		p.removeStale = gen.RemoveStale
	}

	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	return p
}

// Load analyzes the packages matching patterns from dir. Load errors abort
// the run since nothing can be analyzed.
func (p *Processor) Load(dir string, patterns ...string) (*analyze.Program, error) {
	analyzer := analyze.NewAnalyzer(analyze.Options{Dir: dir, Styleable: p.cfg.Annotations.Styleable})

	prog, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("packages loaded", zap.Strings("patterns", patterns), zap.Int("targets", len(prog.Targets)))

	return prog, nil
}

// Run generates a binding for every target of prog. A failing target never
// stops the others; the returned error is only set when ctx is done.
func (p *Processor) Run(ctx context.Context, prog *analyze.Program) (*Result, error) {
	passes := make([]*pass, len(prog.Targets))

	limit := p.cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, t := range prog.Targets {
		passes[i] = &pass{proc: p, prog: prog, target: t}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			passes[i].run()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("processing targets: %w", err)
	}

	res := &Result{}

	for _, te := range prog.TypeErrors {
		res.Diagnostics.Report(typeErrorDiagnostic(te))
	}

	for _, ps := range passes {
		res.Bindings = append(res.Bindings, ps.binding)
		res.Diagnostics.Merge(ps.diags)
	}

	return res, nil
}

// pass generates the binding of one target. It touches nothing shared.
type pass struct {
	proc   *Processor
	prog   *analyze.Program
	target *analyze.Target

	diags   diagnostic.Diagnostics
	binding Binding
}

func (ps *pass) run() {
	cfg := ps.proc.cfg
	t := ps.target
	key := t.ID.String()

	outputPkg := t.ID.PkgPath
	if cfg.Output.Dir != "" {
		outputPkg = path.Join(outputPkg, filepath.ToSlash(cfg.Output.Dir))
	}

	resolver := &resolve.Resolver{Registry: ps.prog, Sink: &ps.diags}
	builder := &model.Builder{
		StylePkg:  cfg.Runtime.Style,
		OutputPkg: outputPkg,
		ColorInt:  cfg.Annotations.ColorInt,
		Dimension: cfg.Annotations.Dimension,
		Sink:      &ps.diags,
	}
	scopes := []resolve.Scope{t.FileScope, t.PackageScope}

	desc := model.TargetType{ID: t.ID, PackageName: t.PackageName, Dir: t.Dir}

	if len(t.TypeErrors) > 0 {
		for _, te := range t.TypeErrors {
			d := typeErrorDiagnostic(te)
			d.Severity = diagnostic.SeverityError
			d.Target = key
			ps.diags.Report(d)
		}

		ps.binding.Target = desc
		ps.dropStale(desc)

		return
	}

	for _, f := range t.Fields {
		if f.AnnotationErr != nil {
			ps.fieldError(f, f.AnnotationErr)

			continue
		}

		ann := annotation.Find(f.Annotations, cfg.Annotations.Styleable)
		if ann == nil {
			ps.strayMarkers(f)

			continue
		}

		site := resolve.Site{Target: key, Field: analyze.FieldPath(t.ID.Name, f.Name), Pos: f.Pos}

		attr, err := resolver.Resolve(ann, resolve.ValueArgument, scopes, site)
		if err != nil {
			ps.fieldError(f, err)

			continue
		}

		def, err := resolver.ResolveOptional(ann, resolve.DefaultResArgument, scopes, site)
		if err != nil {
			ps.fieldError(f, err)

			continue
		}

		fd, err := builder.Build(model.Input{Target: t.ID, Element: f, Attribute: attr, Default: def})
		if err != nil {
			ps.fieldError(f, err)

			continue
		}

		desc.Fields = append(desc.Fields, fd)
	}

	ps.binding.Target = desc

	file, err := gen.NewGenerator(ps.generatorConfig()).Generate(ps.input(desc))
	if err != nil {
		ps.diags.Report(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeGenerationFailed,
			Message:  err.Error(),
			Target:   key,
			Pos:      t.Pos,
		})
		ps.dropStale(desc)

		return
	}

	for _, f := range desc.Fields {
		if !f.HasDefault() {
			ps.diags.Report(diagnostic.Diagnostic{
				Severity:  diagnostic.SeverityNote,
				Code:      diagnostic.CodeOmittedDefault,
				Message:   "no default resource; left unchanged when no attribute set is given",
				Target:    key,
				FieldPath: analyze.FieldPath(t.ID.Name, f.Name),
				Pos:       f.Pos,
			})
		}
	}

	ps.binding.File = file

	if !ps.proc.write {
		return
	}

	if err := ps.proc.writeFile(file); err != nil {
		ps.diags.AddError(diagnostic.CodeWriteFailed, err.Error(), key, "")

		return
	}

	ps.binding.Written = true
	ps.proc.logger.Info("binding written",
		zap.String("target", key),
		zap.String("file", filepath.Join(file.Dir, file.Filename)))
}

// dropStale removes the binding an earlier run wrote for a target that no
// longer generates.
func (ps *pass) dropStale(desc model.TargetType) {
	if !ps.proc.write {
		return
	}

	key := desc.ID.String()
	dir, name := gen.NewGenerator(ps.generatorConfig()).Location(desc)

	removed, err := ps.proc.removeStale(dir, name)
	if err != nil {
		ps.diags.AddError(diagnostic.CodeWriteFailed, err.Error(), key, "")

		return
	}

	if removed {
		ps.diags.Report(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeRemovedStale,
			Message:  "removed " + filepath.Join(dir, name) + " left by an earlier run",
			Target:   key,
		})
	}
}

// typeErrorDiagnostic reports a type error. Errors inside earlier bindings
// are notes since the run rewrites those files.
func typeErrorDiagnostic(te analyze.TypeError) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     diagnostic.CodeTypeError,
		Message:  te.Msg,
		Pos:      te.Pos,
	}

	if te.Generated {
		d.Severity = diagnostic.SeverityNote
		d.Message = "stale binding: " + te.Msg
	}

	return d
}

func (ps *pass) generatorConfig() gen.Config {
	cfg := ps.proc.cfg

	return gen.Config{
		Suffix:     cfg.Suffix,
		StylePkg:   cfg.Runtime.Style,
		RuntimePkg: cfg.Runtime.Dispatcher,
		Register:   cfg.RegisterBindings(),
		OutputRel:  cfg.Output.Dir,
		Debug:      ps.proc.write,
	}
}

// input adds the declared names of every package the binding may import,
// and the identifiers it must not shadow when written next to the target.
func (ps *pass) input(desc model.TargetType) gen.Input {
	cfg := ps.proc.cfg
	in := gen.Input{Target: desc, PackageNames: make(map[string]string)}

	paths := []string{desc.ID.PkgPath, cfg.Runtime.Style, cfg.Runtime.Dispatcher}
	for _, f := range desc.Fields {
		paths = append(paths, f.Attribute.Registry)
	}

	for _, p := range paths {
		if pkg := ps.prog.Package(p); pkg != nil {
			in.PackageNames[p] = pkg.Name()
		}
	}

	if cfg.Output.Dir == "" && ps.target.PackageScope != nil {
		for name := range ps.target.PackageScope.Names {
			in.Taken = append(in.Taken, name)
		}
	}

	return in
}

// fieldError reports a skipped field.
func (ps *pass) fieldError(f analyze.FieldElement, err error) {
	t := ps.target

	d := diagnostic.Diagnostic{
		Severity:  diagnostic.SeverityError,
		Code:      diagnostic.CodeInvalidField,
		Message:   err.Error(),
		Target:    t.ID.String(),
		FieldPath: analyze.FieldPath(t.ID.Name, f.Name),
		Pos:       f.Pos,
	}

	var (
		unresolved *resolve.UnresolvedSymbolError
		syntax     *annotation.SyntaxError
		invalid    *model.InvalidFieldError
	)

	switch {
	case errors.As(err, &unresolved):
		d.Code = diagnostic.CodeUnresolvedSymbol
		d.Suggestions = unresolved.Suggestions
		d.Pos = ps.position(unresolved.Pos, f.Pos)
	case errors.As(err, &syntax):
		d.Code = diagnostic.CodeAnnotationSyntax
		d.Pos = ps.position(syntax.Pos, f.Pos)
	case errors.As(err, &invalid):
		if invalid.Pos.IsValid() {
			d.Pos = invalid.Pos
		}
	}

	ps.diags.Report(d)
}

// strayMarkers warns about marker annotations on fields that are not bound.
func (ps *pass) strayMarkers(f analyze.FieldElement) {
	cfg := ps.proc.cfg

	for _, name := range []string{cfg.Annotations.ColorInt, cfg.Annotations.Dimension} {
		if annotation.Find(f.Annotations, name) == nil {
			continue
		}

		ps.diags.Report(diagnostic.Diagnostic{
			Severity:  diagnostic.SeverityWarning,
			Code:      diagnostic.CodeIgnoredMarker,
			Message:   fmt.Sprintf("@%s ignored without @%s", name, cfg.Annotations.Styleable),
			Target:    ps.target.ID.String(),
			FieldPath: analyze.FieldPath(ps.target.ID.Name, f.Name),
			Pos:       f.Pos,
		})
	}
}

func (ps *pass) position(pos token.Pos, fallback token.Position) token.Position {
	if !pos.IsValid() || ps.prog.Fset == nil {
		return fallback
	}

	return ps.prog.Fset.Position(pos)
}
