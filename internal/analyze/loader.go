package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/chRyNaN/glimpse/internal/annotation"
	"github.com/chRyNaN/glimpse/internal/common"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DefaultStyleable is the annotation name that marks a bound field.
const DefaultStyleable = "Styleable"

// Options configures an Analyzer.
type Options struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir string
	// Styleable is the annotation name that makes a struct a target.
	Styleable string
}

// Analyzer loads Go packages and discovers styleable targets.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Styleable == "" {
		opts.Styleable = DefaultStyleable
	}

	return &Analyzer{opts: opts}
}

// LoadPackages loads the specified packages and discovers their targets.
// Patterns are standard Go package patterns (e.g., "./...", "example.com/app/widget").
func (a *Analyzer) LoadPackages(patterns ...string) (*Program, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.opts.Dir,
		Fset: token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Listing and parse errors leave nothing to analyze. Type errors are
	// kept per package and attributed to targets below.
	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			if e.Kind != packages.TypeError {
				errs = append(errs, e)
			}
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	prog := newProgram(cfg.Fset)

	for _, pkg := range pkgs {
		prog.index(pkg.Types)

		if err := a.processPackage(prog, pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	sort.SliceStable(prog.Targets, func(i, j int) bool {
		l, r := prog.Targets[i], prog.Targets[j]
		if l.ID.PkgPath != r.ID.PkgPath {
			return l.ID.PkgPath < r.ID.PkgPath
		}

		if l.File != r.File {
			return l.File < r.File
		}

		return l.Pos.Offset < r.Pos.Offset
	})

	return prog, nil
}

// processPackage scans every struct declaration of pkg for targets.
func (a *Analyzer) processPackage(prog *Program, pkg *packages.Package) error {
	pkgScope := &PackageScope{Path: pkg.PkgPath, Names: make(map[string]bool)}
	for _, name := range pkg.Types.Scope().Names() {
		pkgScope.Names[name] = true
	}

	typeErrs := typeErrors(pkg)

	for _, file := range pkg.Syntax {
		fileName := pkg.Fset.Position(file.Pos()).Filename
		if isBinding(file) {
			continue
		}

		fileScope := a.fileScope(pkg, file, fileName)

		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.TypeParams != nil {
					continue
				}

				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}

				target := &Target{
					ID:           TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name},
					PackageName:  pkg.Name,
					Dir:          filepath.Dir(fileName),
					File:         fileName,
					Pos:          pkg.Fset.Position(ts.Pos()),
					Fields:       a.fields(pkg, st),
					FileScope:    fileScope,
					PackageScope: pkgScope,
					Types:        pkg.Types,
				}

				if !a.isTarget(target) {
					continue
				}

				for i := range typeErrs {
					if te := &typeErrs[i]; te.pos >= ts.Pos() && te.pos < ts.End() {
						target.TypeErrors = append(target.TypeErrors, te.TypeError)
						te.claimed = true
					}
				}

				prog.Targets = append(prog.Targets, target)
			}
		}
	}

	for _, te := range typeErrs {
		if !te.claimed {
			prog.TypeErrors = append(prog.TypeErrors, te.TypeError)
		}
	}

	return nil
}

type pendingTypeError struct {
	TypeError
	pos     token.Pos
	claimed bool
}

// typeErrors lists the type errors of pkg, marking those inside bindings.
func typeErrors(pkg *packages.Package) []pendingTypeError {
	if len(pkg.TypeErrors) == 0 {
		return nil
	}

	bindings := make(map[string]bool)

	for _, file := range pkg.Syntax {
		if isBinding(file) {
			bindings[pkg.Fset.Position(file.Pos()).Filename] = true
		}
	}

	out := make([]pendingTypeError, 0, len(pkg.TypeErrors))

	for _, e := range pkg.TypeErrors {
		pos := e.Fset.Position(e.Pos)
		out = append(out, pendingTypeError{
			TypeError: TypeError{
				PkgPath:   pkg.PkgPath,
				Pos:       pos,
				Msg:       e.Msg,
				Generated: bindings[pos.Filename],
			},
			pos: e.Pos,
		})
	}

	return out
}

// isBinding reports whether file was written by glimpse-generator.
func isBinding(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() > file.Package {
			break
		}

		for _, c := range cg.List {
			if c.Text == common.GeneratedHeader {
				return true
			}
		}
	}

	return false
}

func (a *Analyzer) fileScope(pkg *packages.Package, file *ast.File, fileName string) *FileScope {
	scope := &FileScope{File: fileName, Imports: make(map[string]string)}

	for _, imp := range file.Imports {
		pn := pkg.TypesInfo.PkgNameOf(imp)
		if pn == nil || pn.Name() == "_" || pn.Name() == "." {
			continue
		}

		scope.Imports[pn.Name()] = pn.Imported().Path()
	}

	return scope
}

// fields describes every field of st in declaration order.
func (a *Analyzer) fields(pkg *packages.Package, st *ast.StructType) []FieldElement {
	var out []FieldElement

	index := 0

	for _, field := range st.Fields.List {
		anns, annErr := annotation.Parse(field.Doc, field.Comment)
		goType := pkg.TypesInfo.TypeOf(field.Type)

		if len(field.Names) == 0 {
			name := embeddedName(field.Type)
			out = append(out, FieldElement{
				Name:          name,
				Exported:      token.IsExported(name),
				Embedded:      true,
				Index:         index,
				GoType:        goType,
				Pos:           pkg.Fset.Position(field.Pos()),
				Annotations:   anns,
				AnnotationErr: annErr,
			})
			index++

			continue
		}

		for _, ident := range field.Names {
			out = append(out, FieldElement{
				Name:          ident.Name,
				Exported:      ident.IsExported(),
				Index:         index,
				GoType:        goType,
				Pos:           pkg.Fset.Position(ident.Pos()),
				Annotations:   anns,
				AnnotationErr: annErr,
			})
			index++
		}
	}

	return out
}

func (a *Analyzer) isTarget(t *Target) bool {
	for _, f := range t.Fields {
		if f.AnnotationErr != nil || annotation.Find(f.Annotations, a.opts.Styleable) != nil {
			return true
		}
	}

	return false
}

func embeddedName(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return "_"
	}
}

// Program is the result of one load: the discovered targets plus the
// type-checked packages needed to answer registry lookups.
type Program struct {
	Fset    *token.FileSet
	Targets []*Target
	// TypeErrors are the type errors no target claimed, in load order.
	TypeErrors []TypeError

	packages map[string]*types.Package
}

func newProgram(fset *token.FileSet) *Program {
	return &Program{
		Fset:     fset,
		packages: make(map[string]*types.Package),
	}
}

// index records pkg and everything it imports, transitively.
func (p *Program) index(pkg *types.Package) {
	if pkg == nil {
		return
	}

	if _, seen := p.packages[pkg.Path()]; seen {
		return
	}

	p.packages[pkg.Path()] = pkg

	for _, imp := range pkg.Imports() {
		p.index(imp)
	}
}

// Package returns the type-checked package at path, or nil.
func (p *Program) Package(path string) *types.Package {
	return p.packages[path]
}

// Target returns the target with the given id, or nil.
func (p *Program) Target(id TypeID) *Target {
	for _, t := range p.Targets {
		if t.ID == id {
			return t
		}
	}

	return nil
}
