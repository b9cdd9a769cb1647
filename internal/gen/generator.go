package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"path/filepath"
	"strings"

	"github.com/chRyNaN/glimpse/internal/common"
	"github.com/chRyNaN/glimpse/internal/dispatch"
	"github.com/chRyNaN/glimpse/internal/model"
)

// Input is one target handed to the generator.
type Input struct {
	Target model.TargetType
	// PackageNames maps import paths to declared package names. Paths not
	// listed are named after their last element.
	PackageNames map[string]string
	// Taken lists identifiers declared in the output package scope.
	Taken []string
}

// Generator generates binding source files.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator with the given configuration. Empty
// fields take their defaults.
func NewGenerator(config Config) *Generator {
	def := DefaultConfig()

	if config.Suffix == "" {
		config.Suffix = def.Suffix
	}

	if config.StylePkg == "" {
		config.StylePkg = def.StylePkg
	}

	if config.RuntimePkg == "" {
		config.RuntimePkg = def.RuntimePkg
	}

	return &Generator{config: config}
}

// Generate renders and formats the binding file for in.Target. When
// formatting fails the unformatted file is returned with the error.
func (g *Generator) Generate(in Input) (*GeneratedFile, error) {
	spec, dir, err := g.Spec(in)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := bindingTemplate.Execute(&buf, spec); err != nil {
		return nil, &GenerationError{Target: spec.RegistryKey, Reason: "executing template", Err: err}
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.Debug {
			_ = writeDebugUnformatted(dir, spec.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: spec.Filename,
			Dir:      dir,
			Content:  buf.Bytes(),
		}, &GenerationError{Target: spec.RegistryKey, Reason: "formatting code", Err: err}
	}

	return &GeneratedFile{
		Filename: spec.Filename,
		Dir:      dir,
		Content:  formatted,
	}, nil
}

// Spec builds the binding spec for in.Target and returns it with the
// output directory.
func (g *Generator) Spec(in Input) (*BindingSpec, string, error) {
	t := in.Target
	key := common.QualifiedName(t.ID.PkgPath, t.ID.Name)

	fail := func(reason string, err error) (*BindingSpec, string, error) {
		return nil, "", &GenerationError{Target: key, Reason: reason, Err: err}
	}

	if len(t.Fields) == 0 {
		return fail("no bound fields", nil)
	}

	outPkg, pkgName, dir := g.output(t)

	typeName := g.typeName(t)
	newName := "New" + typeName
	withStyleName := newName + "WithStyle"

	names := func(p string) string {
		if name, ok := in.PackageNames[p]; ok {
			return name
		}

		return common.PkgAlias(p)
	}

	taken := append([]string{typeName, newName, withStyleName}, in.Taken...)
	imports := newImportSet(outPkg, names, taken...)

	spec := &BindingSpec{
		PackageName: pkgName,
		Filename:    common.SnakeCase(typeName) + ".go",
		TypeName:    typeName,
		RegistryKey: key,
		Register:    g.config.Register,
	}

	// Claim the style package first so it keeps its own name.
	spec.Context = imports.qualify(g.config.StylePkg, "Context")
	spec.AttributeSet = imports.qualify(g.config.StylePkg, "AttributeSet")
	spec.TargetName = imports.qualify(t.ID.PkgPath, t.ID.Name)

	groups := model.GroupFields(t.Fields)

	groupPlans := make([][]dispatch.Plan, len(groups))
	// A group name denotes one attribute array, so it must come from one
	// registry.
	registries := make(map[string]string)

	for i, grp := range groups {
		if grp.Symbol.IsZero() {
			return fail(fmt.Sprintf("field %s has no attribute group", grp.Fields[0].Name), nil)
		}

		if first, ok := registries[grp.Symbol.Group]; ok {
			return fail(fmt.Sprintf("field %s references group %s in registry %s, already used from registry %s",
				grp.Fields[0].Name, grp.Symbol.Group, grp.Symbol.Registry, first), nil)
		}

		registries[grp.Symbol.Group] = grp.Symbol.Registry

		for _, f := range grp.Fields {
			p, err := dispatch.Decide(f, dispatch.GroupPath)
			if err != nil {
				return fail("dispatching field", err)
			}

			groupPlans[i] = append(groupPlans[i], p)
		}
	}

	var defaultPlans []dispatch.Plan

	for _, f := range t.Fields {
		if !f.HasDefault() {
			spec.Omitted = append(spec.Omitted, f.Name)

			continue
		}

		p, err := dispatch.Decide(f, dispatch.DefaultPath)
		if err != nil {
			return fail("dispatching field", err)
		}

		defaultPlans = append(defaultPlans, p)
	}

	variants := []struct {
		name   string
		params string
		obtain func(group string) string
	}{
		{
			name: newName,
			obtain: func(group string) string {
				return fmt.Sprintf("ctx.ObtainStyledAttributes(attrs, %s)", group)
			},
		},
		{
			name:   withStyleName,
			params: ", defStyle, defStyleRes int",
			obtain: func(group string) string {
				return fmt.Sprintf("ctx.ObtainStyledAttributesWithStyle(attrs, %s, defStyle, defStyleRes)", group)
			},
		},
	}

	for _, v := range variants {
		e := &emitter{imports: imports, stylePkg: g.config.StylePkg}
		c := Constructor{Name: v.name, Params: v.params}

		for i, grp := range groups {
			block := GroupBlock{
				Var:    fmt.Sprintf("typedArray%d", i),
				Symbol: imports.qualify(grp.Symbol.Registry, grp.Symbol.Group),
			}
			block.Obtain = v.obtain(block.Symbol)

			var body strings.Builder
			for _, p := range groupPlans[i] {
				e.plan(&body, p, scope{array: block.Var})
			}

			block.Body = body.String()
			c.Groups = append(c.Groups, block)
		}

		var def strings.Builder
		for _, p := range defaultPlans {
			e.plan(&def, p, scope{result: "nil, "})
		}

		c.Default = def.String()
		c.UsesResources = e.usesResources
		spec.Constructors = append(spec.Constructors, c)
	}

	if spec.Register {
		rt := func(name string) string { return imports.qualify(g.config.RuntimePkg, name) }
		spec.Registration = fmt.Sprintf("%s(%q, %s(%s, %s))", rt("Register"), key, rt("Bind"), newName, withStyleName)
	}

	spec.Imports = imports.specs()

	return spec, dir, nil
}

// Location returns the directory and file name of the binding for t,
// whether or not one can be generated.
func (g *Generator) Location(t model.TargetType) (dir, filename string) {
	_, _, dir = g.output(t)

	return dir, common.SnakeCase(g.typeName(t)) + ".go"
}

func (g *Generator) typeName(t model.TargetType) string {
	return t.ID.Name + g.config.Suffix
}

// output returns the import path, package name and directory the binding
// for t is written to.
func (g *Generator) output(t model.TargetType) (string, string, string) {
	if g.config.OutputRel == "" {
		return t.ID.PkgPath, t.PackageName, t.Dir
	}

	pkgPath := path.Join(t.ID.PkgPath, filepath.ToSlash(g.config.OutputRel))

	return pkgPath, identifier(path.Base(pkgPath)), filepath.Join(t.Dir, g.config.OutputRel)
}
