package gen

import (
	"strings"
	"text/template"

	"github.com/chRyNaN/glimpse/internal/common"
)

var bindingTemplate = template.Must(template.New("binding").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(common.GeneratedHeader + `

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.TypeName}} binds the styleable fields of {{.TargetName}}.
type {{.TypeName}} struct {
	target *{{.TargetName}}
}

// Target returns the populated value.
func (a *{{.TypeName}}) Target() *{{.TargetName}} {
	return a.target
}
{{range .Constructors}}
// {{.Name}} populates target from attrs, or from the declared default
// resources when attrs is nil.
func {{.Name}}(target *{{$.TargetName}}, ctx {{$.Context}}, attrs {{$.AttributeSet}}{{.Params}}) (*{{$.TypeName}}, error) {
{{if .UsesResources}}	resources := ctx.Resources()

{{end}}	if attrs != nil {
{{range .Groups}}		if err := func() error {
			{{.Var}}, err := {{.Obtain}}
			if err != nil {
				return err
			}
			defer {{.Var}}.Recycle()

{{.Body}}
			return nil
		}(); err != nil {
			return nil, err
		}
{{end}}	}{{if or .Default $.Omitted}} else {
{{.Default}}{{if $.Omitted}}
		// No default resource: {{join $.Omitted ", "}}.
{{end}}	}{{end}}

	return &{{$.TypeName}}{target: target}, nil
}
{{end}}{{if .Register}}
func init() {
	{{.Registration}}
}
{{end}}`))
