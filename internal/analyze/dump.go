package analyze

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/chRyNaN/glimpse/internal/expr"
)

// dumpConfig keeps dumps stable across runs.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                6,
}

// targetDump is the printable view of a Target.
type targetDump struct {
	ID      string
	Package string
	File    string
	Imports map[string]string
	Fields  []fieldDump
}

type fieldDump struct {
	Name        string
	Type        string
	Exported    bool
	Embedded    bool
	Annotations []string
	Error       string
}

// Dump writes a go-spew rendering of the program's targets to w.
func Dump(w io.Writer, prog *Program) {
	for _, t := range prog.Targets {
		d := targetDump{
			ID:      t.ID.String(),
			Package: t.PackageName,
			File:    t.File,
		}

		if t.FileScope != nil {
			d.Imports = t.FileScope.Imports
		}

		for _, f := range t.Fields {
			fd := fieldDump{
				Name:     f.Name,
				Type:     f.TypeString(t.Types),
				Exported: f.Exported,
				Embedded: f.Embedded,
			}

			for _, a := range f.Annotations {
				fd.Annotations = append(fd.Annotations, expr.Render(a))
			}

			if f.AnnotationErr != nil {
				fd.Error = f.AnnotationErr.Error()
			}

			d.Fields = append(d.Fields, fd)
		}

		dumpConfig.Fdump(w, d)
	}
}
