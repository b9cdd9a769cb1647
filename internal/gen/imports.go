package gen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chRyNaN/glimpse/internal/common"
)

// importSpec represents a single import with optional alias.
type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns file-unique names to imported packages.
type importSet struct {
	self   string
	names  func(path string) string
	byPath map[string]string
	taken  map[string]bool
}

// identifiers declared by generated code, which an import must not shadow.
var generatedIdents = []string{
	"a", "target", "ctx", "attrs", "resources", "defStyle", "defStyleRes", "err",
}

func newImportSet(self string, names func(string) string, taken ...string) *importSet {
	s := &importSet{
		self:   self,
		names:  names,
		byPath: make(map[string]string),
		taken:  make(map[string]bool),
	}

	if s.names == nil {
		s.names = common.PkgAlias
	}

	for _, name := range generatedIdents {
		s.taken[name] = true
	}

	for _, name := range taken {
		s.taken[name] = true
	}

	return s
}

// use returns the name to qualify members of path with, or "" when path is
// the output package itself.
func (s *importSet) use(path string) string {
	if path == s.self {
		return ""
	}

	if name, ok := s.byPath[path]; ok {
		return name
	}

	base := identifier(s.names(path))
	name := base

	for i := 2; s.taken[name] || reservedPrefix(name); i++ {
		name = base + strconv.Itoa(i)
	}

	s.taken[name] = true
	s.byPath[path] = name

	return name
}

// qualify returns local qualified by the package at path.
func (s *importSet) qualify(path, local string) string {
	name := s.use(path)
	if name == "" {
		return local
	}

	return name + "." + local
}

// specs returns the imports sorted by path. The alias is only set when it
// differs from the package name.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for path, name := range s.byPath {
		spec := importSpec{Path: path}
		if name != s.names(path) {
			spec.Alias = name
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// reservedPrefix reports names that collide with numbered locals such as
// typedArray0, def1, v2 and err3.
func reservedPrefix(name string) bool {
	for _, prefix := range []string{"typedArray", "def", "v", "err"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}

		if _, err := strconv.Atoi(rest); err == nil {
			return true
		}
	}

	return false
}

// identifier turns a package name into a valid Go identifier.
func identifier(name string) string {
	var sb strings.Builder

	for i, r := range name {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			sb.WriteRune(r)
		case '0' <= r && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}

			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}

	if sb.Len() == 0 {
		return "pkg"
	}

	return sb.String()
}
