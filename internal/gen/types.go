package gen

import (
	"fmt"

	"github.com/chRyNaN/glimpse"
)

// DefaultSuffix is appended to the target name to form the binding name.
const DefaultSuffix = glimpse.BindingSuffix

// Default runtime package paths referenced by generated code.
const (
	DefaultStylePkg   = "github.com/chRyNaN/glimpse/style"
	DefaultRuntimePkg = "github.com/chRyNaN/glimpse"
)

// Config holds configuration for code generation.
type Config struct {
	// Suffix is appended to the target name to form the binding name.
	Suffix string
	// StylePkg is the import path of the runtime styling interfaces.
	StylePkg string
	// RuntimePkg is the import path providing Register and Bind.
	RuntimePkg string
	// Register emits an init function registering the constructors.
	Register bool
	// OutputRel is the output directory relative to the target package.
	// Empty writes next to the target.
	OutputRel string
	// Debug writes the unformatted file next to the intended output when
	// formatting fails.
	Debug bool
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Suffix:     DefaultSuffix,
		StylePkg:   DefaultStylePkg,
		RuntimePkg: DefaultRuntimePkg,
		Register:   true,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "widget_styleable_attr.go").
	Filename string
	// Dir is the directory the file belongs in.
	Dir string
	// Content is the formatted Go source code.
	Content []byte
}

// GenerationError aborts generation of one binding.
type GenerationError struct {
	Target string
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generating binding for %s: %s", e.Target, e.Reason)
	}

	return fmt.Sprintf("generating binding for %s: %s: %v", e.Target, e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// BindingSpec is everything rendered into one binding file.
type BindingSpec struct {
	PackageName string
	Filename    string
	TypeName    string
	// TargetName is the target type as written in the output package.
	TargetName string
	// RegistryKey is the fully qualified target name.
	RegistryKey string

	// Context and AttributeSet are the qualified style parameter types.
	Context      string
	AttributeSet string

	Register bool
	// Registration is the call made from init when Register is set.
	Registration string

	Imports      []importSpec
	Constructors []Constructor
	// Omitted lists fields left unchanged when no attribute set is given.
	Omitted []string
}

// Constructor is one of the two binding constructors.
type Constructor struct {
	Name string
	// Params follows the target, ctx and attrs parameters.
	Params        string
	UsesResources bool
	Groups        []GroupBlock
	// Default holds the statements run without an attribute set.
	Default string
}

// GroupBlock reads the fields of one attribute group from a typed array.
type GroupBlock struct {
	Var    string
	Symbol string
	Obtain string
	Body   string
}
