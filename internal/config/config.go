// Package config loads generator settings from glimpse.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "glimpse.yaml"

// Defaults for optional settings.
const (
	DefaultSuffix     = "StyleableAttr"
	DefaultStyleable  = "Styleable"
	DefaultColorInt   = "ColorInt"
	DefaultDimension  = "Dimension"
	DefaultStylePkg   = "github.com/chRyNaN/glimpse/style"
	DefaultRuntimePkg = "github.com/chRyNaN/glimpse"
)

// Config holds every generator setting.
type Config struct {
	Version string `yaml:"version"`
	// Suffix is appended to the target name to form the binding name.
	Suffix      string      `yaml:"suffix"`
	Annotations Annotations `yaml:"annotations"`
	Runtime     Runtime     `yaml:"runtime"`
	Output      Output      `yaml:"output"`
	// Register emits init-time registration. Nil means true.
	Register *bool `yaml:"register,omitempty"`
	// Parallelism bounds concurrent target passes; 0 uses GOMAXPROCS.
	Parallelism int  `yaml:"parallelism"`
	Verbose     bool `yaml:"verbose"`
}

// Annotations names the comment annotations the generator reads.
type Annotations struct {
	Styleable string `yaml:"styleable"`
	ColorInt  string `yaml:"color_int"`
	Dimension string `yaml:"dimension"`
}

// Runtime names the packages generated code imports.
type Runtime struct {
	Style      string `yaml:"style"`
	Dispatcher string `yaml:"dispatcher"`
}

// Output controls where bindings are written.
type Output struct {
	// Dir is relative to each target package. Empty writes next to the
	// target.
	Dir string `yaml:"dir"`
}

// envOverrides are the settings the environment may override.
type envOverrides struct {
	Suffix      string `env:"GLIMPSE_SUFFIX"`
	OutputDir   string `env:"GLIMPSE_OUTPUT_DIR"`
	Parallelism int    `env:"GLIMPSE_PARALLELISM"`
	Register    bool   `env:"GLIMPSE_REGISTER"`
	Verbose     bool   `env:"GLIMPSE_VERBOSE"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// Load resolves the effective configuration: the explicit file when path is
// set, otherwise glimpse.yaml in dir when present, otherwise the defaults.
// Environment overrides are applied and the result is validated.
func Load(dir, path string) (*Config, error) {
	var (
		c   *Config
		err error
	)

	switch {
	case path != "":
		c, err = LoadFile(path)
	default:
		candidate := filepath.Join(dir, DefaultFile)

		c, err = LoadFile(candidate)
		if errors.Is(err, os.ErrNotExist) {
			c, err = Default(), nil
		}
	}

	if err != nil {
		return nil, err
	}

	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}

	if c.Annotations.Styleable == "" {
		c.Annotations.Styleable = DefaultStyleable
	}

	if c.Annotations.ColorInt == "" {
		c.Annotations.ColorInt = DefaultColorInt
	}

	if c.Annotations.Dimension == "" {
		c.Annotations.Dimension = DefaultDimension
	}

	if c.Runtime.Style == "" {
		c.Runtime.Style = DefaultStylePkg
	}

	if c.Runtime.Dispatcher == "" {
		c.Runtime.Dispatcher = DefaultRuntimePkg
	}

	if c.Register == nil {
		register := true
		c.Register = &register
	}
}

// RegisterBindings reports whether bindings register themselves at init.
func (c *Config) RegisterBindings() bool {
	return c.Register == nil || *c.Register
}

// ApplyEnv overrides settings from GLIMPSE_* environment variables.
func (c *Config) ApplyEnv() error {
	e := envOverrides{
		Suffix:      c.Suffix,
		OutputDir:   c.Output.Dir,
		Parallelism: c.Parallelism,
		Register:    c.RegisterBindings(),
		Verbose:     c.Verbose,
	}

	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	c.Suffix = e.Suffix
	c.Output.Dir = e.OutputDir
	c.Parallelism = e.Parallelism
	c.Register = &e.Register
	c.Verbose = e.Verbose

	return nil
}

// Validate checks settings that would produce uncompilable output.
func (c *Config) Validate() error {
	if !token.IsIdentifier(c.Suffix) {
		return fmt.Errorf("suffix %q is not a Go identifier", c.Suffix)
	}

	for _, name := range []string{c.Annotations.Styleable, c.Annotations.ColorInt, c.Annotations.Dimension} {
		if !token.IsIdentifier(name) {
			return fmt.Errorf("annotation name %q is not a Go identifier", name)
		}
	}

	if c.Output.Dir != "" && !filepath.IsLocal(c.Output.Dir) {
		return fmt.Errorf("output.dir %q must be a relative path inside the target package", c.Output.Dir)
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
