package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chRyNaN/glimpse/internal/config"
)

// errDiagnostics is returned when a run reported error diagnostics. They
// were already logged.
var errDiagnostics = errors.New("errors reported")

type options struct {
	configPath  string
	dir         string
	verbose     bool
	parallelism int
	outputDir   string
	noRegister  bool

	cfg *config.Config
	// logger is built from the configuration unless preset.
	logger *zap.Logger
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "glimpse-generator",
		Short: "Generate styleable attribute bindings for annotated structs",
		Long: `glimpse-generator finds struct fields annotated with @Styleable and
generates a <Type>StyleableAttr binding that reads each field from a typed
attribute array, falling back to the declared default resource.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (default: glimpse.yaml in --dir when present)")
	flags.StringVarP(&opts.dir, "dir", "C", ".", "directory package patterns are resolved from")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVar(&opts.parallelism, "parallelism", 0, "maximum concurrent target passes (0: GOMAXPROCS)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "write bindings to this directory relative to each target package")
	flags.BoolVar(&opts.noRegister, "no-register", false, "do not register bindings with the runtime dispatcher")

	root.AddCommand(newGenCmd(opts), newCheckCmd(opts), newAnalyzeCmd(opts), newConfigCmd(opts))

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.dir, o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	if flags.Changed("parallelism") {
		cfg.Parallelism = o.parallelism
	}

	if flags.Changed("output-dir") {
		cfg.Output.Dir = o.outputDir
	}

	if flags.Changed("no-register") {
		register := !o.noRegister
		cfg.Register = &register
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	o.cfg = cfg

	if o.logger != nil {
		return nil
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	o.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// patterns defaults to the package in --dir.
func patterns(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}

	return args
}
