package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chRyNaN/glimpse/internal/analyze"
	"github.com/chRyNaN/glimpse/internal/annotation"
	"github.com/chRyNaN/glimpse/internal/config"
	"github.com/chRyNaN/glimpse/internal/diagnostic"
	"github.com/chRyNaN/glimpse/internal/expr"
	"github.com/chRyNaN/glimpse/internal/processor"
)

func newGenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate and write bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.process(cmd, args, true)
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Report diagnostics without writing bindings",
		Long:  `check runs every pass of gen but writes nothing. It exits non-zero when any error was reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.process(cmd, args, false)
		},
	}
}

func (o *options) process(cmd *cobra.Command, args []string, write bool) error {
	proc := processor.New(processor.Options{Config: o.cfg, Write: write, Logger: o.logger})

	prog, err := proc.Load(o.dir, patterns(args)...)
	if err != nil {
		return err
	}

	res, err := proc.Run(cmd.Context(), prog)
	if err != nil {
		return err
	}

	diagnostic.LogTo(o.logger, &res.Diagnostics)

	written := 0

	for _, b := range res.Bindings {
		if b.Written {
			written++
		}
	}

	o.logger.Info("run finished",
		zap.Int("targets", len(res.Bindings)),
		zap.Int("written", written),
		zap.Int("diagnostics", len(res.Diagnostics.All())))

	if res.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %d", errDiagnostics, len(res.Diagnostics.Errors))
	}

	return nil
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "analyze [packages]",
		Short: "Print the annotated structs found in packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := processor.New(processor.Options{Config: opts.cfg, Logger: opts.logger})

			prog, err := proc.Load(opts.dir, patterns(args)...)
			if err != nil {
				return err
			}

			if dump {
				analyze.Dump(cmd.OutOrStdout(), prog)

				return nil
			}

			printTargets(cmd.OutOrStdout(), prog, opts.cfg.Annotations.Styleable)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print a full dump of every target")

	return cmd
}

// printTargets writes one line per target followed by its bound fields.
func printTargets(w io.Writer, prog *analyze.Program, styleable string) {
	for _, t := range prog.Targets {
		fmt.Fprintf(w, "%s (%s)\n", t.ID, t.File)

		for _, f := range t.Fields {
			if f.AnnotationErr != nil {
				fmt.Fprintf(w, "  %s: %v\n", f.Name, f.AnnotationErr)

				continue
			}

			if annotation.Find(f.Annotations, styleable) == nil {
				continue
			}

			rendered := make([]string, 0, len(f.Annotations))
			for _, a := range f.Annotations {
				rendered = append(rendered, expr.Render(a))
			}

			fmt.Fprintf(w, "  %s %s %s\n", f.Name, f.TypeString(t.Types), strings.Join(rendered, " "))
		}
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(opts.cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
