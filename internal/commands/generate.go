package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/generator"
	"github.com/gaborage/go-devkit/logger"
	"github.com/gaborage/go-devkit/observability"
)

// GenerateOptions holds options for the generate command. Zero values leave
// the configured setting in place.
type GenerateOptions struct {
	ConfigFile  string
	Descriptors []string
	Output      string
	Package     string
	Concurrency int
	SchemasOnly bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <descriptor.yaml>...",
		Short: "Generate schemas, parsers and processors for connector modules",
		Long: `Reads module descriptors and generates, for every module:

- the XSD schema and its spring.schemas entries
- message processor, source and transformer classes
- bean definition parsers and the namespace handler with its spring.handlers entry

Modules are generated in parallel. The first failing module aborts the run.`,
		Example: `  # Generate into the configured output directory
  devkit-gen generate modules.yaml

  # Override output and package
  devkit-gen generate -o build/generated --package org.example.connector modules.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Descriptors = args
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (default devkit.yaml when present)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Java package replacing the descriptor package")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "j", 0, "Modules generated in parallel")
	cmd.Flags().BoolVar(&opts.SchemasOnly, "schemas-only", false, "Write schemas and metadata without Java sources")

	return cmd
}

func (o *GenerateOptions) apply(cfg *config.Config) {
	if o.Output != "" {
		cfg.Generator.Output = o.Output
	}
	if o.Package != "" {
		cfg.Generator.Package = o.Package
	}
	if o.Concurrency > 0 {
		cfg.Generator.Concurrency = o.Concurrency
	}
	if o.SchemasOnly {
		cfg.Generator.RenderJava = false
	}
}

func runGenerate(ctx context.Context, out io.Writer, opts *GenerateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	log := newLogger(cfg)

	modules, err := loadModules(opts.Descriptors, cfg.Generator.Package)
	if err != nil {
		return err
	}

	provider, err := newObservability(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := observability.Shutdown(provider, 0); err != nil {
			log.Warn().Err(err).Msg("observability shutdown incomplete")
		}
	}()

	gen := generator.New(
		generator.WithLogger(log),
		generator.WithConcurrency(cfg.Generator.Concurrency),
		generator.WithTracerProvider(provider.TracerProvider()),
		generator.WithMeterProvider(provider.MeterProvider()),
	)

	ctx = logger.WithGenerationCounters(ctx)
	start := time.Now()
	results, err := gen.GenerateAll(ctx, modules)
	if err != nil {
		return err
	}

	sink := &generator.DirSink{Root: cfg.Generator.Output, RenderJava: cfg.Generator.RenderJava}
	if err := generator.Emit(ctx, sink, results); err != nil {
		return err
	}

	log.Info().
		Int("modules", len(results)).
		Int("classes", int(logger.GeneratedClasses(ctx))).
		Int("schemas", int(logger.GeneratedSchemas(ctx))).
		Dur("elapsed", time.Since(start)).
		Str("output", cfg.Generator.Output).
		Msg("generation complete")

	for _, r := range results {
		fmt.Fprintf(out, "✓ %s: %s (%d classes)\n", r.Module, r.Location.Namespace, r.Classes.Len())
	}
	fmt.Fprintf(out, "Generated %d module(s) into %s\n", len(results), cfg.Generator.Output)
	return nil
}
