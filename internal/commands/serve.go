package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/generator"
	"github.com/gaborage/go-devkit/observability"
	"github.com/gaborage/go-devkit/schemaserver"
)

// ServeOptions holds options for the serve command
type ServeOptions struct {
	ConfigFile  string
	Descriptors []string
	Port        int
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve <descriptor.yaml>...",
		Short: "Serve module schemas at their schema locations",
		Long: `Starts an HTTP server answering

  GET /schema/mule/<name>/<version>/mule-<name>.xsd

for every module in the given descriptors. <version> is either the module's
schema version or "current". Schemas are generated on first request.`,
		Example: `  devkit-gen serve --port 9090 modules.yaml`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Descriptors = args
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (default devkit.yaml when present)")
	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Listen port (overrides server.port)")

	return cmd
}

// runServe blocks until ctx is done or the server fails.
func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Port > 0 {
		cfg.Server.Port = opts.Port
	}
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
		if err := observability.Shutdown(provider, cfg.Server.Timeout.Shutdown); err != nil {
			log.Warn().Err(err).Msg("observability shutdown incomplete")
		}
	}()

	gen := generator.New(
		generator.WithLogger(log),
		generator.WithTracerProvider(provider.TracerProvider()),
		generator.WithMeterProvider(provider.MeterProvider()),
	)
	srv, err := schemaserver.New(cfg, log, gen, modules, schemaserver.WithTracerProvider(provider.TracerProvider()))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down schema server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.Timeout.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
