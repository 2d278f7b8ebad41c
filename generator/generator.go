// Package generator drives module passes. Each pass runs the schema, code,
// parser and namespace handler synthesizers over one ModuleModel with a
// shared enum registry. GenerateAll fans independent modules out in parallel
// and returns their results in input order.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/gaborage/go-devkit/codegen"
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/logger"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/nshandler"
	"github.com/gaborage/go-devkit/observability"
	"github.com/gaborage/go-devkit/parsergen"
	"github.com/gaborage/go-devkit/projection"
	"github.com/gaborage/go-devkit/schema"
)

const (
	instrumentationName = "github.com/gaborage/go-devkit/generator"

	// DefaultConcurrency bounds parallel module passes when none is configured.
	DefaultConcurrency = 4
)

// Result holds every artifact of one module pass.
type Result struct {
	Module   string
	Schema   *schema.Schema
	XSD      []byte
	Classes  *cm.Model
	Location model.SchemaLocation
}

// Generator runs module passes.
type Generator struct {
	logger      logger.Logger
	tracer      trace.Tracer
	concurrency int

	classes  metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithConcurrency bounds the number of modules generated at once.
// Non-positive values select DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithTracerProvider records one span per run and per module.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Generator) { g.tracer = tp.Tracer(instrumentationName) }
}

// WithMeterProvider records class counts, failures and module durations.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(g *Generator) { g.instrument(mp.Meter(instrumentationName)) }
}

// New creates a Generator. Without options it neither logs nor records
// telemetry.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger:      logger.Nop(),
		tracer:      noop.NewTracerProvider().Tracer(instrumentationName),
		concurrency: DefaultConcurrency,
	}
	g.instrument(metricnoop.NewMeterProvider().Meter(instrumentationName))
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) instrument(meter metric.Meter) {
	noopMeter := metricnoop.NewMeterProvider().Meter(instrumentationName)
	var err error
	if g.classes, err = observability.CreateCounter(meter, "devkit.generator.classes", "Generated classes"); err != nil {
		g.classes, _ = noopMeter.Int64Counter("devkit.generator.classes")
	}
	if g.failures, err = observability.CreateCounter(meter, "devkit.generator.failures", "Failed module passes"); err != nil {
		g.failures, _ = noopMeter.Int64Counter("devkit.generator.failures")
	}
	if g.duration, err = observability.CreateHistogram(meter, "devkit.generator.module.duration",
		"Module pass duration in milliseconds", metric.WithUnit("ms")); err != nil {
		g.duration, _ = noopMeter.Float64Histogram("devkit.generator.module.duration")
	}
}

// Generate runs one module pass.
func (g *Generator) Generate(ctx context.Context, m *model.ModuleModel) (*Result, error) {
	ctx, span := g.tracer.Start(ctx, "generator.module", trace.WithAttributes(attribute.String("devkit.module", m.Name)))
	defer span.End()

	log := g.logger.WithContext(ctx).WithFields(map[string]any{"module": m.Name})
	log.Debug().Str("namespace", m.TargetNamespace()).Msg("generating module")

	start := time.Now()
	res, err := generate(m)
	elapsed := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("devkit.module", m.Name))
	g.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	logger.AddGenerationElapsed(ctx, elapsed.Nanoseconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "module generation failed")
		g.failures.Add(ctx, 1, attrs)
		log.Error().Err(err).Msg("module generation failed")
		return nil, fmt.Errorf("module %s: %w", m.Name, err)
	}

	g.classes.Add(ctx, int64(res.Classes.Len()), attrs)
	logger.AddGenerated(ctx, res.Classes.Len(), 1)
	span.SetAttributes(attribute.Int("devkit.classes", res.Classes.Len()))
	log.Info().Int("classes", res.Classes.Len()).Int("schema_bytes", len(res.XSD)).Dur("elapsed", elapsed).Msg("module generated")
	return res, nil
}

func generate(m *model.ModuleModel) (*Result, error) {
	if err := m.Check(); err != nil {
		return nil, err
	}
	enums, err := projection.CollectEnums(m)
	if err != nil {
		return nil, err
	}

	doc, err := schema.Synthesize(m, enums)
	if err != nil {
		return nil, err
	}
	classes := cm.NewModel()
	if err := codegen.Synthesize(m, classes, enums); err != nil {
		return nil, err
	}
	if err := parsergen.Synthesize(m, classes); err != nil {
		return nil, err
	}
	if err := nshandler.Synthesize(m, classes); err != nil {
		return nil, err
	}
	xsd, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	return &Result{
		Module:   m.Name,
		Schema:   doc.Schema,
		XSD:      xsd,
		Classes:  classes,
		Location: doc.Location,
	}, nil
}

// GenerateAll runs one pass per module, at most the configured concurrency
// at a time. Results are in input order. The first failure cancels passes
// that have not started and is returned.
func (g *Generator) GenerateAll(ctx context.Context, modules []*model.ModuleModel) ([]*Result, error) {
	runID := uuid.New().String()
	ctx, span := g.tracer.Start(ctx, "generator.run", trace.WithAttributes(
		attribute.String("devkit.run_id", runID),
		attribute.Int("devkit.modules", len(modules)),
	))
	defer span.End()

	log := g.logger.WithFields(map[string]any{"run_id": runID})
	ctx = logger.ContextWithLogger(ctx, log)
	log.Info().Int("modules", len(modules)).Int("concurrency", g.concurrency).Msg("generation started")

	results := make([]*Result, len(modules))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, m := range modules {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := g.Generate(egCtx, m)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}

	log.Info().Int("modules", len(results)).Msg("generation finished")
	return results, nil
}
