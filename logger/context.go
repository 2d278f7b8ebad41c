package logger

import (
	"context"
	"sync/atomic"
)

type contextKey string

const (
	classCounterKey  contextKey = "generated_class_counter"
	schemaCounterKey contextKey = "generated_schema_counter"
	elapsedKey       contextKey = "generation_elapsed_nanos"
)

// WithGenerationCounters returns a context tracking the artifacts produced
// by one generation run. Counters are safe for concurrent module passes.
func WithGenerationCounters(ctx context.Context) context.Context {
	classes, schemas, elapsed := int64(0), int64(0), int64(0)
	ctx = context.WithValue(ctx, classCounterKey, &classes)
	ctx = context.WithValue(ctx, schemaCounterKey, &schemas)
	return context.WithValue(ctx, elapsedKey, &elapsed)
}

func add(ctx context.Context, key contextKey, n int64) {
	if c, ok := ctx.Value(key).(*int64); ok && c != nil {
		atomic.AddInt64(c, n)
	}
}

func load(ctx context.Context, key contextKey) int64 {
	if c, ok := ctx.Value(key).(*int64); ok && c != nil {
		return atomic.LoadInt64(c)
	}
	return 0
}

// AddGenerated records the classes and schemas of one module pass.
func AddGenerated(ctx context.Context, classes, schemas int) {
	add(ctx, classCounterKey, int64(classes))
	add(ctx, schemaCounterKey, int64(schemas))
}

// AddGenerationElapsed adds elapsed nanoseconds of one module pass.
func AddGenerationElapsed(ctx context.Context, nanos int64) {
	add(ctx, elapsedKey, nanos)
}

// GeneratedClasses returns the number of classes recorded in ctx.
func GeneratedClasses(ctx context.Context) int64 {
	return load(ctx, classCounterKey)
}

// GeneratedSchemas returns the number of schemas recorded in ctx.
func GeneratedSchemas(ctx context.Context) int64 {
	return load(ctx, schemaCounterKey)
}

// GenerationElapsed returns the summed module pass time in nanoseconds.
func GenerationElapsed(ctx context.Context) int64 {
	return load(ctx, elapsedKey)
}
