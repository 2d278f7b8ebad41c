package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		debug   bool
		written bool
	}{
		{name: "debug_level", level: "debug", debug: true, written: true},
		{name: "info_level_drops_debug", level: "info", debug: true, written: false},
		{name: "invalid_level_defaults_to_info", level: "verbose", debug: false, written: true},
		{name: "error_level_drops_info", level: "error", debug: false, written: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(&buf, tt.level, false)
			if tt.debug {
				l.Debug().Msg("level check")
			} else {
				l.Info().Msg("level check")
			}
			assert.Equal(t, tt.written, buf.Len() > 0)
		})
	}
}

func TestEventFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug", false)

	l.Info().
		Str("module", "acme").
		Int("classes", 3).
		Dur("elapsed", 2*time.Millisecond).
		Err(errors.New("boom")).
		Msg("module generated")

	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "module generated", entry["message"])
	assert.Equal(t, "acme", entry["module"])
	assert.EqualValues(t, 3, entry["classes"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry, "caller")
	assert.Contains(t, entry, "time")
}

func TestWithFieldsMasksSensitiveValues(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", false).WithFields(map[string]any{
		"run_id":        "r-1",
		"authorization": "Bearer abc",
	})
	l.Info().Str("api_key", "k").Str("endpoint", "localhost:4317").Msg("exporter")

	entry := decode(t, &buf)
	assert.Equal(t, "r-1", entry["run_id"])
	assert.Equal(t, DefaultMaskValue, entry["authorization"])
	assert.Equal(t, "localhost:4317", entry["endpoint"])
	assert.Equal(t, DefaultMaskValue, entry["api_key"])
}

func TestFilterValueDescendsIntoMaps(t *testing.T) {
	f := NewSensitiveDataFilter(&FilterConfig{SensitiveFields: []string{"password"}})
	out := f.FilterValue("exporter", map[string]any{"password": "p", "endpoint": "localhost"})
	assert.Equal(t, map[string]any{"password": DefaultMaskValue, "endpoint": "localhost"}, out)
	assert.Equal(t, 42, f.FilterValue("count", 42))
	assert.Nil(t, f.FilterFields(nil))
}

func TestContextWithLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, "info", false)
	scoped := base.WithFields(map[string]any{"module": "acme"})

	ctx := ContextWithLogger(context.Background(), scoped)
	base.WithContext(ctx).Info().Msg("from context")
	assert.Equal(t, "acme", decode(t, &buf)["module"])

	assert.Same(t, base, base.WithContext(context.Background()))
	assert.Same(t, base, base.WithContext("not a context"))
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().WithFields(map[string]any{"a": 1}).Error().Str("k", "v").Msg("dropped")
	})
}

func TestGenerationCounters(t *testing.T) {
	ctx := WithGenerationCounters(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			AddGenerated(ctx, 4, 1)
			AddGenerationElapsed(ctx, 5)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 40, GeneratedClasses(ctx))
	assert.EqualValues(t, 10, GeneratedSchemas(ctx))
	assert.EqualValues(t, 50, GenerationElapsed(ctx))

	plain := context.Background()
	AddGenerated(plain, 1, 1)
	assert.Zero(t, GeneratedClasses(plain))
}
