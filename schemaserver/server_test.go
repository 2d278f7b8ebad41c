package schemaserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/generator"
	"github.com/gaborage/go-devkit/logger"
	"github.com/gaborage/go-devkit/model"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "devkit-gen", Version: "v0.1.0", Env: config.EnvDevelopment},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, Path: config.PathConfig{Health: "/health"}},
	}
}

func acme() *model.ModuleModel {
	return &model.ModuleModel{
		Name:      "acme",
		Package:   "org.acme",
		ClassName: "AcmeModule",
		Operations: []*model.OperationModel{{
			Kind:       model.OperationProcessor,
			MethodName: "send",
			Parameters: []*model.ParameterModel{{Name: "message", Type: model.StringType()}},
		}},
	}
}

func broken() *model.ModuleModel {
	return &model.ModuleModel{
		Name:       "broken",
		Package:    "org.broken",
		ClassName:  "BrokenModule",
		Operations: []*model.OperationModel{{Kind: model.OperationTransformer, MethodName: "toText"}},
	}
}

func newServer(t *testing.T, cfg *config.Config, opts ...Option) *Server {
	t.Helper()
	s, err := New(cfg, logger.Nop(), generator.New(), []*model.ModuleModel{acme(), broken()}, opts...)
	require.NoError(t, err)
	return s
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestServeSchemaAtCurrentAndVersionedLocation(t *testing.T) {
	s := newServer(t, testConfig())

	for _, path := range []string{
		"/schema/mule/acme/current/mule-acme.xsd",
		"/schema/mule/acme/1.0/mule-acme.xsd",
	} {
		t.Run(path, func(t *testing.T) {
			rec := get(s, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, ContentTypeXSD, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `targetNamespace="http://www.mulesoft.org/schema/mule/acme"`)
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		})
	}
	assert.EqualValues(t, 1, s.renders.Load())
}

func TestServeSchemaNotFound(t *testing.T) {
	s := newServer(t, testConfig())

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown_module", path: "/schema/mule/nope/current/mule-nope.xsd"},
		{name: "unknown_version", path: "/schema/mule/acme/9.9/mule-acme.xsd"},
		{name: "wrong_file", path: "/schema/mule/acme/current/mule-other.xsd"},
		{name: "unrouted", path: "/schema/acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(s, tt.path)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			var body map[string]errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "NOT_FOUND", body["error"].Code)
		})
	}
	assert.Zero(t, s.renders.Load())
}

func TestServeSchemaGenerationFailure(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(testConfig(), logger.NewWithWriter(&buf, "info", false), generator.New(), []*model.ModuleModel{broken()})
	require.NoError(t, err)

	rec := get(s, "/schema/mule/broken/current/mule-broken.xsd")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["error"].Code)
	assert.Contains(t, body["error"].Details, "module broken")
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestServeSchemaHidesDetailsOutsideDevelopment(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = config.EnvProduction
	s := newServer(t, cfg)

	rec := get(s, "/schema/mule/broken/current/mule-broken.xsd")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestConcurrentRequestsRenderOnce(t *testing.T) {
	s := newServer(t, testConfig())

	var wg sync.WaitGroup
	codes := make([]int, 16)
	for i := range codes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = get(s, "/schema/mule/acme/current/mule-acme.xsd").Code
		}()
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.EqualValues(t, 1, s.renders.Load())
}

func TestHealthAndListing(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Path.Base = "api/"
	s := newServer(t, cfg)

	rec := get(s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","modules":2}`, rec.Body.String())

	rec = get(s, "/api/schemas")
	require.Equal(t, http.StatusOK, rec.Code)
	var locations []model.SchemaLocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	require.Len(t, locations, 2)
	assert.Equal(t, "http://www.mulesoft.org/schema/mule/acme", locations[0].Namespace)
	assert.Equal(t, "http://www.mulesoft.org/schema/mule/broken", locations[1].Namespace)

	assert.Equal(t, http.StatusOK, get(s, "/api/schema/mule/acme/current/mule-acme.xsd").Code)
}

func TestRequestsAreTraced(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	s := newServer(t, testConfig(), WithTracerProvider(tp))

	require.Equal(t, http.StatusOK, get(s, "/schema/mule/acme/current/mule-acme.xsd").Code)
	require.Equal(t, http.StatusOK, get(s, "/health").Code)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/schema/mule/:name/:version/:file")
}

func TestNewRejectsDuplicateModules(t *testing.T) {
	_, err := New(testConfig(), logger.Nop(), generator.New(), []*model.ModuleModel{acme(), acme()})
	assert.ErrorIs(t, err, model.ErrDuplicateElement)
}

func TestNormalizePaths(t *testing.T) {
	assert.Equal(t, "", normalizeBasePath(""))
	assert.Equal(t, "/api", normalizeBasePath("api/"))
	assert.Equal(t, "/api", normalizeBasePath("/api"))
	assert.Equal(t, "/health", normalizeRoutePath("", "/health"))
	assert.Equal(t, "/live", normalizeRoutePath("live", "/health"))
}
