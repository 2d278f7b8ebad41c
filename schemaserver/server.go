// Package schemaserver publishes generated schemas over HTTP at their schema
// locations, so XML editors and runtimes resolving
// http://host/schema/mule/<name>/current/mule-<name>.xsd receive the XSD.
// Schemas are rendered on first request and cached.
package schemaserver

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/generator"
	"github.com/gaborage/go-devkit/logger"
	"github.com/gaborage/go-devkit/model"
)

// ContentTypeXSD is the media type of served schemas.
const ContentTypeXSD = "application/xml; charset=UTF-8"

// Server serves the schemas of a fixed set of modules.
type Server struct {
	echo       *echo.Echo
	cfg        *config.Config
	logger     logger.Logger
	gen        *generator.Generator
	basePath   string
	healthPath string

	modules map[string]*model.ModuleModel
	group   singleflight.Group
	mu      sync.RWMutex
	cache   map[string][]byte
	renders atomic.Int64
}

// Option configures a Server.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider records one server span per request.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// normalizeBasePath ensures the base path starts with "/" and doesn't end with "/".
// Empty string is returned as-is (no prefix).
func normalizeBasePath(basePath string) string {
	if basePath == "" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

func normalizeRoutePath(route, defaultRoute string) string {
	if route == "" {
		route = defaultRoute
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

// New creates a server for modules. Module names must be unique.
func New(cfg *config.Config, log logger.Logger, gen *generator.Generator, modules []*model.ModuleModel, opts ...Option) (*Server, error) {
	o := options{tracerProvider: noop.NewTracerProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	byName := make(map[string]*model.ModuleModel, len(modules))
	for _, m := range modules {
		if _, ok := byName[m.Name]; ok {
			return nil, fmt.Errorf("module %s: %w", m.Name, model.ErrDuplicateElement)
		}
		byName[m.Name] = m
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		cfg:        cfg,
		logger:     log,
		gen:        gen,
		basePath:   normalizeBasePath(cfg.Server.Path.Base),
		healthPath: normalizeRoutePath(cfg.Server.Path.Health, "/health"),
		modules:    byName,
		cache:      make(map[string][]byte, len(modules)),
	}
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		errorHandler(err, c, cfg, log)
	}
	setupMiddlewares(e, log, cfg, o.tracerProvider, s.basePath+s.healthPath)

	e.GET(s.basePath+s.healthPath, s.healthCheck)
	e.GET(s.basePath+"/schemas", s.listSchemas)
	e.GET(s.basePath+"/schema/mule/:name/:version/:file", s.serveSchema)

	log.Debug().
		Str("base_path", s.basePath).
		Str("health_path", s.healthPath).
		Int("modules", len(byName)).
		Msg("schema server routes configured")

	return s, nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.logger.Info().
		Str("service", s.cfg.App.Name).
		Str("version", s.cfg.App.Version).
		Str("address", addr).
		Int("modules", len(s.modules)).
		Msg("starting schema server")

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.cfg.Server.Timeout.Read,
		WriteTimeout: s.cfg.Server.Timeout.Write,
		IdleTimeout:  s.cfg.Server.Timeout.Idle,
	}
	return s.echo.StartServer(server)
}

// Shutdown gracefully stops the server within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"modules": len(s.modules),
	})
}

func (s *Server) listSchemas(c echo.Context) error {
	locations := make([]model.SchemaLocation, 0, len(s.modules))
	for _, m := range s.modules {
		locations = append(locations, m.Location())
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Namespace < locations[j].Namespace })
	return c.JSON(http.StatusOK, locations)
}

func (s *Server) serveSchema(c echo.Context) error {
	name := c.Param("name")
	m, ok := s.modules[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown module %q", name))
	}
	if v := c.Param("version"); v != model.CurrentVersion && v != m.Version() {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("module %s has no schema version %q", name, v))
	}
	if c.Param("file") != m.SchemaFile() {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("module %s has no schema %q", name, c.Param("file")))
	}

	xsd, err := s.render(c.Request().Context(), m)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, ContentTypeXSD, xsd)
}

// render returns the cached XSD of m, generating it once. Concurrent callers
// for the same module share one generation.
func (s *Server) render(ctx context.Context, m *model.ModuleModel) ([]byte, error) {
	s.mu.RLock()
	xsd, ok := s.cache[m.Name]
	s.mu.RUnlock()
	if ok {
		return xsd, nil
	}

	v, err, _ := s.group.Do(m.Name, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.cache[m.Name]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		s.renders.Add(1)
		res, err := s.gen.Generate(context.WithoutCancel(ctx), m)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[m.Name] = res.XSD
		s.mu.Unlock()
		return res.XSD, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
