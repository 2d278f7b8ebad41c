package schemaserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/trace"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/logger"
)

func setupMiddlewares(e *echo.Echo, log logger.Logger, cfg *config.Config, tp trace.TracerProvider, healthPath string) {
	e.Use(middleware.RequestID())

	e.Use(otelecho.Middleware(cfg.App.Name,
		otelecho.WithTracerProvider(tp),
		otelecho.WithSkipper(func(c echo.Context) bool { return c.Path() == healthPath }),
	))

	e.Use(requestLogger(log, healthPath))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error().
				Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("stack", string(stack)).
				Msg("panic recovered")
			return err
		},
	}))

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
}

// requestLogger emits one line per request. Health checks are not logged and
// responses of 500 and above are logged at error level.
func requestLogger(log logger.Logger, healthPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == healthPath {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// Resolve the final status before logging.
				c.Error(err)
			}

			status := c.Response().Status
			event := log.WithContext(c.Request().Context()).Info()
			switch {
			case status >= http.StatusInternalServerError:
				event = log.WithContext(c.Request().Context()).Error()
			case status >= http.StatusBadRequest:
				event = log.WithContext(c.Request().Context()).Warn()
			}
			if err != nil {
				event = event.Err(err)
			}
			event.
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("request served")
			return nil
		}
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func errorHandler(err error, c echo.Context, cfg *config.Config, log logger.Logger) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		}
	}

	body := errorBody{Code: statusToErrorCode(status), Message: msg}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		if cfg.App.Env == config.EnvDevelopment {
			body.Details = err.Error()
		}
	}

	if err := c.JSON(status, map[string]errorBody{"error": body}); err != nil {
		log.Error().Err(err).Msg("failed to write error response")
	}
}

func statusToErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
