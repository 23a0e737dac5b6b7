// Package http exposes the order API over echo. Routes are registered from the
// generated OpenAPI stubs, requests are validated against the same document, and
// every /api route requires the principal headers set by the upstream authenticator.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"deliveryhub/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API, /health and the Swagger UI.
func NewRouter(server *Server, registrar MemberRegistrar, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(swagger); err != nil {
		return nil, err
	}

	nonAPI := func(ctx echo.Context) bool {
		return !strings.HasPrefix(ctx.Path(), "/api/")
	}
	validator, err := OpenAPIValidator(swagger, nonAPI)
	if err != nil {
		return nil, err
	}
	principal := PrincipalMiddleware(registrar)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(validator)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		withPrincipal := principal(next)
		return func(ctx echo.Context) error {
			if nonAPI(ctx) {
				return next(ctx)
			}
			return withPrincipal(ctx)
		}
	})

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
