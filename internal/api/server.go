// ABOUTME: Echo HTTP server exposing the pyramid store under /api.
// ABOUTME: Wires middleware, routes, the envelope error handler and optional Prometheus metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/pyramid/internal/config"
	"github.com/harperreed/pyramid/internal/logger"
	"github.com/harperreed/pyramid/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	repo    storage.Repository
	metrics *metrics
}

// New creates a new server instance
func New(cfg *config.Config, repo storage.Repository, appLogger *logger.Logger) *Server {
	if appLogger == nil {
		appLogger = logger.NewNop()
	}
	appLogger = appLogger.WithComponent("http")

	e := echo.New()
	e.Validator = NewValidator()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	s := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		repo:   repo,
	}
	if cfg.Metrics.Enabled {
		s.metrics = newMetrics(repo)
	}

	s.setupMiddleware()
	s.setupRoutes(NewHandler(repo, appLogger, s.metrics))

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"request_id", values.RequestID,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Warnw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}
			return nil
		},
	}))

	if s.metrics != nil {
		s.echo.Use(s.metrics.middleware)
	}

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	if limit := s.config.Security.RateLimitRequests; limit > 0 && s.config.Security.RateLimitWindow > 0 {
		perSecond := rate.Limit(float64(limit) / s.config.Security.RateLimitWindow.Seconds())
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: perSecond, Burst: limit, ExpiresIn: s.config.Security.RateLimitWindow},
			),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return respondFail(c, http.StatusForbidden, "rate limit exceeded")
			},
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return respondFail(c, http.StatusTooManyRequests, "rate limit exceeded")
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ContentSecurityPolicy: "default-src 'self'",
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h *Handler) {
	s.echo.GET("/health", s.healthCheck)

	if s.metrics != nil {
		metricsHandler := promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})
		s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	apiGroup := s.echo.Group("/api")

	items := apiGroup.Group("/items")
	items.GET("", h.ListItems)
	items.POST("", h.CreateItem)
	items.GET("/:id", h.GetItem)
	items.PUT("/:id", h.UpdateItem)
	items.DELETE("/:id", h.DeleteItem)

	days := apiGroup.Group("/days")
	days.GET("", h.ListDays)
	days.POST("", h.CreateDay)
	days.GET("/:id", h.GetDay)
	days.PUT("/:id", h.UpdateDay)
	days.DELETE("/:id", h.DeleteDay)
	days.GET("/:id/portions", h.ListPortions)
	days.POST("/:id/portions", h.IncrementPortion)
	days.PUT("/:id/portions", h.SetPortion)
	days.DELETE("/:id/portions", h.ResetPortion)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ServeHTTP lets the server be driven directly, e.g. by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.logger.Infow("Starting server", "address", addr, "metrics", s.metrics != nil)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error in the response envelope.
func customErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  = "internal server error"
			he   *echo.HTTPError
		)

		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.Is(err, storage.ErrNotFound):
			code = http.StatusNotFound
			msg = "not found"
		}

		if code >= http.StatusInternalServerError {
			log.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = respondFail(c, code, msg)
		}
		if err != nil {
			log.Errorw("Error sending response", "error", err)
		}
	}
}
