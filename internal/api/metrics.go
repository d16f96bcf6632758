// ABOUTME: Prometheus metrics for the HTTP server.
// ABOUTME: Request counters and latency plus portion updates and a tracked-days gauge.
package api

import (
	"strconv"
	"time"

	"github.com/harperreed/pyramid/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the collectors registered on a server's private registry.
// A nil *metrics records nothing.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	portionUpdates  *prometheus.CounterVec
}

func newMetrics(repo storage.Repository) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		portionUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pyramid_portion_updates_total",
				Help: "Portion changes by operation",
			},
			[]string{"op"},
		),
	}

	trackedDays := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "pyramid_tracked_days",
			Help: "Number of persisted day records",
		},
		func() float64 {
			days, err := repo.ListDays()
			if err != nil {
				return 0
			}
			return float64(len(days))
		},
	)

	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.portionUpdates, trackedDays)
	return m
}

// middleware records request count and latency by route template.
func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}

		m.requestsTotal.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Request().Method, c.Path()).Observe(time.Since(start).Seconds())

		return err
	}
}

func (m *metrics) portionUpdated(op string) {
	if m == nil {
		return
	}
	m.portionUpdates.WithLabelValues(op).Inc()
}
