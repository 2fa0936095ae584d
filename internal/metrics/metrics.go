// Package metrics collects and exposes Prometheus metrics for the server:
// auth outcomes, route-guard redirects, the active backend mode and HTTP
// request counts.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface handlers and middleware record through.
type Recorder interface {
	RecordAuthAttempt(operation, outcome string)
	RecordGuardRedirect()
	SetBackendMode(mode string)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	authAttempts   *prometheus.CounterVec
	guardRedirects prometheus.Counter
	backendMode    *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geoai_auth_attempts_total",
			Help: "Auth operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		guardRedirects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geoai_guard_redirects_total",
			Help: "Requests to gated pages redirected to sign-in.",
		}),
		backendMode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "geoai_backend_mode",
			Help: "1 for the backend implementation serving this process.",
		}, []string{"mode"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geoai_http_requests_total",
			Help: "HTTP responses by method and status code.",
		}, []string{"method", "status"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geoai_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.authAttempts,
		c.guardRedirects,
		c.backendMode,
		c.httpRequests,
		c.requestLatency,
	)

	return c
}

// RecordAuthAttempt counts one sign-in, sign-up, sign-out or resend.
func (c *Collector) RecordAuthAttempt(operation, outcome string) {
	c.authAttempts.WithLabelValues(operation, outcome).Inc()
}

// RecordGuardRedirect counts one unauthenticated request to a gated page.
func (c *Collector) RecordGuardRedirect() {
	c.guardRedirects.Inc()
}

// SetBackendMode marks mode as the active backend.
func (c *Collector) SetBackendMode(mode string) {
	c.backendMode.Reset()
	c.backendMode.WithLabelValues(mode).Set(1)
}

// Middleware records status and latency for every request.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			start := time.Now()
			err := next(ec)

			status := ec.Response().Status
			if err != nil {
				// The error handler has not run yet; derive the status it will use.
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			c.httpRequests.WithLabelValues(ec.Request().Method, strconv.Itoa(status)).Inc()
			c.requestLatency.Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where metrics are not wired (tests).
type Nop struct{}

// RecordAuthAttempt implements Recorder.
func (Nop) RecordAuthAttempt(string, string) {}

// RecordGuardRedirect implements Recorder.
func (Nop) RecordGuardRedirect() {}

// SetBackendMode implements Recorder.
func (Nop) SetBackendMode(string) {}
