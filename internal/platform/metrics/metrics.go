package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stock_ledger"

// Metrics holds the process collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	ledgerWrites   *prometheus.CounterVec
	productWrites  *prometheus.CounterVec
	lockWait       prometheus.Histogram
	lockBusy       prometheus.Counter
	auditEmitted   *prometheus.CounterVec
	auditDropped   prometheus.Counter
	auditSinkFails *prometheus.CounterVec
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ledgerWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_writes_total",
			Help:      "Committed ledger writes by action.",
		}, []string{"action"}),
		productWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_writes_total",
			Help:      "Committed catalog writes by action.",
		}, []string{"action"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "product_lock_wait_seconds",
			Help:      "Time spent waiting for a per-product write lock.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 3, 5},
		}),
		lockBusy: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_lock_busy_total",
			Help:      "Writes rejected because the product lock was not obtained in time.",
		}),
		auditEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_total",
			Help:      "Audit events delivered by action.",
		}, []string{"action"}),
		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_dropped_total",
			Help:      "Audit events dropped because the queue was full.",
		}),
		auditSinkFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_sink_errors_total",
			Help:      "Audit sink delivery failures.",
		}, []string{"sink"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.ledgerWrites, m.productWrites,
		m.lockWait, m.lockBusy,
		m.auditEmitted, m.auditDropped, m.auditSinkFails,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request count and latency by matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) LedgerWrite(action string) {
	if m != nil {
		m.ledgerWrites.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) ProductWrite(action string) {
	if m != nil {
		m.productWrites.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) LockWait(d time.Duration) {
	if m != nil {
		m.lockWait.Observe(d.Seconds())
	}
}

func (m *Metrics) LockBusy() {
	if m != nil {
		m.lockBusy.Inc()
	}
}

func (m *Metrics) AuditEmitted(action string) {
	if m != nil {
		m.auditEmitted.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) AuditDropped() {
	if m != nil {
		m.auditDropped.Inc()
	}
}

func (m *Metrics) AuditSinkError(sink string) {
	if m != nil {
		m.auditSinkFails.WithLabelValues(sink).Inc()
	}
}
