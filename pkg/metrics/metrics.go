// Package metrics owns the Prometheus registry served on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raids-lab/projecthub/pkg/apperror"
)

const namespace = "projecthub"

// Registry is a private registry so that tests can create engines repeatedly
// without duplicate-registration panics from the default one.
var Registry = prometheus.NewRegistry()

var (
	AuthzDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Authorization decisions by action and outcome",
	}, []string{"action", "decision"})

	Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification deliveries by kind and result",
	}, []string{"kind", "result"})

	SyncEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_events_total",
		Help:      "Webhook events handled by name and result",
	}, []string{"name", "result"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// TasksByStatus is refreshed from the database on every scrape.
	TasksByStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks",
		Help:      "Number of tasks by status",
	}, []string{"status"})
)

//nolint:gochecknoinits // collectors must exist before the first request
func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		AuthzDecisions,
		Notifications,
		SyncEvents,
		RequestDuration,
		TasksByStatus,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveDecision counts an authorization outcome. A nil err is an allow.
func ObserveDecision(action string, err error) {
	decision := "allow"
	if err != nil {
		decision = string(apperror.KindOf(err))
	}
	AuthzDecisions.WithLabelValues(action, decision).Inc()
}

// Result is the label value for an operation outcome.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// GinMiddleware records request latency keyed by the matched route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
