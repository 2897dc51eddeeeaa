package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reservations"

// Metrics groups the service's collectors on one registry.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Events   *prometheus.CounterVec

	registry *prometheus.Registry
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "floor_events_total",
			Help:      "Reservation and table changes by event type.",
		}, []string{"event"}),
		registry: registry,
	}
	registry.MustRegister(m.Requests, m.Duration, m.Events)
	return m
}

// Middleware records one sample per request, labelled with the route
// pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.Requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Publish counts floor events; it satisfies hub.Publisher.
func (m *Metrics) Publish(event string, _ interface{}) {
	m.Events.WithLabelValues(event).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
