package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moura95/account-auth/internal/domain/email"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	emailsProcessed *prometheus.CounterVec
	emailsRequeued  prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "account_auth_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "account_auth_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		emailsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "account_auth_emails_processed_total",
			Help: "Total number of queued emails processed",
		}, []string{"status"}),
		emailsRequeued: factory.NewCounter(prometheus.CounterOpts{
			Name: "account_auth_emails_requeued_total",
			Help: "Total number of pending emails republished by the sweeper",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware labels requests by route template, never by raw path.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// InstrumentHandler counts the outcome of every processed queue message.
func (m *Metrics) InstrumentHandler(next email.MessageHandler) email.MessageHandler {
	return func(ctx context.Context, message email.QueueMessage) error {
		err := next(ctx, message)
		status := "sent"
		if err != nil {
			status = "failed"
		}
		m.emailsProcessed.WithLabelValues(status).Inc()
		return err
	}
}

func (m *Metrics) AddRequeued(n int) {
	m.emailsRequeued.Add(float64(n))
}
