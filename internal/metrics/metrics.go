// Package metrics exposes Prometheus collectors for the chat engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the service metrics on its own registry; nothing is
// registered globally.
type Collector struct {
	Registry *prometheus.Registry

	ResponsesTotal      *prometheus.CounterVec
	ConversationsClosed prometheus.Counter
	CatalogEntries      prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		Registry: reg,

		ResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqbot",
			Subsystem: "chat",
			Name:      "responses_total",
			Help:      "Chat replies by outcome.",
		}, []string{"outcome"}),

		ConversationsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "faqbot",
			Subsystem: "chat",
			Name:      "conversations_closed_total",
			Help:      "Conversations ended by a confirmed close.",
		}),

		CatalogEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "faqbot",
			Subsystem: "catalog",
			Name:      "entries",
			Help:      "FAQ entries in the active catalog.",
		}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqbot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Chat requests by HTTP status code.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.ResponsesTotal,
		c.ConversationsClosed,
		c.CatalogEntries,
		c.HTTPRequestsTotal,
	)
	return c
}

// RecordOutcome counts one reply. A nil Collector is a no-op.
func (c *Collector) RecordOutcome(outcome string) {
	if c == nil {
		return
	}
	c.ResponsesTotal.WithLabelValues(outcome).Inc()
	if outcome == "closed" {
		c.ConversationsClosed.Inc()
	}
}

// SetCatalogSize records the number of entries in the active catalog.
func (c *Collector) SetCatalogSize(n int) {
	if c == nil {
		return
	}
	c.CatalogEntries.Set(float64(n))
}

// RecordHTTPStatus counts one chat request by response status.
func (c *Collector) RecordHTTPStatus(status int) {
	if c == nil {
		return
	}
	c.HTTPRequestsTotal.WithLabelValues(statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 200 && status < 300:
		return "2xx"
	default:
		return "other"
	}
}
