package validator

import (
	"net/http"

	"github.com/alovak/cardcheck/validator/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts validation outcomes on a private Prometheus registry.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardcheck_validations_total",
				Help: "Total number of card number validations by outcome",
			},
			[]string{"source", "status", "reason"},
		),
	}
	m.registry.MustRegister(m.validations)
	return m
}

// Observe records one validation result coming from source ("http", "iso8583", ...).
func (m *Metrics) Observe(source string, result models.Result) {
	if m == nil {
		return
	}
	reason := string(result.Reason)
	if reason == "" {
		reason = "none"
	}
	m.validations.WithLabelValues(source, string(result.Status), reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
