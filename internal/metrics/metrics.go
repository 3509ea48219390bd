// Package metrics exposes billbook's Prometheus collectors.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/billbook/internal/billing"
	"github.com/mmynk/billbook/internal/models"
)

const namespace = "billbook"

// Outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics holds the collectors. It satisfies registry.Metrics and
// export.Observer.
type Metrics struct {
	bills      prometheus.Gauge
	revenue    prometheus.Gauge
	operations *prometheus.CounterVec
	exports    *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		bills: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bills",
			Help:      "Number of bills held in the session.",
		}),
		revenue: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "revenue",
			Help:      "Sum of all bill totals held in the session.",
		}),
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Bill operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "PDF exports by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
}

// ObserveOperation counts a registry operation.
func (m *Metrics) ObserveOperation(op string, err error) {
	m.operations.WithLabelValues(op, outcome(err)).Inc()
}

// SetStats publishes the dashboard figures.
func (m *Metrics) SetStats(stats models.Stats) {
	m.bills.Set(float64(stats.Count))
	m.revenue.Set(stats.Revenue.InexactFloat64())
}

// ObserveExport counts a PDF export.
func (m *Metrics) ObserveExport(kind string, err error) {
	m.exports.WithLabelValues(kind, outcome(err)).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	var ve *billing.ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &ve):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}
