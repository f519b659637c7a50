package observability

import (
	"errors"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	Transitions    *prometheus.CounterVec
	Aggregations   *prometheus.CounterVec
	Enriched       prometheus.Counter
	RelationErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_wizard_transitions_total",
				Help: "Total number of wizard step changes",
			},
			[]string{"action", "step"},
		),
		Aggregations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_aggregations_total",
				Help: "Total number of aggregation runs by outcome",
			},
			[]string{"outcome"},
		),
		Enriched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cadence_records_enriched_total",
			Help: "Total number of records enriched into buckets",
		}),
		RelationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cadence_relation_errors_total",
			Help: "Total number of records with a broken relationship chain",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Aggregations, m.Enriched, m.RelationErrors)
	}
	return m
}

func (m *Metrics) observeStep(e *domain.StepEvent) {
	m.Transitions.WithLabelValues(e.Action, e.Label).Inc()
}

func (m *Metrics) observeAggregate(e *domain.AggregateEvent) {
	outcome := "ok"
	switch {
	case errors.Is(e.Err, domain.ErrNotConfigured):
		outcome = "not_configured"
	case errors.Is(e.Err, domain.ErrMissingRelation):
		outcome = "missing_relation"
		m.RelationErrors.Inc()
	case e.Err != nil:
		outcome = "error"
	}
	m.Aggregations.WithLabelValues(outcome).Inc()
	m.Enriched.Add(float64(e.Records))
	m.RelationErrors.Add(float64(e.Skipped))
}
