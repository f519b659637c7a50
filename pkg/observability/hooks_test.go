package observability_test

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/aggregate"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observability"
	"github.com/aretw0/cadence/pkg/wizard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_WizardTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	seq, err := wizard.New().
		AddStep("One", wizard.Nav().Next().Build()).
		AddStep("Two", wizard.Nav().Back().Build()).
		Hooks(observability.Hooks(m, logging.NewNop())).
		Build()
	require.NoError(t, err)

	seq.Next()
	seq.Next() // clamped, no event
	seq.Back()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("next", "Two")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("back", "One")))
}

func TestHooks_Aggregations(t *testing.T) {
	m := observability.NewMetrics(nil)
	agg := aggregate.New(aggregate.WithHooks(observability.Hooks(m, nil)))
	ctx := context.Background()

	_, err := agg.Process(ctx, nil)
	require.ErrorIs(t, err, domain.ErrNotConfigured)

	require.NoError(t, agg.Configure(domain.AggregatorConfig{
		ScheduleRelationship: "ServiceSchedule__r",
		ServiceRelationship:  "Service__r",
		Label:                "Session",
		LabelPlural:          "Sessions",
	}))

	good := domain.Record{
		"ServiceSchedule__r": domain.Record{"Service__r": domain.Record{"Name": "Tutoring"}},
	}
	_, err = agg.Process(ctx, domain.Snapshot{{Key: "2026-10-12", Records: []domain.Record{good, good}}})
	require.NoError(t, err)

	_, err = agg.Process(ctx, domain.Snapshot{{Key: "2026-10-12", Records: []domain.Record{{}}}})
	require.ErrorIs(t, err, domain.ErrMissingRelation)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Aggregations.WithLabelValues("not_configured")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Aggregations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Aggregations.WithLabelValues("missing_relation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Enriched))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RelationErrors))
}

func TestHooks_SkippedRecordsCountAsRelationErrors(t *testing.T) {
	m := observability.NewMetrics(nil)
	agg := aggregate.New(
		aggregate.WithHooks(observability.Hooks(m, nil)),
		aggregate.WithRelationPolicy(aggregate.RelationSkip),
	)
	require.NoError(t, agg.Configure(domain.AggregatorConfig{
		ScheduleRelationship: "ServiceSchedule__r",
		ServiceRelationship:  "Service__r",
	}))

	_, err := agg.Process(context.Background(), domain.Snapshot{{Key: "k", Records: []domain.Record{{}, {}}}})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RelationErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Enriched))
}

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	m.Enriched.Inc()

	n, err := testutil.GatherAndCount(reg, "cadence_records_enriched_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
