package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
)

// Hooks returns lifecycle hooks that log every event and record it on m.
// Either argument may be nil.
func Hooks(m *Metrics, logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			if logger != nil {
				logger.Info("step_enter", "step", e.StepIndex, "label", e.Label, "action", e.Action)
			}
			if m != nil {
				m.observeStep(e)
			}
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			if logger != nil {
				logger.Debug("step_leave", "step", e.StepIndex, "label", e.Label, "action", e.Action)
			}
		},
		OnAggregate: func(ctx context.Context, e *domain.AggregateEvent) {
			if logger != nil {
				if e.Err != nil {
					logger.Warn("aggregate", "error", e.Err, "skipped", e.Skipped)
				} else {
					logger.Info("aggregate", "buckets", e.Buckets, "records", e.Records, "skipped", e.Skipped)
				}
			}
			if m != nil {
				m.observeAggregate(e)
			}
		},
	}
}
