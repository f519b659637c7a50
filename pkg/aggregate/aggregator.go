package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/mohae/deepcopy"
)

// bucketKeyLayouts are tried in order when reading a bucket key as a date.
var bucketKeyLayouts = []string{"2006-01-02", time.RFC3339}

// Aggregator groups snapshots into buckets. Configure must be called once
// before Process.
type Aggregator struct {
	cfg    *domain.AggregatorConfig
	policy RelationPolicy
	now    func() time.Time
	loc    *time.Location
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// New creates an unconfigured aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		policy: RelationAbort,
		now:    time.Now,
		loc:    time.Local,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configure validates and stores the relationship configuration. Empty field
// keys fall back to domain.DefaultFieldKeys.
func (a *Aggregator) Configure(cfg domain.AggregatorConfig) error {
	var missing []string
	if cfg.ScheduleRelationship == "" {
		missing = append(missing, "schedule relationship")
	}
	if cfg.ServiceRelationship == "" {
		missing = append(missing, "service relationship")
	}
	if len(missing) > 0 {
		return &domain.ConfigurationError{Missing: missing}
	}

	defaults := domain.DefaultFieldKeys()
	if cfg.Fields.Status == "" {
		cfg.Fields.Status = defaults.Status
	}
	if cfg.Fields.PrimaryProvider == "" {
		cfg.Fields.PrimaryProvider = defaults.PrimaryProvider
	}
	if cfg.Fields.StartDate == "" {
		cfg.Fields.StartDate = defaults.StartDate
	}

	a.cfg = &cfg
	a.logger.Debug("aggregator configured",
		"schedule_relationship", cfg.ScheduleRelationship,
		"service_relationship", cfg.ServiceRelationship,
	)
	return nil
}

// Configured reports whether Configure succeeded.
func (a *Aggregator) Configured() bool {
	return a.cfg != nil
}

// Process builds one bucket per date group, in snapshot order. The input is
// never modified and the result shares no memory with it.
func (a *Aggregator) Process(ctx context.Context, snap domain.Snapshot) ([]domain.Bucket, error) {
	if a.cfg == nil {
		err := &domain.ConfigurationError{}
		a.emit(ctx, 0, 0, 0, err)
		return nil, err
	}
	cfg := *a.cfg
	today := a.now().In(a.loc).Day()

	buckets := make([]domain.Bucket, 0, len(snap))
	total, skipped := 0, 0

	for _, group := range snap {
		records := make([]domain.EnrichedRecord, 0, len(group.Records))
		for i, raw := range group.Records {
			rec, err := a.enrich(cfg, group.Key, i, raw)
			if err != nil {
				var relErr *domain.MissingRelationError
				if a.policy == RelationSkip && errors.As(err, &relErr) {
					a.logger.Warn("skipping record", "bucket", group.Key, "index", i, "error", err)
					skipped++
					continue
				}
				a.emit(ctx, 0, 0, skipped, err)
				return nil, err
			}
			records = append(records, rec)
		}

		total += len(records)
		buckets = append(buckets, domain.Bucket{
			Key:        group.Key,
			Records:    records,
			Open:       a.isOpen(group.Key, today),
			TotalLabel: totalLabel(len(records), cfg.Label, cfg.LabelPlural),
		})
	}

	a.emit(ctx, len(buckets), total, skipped, nil)
	return buckets, nil
}

func (a *Aggregator) enrich(cfg domain.AggregatorConfig, bucketKey string, index int, raw domain.Record) (domain.EnrichedRecord, error) {
	fields := domain.Record{}
	if raw != nil {
		fields = deepcopy.Copy(raw).(domain.Record)
	}

	service, broken, ok := ResolvePath(fields, cfg.ScheduleRelationship, cfg.ServiceRelationship)
	if !ok {
		return domain.EnrichedRecord{}, &domain.MissingRelationError{
			BucketKey:    bucketKey,
			Index:        index,
			Relationship: broken,
		}
	}

	status, _ := fields[cfg.Fields.Status].(string)
	_, hasProvider := fields[cfg.Fields.PrimaryProvider]

	return domain.EnrichedRecord{
		Fields:             fields,
		Complete:           status == domain.StatusComplete,
		HasPrimaryProvider: hasProvider,
		SessionStart:       fields[cfg.Fields.StartDate],
		ServiceName:        displayName(service),
	}, nil
}

// isOpen compares days of the month only; month and year are ignored.
func (a *Aggregator) isOpen(key string, today int) bool {
	for _, layout := range bucketKeyLayouts {
		if t, err := time.ParseInLocation(layout, key, a.loc); err == nil {
			return t.In(a.loc).Day() == today
		}
	}
	a.logger.Debug("bucket key is not a date", "bucket", key)
	return false
}

func totalLabel(n int, singular, plural string) string {
	label := plural
	if n == 1 {
		label = singular
	}
	return fmt.Sprintf("%d %s", n, label)
}

func (a *Aggregator) emit(ctx context.Context, buckets, records, skipped int, err error) {
	if a.hooks.OnAggregate == nil {
		return
	}
	a.hooks.OnAggregate(ctx, &domain.AggregateEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventAggregate,
		},
		Buckets: buckets,
		Records: records,
		Skipped: skipped,
		Err:     err,
	})
}
