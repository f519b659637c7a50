package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/aggregate"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// ErrNoSources is returned by Refresh when the view was built without sources.
var ErrNoSources = errors.New("sessions view has no sources")

// View is the recent-sessions host. It is safe for concurrent use.
type View struct {
	mu      sync.RWMutex
	gate    *aggregate.Gate
	agg     *aggregate.Aggregator
	buckets []domain.Bucket

	// pending holds records delivered before the metadata was complete.
	pending    domain.Snapshot
	hasPending bool

	metadata    ports.MetadataSource
	records     ports.RecordSource
	dateLiteral string
	aggOpts     []aggregate.Option
	logger      *slog.Logger
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger. It is also handed to the aggregator.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		v.logger = logger
	}
}

// WithAggregatorOptions passes options through to the aggregator.
func WithAggregatorOptions(opts ...aggregate.Option) Option {
	return func(v *View) {
		v.aggOpts = append(v.aggOpts, opts...)
	}
}

// WithSources sets where Refresh pulls metadata and records from.
func WithSources(metadata ports.MetadataSource, records ports.RecordSource) Option {
	return func(v *View) {
		v.metadata = metadata
		v.records = records
	}
}

// WithDateLiteral overrides the record window Refresh asks for.
func WithDateLiteral(literal string) Option {
	return func(v *View) {
		v.dateLiteral = literal
	}
}

// NewView creates an empty view.
func NewView(opts ...Option) *View {
	v := &View{
		gate:        aggregate.NewGate(),
		dateLiteral: domain.DateLiteralThisWeek,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	aggOpts := append([]aggregate.Option{aggregate.WithLogger(v.logger)}, v.aggOpts...)
	v.agg = aggregate.New(aggOpts...)
	return v
}

// OnSessionInfo receives the session object descriptor.
func (v *View) OnSessionInfo(ctx context.Context, info domain.ObjectInfo) error {
	v.gate.SetSessionInfo(info)
	return v.configureIfReady(ctx)
}

// OnScheduleInfo receives the schedule object descriptor.
func (v *View) OnScheduleInfo(ctx context.Context, info domain.ObjectInfo) error {
	v.gate.SetScheduleInfo(info)
	return v.configureIfReady(ctx)
}

// OnRecords receives a record snapshot. Before the metadata is complete the
// snapshot is held and processed once it is. On failure the previous
// buckets stay in place and the error is returned.
func (v *View) OnRecords(ctx context.Context, snap domain.Snapshot) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.agg.Configured() {
		v.pending = snap
		v.hasPending = true
		v.logger.Debug("records held until metadata arrives", "groups", len(snap))
		return nil
	}
	return v.process(ctx, snap)
}

// Buckets returns the current bucket list. The slice is a copy; the buckets
// themselves must be treated as read-only.
func (v *View) Buckets() []domain.Bucket {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Bucket, len(v.buckets))
	copy(out, v.buckets)
	return out
}

// Ready is closed once both metadata descriptors have arrived.
func (v *View) Ready() <-chan struct{} {
	return v.gate.Ready()
}

// Refresh pulls both descriptors and the records for the configured date
// literal from the sources.
func (v *View) Refresh(ctx context.Context) error {
	if v.metadata == nil || v.records == nil {
		return ErrNoSources
	}

	sessionInfo, err := v.metadata.ObjectInfo(ctx, domain.ObjectServiceSession)
	if err != nil {
		return fmt.Errorf("failed to load session metadata: %w", err)
	}
	if err := v.OnSessionInfo(ctx, sessionInfo); err != nil {
		return err
	}

	scheduleInfo, err := v.metadata.ObjectInfo(ctx, domain.ObjectServiceSchedule)
	if err != nil {
		return fmt.Errorf("failed to load schedule metadata: %w", err)
	}
	if err := v.OnScheduleInfo(ctx, scheduleInfo); err != nil {
		return err
	}

	snap, err := v.records.Sessions(ctx, v.dateLiteral)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	return v.OnRecords(ctx, snap)
}

func (v *View) configureIfReady(ctx context.Context) error {
	if !v.gate.IsReady() {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.agg.Configured() {
		return nil
	}

	cfg, err := v.gate.Config()
	if err != nil {
		v.logger.Error("metadata is incomplete", "error", err)
		return err
	}
	if err := v.agg.Configure(cfg); err != nil {
		v.logger.Error("failed to configure aggregator", "error", err)
		return err
	}

	if v.hasPending {
		snap := v.pending
		v.pending, v.hasPending = nil, false
		return v.process(ctx, snap)
	}
	return nil
}

// process must be called with v.mu held.
func (v *View) process(ctx context.Context, snap domain.Snapshot) error {
	buckets, err := v.agg.Process(ctx, snap)
	if err != nil {
		v.logger.Error("failed to process sessions", "error", err)
		return err
	}
	v.buckets = buckets
	return nil
}
