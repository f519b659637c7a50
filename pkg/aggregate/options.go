package aggregate

import (
	"log/slog"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
)

// RelationPolicy decides what happens to a record whose relationship chain is broken.
type RelationPolicy string

const (
	// RelationAbort fails the whole Process call. Nothing is returned, so the
	// host keeps showing its previous buckets.
	RelationAbort RelationPolicy = "abort"
	// RelationSkip drops the offending record and keeps going.
	RelationSkip RelationPolicy = "skip"
)

// Option defines a functional option for configuring the Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithClock replaces time.Now, which decides which bucket is open.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithLocation sets the time zone bucket keys and the clock are read in.
// A nil location is ignored.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithRelationPolicy sets the missing-relation policy (default RelationAbort).
func WithRelationPolicy(p RelationPolicy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Aggregator) {
		a.hooks = hooks
	}
}
