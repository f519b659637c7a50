package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/pkg/adapters/file"
	"github.com/aretw0/cadence/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/cadence/pkg/adapters/redis"
	"github.com/aretw0/cadence/pkg/aggregate"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/persistence/middleware"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/session"
	"github.com/aretw0/cadence/pkg/sessions"
	goredis "github.com/redis/go-redis/v9"
)

// app holds the adapters selected by the configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend *memory.Backend

	store     ports.CursorStore
	locker    ports.DistributedLocker
	persister ports.SchedulePersister

	closers []func() error
}

// newApp wires the backend fixture and the configured store.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	if cfg.Data.Fixture != "" {
		backend, err := file.LoadFixture(cfg.Data.Fixture)
		if err != nil {
			return nil, err
		}
		a.backend = backend
		logger.Debug("fixture loaded", "path", cfg.Data.Fixture)
	} else {
		a.backend = memory.NewBackend()
	}
	a.persister = a.backend

	switch cfg.Store.Backend {
	case config.BackendMemory:
		a.store = memory.NewStore()
	case config.BackendFile:
		a.store = file.New(cfg.Store.FileDir)
	case config.BackendRedis:
		rc := cfg.Store.Redis
		client := goredis.NewClient(&goredis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		a.store = redisAdapter.NewStore(client,
			redisAdapter.WithPrefix(rc.Prefix+"wizard:"),
			redisAdapter.WithTTL(rc.TTL),
		)
		a.locker = redisAdapter.NewLocker(client, rc.Prefix)
		a.persister = redisAdapter.NewSchedules(client, rc.Prefix)
		a.closers = append(a.closers, client.Close)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if len(cfg.Store.MaskFields) > 0 {
		mask, err := middleware.NewPIIMiddleware(cfg.Store.MaskFields)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.persister = middleware.Chain(a.persister, mask)
	}

	return a, nil
}

// sessionManager returns a manager over the configured cursor store.
func (a *app) sessionManager() *session.Manager {
	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithLockTTL(a.cfg.Store.LockTTL),
	}
	if a.locker != nil {
		opts = append(opts, session.WithLocker(a.locker))
	}
	return session.NewManager(a.store, opts...)
}

// view returns a recent-sessions view fed by the backend and refreshed once.
// A backend without metadata yields a view that stays empty until a later
// refresh finds it.
func (a *app) view(ctx context.Context, hooks domain.LifecycleHooks) (*sessions.View, error) {
	aggOpts, err := a.cfg.AggregatorOptions()
	if err != nil {
		return nil, err
	}
	aggOpts = append(aggOpts, aggregate.WithLogger(a.logger), aggregate.WithHooks(hooks))

	v := sessions.NewView(
		sessions.WithLogger(a.logger),
		sessions.WithSources(a.backend, a.backend),
		sessions.WithDateLiteral(a.cfg.Aggregate.DateLiteral),
		sessions.WithAggregatorOptions(aggOpts...),
	)
	if err := v.Refresh(ctx); err != nil {
		if !errors.Is(err, domain.ErrMetadataNotFound) {
			return nil, err
		}
		a.logger.Warn("sessions view is not ready", "error", err)
	}
	return v, nil
}

// Close releases every client the app opened.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
