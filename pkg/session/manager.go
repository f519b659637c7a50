package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/wizard"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates cursor access, ensuring safe concurrent operations.
// Per-session mutexes are reference counted and dropped when unused.
type Manager struct {
	store ports.CursorStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets how long a distributed lock is held before it expires.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager over the given cursor store.
func NewManager(store ports.CursorStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing cursor.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	var state *domain.WizardState
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// LoadOrStart loads a cursor, creating one on the first step if none exists.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	var state *domain.WizardState
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.loadOrStart(ctx, sessionID)
		return err
	})
	return state, err
}

func (m *Manager) loadOrStart(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	state = domain.NewWizardState(sessionID)
	if err := m.store.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.logger.Debug("wizard session started", "session_id", sessionID)
	return state, nil
}

// Advance loads (or starts) the session, positions seq on its cursor, applies
// action and saves the new position. seq is repositioned in place, so it must
// not be shared between goroutines.
func (m *Manager) Advance(ctx context.Context, sessionID string, seq *wizard.Sequence, action wizard.Action) (*domain.WizardState, error) {
	var state *domain.WizardState
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.loadOrStart(ctx, sessionID)
		if err != nil {
			return err
		}
		_, err = m.move(ctx, sessionID, state, seq, action)
		return err
	})
	return state, err
}

// Step is Advance for sessions that must already exist: a missing cursor
// yields domain.ErrSessionNotFound and nothing is created. moved reports
// whether the cursor changed position.
func (m *Manager) Step(ctx context.Context, sessionID string, seq *wizard.Sequence, action wizard.Action) (state *domain.WizardState, moved bool, err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		moved, err = m.move(ctx, sessionID, state, seq, action)
		return err
	})
	return state, moved, err
}

// move applies action from the cursor's position and saves the result.
// Callers hold the session lock.
func (m *Manager) move(ctx context.Context, sessionID string, state *domain.WizardState, seq *wizard.Sequence, action wizard.Action) (bool, error) {
	from := state.StepIndex
	seq.Seek(from)
	seq.Step(ctx, action)

	state.StepIndex = seq.Index()
	state.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, sessionID, state); err != nil {
		return false, err
	}
	return state.StepIndex != from, nil
}

// Save persists the cursor.
func (m *Manager) Save(ctx context.Context, sessionID string, state *domain.WizardState) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the cursor from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"error", err,
				)
			}
		}()
	}

	return fn(ctx)
}
