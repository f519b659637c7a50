package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/adapters/redis"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/session"
	"github.com/aretw0/cadence/pkg/wizard"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore simulates latency to provoke races if locking is missing.
type slowStore struct {
	mu   sync.Mutex
	data map[string]domain.WizardState
}

func (s *slowStore) Save(ctx context.Context, sessionID string, state *domain.WizardState) error {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]domain.WizardState)
	}
	s.data[sessionID] = *state
	return nil
}

func (s *slowStore) Load(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.data[sessionID]; ok {
		return &state, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *slowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *slowStore) List(ctx context.Context) ([]string, error) { return nil, nil }

type failingStore struct{ slowStore }

func (f *failingStore) Load(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	return nil, errors.New("backend down")
}

func fourSteps(t *testing.T) *wizard.Sequence {
	t.Helper()
	seq, err := wizard.New().
		AddStep("New Schedule", wizard.Nav().Next().Build()).
		AddStep("Review Sessions", wizard.Nav().Next().Back().Build()).
		AddStep("Add Participants", wizard.Nav().Next().Back().Build()).
		AddStep("Review Schedule", wizard.Nav().Next("Save & New", domain.VariantNeutral).Back().Finish("Save").Build()).
		Build()
	require.NoError(t, err)
	return seq
}

func TestManager_LoadOrStart_Concurrent(t *testing.T) {
	manager := session.NewManager(&slowStore{})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := manager.LoadOrStart(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, state)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, id, state.SessionID)
}

func TestManager_Advance_Serialised(t *testing.T) {
	manager := session.NewManager(&slowStore{})
	ctx := context.Background()
	id := "race-test"

	// Each goroutine has its own sequence; the cursor is shared through the store.
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Advance(ctx, id, fourSteps(t), wizard.ActionNext)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, state.StepIndex, "no update may be lost")
}

func TestManager_Advance_Clamps(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	seq := fourSteps(t)

	state, err := manager.Advance(ctx, "s", seq, wizard.ActionBack)
	require.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)

	for i := 0; i < 6; i++ {
		state, err = manager.Advance(ctx, "s", seq, wizard.ActionNext)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, state.StepIndex)
	assert.Equal(t, "Review Schedule", seq.Current().Label)

	state, err = manager.Advance(ctx, "s", seq, wizard.ActionRestart)
	require.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)
}

func TestManager_Step_RequiresExistingSession(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	ctx := context.Background()

	_, moved, err := manager.Step(ctx, "missing", fourSteps(t), wizard.ActionNext)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.False(t, moved)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "a failed step must not create the session")

	_, err = manager.LoadOrStart(ctx, "s")
	require.NoError(t, err)

	state, moved, err := manager.Step(ctx, "s", fourSteps(t), wizard.ActionNext)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, state.StepIndex)

	_, moved, err = manager.Step(ctx, "s", fourSteps(t), wizard.ActionNext)
	require.NoError(t, err)
	assert.True(t, moved)

	state, moved, err = manager.Step(ctx, "s", fourSteps(t), wizard.ActionNext)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 3, state.StepIndex)

	_, moved, err = manager.Step(ctx, "s", fourSteps(t), wizard.ActionNext)
	require.NoError(t, err)
	assert.False(t, moved, "next on the last step stays put")
}

func TestManager_Step_NeverResurrectsDeletedSession(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		manager := session.NewManager(&slowStore{})
		_, err := manager.LoadOrStart(ctx, "s")
		require.NoError(t, err)

		seq := fourSteps(t)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, err := manager.Step(ctx, "s", seq, wizard.ActionNext)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)
			}
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, manager.Delete(ctx, "s"))
		}()
		wg.Wait()

		_, err = manager.Load(ctx, "s")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := session.NewManager(memory.NewStore()).Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = session.NewManager(&failingStore{}).LoadOrStart(ctx, "x")
	assert.ErrorContains(t, err, "backend down")
}

func TestManager_DeleteAndList(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := manager.LoadOrStart(ctx, "a")
	require.NoError(t, err)
	_, err = manager.LoadOrStart(ctx, "b")
	require.NoError(t, err)
	require.NoError(t, manager.Delete(ctx, "a"))

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
}

func (c *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	c.mu.Lock()
	c.locks++
	c.mu.Unlock()
	return func(ctx context.Context) error {
		c.mu.Lock()
		c.unlocks++
		c.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker))

	_, err := manager.LoadOrStart(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 1, locker.locks)
	assert.Equal(t, 1, locker.unlocks)
}

func TestManager_RedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	manager := session.NewManager(
		redis.NewStore(client),
		session.WithLocker(redis.NewLocker(client, "cadence:")),
		session.WithLockTTL(time.Second),
	)
	ctx := context.Background()

	state, err := manager.Advance(ctx, "s", fourSteps(t), wizard.ActionNext)
	require.NoError(t, err)
	assert.Equal(t, 1, state.StepIndex)
	assert.False(t, mr.Exists("cadence:lock:s"), "lock is released after the call")
}
