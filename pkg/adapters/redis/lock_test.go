package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cadence/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_AcquireAndRelease(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	locker := redis.NewLocker(client, "cadence:")

	unlock, err := locker.Lock(ctx, "s1", time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("cadence:lock:s1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("cadence:lock:s1"))
}

func TestLocker_BlocksUntilContextDone(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "cadence:")

	unlock, err := locker.Lock(context.Background(), "s1", 5*time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "s1", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocker_StaleUnlockDoesNotReleaseNewHolder(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	locker := redis.NewLocker(client, "cadence:")

	staleUnlock, err := locker.Lock(ctx, "s1", time.Second)
	require.NoError(t, err)

	// Simulate expiry, then another holder takes the lock.
	mr.Del("cadence:lock:s1")
	freshUnlock, err := locker.Lock(ctx, "s1", time.Second)
	require.NoError(t, err)

	require.NoError(t, staleUnlock(ctx))
	assert.True(t, mr.Exists("cadence:lock:s1"), "stale holder must not release the fresh lock")

	require.NoError(t, freshUnlock(ctx))
	assert.False(t, mr.Exists("cadence:lock:s1"))
}
