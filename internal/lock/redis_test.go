package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLock(t *testing.T) {
	srv := miniredis.RunT(t)

	locker, err := NewRedisLock(srv.Addr())
	require.NoError(t, err)
	defer locker.Close()

	ctx := context.Background()
	key := SlotKey("c1", "2026-01-05", "09:00", "vet-1")

	locked, err := locker.Lock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, locked)

	// second take on the same slot fails until released
	locked, err = locker.Lock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, locker.Unlock(ctx, key))

	locked, err = locker.Lock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestRedisLock_TTLExpires(t *testing.T) {
	srv := miniredis.RunT(t)

	locker, err := NewRedisLock(srv.Addr())
	require.NoError(t, err)
	defer locker.Close()

	ctx := context.Background()

	locked, err := locker.Lock(ctx, "slot:x", time.Second)
	require.NoError(t, err)
	require.True(t, locked)

	srv.FastForward(2 * time.Second)

	locked, err = locker.Lock(ctx, "slot:x", time.Second)
	require.NoError(t, err)
	assert.True(t, locked)
}
