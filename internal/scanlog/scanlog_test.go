package scanlog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestRecordCounts(t *testing.T) {
	client, _ := setupTestRedis(t)
	log := New(client, time.Hour)
	ctx := context.Background()

	count, err := log.Record(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = log.Record(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Other tickets count independently.
	count, err = log.Record(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCountWithoutScans(t *testing.T) {
	client, _ := setupTestRedis(t)
	log := New(client, time.Hour)

	count, err := log.Count(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestScanWindowExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	log := New(client, time.Minute)
	ctx := context.Background()

	_, err := log.Record(ctx, 42)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	count, err := log.Count(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDefaultTTL(t *testing.T) {
	client, _ := setupTestRedis(t)
	log := New(client, 0)
	assert.Equal(t, 48*time.Hour, log.TTL)
}
