package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRedisClient connects to REDIS_TEST_URL or skips.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" || testing.Short() {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	client := testRedisClient(t)
	store := NewRedisStore(client, "rival-watch:test:")
	ctx := context.Background()
	t.Cleanup(func() { client.Del(ctx, "rival-watch:test:standings/now") })

	_, ok, err := store.Get(ctx, "standings/now")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "standings/now", []byte(`{"standings":[]}`), time.Minute))
	got, ok, err := store.Get(ctx, "standings/now")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"standings":[]}`, string(got))

	ttl, err := client.TTL(ctx, "rival-watch:test:standings/now").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestNewRedisStoreDefaultsPrefix(t *testing.T) {
	store := NewRedisStore(nil, "")
	assert.Equal(t, defaultRedisPrefix, store.prefix)
}
