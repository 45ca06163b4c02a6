package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"telco_churn/internal/infrastructure/cache"
)

func TestMemory(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	m := cache.NewMemory(time.Minute, time.Minute)

	_, ok := m.Get(ctx, "a")
	rq.False(ok)

	m.Set(ctx, "a", 0.8124)

	p, ok := m.Get(ctx, "a")
	rq.True(ok)
	rq.Equal(0.8124, p)
	rq.Equal(1, m.Len())
}

func TestMemoryExpiration(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	m := cache.NewMemory(10*time.Millisecond, time.Millisecond)
	m.Set(ctx, "a", 0.5)

	rq.Eventually(func() bool {
		_, ok := m.Get(ctx, "a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestLayered(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	l1 := cache.NewMemory(time.Minute, time.Minute)
	l2 := cache.NewMemory(time.Minute, time.Minute)
	layered := cache.NewLayered(l1, l2)

	l2.Set(ctx, "shared", 0.3)

	p, ok := layered.Get(ctx, "shared")
	rq.True(ok)
	rq.Equal(0.3, p)

	p, ok = l1.Get(ctx, "shared")
	rq.True(ok)
	rq.Equal(0.3, p)

	layered.Set(ctx, "fresh", 0.9)
	rq.Equal(2, l1.Len())
	rq.Equal(2, l2.Len())

	_, ok = layered.Get(ctx, "missing")
	rq.False(ok)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS is not set")
	}

	rq := require.New(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	key := "churn:test:" + t.Name()
	t.Cleanup(func() { client.Del(context.Background(), key) })

	r := cache.NewRedis(client, time.Minute)

	_, ok := r.Get(ctx, key)
	rq.False(ok)

	r.Set(ctx, key, 0.123456789)

	p, ok := r.Get(ctx, key)
	rq.True(ok)
	rq.Equal(0.123456789, p)

	ttl, err := client.TTL(ctx, key).Result()
	rq.NoError(err)
	rq.Greater(ttl, time.Duration(0))
}

func TestRedisUnavailable(t *testing.T) {
	rq := require.New(t)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := cache.NewRedis(client, time.Minute)
	r.Set(context.Background(), "k", 0.5)

	_, ok := r.Get(context.Background(), "k")
	rq.False(ok)
}
