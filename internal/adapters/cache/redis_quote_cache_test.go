package cache

import (
	"context"
	"fulfillment-cost-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisQuoteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := NewRedisQuoteCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisQuoteCachePutGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	q := &domain.Quote{
		MinimumCost: 180,
		ExactCost:   180,
		Sequence:    []string{"C1", "C2"},
		Legs: []domain.ShipmentLeg{
			{Kind: domain.LegLaden, From: "C1", To: "L1", Items: map[string]int{"A": 1}, Weight: 3, Distance: 3, Cost: 90},
			{Kind: domain.LegReposition, From: "L1", To: "C2", Items: map[string]int{}, Distance: 2.5, Cost: 25},
			{Kind: domain.LegLaden, From: "C2", To: "L1", Items: map[string]int{"D": 1}, Weight: 12, Distance: 2.5, Cost: 65},
		},
		Evaluated: 2,
		Strategy:  "exhaustive",
	}

	require.NoError(t, c.Put(ctx, "abc:A=1,D=1", q, time.Minute))

	got, ok, err := c.Get(ctx, "abc:A=1,D=1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, q, got)
}

func TestRedisQuoteCacheMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", &domain.Quote{MinimumCost: 90, Sequence: []string{"C1"}}, time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisQuoteCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("quote:bad", "not json"))

	_, _, err := c.Get(ctx, "bad")
	require.Error(t, err)
}

func TestNewRedisQuoteCacheFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisQuoteCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = NewRedisQuoteCache(context.Background(), "not-a-url")
	require.Error(t, err)
}
