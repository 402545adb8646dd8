package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// quoteRecord is the JSON form of a cached quote.
type quoteRecord struct {
	MinimumCost int64       `json:"minimum_cost"`
	ExactCost   float64     `json:"exact_cost"`
	Sequence    []string    `json:"sequence"`
	Legs        []legRecord `json:"legs"`
	Evaluated   int         `json:"evaluated"`
	Strategy    string      `json:"strategy"`
}

type legRecord struct {
	Kind     string         `json:"kind"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Items    map[string]int `json:"items"`
	Weight   float64        `json:"weight"`
	Distance float64        `json:"distance"`
	Cost     float64        `json:"cost"`
}

// RedisQuoteCache is a Redis-backed cache of computed quotes, shared by every
// instance pointed at the same Redis.
type RedisQuoteCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisQuoteCache parses a redis:// URL and verifies the connection.
func NewRedisQuoteCache(ctx context.Context, url string) (*RedisQuoteCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis quote cache: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis quote cache: ping: %w", err)
	}

	return NewRedisQuoteCacheFromClient(rdb), nil
}

func NewRedisQuoteCacheFromClient(rdb *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{rdb: rdb, prefix: "quote:"}
}

func (c *RedisQuoteCache) Get(ctx context.Context, key string) (_ *domain.Quote, _ bool, err error) {
	defer obs.Time(ctx, "quote.cache.Get")(&err)

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get quote cache: key must not be empty")
	}

	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get quote cache: %w", err)
	}

	var rec quoteRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, false, fmt.Errorf("get quote cache: decode %q: %w", key, err)
	}

	return rec.quote(), true, nil
}

func (c *RedisQuoteCache) Put(ctx context.Context, key string, q *domain.Quote, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("put quote cache: key must not be empty")
	}
	if q == nil {
		return errors.New("put quote cache: quote is nil")
	}

	b, err := json.Marshal(newQuoteRecord(q))
	if err != nil {
		return fmt.Errorf("put quote cache: encode %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, c.prefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("put quote cache: %w", err)
	}
	return nil
}

func (c *RedisQuoteCache) Close() error {
	return c.rdb.Close()
}

func newQuoteRecord(q *domain.Quote) quoteRecord {
	rec := quoteRecord{
		MinimumCost: q.MinimumCost,
		ExactCost:   q.ExactCost,
		Sequence:    q.Sequence,
		Legs:        make([]legRecord, 0, len(q.Legs)),
		Evaluated:   q.Evaluated,
		Strategy:    q.Strategy,
	}
	for _, l := range q.Legs {
		rec.Legs = append(rec.Legs, legRecord{
			Kind:     string(l.Kind),
			From:     l.From,
			To:       l.To,
			Items:    l.Items,
			Weight:   l.Weight,
			Distance: l.Distance,
			Cost:     l.Cost,
		})
	}
	return rec
}

func (r quoteRecord) quote() *domain.Quote {
	q := &domain.Quote{
		MinimumCost: r.MinimumCost,
		ExactCost:   r.ExactCost,
		Sequence:    r.Sequence,
		Legs:        make([]domain.ShipmentLeg, 0, len(r.Legs)),
		Evaluated:   r.Evaluated,
		Strategy:    r.Strategy,
	}
	if q.Sequence == nil {
		q.Sequence = []string{}
	}
	for _, l := range r.Legs {
		items := l.Items
		if items == nil {
			items = map[string]int{}
		}
		q.Legs = append(q.Legs, domain.ShipmentLeg{
			Kind:     domain.LegKind(l.Kind),
			From:     l.From,
			To:       l.To,
			Items:    items,
			Weight:   l.Weight,
			Distance: l.Distance,
			Cost:     l.Cost,
		})
	}
	return q
}
