package ports

import (
	"context"
	"fulfillment-cost-service/internal/domain"
	"time"
)

// Contract for sharing computed quotes between requests and instances.
type QuoteCache interface {
	// Return the cached quote for key; ok is false on a miss.
	Get(ctx context.Context, key string) (q *domain.Quote, ok bool, err error)
	// Store q under key for ttl. A zero ttl keeps it until evicted.
	Put(ctx context.Context, key string, q *domain.Quote, ttl time.Duration) error
}
