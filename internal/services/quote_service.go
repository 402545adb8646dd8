package services

import (
	"context"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/obs"
	"fulfillment-cost-service/internal/ports"
	"log"
	"time"

	"golang.org/x/sync/singleflight"
)

// QuoteService is the boundary in front of RouteSearch. It validates orders,
// consults the optional cache and collapses identical concurrent requests.
type QuoteService struct {
	search   *RouteSearch
	cache    ports.QuoteCache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewQuoteService wires search with an optional cache; cache may be nil.
func NewQuoteService(search *RouteSearch, cache ports.QuoteCache, cacheTTL time.Duration) (*QuoteService, error) {
	if search == nil {
		return nil, errors.New("new quote service: search must be non-nil")
	}
	return &QuoteService{
		search:   search,
		cache:    cache,
		cacheTTL: cacheTTL,
	}, nil
}

func (s *QuoteService) Network() *domain.Network { return s.search.Network() }

// Quote validates order and returns the cheapest fulfillment plan.
//
// Invalid orders, including ones whose cost does not fit an int64, fail with
// domain.ErrInvalidOrder and oversized ones with domain.ErrTooManyWarehouses. Cache failures are logged, never returned.
func (s *QuoteService) Quote(ctx context.Context, order domain.Order) (*domain.Quote, error) {
	network := s.search.Network()

	if err := order.Validate(network.Catalog); err != nil {
		obs.Quotes.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("quote: %w", err)
	}

	if order.IsEmpty() {
		obs.Quotes.WithLabelValues("empty").Inc()
		return s.search.Plan(ctx, order)
	}

	key := s.cacheKey(order)

	if q, ok := s.cached(ctx, key); ok {
		obs.Quotes.WithLabelValues("ok").Inc()
		return q, nil
	}

	// The shared search outlives any single caller; each caller stops waiting
	// when its own context ends.
	ch := s.group.DoChan(key, func() (any, error) {
		searchCtx := context.WithoutCancel(ctx)

		start := time.Now()
		q, err := s.search.Plan(searchCtx, order)
		if err != nil {
			return nil, err
		}

		strategy := string(s.search.Strategy())
		obs.SearchDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
		obs.SearchEvaluated.WithLabelValues(strategy).Observe(float64(q.Evaluated))

		if s.cache != nil {
			if err := s.cache.Put(searchCtx, key, q, s.cacheTTL); err != nil {
				log.Printf("req_id=%s quote cache write failed: %v", obs.RequestID(ctx), err)
			}
		}
		return q, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		obs.Quotes.WithLabelValues("canceled").Inc()
		return nil, fmt.Errorf("quote: %w", ctx.Err())
	case res = <-ch:
	}

	if err := res.Err; err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyWarehouses):
			obs.Quotes.WithLabelValues("too_many").Inc()
		case errors.Is(err, domain.ErrInvalidOrder):
			obs.Quotes.WithLabelValues("invalid").Inc()
		default:
			obs.Quotes.WithLabelValues("error").Inc()
		}
		return nil, fmt.Errorf("quote: %w", err)
	}

	obs.Quotes.WithLabelValues("ok").Inc()
	return res.Val.(*domain.Quote), nil
}

func (s *QuoteService) cached(ctx context.Context, key string) (*domain.Quote, bool) {
	if s.cache == nil {
		return nil, false
	}

	q, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		obs.QuoteCache.WithLabelValues("error").Inc()
		log.Printf("req_id=%s quote cache read failed: %v", obs.RequestID(ctx), err)
		return nil, false
	case !ok:
		obs.QuoteCache.WithLabelValues("miss").Inc()
		return nil, false
	default:
		obs.QuoteCache.WithLabelValues("hit").Inc()
		return q, true
	}
}

// cacheKey scopes the canonical order by network contents and strategy so a
// changed network never serves stale quotes.
func (s *QuoteService) cacheKey(order domain.Order) string {
	return s.search.Network().Fingerprint() + ":" + string(s.search.Strategy()) + ":" + order.Canonical()
}
