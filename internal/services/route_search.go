package services

import (
	"context"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/obs"
	"math"
	"slices"
	"strings"
)

// Strategy selects how RouteSearch explores warehouse orderings.
type Strategy string

const (
	// StrategyExhaustive tries every permutation of the required warehouses.
	StrategyExhaustive Strategy = "exhaustive"
	// StrategySubset runs a dynamic program over visited-warehouse sets.
	StrategySubset Strategy = "subset"
)

// DefaultMaxWarehouses bounds the required set; 8! orderings is still instant.
const DefaultMaxWarehouses = 8

// WarehouseCeiling is the largest warehouse limit the strategy accepts. Past it
// the exhaustive search no longer finishes in request time and the subset DP
// table outgrows memory.
func (s Strategy) WarehouseCeiling() int {
	if s == StrategySubset {
		return 20
	}
	return 10
}

// How often (in orderings or DP states) the search polls its context.
const cancelCheckInterval = 256

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyExhaustive:
		return StrategyExhaustive, nil
	case StrategySubset:
		return StrategySubset, nil
	default:
		return "", fmt.Errorf("parse strategy: unknown strategy %q (allowed: exhaustive, subset)", s)
	}
}

// RouteSearch finds the cheapest order in which to visit the warehouses an order
// needs, shipping each warehouse's share to the hub and repositioning empty in
// between.
//
// A RouteSearch only reads its network and is safe for concurrent use.
type RouteSearch struct {
	network       *domain.Network
	strategy      Strategy
	maxWarehouses int
}

type Option func(*RouteSearch)

func WithStrategy(s Strategy) Option {
	return func(r *RouteSearch) { r.strategy = s }
}

func WithMaxWarehouses(n int) Option {
	return func(r *RouteSearch) { r.maxWarehouses = n }
}

func NewRouteSearch(network *domain.Network, opts ...Option) (*RouteSearch, error) {
	if network == nil {
		return nil, errors.New("new route search: network must be non-nil")
	}

	r := &RouteSearch{
		network:       network,
		strategy:      StrategyExhaustive,
		maxWarehouses: DefaultMaxWarehouses,
	}
	for _, opt := range opts {
		opt(r)
	}

	if _, err := ParseStrategy(string(r.strategy)); err != nil {
		return nil, fmt.Errorf("new route search: %w", err)
	}
	if r.maxWarehouses < 1 {
		return nil, fmt.Errorf("new route search: max warehouses must be positive, got %d", r.maxWarehouses)
	}
	if ceiling := r.strategy.WarehouseCeiling(); r.maxWarehouses > ceiling {
		return nil, fmt.Errorf(
			"new route search: max warehouses %d exceeds %d for strategy %s",
			r.maxWarehouses, ceiling, r.strategy,
		)
	}

	return r, nil
}

func (r *RouteSearch) Network() *domain.Network { return r.network }

func (r *RouteSearch) Strategy() Strategy { return r.strategy }

// MinimumFulfillmentCost returns the rounded cost of the cheapest ordering.
// The order must already be validated against the catalog.
func (r *RouteSearch) MinimumFulfillmentCost(ctx context.Context, order domain.Order) (int64, error) {
	q, err := r.Plan(ctx, order)
	if err != nil {
		return 0, err
	}
	return q.MinimumCost, nil
}

// Plan runs the search and returns the winning ordering with its legs.
//
// An order that needs no warehouse costs 0. When several orderings tie, the first
// one in lexicographic warehouse order wins.
func (r *RouteSearch) Plan(ctx context.Context, order domain.Order) (_ *domain.Quote, err error) {
	defer obs.Time(ctx, "route.search.Plan")(&err)

	required := RequiredWarehouses(r.network.Catalog, order)
	if len(required) == 0 {
		return &domain.Quote{
			Sequence: []string{},
			Legs:     []domain.ShipmentLeg{},
			Strategy: string(r.strategy),
		}, nil
	}

	if len(required) > r.maxWarehouses {
		return nil, fmt.Errorf(
			"plan route: order needs %d warehouses, limit is %d: %w",
			len(required), r.maxWarehouses, domain.ErrTooManyWarehouses,
		)
	}

	var (
		sequence  []string
		evaluated int
	)
	switch r.strategy {
	case StrategySubset:
		sequence, evaluated, err = r.searchSubsets(ctx, required, order)
	default:
		sequence, evaluated, err = r.searchPermutations(ctx, required, order)
	}
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	total, legs := r.simulate(sequence, order, true)
	if !representable(total) {
		return nil, fmt.Errorf("plan route: cost %v is out of range: %w", total, domain.ErrInvalidOrder)
	}

	return &domain.Quote{
		MinimumCost: roundCost(total),
		ExactCost:   total,
		Sequence:    sequence,
		Legs:        legs,
		Evaluated:   evaluated,
		Strategy:    string(r.strategy),
	}, nil
}

// searchPermutations evaluates every ordering of required without pruning.
func (r *RouteSearch) searchPermutations(
	ctx context.Context,
	required []string,
	order domain.Order,
) ([]string, int, error) {
	perm := slices.Clone(required)
	slices.Sort(perm)

	var best []string
	minCost := math.Inf(1)
	evaluated := 0

	for {
		if evaluated%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, evaluated, fmt.Errorf("search permutations: %w", err)
			}
		}

		cost, _ := r.simulate(perm, order, false)
		evaluated++
		if cost < minCost || best == nil {
			minCost = cost
			best = slices.Clone(perm)
		}

		if !nextPermutation(perm) {
			break
		}
	}

	return best, evaluated, nil
}

// simulate ships each warehouse's remaining share to the hub in sequence order.
// Items are fulfilled by the first visited warehouse that stocks them. Legs are
// only materialized when record is set.
func (r *RouteSearch) simulate(sequence []string, order domain.Order, record bool) (float64, []domain.ShipmentLeg) {
	catalog := r.network.Catalog
	distances := r.network.Distances
	tariff := r.network.Tariff
	hub := r.network.Hub

	remaining := order.Clone()
	total := 0.0

	var legs []domain.ShipmentLeg
	if record {
		legs = make([]domain.ShipmentLeg, 0, 2*len(sequence)-1)
	}

	for i, w := range sequence {
		items := ItemsForWarehouse(catalog, w, remaining)
		weight := ShipmentWeight(catalog, w, items)
		d := distances.MustDistance(w, hub)
		cost := ComputeCost(tariff, weight, d)
		total += cost

		for item := range items {
			remaining[item] = 0
		}

		if record {
			legs = append(legs, domain.ShipmentLeg{
				Kind:     domain.LegLaden,
				From:     w,
				To:       hub,
				Items:    items,
				Weight:   weight,
				Distance: d,
				Cost:     cost,
			})
		}

		if i == len(sequence)-1 {
			continue
		}

		next := sequence[i+1]
		back := distances.MustDistance(hub, next)
		repositionCost := RepositionCost(tariff, back)
		total += repositionCost

		if record {
			legs = append(legs, domain.ShipmentLeg{
				Kind:     domain.LegReposition,
				From:     hub,
				To:       next,
				Items:    map[string]int{},
				Distance: back,
				Cost:     repositionCost,
			})
		}
	}

	return total, legs
}

// nextPermutation rearranges p into the next lexicographic permutation and
// reports false once p was the last one.
func nextPermutation(p []string) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}
