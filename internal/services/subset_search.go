package services

import (
	"context"
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"maps"
	"math"
	"slices"
)

// stockLine is one requested item a warehouse could ship: its weight share and the
// set of required warehouses that also stock it.
type stockLine struct {
	stockedBy uint
	weight    float64
}

// searchSubsets solves the ordering with a Held-Karp style dynamic program.
//
// A leg's cost depends only on which warehouses were already visited (that fixes
// the remaining inventory) and on the warehouse visited next, so dp[mask] holds the
// cheapest way to have shipped from exactly the warehouses in mask.
//
// Time: O(n · 2ⁿ · items). Memory: O(2ⁿ).
func (r *RouteSearch) searchSubsets(
	ctx context.Context,
	required []string,
	order domain.Order,
) ([]string, int, error) {
	catalog := r.network.Catalog
	distances := r.network.Distances
	tariff := r.network.Tariff
	hub := r.network.Hub

	warehouses := slices.Clone(required)
	slices.Sort(warehouses)
	n := len(warehouses)

	lines := make([][]stockLine, n)
	for _, item := range slices.Sorted(maps.Keys(order)) {
		qty := order[item]
		if qty <= 0 {
			continue
		}

		var mask uint
		for j, w := range warehouses {
			if catalog.Stocks(w, item) {
				mask |= 1 << j
			}
		}
		for j, w := range warehouses {
			if mask&(1<<j) == 0 {
				continue
			}
			unit, _ := catalog.UnitWeight(w, item)
			lines[j] = append(lines[j], stockLine{stockedBy: mask, weight: unit * float64(qty)})
		}
	}

	toHub := make([]float64, n)
	fromHub := make([]float64, n)
	for j, w := range warehouses {
		toHub[j] = distances.MustDistance(w, hub)
		fromHub[j] = distances.MustDistance(hub, w)
	}

	full := uint(1)<<n - 1
	dp := make([]float64, full+1)
	parent := make([]int, full+1)
	for i := range dp {
		dp[i] = math.Inf(1)
		parent[i] = -1
	}
	dp[0] = 0

	evaluated := 0
	for mask := uint(0); mask < full; mask++ {
		if mask%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, evaluated, fmt.Errorf("search subsets: %w", err)
			}
		}
		if mask != 0 && parent[mask] < 0 {
			continue
		}

		for j := 0; j < n; j++ {
			bit := uint(1) << j
			if mask&bit != 0 {
				continue
			}

			// Items already picked up by a visited warehouse are not shipped again.
			weight := 0.0
			for _, l := range lines[j] {
				if l.stockedBy&mask == 0 {
					weight += l.weight
				}
			}

			cand := dp[mask]
			if mask != 0 {
				cand += RepositionCost(tariff, fromHub[j])
			}
			cand += ComputeCost(tariff, weight, toHub[j])
			evaluated++

			if cand < dp[mask|bit] || parent[mask|bit] < 0 {
				dp[mask|bit] = cand
				parent[mask|bit] = j
			}
		}
	}

	sequence := make([]string, n)
	mask := full
	for i := n - 1; i >= 0; i-- {
		j := parent[mask]
		if j < 0 {
			return nil, evaluated, fmt.Errorf("search subsets: no predecessor for state %b", mask)
		}
		sequence[i] = warehouses[j]
		mask ^= 1 << j
	}

	return sequence, evaluated, nil
}
