package services

import (
	"fulfillment-cost-service/internal/domain"
	"math"
)

// ComputeCost prices one laden leg.
//
// Every leg pays the base rate per unit of distance. Weight above the free
// threshold is charged per started block, so 5.01 over a 5/5 tariff is one block
// and 10.01 is two.
func ComputeCost(t domain.Tariff, weight, distance float64) float64 {
	cost := t.BaseRate * distance
	if weight == 0 {
		return cost
	}

	if weight > t.FreeWeight {
		blocks := math.Ceil((weight - t.FreeWeight) / t.BlockSize)
		cost += blocks * t.BlockRate * distance
	}

	return cost
}

// RepositionCost prices an empty run; it is the zero-weight case of ComputeCost.
func RepositionCost(t domain.Tariff, distance float64) float64 {
	return ComputeCost(t, 0, distance)
}

// representable reports whether c can be rounded into an int64 cost. NaN and
// +Inf fail both comparisons.
func representable(c float64) bool {
	return c >= 0 && c < math.MaxInt64
}

// roundCost rounds half away from zero. Costs are never negative, so .5 always
// rounds up.
func roundCost(c float64) int64 {
	return int64(math.Round(c))
}
