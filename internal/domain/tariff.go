package domain

import (
	"fmt"
	"math"
)

// Tariff holds the rates applied to every leg.
//
// A leg always pays BaseRate per unit of distance. Weight above FreeWeight is split
// into BlockSize blocks (a partial block counts as a whole one) and each block adds
// BlockRate per unit of distance.
type Tariff struct {
	BaseRate   float64
	FreeWeight float64
	BlockSize  float64
	BlockRate  float64
}

// DefaultTariff is the rate card used when the network does not override it.
var DefaultTariff = Tariff{
	BaseRate:   10,
	FreeWeight: 5,
	BlockSize:  5,
	BlockRate:  8,
}

func (t Tariff) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"base_rate", t.BaseRate},
		{"free_weight", t.FreeWeight},
		{"block_size", t.BlockSize},
		{"block_rate", t.BlockRate},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("validate tariff: %s must be a finite non-negative number, got %v: %w", f.name, f.v, ErrConfiguration)
		}
	}
	if t.BlockSize == 0 {
		return fmt.Errorf("validate tariff: block_size must be positive: %w", ErrConfiguration)
	}
	return nil
}
