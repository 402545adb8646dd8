package domain

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Order maps item ids to requested quantities. Unlisted items and zero
// quantities mean "not requested".
type Order map[string]int

// MaxQuantity caps a single order line. Costs that still cannot be represented
// are rejected by the route search.
const MaxQuantity = 1_000_000

// Validate rejects negative quantities, quantities above MaxQuantity and items the
// catalog does not know.
func (o Order) Validate(catalog *ItemCatalog) error {
	for _, item := range sortedKeys(o) {
		qty := o[item]
		if qty < 0 {
			return fmt.Errorf("validate order: item %q has negative quantity %d: %w", item, qty, ErrInvalidOrder)
		}
		if qty > MaxQuantity {
			return fmt.Errorf("validate order: item %q quantity %d exceeds %d: %w", item, qty, MaxQuantity, ErrInvalidOrder)
		}
		if !catalog.HasItem(item) {
			return fmt.Errorf("validate order: unknown item %q: %w", item, ErrInvalidOrder)
		}
	}
	return nil
}

func (o Order) Clone() Order {
	return maps.Clone(o)
}

// IsEmpty reports whether no item has a positive quantity.
func (o Order) IsEmpty() bool {
	for _, qty := range o {
		if qty > 0 {
			return false
		}
	}
	return true
}

// Canonical renders the positive quantities as "A=1,D=2" in item order.
// Orders that differ only by zero entries share a canonical form.
func (o Order) Canonical() string {
	parts := make([]string, 0, len(o))
	for _, item := range sortedKeys(o) {
		if o[item] > 0 {
			parts = append(parts, item+"="+strconv.Itoa(o[item]))
		}
	}
	return strings.Join(parts, ",")
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
