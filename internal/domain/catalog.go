package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ItemCatalog records which warehouses stock which items and at what unit weight.
// It is immutable once built; accessors return copies.
type ItemCatalog struct {
	warehouses []string
	stock      map[string]map[string]float64
	stockedBy  map[string][]string
}

// NewItemCatalog builds a catalog from warehouse -> item -> unit weight.
// An item may be stocked by more than one warehouse.
func NewItemCatalog(stock map[string]map[string]float64) (*ItemCatalog, error) {
	c := &ItemCatalog{
		stock:     make(map[string]map[string]float64, len(stock)),
		stockedBy: make(map[string][]string),
	}

	for w, items := range stock {
		wid := strings.TrimSpace(w)
		if wid == "" {
			return nil, fmt.Errorf("new item catalog: empty warehouse id: %w", ErrConfiguration)
		}
		if _, dup := c.stock[wid]; dup {
			return nil, fmt.Errorf("new item catalog: duplicate warehouse %q: %w", wid, ErrConfiguration)
		}

		weights := make(map[string]float64, len(items))
		for item, unitWeight := range items {
			id := strings.TrimSpace(item)
			if id == "" {
				return nil, fmt.Errorf("new item catalog: warehouse %q has empty item id: %w", wid, ErrConfiguration)
			}
			if unitWeight < 0 {
				return nil, fmt.Errorf(
					"new item catalog: warehouse %q item %q has negative unit weight %v: %w",
					wid, id, unitWeight, ErrConfiguration,
				)
			}
			weights[id] = unitWeight
			c.stockedBy[id] = append(c.stockedBy[id], wid)
		}

		c.stock[wid] = weights
		c.warehouses = append(c.warehouses, wid)
	}

	slices.Sort(c.warehouses)
	for item := range c.stockedBy {
		slices.Sort(c.stockedBy[item])
	}

	return c, nil
}

// Warehouses returns all warehouse ids in sorted order.
func (c *ItemCatalog) Warehouses() []string {
	return slices.Clone(c.warehouses)
}

// Items returns every item id stocked anywhere, sorted.
func (c *ItemCatalog) Items() []string {
	return slices.Sorted(maps.Keys(c.stockedBy))
}

func (c *ItemCatalog) HasItem(item string) bool {
	_, ok := c.stockedBy[item]
	return ok
}

func (c *ItemCatalog) HasWarehouse(warehouse string) bool {
	_, ok := c.stock[warehouse]
	return ok
}

// Stocks reports whether warehouse carries item.
func (c *ItemCatalog) Stocks(warehouse, item string) bool {
	_, ok := c.stock[warehouse][item]
	return ok
}

// UnitWeight returns the unit weight of item at warehouse.
func (c *ItemCatalog) UnitWeight(warehouse, item string) (float64, bool) {
	w, ok := c.stock[warehouse][item]
	return w, ok
}

// WarehousesFor lists the warehouses stocking item, sorted.
func (c *ItemCatalog) WarehousesFor(item string) []string {
	return slices.Clone(c.stockedBy[item])
}

// Stock returns a copy of the item -> unit weight table for warehouse.
func (c *ItemCatalog) Stock(warehouse string) map[string]float64 {
	return maps.Clone(c.stock[warehouse])
}
