package services

import (
	"fulfillment-cost-service/internal/domain"
	"maps"
	"slices"
)

// RequiredWarehouses returns, sorted, every warehouse that stocks at least one
// item the order requests with a positive quantity.
func RequiredWarehouses(catalog *domain.ItemCatalog, order domain.Order) []string {
	required := []string{}
	for _, w := range catalog.Warehouses() {
		for item, qty := range order {
			if qty > 0 && catalog.Stocks(w, item) {
				required = append(required, w)
				break
			}
		}
	}
	return required
}

// ItemsForWarehouse restricts order to the positive quantities warehouse stocks.
func ItemsForWarehouse(catalog *domain.ItemCatalog, warehouse string, order domain.Order) map[string]int {
	items := make(map[string]int)
	for item, qty := range order {
		if qty > 0 && catalog.Stocks(warehouse, item) {
			items[item] = qty
		}
	}
	return items
}

// ShipmentWeight sums unit weight times quantity for items shipped from warehouse.
// Items are summed in id order so the float result does not depend on map order.
func ShipmentWeight(catalog *domain.ItemCatalog, warehouse string, items map[string]int) float64 {
	weight := 0.0
	for _, item := range slices.Sorted(maps.Keys(items)) {
		unit, _ := catalog.UnitWeight(warehouse, item)
		weight += unit * float64(items[item])
	}
	return weight
}
