package services

import (
	"fulfillment-cost-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequiredWarehouses(t *testing.T) {
	catalog := referenceNetwork(t).Catalog

	tests := []struct {
		name  string
		order domain.Order
		want  []string
	}{
		{"single", domain.Order{"A": 1}, []string{"C1"}},
		{"two", domain.Order{"A": 1, "D": 2}, []string{"C1", "C2"}},
		{"zero ignored", domain.Order{"A": 1, "G": 0}, []string{"C1"}},
		{"all", domain.Order{"B": 1, "E": 1, "I": 1}, []string{"C1", "C2", "C3"}},
		{"empty", domain.Order{}, []string{}},
		{"all zero", domain.Order{"A": 0, "D": 0}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RequiredWarehouses(catalog, tt.order))
		})
	}
}

func TestItemsForWarehouse(t *testing.T) {
	catalog := referenceNetwork(t).Catalog
	order := domain.Order{"A": 2, "B": 0, "D": 1, "G": 4}

	require.Equal(t, map[string]int{"A": 2}, ItemsForWarehouse(catalog, "C1", order))
	require.Equal(t, map[string]int{"D": 1}, ItemsForWarehouse(catalog, "C2", order))
	require.Equal(t, map[string]int{"G": 4}, ItemsForWarehouse(catalog, "C3", order))
}

func TestShipmentWeight(t *testing.T) {
	catalog := referenceNetwork(t).Catalog

	require.Equal(t, 3*2+2*1.0, ShipmentWeight(catalog, "C1", map[string]int{"A": 2, "B": 1}))
	require.Equal(t, 0.0, ShipmentWeight(catalog, "C1", map[string]int{}))
	require.Equal(t, 2.0, ShipmentWeight(catalog, "C3", map[string]int{"G": 4}))
}
