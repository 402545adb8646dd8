package services

import (
	"fulfillment-cost-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceNetwork is three warehouses feeding hub L1.
func referenceNetwork(t *testing.T) *domain.Network {
	t.Helper()

	return buildNetwork(t, "L1",
		map[string]map[string]float64{
			"C1": {"A": 3, "B": 2, "C": 8},
			"C2": {"D": 12, "E": 25, "F": 15},
			"C3": {"G": 0.5, "H": 1, "I": 2},
		},
		[]domain.DistanceEntry{
			{From: "C1", To: "L1", Distance: 3},
			{From: "C2", To: "L1", Distance: 2.5},
			{From: "C3", To: "L1", Distance: 2},
			{From: "C1", To: "C2", Distance: 4},
			{From: "C1", To: "C3", Distance: 5},
			{From: "C2", To: "C3", Distance: 3},
		},
	)
}

func buildNetwork(t *testing.T, hub string, stock map[string]map[string]float64, entries []domain.DistanceEntry) *domain.Network {
	t.Helper()

	catalog, err := domain.NewItemCatalog(stock)
	require.NoError(t, err)
	table, err := domain.NewDistanceTable(entries)
	require.NoError(t, err)
	n, err := domain.NewNetwork(hub, catalog, table, domain.DefaultTariff)
	require.NoError(t, err)
	return n
}

func newSearch(t *testing.T, n *domain.Network, opts ...Option) *RouteSearch {
	t.Helper()

	s, err := NewRouteSearch(n, opts...)
	require.NoError(t, err)
	return s
}
