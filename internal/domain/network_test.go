package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func referenceStock() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"C1": {"A": 3, "B": 2, "C": 8},
		"C2": {"D": 12, "E": 25, "F": 15},
		"C3": {"G": 0.5, "H": 1, "I": 2},
	}
}

func referenceDistances() []DistanceEntry {
	return []DistanceEntry{
		{From: "C1", To: "L1", Distance: 3},
		{From: "C2", To: "L1", Distance: 2.5},
		{From: "C3", To: "L1", Distance: 2},
		{From: "C1", To: "C2", Distance: 4},
		{From: "C1", To: "C3", Distance: 5},
		{From: "C2", To: "C3", Distance: 3},
	}
}

func TestDistanceTableSymmetric(t *testing.T) {
	table, err := NewDistanceTable(referenceDistances())
	require.NoError(t, err)

	for _, e := range referenceDistances() {
		fwd, ok := table.Distance(e.From, e.To)
		require.True(t, ok, "missing %s -> %s", e.From, e.To)
		back, ok := table.Distance(e.To, e.From)
		require.True(t, ok, "missing %s -> %s", e.To, e.From)
		require.Equal(t, e.Distance, fwd)
		require.Equal(t, fwd, back)
	}

	_, ok := table.Distance("C1", "C1")
	require.False(t, ok, "self distance should be undefined")
	require.Equal(t, 6, table.Len())
}

func TestDistanceTableRejectsBadEntries(t *testing.T) {
	cases := map[string][]DistanceEntry{
		"self pair": {{From: "C1", To: "C1", Distance: 1}},
		"negative":  {{From: "C1", To: "L1", Distance: -1}},
		"empty":     {{From: "", To: "L1", Distance: 1}},
		"conflict": {
			{From: "C1", To: "L1", Distance: 3},
			{From: "L1", To: "C1", Distance: 4},
		},
	}

	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewDistanceTable(entries)
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}

	// Both directions with the same value is fine.
	_, err := NewDistanceTable([]DistanceEntry{
		{From: "C1", To: "L1", Distance: 3},
		{From: "L1", To: "C1", Distance: 3},
	})
	require.NoError(t, err)
}

func TestItemCatalogLookups(t *testing.T) {
	catalog, err := NewItemCatalog(referenceStock())
	require.NoError(t, err)

	require.Equal(t, []string{"C1", "C2", "C3"}, catalog.Warehouses())

	w, ok := catalog.UnitWeight("C3", "G")
	require.True(t, ok)
	require.Equal(t, 0.5, w)
	require.False(t, catalog.Stocks("C1", "D"))
	require.True(t, catalog.HasItem("I"))
	require.False(t, catalog.HasItem("Z"))
	require.Equal(t, []string{"C2"}, catalog.WarehousesFor("E"))

	// Returned stock is a copy.
	stock := catalog.Stock("C1")
	stock["A"] = 100
	w, _ = catalog.UnitWeight("C1", "A")
	require.Equal(t, 3.0, w)
}

func TestItemCatalogRejectsNegativeWeight(t *testing.T) {
	_, err := NewItemCatalog(map[string]map[string]float64{"C1": {"A": -1}})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewNetworkIntegrity(t *testing.T) {
	catalog, err := NewItemCatalog(referenceStock())
	require.NoError(t, err)
	full, err := NewDistanceTable(referenceDistances())
	require.NoError(t, err)

	n, err := NewNetwork("L1", catalog, full, DefaultTariff)
	require.NoError(t, err)
	require.NotEmpty(t, n.Fingerprint())

	// Drop the C2 hub leg.
	partial, err := NewDistanceTable([]DistanceEntry{
		{From: "C1", To: "L1", Distance: 3},
		{From: "C3", To: "L1", Distance: 2},
		{From: "C1", To: "C2", Distance: 4},
		{From: "C1", To: "C3", Distance: 5},
		{From: "C2", To: "C3", Distance: 3},
	})
	require.NoError(t, err)
	_, err = NewNetwork("L1", catalog, partial, DefaultTariff)
	require.ErrorIs(t, err, ErrConfiguration, "missing hub leg")

	_, err = NewNetwork("", catalog, full, DefaultTariff)
	require.ErrorIs(t, err, ErrConfiguration, "empty hub")

	bad := DefaultTariff
	bad.BlockSize = 0
	_, err = NewNetwork("L1", catalog, full, bad)
	require.ErrorIs(t, err, ErrConfiguration, "zero block size")
}

func TestNetworkFingerprintStable(t *testing.T) {
	build := func(entries []DistanceEntry) *Network {
		t.Helper()
		catalog, err := NewItemCatalog(referenceStock())
		require.NoError(t, err)
		table, err := NewDistanceTable(entries)
		require.NoError(t, err)
		n, err := NewNetwork("L1", catalog, table, DefaultTariff)
		require.NoError(t, err)
		return n
	}

	entries := referenceDistances()
	reversed := make([]DistanceEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		reversed = append(reversed, DistanceEntry{From: e.To, To: e.From, Distance: e.Distance})
	}

	a := build(entries)
	b := build(reversed)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	entries[0].Distance = 3.5
	c := build(entries)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint(), "fingerprint should change with a distance")
}

func TestOrderValidateAndCanonical(t *testing.T) {
	catalog, err := NewItemCatalog(referenceStock())
	require.NoError(t, err)

	require.NoError(t, Order{"A": 1, "D": 0}.Validate(catalog))
	require.NoError(t, Order{"A": MaxQuantity}.Validate(catalog))
	require.ErrorIs(t, Order{"A": -1}.Validate(catalog), ErrInvalidOrder)
	require.ErrorIs(t, Order{"Z": 1}.Validate(catalog), ErrInvalidOrder)
	require.ErrorIs(t, Order{"A": MaxQuantity + 1}.Validate(catalog), ErrInvalidOrder)

	require.Equal(t, "A=1,D=2", Order{"D": 2, "A": 1, "B": 0}.Canonical())
	require.True(t, Order{"A": 0}.IsEmpty())
	require.False(t, Order{"A": 1}.IsEmpty())
}
