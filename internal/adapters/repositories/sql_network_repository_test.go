package repositories

import (
	"context"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLNetworkRepository {
	t.Helper()

	conn, err := db.Open(db.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return NewSQLNetworkRepository(conn, db.SQLite)
}

func referenceNetwork(t *testing.T) *domain.Network {
	t.Helper()

	catalog, err := domain.NewItemCatalog(map[string]map[string]float64{
		"C1": {"A": 3, "B": 2, "C": 8},
		"C2": {"D": 12, "E": 25, "F": 15},
		"C3": {"G": 0.5, "H": 1, "I": 2},
	})
	require.NoError(t, err)

	table, err := domain.NewDistanceTable([]domain.DistanceEntry{
		{From: "C1", To: "L1", Distance: 3},
		{From: "C2", To: "L1", Distance: 2.5},
		{From: "C3", To: "L1", Distance: 2},
		{From: "C1", To: "C2", Distance: 4},
		{From: "C1", To: "C3", Distance: 5},
		{From: "C2", To: "C3", Distance: 3},
	})
	require.NoError(t, err)

	n, err := domain.NewNetwork("L1", catalog, table, domain.DefaultTariff)
	require.NoError(t, err)
	return n
}

func TestSQLNetworkRepositorySaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)
	want := referenceNetwork(t)

	require.NoError(t, repo.SaveNetwork(ctx, want))

	got, err := repo.LoadNetwork(ctx)
	require.NoError(t, err)
	require.Equal(t, want.Fingerprint(), got.Fingerprint())
	require.Equal(t, "L1", got.Hub)
	require.Equal(t, domain.DefaultTariff, got.Tariff)

	// Saving again replaces rather than duplicates.
	require.NoError(t, repo.SaveNetwork(ctx, want))
	again, err := repo.LoadNetwork(ctx)
	require.NoError(t, err)
	require.Equal(t, want.Fingerprint(), again.Fingerprint())
	require.Equal(t, 6, again.Distances.Len())
}

func TestSQLNetworkRepositoryEmpty(t *testing.T) {
	repo := openTestDB(t)

	_, err := repo.LoadNetwork(context.Background())
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRebind(t *testing.T) {
	q := "VALUES ($1, $2, $10)"
	require.Equal(t, "VALUES (?, ?, ?)", rebind(db.SQLite, q))
	require.Equal(t, q, rebind(db.Postgres, q))
}
