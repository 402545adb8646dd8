package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/db"
	"fulfillment-cost-service/internal/platform/obs"
)

// SQL-backed implementation of the NetworkSource port.
// Works against SQLite and PostgreSQL; dialect only affects placeholders.
type SQLNetworkRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLNetworkRepository(conn *sql.DB, dialect db.Dialect) *SQLNetworkRepository {
	return &SQLNetworkRepository{DB: conn, Dialect: dialect}
}

// LoadNetwork reads the stored network and validates it.
func (s *SQLNetworkRepository) LoadNetwork(ctx context.Context) (_ *domain.Network, err error) {
	defer obs.Time(ctx, "network.repository.LoadNetwork")(&err)

	if s.DB == nil {
		return nil, errors.New("sql network repository: DB is nil")
	}

	var (
		hub    string
		tariff domain.Tariff
	)
	row := s.DB.QueryRowContext(ctx, `
	SELECT hub, base_rate, free_weight, block_size, block_rate
	FROM network_config
	WHERE id = 1;
	`)
	if err := row.Scan(&hub, &tariff.BaseRate, &tariff.FreeWeight, &tariff.BlockSize, &tariff.BlockRate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load network: network_config is empty (run dbtool): %w", domain.ErrConfiguration)
		}
		return nil, fmt.Errorf("load network: query network_config: %w", err)
	}

	stock, err := s.loadStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}

	entries, err := s.loadDistances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}

	catalog, err := domain.NewItemCatalog(stock)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	table, err := domain.NewDistanceTable(entries)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}

	n, err := domain.NewNetwork(hub, catalog, table, tariff)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	return n, nil
}

func (s *SQLNetworkRepository) loadStock(ctx context.Context) (map[string]map[string]float64, error) {
	query := `
	SELECT
		warehouse,
		item,
		unit_weight
	FROM warehouse_stock
	ORDER BY warehouse, item;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load stock: query warehouse_stock table: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]map[string]float64)
	for rows.Next() {
		var warehouse, item string
		var unitWeight float64
		if err := rows.Scan(&warehouse, &item, &unitWeight); err != nil {
			return nil, fmt.Errorf("load stock: scan row: %w", err)
		}
		if stock[warehouse] == nil {
			stock[warehouse] = make(map[string]float64)
		}
		stock[warehouse][item] = unitWeight
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load stock: row iteration: %w", err)
	}

	return stock, nil
}

func (s *SQLNetworkRepository) loadDistances(ctx context.Context) ([]domain.DistanceEntry, error) {
	query := `
	SELECT origin, destination, distance
	FROM distances
	ORDER BY origin, destination;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load distances: query distances table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.DistanceEntry, 0, 16)
	for rows.Next() {
		var e domain.DistanceEntry
		if err := rows.Scan(&e.From, &e.To, &e.Distance); err != nil {
			return nil, fmt.Errorf("load distances: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load distances: row iteration: %w", err)
	}

	return entries, nil
}

// SaveNetwork replaces the stored network with n in a single transaction.
func (s *SQLNetworkRepository) SaveNetwork(ctx context.Context, n *domain.Network) error {
	if s.DB == nil {
		return errors.New("sql network repository: DB is nil")
	}
	if n == nil {
		return errors.New("save network: network is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	configQuery := rebind(s.Dialect, `
	INSERT INTO network_config (id, hub, base_rate, free_weight, block_size, block_rate)
	VALUES (1, $1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET hub = excluded.hub,
		base_rate = excluded.base_rate,
		free_weight = excluded.free_weight,
		block_size = excluded.block_size,
		block_rate = excluded.block_rate;
	`)
	t := n.Tariff
	if _, err := tx.ExecContext(ctx, configQuery, n.Hub, t.BaseRate, t.FreeWeight, t.BlockSize, t.BlockRate); err != nil {
		return fmt.Errorf("save network: upsert network_config: %w", err)
	}

	for _, table := range []string{"warehouse_stock", "distances"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("save network: clear %s: %w", table, err)
		}
	}

	stockStmt, err := tx.PrepareContext(ctx, rebind(s.Dialect, `
	INSERT INTO warehouse_stock (warehouse, item, unit_weight)
	VALUES ($1, $2, $3);
	`))
	if err != nil {
		return fmt.Errorf("save network: prepare stock insert: %w", err)
	}
	defer stockStmt.Close()

	for _, w := range n.Catalog.Warehouses() {
		for item, unitWeight := range n.Catalog.Stock(w) {
			if _, err := stockStmt.ExecContext(ctx, w, item, unitWeight); err != nil {
				return fmt.Errorf("save network: insert stock warehouse=%q item=%q: %w", w, item, err)
			}
		}
	}

	distanceStmt, err := tx.PrepareContext(ctx, rebind(s.Dialect, `
	INSERT INTO distances (origin, destination, distance)
	VALUES ($1, $2, $3);
	`))
	if err != nil {
		return fmt.Errorf("save network: prepare distance insert: %w", err)
	}
	defer distanceStmt.Close()

	for _, e := range n.Distances.Entries() {
		if _, err := distanceStmt.ExecContext(ctx, e.From, e.To, e.Distance); err != nil {
			return fmt.Errorf("save network: insert distance %q -> %q: %w", e.From, e.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save network: commit tx: %w", err)
	}

	return nil
}
