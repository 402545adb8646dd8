package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/platform/db"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`\$\d+`)

// rebind rewrites Postgres-style $N placeholders to ? for SQLite.
func rebind(dialect db.Dialect, q string) string {
	if dialect == db.SQLite {
		return placeholderRe.ReplaceAllString(q, "?")
	}
	return q
}

// InitSchema creates the network tables. The DDL is valid for both SQLite
// and PostgreSQL.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createNetworkConfigQuery := `
	CREATE TABLE IF NOT EXISTS network_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		hub TEXT NOT NULL,
		base_rate DOUBLE PRECISION NOT NULL,
		free_weight DOUBLE PRECISION NOT NULL,
		block_size DOUBLE PRECISION NOT NULL,
		block_rate DOUBLE PRECISION NOT NULL
	);
	`

	createWarehouseStockQuery := `
	CREATE TABLE IF NOT EXISTS warehouse_stock (
		warehouse TEXT NOT NULL,
		item TEXT NOT NULL,
		unit_weight DOUBLE PRECISION NOT NULL CHECK (unit_weight >= 0),
		PRIMARY KEY (warehouse, item)
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance DOUBLE PRECISION NOT NULL CHECK (distance >= 0),
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_warehouse_stock_item
	ON warehouse_stock(item, warehouse);
	`

	statements := []string{
		createNetworkConfigQuery,
		createWarehouseStockQuery,
		createDistancesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
