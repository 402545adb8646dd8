package main

import (
	"context"
	"database/sql"
	"fmt"
	"fulfillment-cost-service/internal/adapters/network"
	"fulfillment-cost-service/internal/adapters/repositories"
	"fulfillment-cost-service/internal/config"
	"fulfillment-cost-service/internal/platform/db"
	"log"
)

// dbtool creates the network schema and seeds it from the YAML network file.
// It targets postgres when DATABASE_URL is set and sqlite at DB_PATH otherwise.
func main() {
	config.LoadDotEnv()

	dialect, dsn := db.SQLite, config.Get("DB_PATH", "data/app.db")
	if url := config.Get("DATABASE_URL", ""); url != "" {
		dialect, dsn = db.Postgres, url
	}

	conn, err := db.Open(dialect, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	networkPath := config.Get("NETWORK_PATH", "data/network.yaml")
	if err := initAndSeed(context.Background(), conn, dialect, networkPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, networkPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	n, err := network.NewYAMLSource(networkPath).LoadNetwork(ctx)
	if err != nil {
		return fmt.Errorf("reading network failed: %w", err)
	}

	log.Printf("Seeding network hub=%s fingerprint=%s...", n.Hub, n.Fingerprint())
	if err := repositories.NewSQLNetworkRepository(conn, dialect).SaveNetwork(ctx, n); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
