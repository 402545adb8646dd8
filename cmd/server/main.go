package main

import (
	"context"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/adapters/cache"
	"fulfillment-cost-service/internal/adapters/network"
	"fulfillment-cost-service/internal/adapters/repositories"
	"fulfillment-cost-service/internal/api"
	"fulfillment-cost-service/internal/config"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/db"
	"fulfillment-cost-service/internal/platform/obs"
	"fulfillment-cost-service/internal/ports"
	"fulfillment-cost-service/internal/services"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
)

// main is the application composition root.
// It loads the static network, wires the quote service behind the HTTP API and
// serves until interrupted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The network is checked once here; a defect stops the process before it serves.
	n, err := loadNetwork(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf(
		"Network loaded hub=%s warehouses=%d distances=%d fingerprint=%s",
		n.Hub, len(n.Catalog.Warehouses()), n.Distances.Len(), n.Fingerprint(),
	)

	strategy, err := services.ParseStrategy(cfg.SearchStrategy)
	if err != nil {
		log.Fatal(err)
	}
	search, err := services.NewRouteSearch(n,
		services.WithStrategy(strategy),
		services.WithMaxWarehouses(cfg.MaxWarehouses),
	)
	if err != nil {
		log.Fatal(err)
	}

	var quoteCache ports.QuoteCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisQuoteCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		quoteCache = rc
	}

	quotes, err := services.NewQuoteService(search, quoteCache, cfg.QuoteCacheTTL)
	if err != nil {
		log.Fatal(err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	obs.Register()
	router := api.NewRouter(quotes, limiter)

	log.Printf("Server listening addr=:%s strategy=%s max_warehouses=%d", cfg.Port, strategy, cfg.MaxWarehouses)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func loadNetwork(ctx context.Context, cfg config.Config) (*domain.Network, error) {
	var source ports.NetworkSource

	switch cfg.NetworkSource {
	case "yaml":
		source = network.NewYAMLSource(cfg.NetworkPath)
	case "sqlite", "postgres":
		dialect, dsn := db.SQLite, cfg.DBPath
		if cfg.NetworkSource == "postgres" {
			dialect, dsn = db.Postgres, cfg.DatabaseURL
		}

		conn, err := db.Open(dialect, dsn)
		if err != nil {
			return nil, fmt.Errorf("load network: %w", err)
		}
		// The network is read once; the connection is not needed afterwards.
		defer conn.Close()
		source = repositories.NewSQLNetworkRepository(conn, dialect)
	default:
		return nil, fmt.Errorf("load network: unknown source %q", cfg.NetworkSource)
	}

	return source.LoadNetwork(ctx)
}
