package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// maxWarehousesCeiling is the hard upper bound for MAX_WAREHOUSES. The route
// search applies a lower, per-strategy bound on top.
const maxWarehousesCeiling = 20

// Config is the process configuration, read once at startup.
type Config struct {
	Port string

	// NetworkSource is "yaml", "sqlite" or "postgres".
	NetworkSource string
	NetworkPath   string
	DBPath        string
	DatabaseURL   string

	RedisURL      string
	QuoteCacheTTL time.Duration

	SearchStrategy string
	MaxWarehouses  int

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadDotEnv loads .env if present; a missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads .env and the environment into a Config.
func Load() (Config, error) {
	LoadDotEnv()

	cfg := Config{
		Port:           Get("PORT", "8080"),
		NetworkSource:  strings.ToLower(Get("NETWORK_SOURCE", "yaml")),
		NetworkPath:    Get("NETWORK_PATH", "data/network.yaml"),
		DBPath:         Get("DB_PATH", "data/app.db"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		RedisURL:       Get("REDIS_URL", ""),
		SearchStrategy: Get("SEARCH_STRATEGY", "exhaustive"),
	}

	var errs []error

	ttl, err := time.ParseDuration(Get("QUOTE_CACHE_TTL", "10m"))
	if err != nil || ttl < 0 {
		errs = append(errs, fmt.Errorf("QUOTE_CACHE_TTL must be a non-negative duration: %q", Get("QUOTE_CACHE_TTL", "")))
	}
	cfg.QuoteCacheTTL = ttl

	maxWarehouses, err := strconv.Atoi(Get("MAX_WAREHOUSES", "8"))
	if err != nil || maxWarehouses < 1 || maxWarehouses > maxWarehousesCeiling {
		errs = append(errs, fmt.Errorf(
			"MAX_WAREHOUSES must be an integer between 1 and %d: %q",
			maxWarehousesCeiling, Get("MAX_WAREHOUSES", ""),
		))
	}
	cfg.MaxWarehouses = maxWarehouses

	rps, err := strconv.ParseFloat(Get("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number: %q", Get("RATE_LIMIT_RPS", "")))
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(Get("RATE_LIMIT_BURST", "40"))
	if err != nil || burst < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be a non-negative integer: %q", Get("RATE_LIMIT_BURST", "")))
	}
	cfg.RateLimitBurst = burst

	switch cfg.NetworkSource {
	case "yaml", "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when NETWORK_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("NETWORK_SOURCE must be yaml, sqlite or postgres: %q", cfg.NetworkSource))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
