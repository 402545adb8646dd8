package api

import (
	"fulfillment-cost-service/internal/api/handlers"
	"fulfillment-cost-service/internal/platform/obs"
	"fulfillment-cost-service/internal/services"
	"net/http"

	"golang.org/x/time/rate"
)

// routePaths are the exact paths NewRouter serves. Metrics label every other
// path as "other" so unknown URLs cannot mint new series.
var routePaths = map[string]bool{
	"/":          true,
	"/health":    true,
	"/calculate": true,
	"/network":   true,
	"/metrics":   true,
}

func metricPath(path string) string {
	if routePaths[path] {
		return path
	}
	return "other"
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// limiter may be nil to disable rate limiting.
func NewRouter(quotes *services.QuoteService, limiter *rate.Limiter) http.Handler {
	mux := http.NewServeMux()

	quoteHandler := &handlers.QuoteHandler{Quotes: quotes}
	networkHandler := &handlers.NetworkHandler{Network: quotes.Network()}

	mux.HandleFunc("/{$}", handlers.Root)
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/calculate", quoteHandler.Calculate)
	mux.HandleFunc("/network", networkHandler.Get)
	mux.Handle("/metrics", obs.MetricsHandler())

	return requestIDMiddleware(loggingMiddleware(rateLimitMiddleware(limiter, mux)))
}
