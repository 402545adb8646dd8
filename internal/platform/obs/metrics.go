package obs

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Quotes counts quote outcomes: ok, empty, invalid, too_many, canceled, error.
	Quotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fulfillment_quotes_total", Help: "Fulfillment cost quotes by outcome."},
		[]string{"outcome"},
	)
	// SearchDuration tracks route search latency per strategy.
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "fulfillment_search_duration_seconds", Help: "Route search duration in seconds.", Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}},
		[]string{"strategy"},
	)
	// SearchEvaluated records how many orderings or DP transitions a search evaluated.
	SearchEvaluated = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "fulfillment_search_evaluated", Help: "Orderings or DP transitions evaluated per search.", Buckets: prometheus.ExponentialBuckets(1, 4, 10)},
		[]string{"strategy"},
	)
	// QuoteCache counts cache lookups by result: hit, miss, error.
	QuoteCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fulfillment_quote_cache_total", Help: "Quote cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// Register adds the service collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Quotes)
		Registry.MustRegister(SearchDuration)
		Registry.MustRegister(SearchEvaluated)
		Registry.MustRegister(QuoteCache)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// MetricsHandler serves Registry in the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
