package api

import (
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/obs"
	"fulfillment-cost-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRouter(t *testing.T, limiter *rate.Limiter) http.Handler {
	t.Helper()

	catalog, err := domain.NewItemCatalog(map[string]map[string]float64{
		"C1": {"A": 3},
		"C2": {"D": 12},
	})
	require.NoError(t, err)
	table, err := domain.NewDistanceTable([]domain.DistanceEntry{
		{From: "C1", To: "L1", Distance: 3},
		{From: "C2", To: "L1", Distance: 2.5},
		{From: "C1", To: "C2", Distance: 4},
	})
	require.NoError(t, err)
	n, err := domain.NewNetwork("L1", catalog, table, domain.DefaultTariff)
	require.NoError(t, err)

	search, err := services.NewRouteSearch(n)
	require.NoError(t, err)
	quotes, err := services.NewQuoteService(search, nil, 0)
	require.NoError(t, err)

	obs.Register()
	return NewRouter(quotes, limiter)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{http.MethodGet, "/", "", http.StatusOK, "API is live!"},
		{http.MethodGet, "/health", "", http.StatusOK, `"ok"`},
		{http.MethodPost, "/calculate", `{"A": 1, "D": 1}`, http.StatusOK, `"minimum_cost":180`},
		{http.MethodGet, "/network", "", http.StatusOK, `"hub":"L1"`},
		{http.MethodGet, "/nope", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			require.Contains(t, rec.Body.String(), tt.want)
			require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		})
	}
}

func TestRouterMetrics(t *testing.T) {
	router := newTestRouter(t, nil)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(`{"A": 1}`)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
	require.Contains(t, rec.Body.String(), "fulfillment_quotes_total")
}

func TestRouterMetricsPathLabelsBounded(t *testing.T) {
	router := newTestRouter(t, nil)

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/junk-%d", i), nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.NotContains(t, body, `path="/junk-`)
	require.Contains(t, body, `path="other"`)
}

func TestRouterKeepsRequestID(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestRouterRateLimit(t *testing.T) {
	router := newTestRouter(t, rate.NewLimiter(rate.Limit(0.001), 1))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "1", second.Header().Get("Retry-After"))
}
