package handlers

import (
	"encoding/json"
	"errors"
	"fulfillment-cost-service/internal/api/dto"
	"fulfillment-cost-service/internal/domain"
	"fulfillment-cost-service/internal/platform/obs"
	"fulfillment-cost-service/internal/services"
	"io"
	"log"
	"net/http"
	"strconv"
)

// Orders are a flat map of quantities; anything larger is not a real order.
const maxOrderBodyBytes = 64 << 10

type QuoteHandler struct {
	Quotes *services.QuoteService
}

// Calculate returns the minimum fulfillment cost for the posted order.
// With ?explain=true the winning route and its legs are included.
func (h *QuoteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	explain := false
	if v := r.URL.Query().Get("explain"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "explain must be a boolean")
			return
		}
		explain = b
	}

	var req dto.OrderRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodyBytes))
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body: quantities must be integers")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	q, err := h.Quotes.Quote(r.Context(), domain.Order(req))
	switch {
	case errors.Is(err, domain.ErrInvalidOrder), errors.Is(err, domain.ErrTooManyWarehouses):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		log.Printf("req_id=%s calculate failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.QuoteResponse{MinimumCost: q.MinimumCost}
	if explain {
		res.Route = routeResponse(q)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func routeResponse(q *domain.Quote) *dto.RouteResponse {
	route := &dto.RouteResponse{
		Sequence:  q.Sequence,
		ExactCost: q.ExactCost,
		Strategy:  q.Strategy,
		Evaluated: q.Evaluated,
		Legs:      make([]dto.LegResponse, 0, len(q.Legs)),
	}
	for _, l := range q.Legs {
		route.Legs = append(route.Legs, dto.LegResponse{
			Kind:     string(l.Kind),
			From:     l.From,
			To:       l.To,
			Items:    l.Items,
			Weight:   l.Weight,
			Distance: l.Distance,
			Cost:     l.Cost,
		})
	}
	return route
}
