package handlers

import (
	"fulfillment-cost-service/internal/api/dto"
	"fulfillment-cost-service/internal/domain"
	"net/http"
)

// NetworkHandler exposes the read-only network configuration.
type NetworkHandler struct {
	Network *domain.Network
}

func (h *NetworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	n := h.Network
	res := dto.NetworkResponse{
		Hub:         n.Hub,
		Fingerprint: n.Fingerprint(),
		Tariff: dto.TariffResponse{
			BaseRate:   n.Tariff.BaseRate,
			FreeWeight: n.Tariff.FreeWeight,
			BlockSize:  n.Tariff.BlockSize,
			BlockRate:  n.Tariff.BlockRate,
		},
		Warehouses: make([]dto.WarehouseResponse, 0, len(n.Catalog.Warehouses())),
		Distances:  make([]dto.DistanceResponse, 0, n.Distances.Len()),
	}
	for _, id := range n.Catalog.Warehouses() {
		res.Warehouses = append(res.Warehouses, dto.WarehouseResponse{ID: id, Stock: n.Catalog.Stock(id)})
	}
	for _, e := range n.Distances.Entries() {
		res.Distances = append(res.Distances, dto.DistanceResponse{From: e.From, To: e.To, Distance: e.Distance})
	}

	writeJSON(w, r, http.StatusOK, res)
}
