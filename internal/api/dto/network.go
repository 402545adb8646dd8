package dto

type TariffResponse struct {
	BaseRate   float64 `json:"base_rate"`
	FreeWeight float64 `json:"free_weight"`
	BlockSize  float64 `json:"block_size"`
	BlockRate  float64 `json:"block_rate"`
}

type WarehouseResponse struct {
	ID    string             `json:"id"`
	Stock map[string]float64 `json:"stock"`
}

type DistanceResponse struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

type NetworkResponse struct {
	Hub         string              `json:"hub"`
	Fingerprint string              `json:"fingerprint"`
	Tariff      TariffResponse      `json:"tariff"`
	Warehouses  []WarehouseResponse `json:"warehouses"`
	Distances   []DistanceResponse  `json:"distances"`
}
