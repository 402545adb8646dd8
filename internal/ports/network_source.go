package ports

import (
	"context"
	"fulfillment-cost-service/internal/domain"
)

// Port: a boundary for loading the static fulfillment network at startup.
type NetworkSource interface {
	// Load the hub, catalog, distances and tariff as one validated network.
	LoadNetwork(ctx context.Context) (*domain.Network, error)
}
