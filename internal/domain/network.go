package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Network is the static configuration the route search runs against: one hub,
// the warehouses feeding it, their distances and the tariff.
//
// It is built once at startup, checked for completeness and never mutated.
type Network struct {
	Hub       string
	Catalog   *ItemCatalog
	Distances *DistanceTable
	Tariff    Tariff

	fingerprint string
}

// NewNetwork validates that every warehouse has a hub leg and a distance to every
// other warehouse. A missing entry is a configuration defect.
func NewNetwork(hub string, catalog *ItemCatalog, distances *DistanceTable, tariff Tariff) (*Network, error) {
	hub = strings.TrimSpace(hub)
	if hub == "" {
		return nil, fmt.Errorf("new network: hub must be non-empty: %w", ErrConfiguration)
	}
	if catalog == nil || distances == nil {
		return nil, fmt.Errorf("new network: catalog and distances are required: %w", ErrConfiguration)
	}
	if catalog.HasWarehouse(hub) {
		return nil, fmt.Errorf("new network: hub %q is also listed as a warehouse: %w", hub, ErrConfiguration)
	}
	if err := tariff.Validate(); err != nil {
		return nil, fmt.Errorf("new network: %w", err)
	}

	warehouses := catalog.Warehouses()
	var missing []string
	for i, w := range warehouses {
		if _, ok := distances.Distance(w, hub); !ok {
			missing = append(missing, w+"<->"+hub)
		}
		for _, other := range warehouses[i+1:] {
			if _, ok := distances.Distance(w, other); !ok {
				missing = append(missing, w+"<->"+other)
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("new network: missing distances %s: %w", strings.Join(missing, ", "), ErrConfiguration)
	}

	n := &Network{
		Hub:       hub,
		Catalog:   catalog,
		Distances: distances,
		Tariff:    tariff,
	}
	n.fingerprint = n.computeFingerprint()
	return n, nil
}

// Fingerprint identifies the network contents. Two networks with the same hub,
// stock, distances and tariff share a fingerprint regardless of how they were loaded.
func (n *Network) Fingerprint() string { return n.fingerprint }

func (n *Network) computeFingerprint() string {
	var b strings.Builder
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	b.WriteString("hub=" + n.Hub + ";")
	b.WriteString("tariff=" + f(n.Tariff.BaseRate) + "," + f(n.Tariff.FreeWeight) + "," +
		f(n.Tariff.BlockSize) + "," + f(n.Tariff.BlockRate) + ";")
	for _, w := range n.Catalog.Warehouses() {
		b.WriteString("w=" + w + ":")
		stock := n.Catalog.Stock(w)
		for _, item := range sortedKeys(stock) {
			b.WriteString(item + "=" + f(stock[item]) + ",")
		}
		b.WriteString(";")
	}
	for _, e := range n.Distances.Entries() {
		b.WriteString("d=" + e.From + "|" + e.To + "=" + f(e.Distance) + ";")
	}

	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
