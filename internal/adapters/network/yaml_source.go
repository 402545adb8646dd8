package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"fulfillment-cost-service/internal/domain"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk layout of a network file:
//
//	hub: L1
//	tariff: {base_rate: 10, free_weight: 5, block_size: 5, block_rate: 8}
//	warehouses:
//	  C1: {A: 3, B: 2, C: 8}
//	distances:
//	  - {from: C1, to: L1, distance: 3}
type Document struct {
	Hub        string                        `yaml:"hub"`
	Tariff     *TariffDocument               `yaml:"tariff,omitempty"`
	Warehouses map[string]map[string]float64 `yaml:"warehouses"`
	Distances  []DistanceDocument            `yaml:"distances"`
}

type TariffDocument struct {
	BaseRate   *float64 `yaml:"base_rate,omitempty"`
	FreeWeight *float64 `yaml:"free_weight,omitempty"`
	BlockSize  *float64 `yaml:"block_size,omitempty"`
	BlockRate  *float64 `yaml:"block_rate,omitempty"`
}

type DistanceDocument struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Distance float64 `yaml:"distance"`
}

// YAMLSource reads the network from a YAML file.
type YAMLSource struct {
	Path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{Path: path}
}

func (s *YAMLSource) LoadNetwork(ctx context.Context) (*domain.Network, error) {
	if s.Path == "" {
		return nil, errors.New("load yaml network: path must be non-empty")
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load yaml network: read %q: %w", s.Path, err)
	}

	n, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load yaml network %q: %w", s.Path, err)
	}
	return n, nil
}

// Parse decodes a YAML network document and validates it. Unknown keys are rejected.
func Parse(b []byte) (*domain.Network, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse network: %w: %w", err, domain.ErrConfiguration)
	}
	return doc.Network()
}

// Network converts the document to a validated domain network. Tariff fields
// left out fall back to domain.DefaultTariff.
func (d Document) Network() (*domain.Network, error) {
	if len(d.Warehouses) == 0 {
		return nil, fmt.Errorf("build network: no warehouses: %w", domain.ErrConfiguration)
	}

	catalog, err := domain.NewItemCatalog(d.Warehouses)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	entries := make([]domain.DistanceEntry, 0, len(d.Distances))
	for _, e := range d.Distances {
		entries = append(entries, domain.DistanceEntry{From: e.From, To: e.To, Distance: e.Distance})
	}
	table, err := domain.NewDistanceTable(entries)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	tariff := domain.DefaultTariff
	if t := d.Tariff; t != nil {
		if t.BaseRate != nil {
			tariff.BaseRate = *t.BaseRate
		}
		if t.FreeWeight != nil {
			tariff.FreeWeight = *t.FreeWeight
		}
		if t.BlockSize != nil {
			tariff.BlockSize = *t.BlockSize
		}
		if t.BlockRate != nil {
			tariff.BlockRate = *t.BlockRate
		}
	}

	n, err := domain.NewNetwork(d.Hub, catalog, table, tariff)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	return n, nil
}

// FromNetwork renders n back into a document, e.g. for seeding or inspection.
func FromNetwork(n *domain.Network) Document {
	d := Document{
		Hub: n.Hub,
		Tariff: &TariffDocument{
			BaseRate:   ptr(n.Tariff.BaseRate),
			FreeWeight: ptr(n.Tariff.FreeWeight),
			BlockSize:  ptr(n.Tariff.BlockSize),
			BlockRate:  ptr(n.Tariff.BlockRate),
		},
		Warehouses: make(map[string]map[string]float64),
	}
	for _, w := range n.Catalog.Warehouses() {
		d.Warehouses[w] = n.Catalog.Stock(w)
	}
	for _, e := range n.Distances.Entries() {
		d.Distances = append(d.Distances, DistanceDocument{From: e.From, To: e.To, Distance: e.Distance})
	}
	return d
}

func ptr[T any](v T) *T { return &v }
