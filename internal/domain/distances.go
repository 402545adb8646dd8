package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// DistanceEntry is one undirected edge of the distance table.
type DistanceEntry struct {
	From     string
	To       string
	Distance float64
}

// DistanceTable is a symmetric lookup of distances between locations.
// Entries are stored once under a normalized "a|b" key with a < b.
type DistanceTable struct {
	d map[string]float64
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// NewDistanceTable builds a symmetric table. Listing both directions of a pair is
// allowed as long as the distances agree.
func NewDistanceTable(entries []DistanceEntry) (*DistanceTable, error) {
	t := &DistanceTable{d: make(map[string]float64, len(entries))}

	for i, e := range entries {
		from := strings.TrimSpace(e.From)
		to := strings.TrimSpace(e.To)
		if from == "" || to == "" {
			return nil, fmt.Errorf("new distance table: entry %d has empty location: %w", i+1, ErrConfiguration)
		}
		if strings.Contains(from, "|") || strings.Contains(to, "|") {
			return nil, fmt.Errorf("new distance table: entry %d location ids must not contain '|': %w", i+1, ErrConfiguration)
		}
		if from == to {
			return nil, fmt.Errorf("new distance table: entry %d is a self pair %q: %w", i+1, from, ErrConfiguration)
		}
		if e.Distance < 0 || math.IsNaN(e.Distance) || math.IsInf(e.Distance, 0) {
			return nil, fmt.Errorf(
				"new distance table: %q -> %q has invalid distance %v: %w",
				from, to, e.Distance, ErrConfiguration,
			)
		}

		k := pairKey(from, to)
		if prev, ok := t.d[k]; ok && prev != e.Distance {
			return nil, fmt.Errorf(
				"new distance table: conflicting distances for %q <-> %q (%v, %v): %w",
				from, to, prev, e.Distance, ErrConfiguration,
			)
		}
		t.d[k] = e.Distance
	}

	return t, nil
}

// Distance returns the distance between a and b in either direction.
func (t *DistanceTable) Distance(a, b string) (float64, bool) {
	if a == b {
		return 0, false
	}
	d, ok := t.d[pairKey(a, b)]
	return d, ok
}

// MustDistance is for callers that already validated the table against the
// locations they ask about.
func (t *DistanceTable) MustDistance(a, b string) float64 {
	d, ok := t.Distance(a, b)
	if !ok {
		panic(fmt.Sprintf("distance table: missing %q <-> %q", a, b))
	}
	return d
}

// Entries returns one entry per pair, ordered by (From, To).
func (t *DistanceTable) Entries() []DistanceEntry {
	out := make([]DistanceEntry, 0, len(t.d))
	for k, d := range t.d {
		from, to, _ := strings.Cut(k, "|")
		out = append(out, DistanceEntry{From: from, To: to, Distance: d})
	}
	slices.SortFunc(out, func(x, y DistanceEntry) int {
		if c := strings.Compare(x.From, y.From); c != 0 {
			return c
		}
		return strings.Compare(x.To, y.To)
	})
	return out
}

func (t *DistanceTable) Len() int { return len(t.d) }
