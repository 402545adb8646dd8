package domain

// LegKind distinguishes loaded shipments from empty repositioning runs.
type LegKind string

const (
	LegLaden      LegKind = "laden"
	LegReposition LegKind = "reposition"
)

// Represents one segment of a fulfillment route.
// A laden leg carries a warehouse's share of the order to the hub; a reposition
// leg is the empty run from the hub out to the next warehouse.
type ShipmentLeg struct {
	Kind     LegKind
	From     string
	To       string
	Items    map[string]int
	Weight   float64
	Distance float64
	Cost     float64
}

// Represents the outcome of a route search for one order.
// MinimumCost is the rounded answer; the remaining fields describe the winning
// ordering and are informational.
type Quote struct {
	MinimumCost int64
	ExactCost   float64
	Sequence    []string
	Legs        []ShipmentLeg
	Evaluated   int
	Strategy    string
}
