package dto

// OrderRequest maps item ids to integer quantities; unlisted items default to 0.
type OrderRequest map[string]int

type QuoteResponse struct {
	MinimumCost int64          `json:"minimum_cost"`
	Route       *RouteResponse `json:"route,omitempty"`
}

type RouteResponse struct {
	Sequence  []string      `json:"sequence"`
	ExactCost float64       `json:"exact_cost"`
	Strategy  string        `json:"strategy"`
	Evaluated int           `json:"evaluated"`
	Legs      []LegResponse `json:"legs"`
}

type LegResponse struct {
	Kind     string         `json:"kind"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Items    map[string]int `json:"items,omitempty"`
	Weight   float64        `json:"weight"`
	Distance float64        `json:"distance"`
	Cost     float64        `json:"cost"`
}
