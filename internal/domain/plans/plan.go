package plans

import "sort"

// Plan is a purchasable premium tier. Prices are in minor units (IDR).
// Plans are deployment configuration, not user-editable rows; the catalog is
// passed in wherever plan data is needed so tests can swap it out.
type Plan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	DurationDays int    `json:"duration"`
}

type Catalog map[string]Plan

// Get resolves a plan by id. ok is false for unknown ids.
func (c Catalog) Get(id string) (Plan, bool) {
	p, ok := c[id]
	return p, ok
}

// List returns the catalog's plans in a stable order (cheapest first).
func (c Catalog) List() []Plan {
	out := make([]Plan, 0, len(c))
	for _, p := range c {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// DefaultCatalog is the reference deployment's plan set.
func DefaultCatalog() Catalog {
	return Catalog{
		"monthly": {ID: "monthly", Name: "Premium Monthly", Price: 54990, DurationDays: 30},
		"yearly":  {ID: "yearly", Name: "Premium Yearly", Price: 549900, DurationDays: 365},
	}
}
