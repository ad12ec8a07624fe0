package risk

import (
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// Catalog is an ordered table of risk events. Evaluation follows catalog order.
type Catalog struct {
	events []*Event
}

// NewCatalog creates a catalog, rejecting duplicate codes
func NewCatalog(events ...*Event) (*Catalog, error) {
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if e == nil {
			return nil, shared.NewValidationError("events", "nil event")
		}
		if seen[e.Code()] {
			return nil, shared.NewCatalogError(e.Code(), "duplicate code")
		}
		seen[e.Code()] = true
	}

	out := make([]*Event, len(events))
	copy(out, events)
	return &Catalog{events: out}, nil
}

// DefaultCatalog returns the built-in risk table
func DefaultCatalog() *Catalog {
	allButLast := make([]int, 0, 17)
	for m := 1; m <= 17; m++ {
		allButLast = append(allButLast, m)
	}

	return &Catalog{events: []*Event{
		MustNewEvent("R1", "Sudden steel price increase", 0.40, []int{2, 3, 4},
			Impacts{Cost: Cost(15_000_000_000)}),
		MustNewEvent("R2", "Neighbour complaints", 0.25, []int{2, 3},
			Impacts{Time: Amount(0.5), Cost: Cost(500_000_000)}),
		MustNewEvent("R3", "Heavy rain/snow", 0.30, []int{5, 6, 7, 8},
			Impacts{Time: Amount(0.75)}),
		MustNewEvent("R4", "Facade stone delivery delay", 0.35, []int{7, 8},
			Impacts{Time: Amount(1)}),
		MustNewEvent("R5", "Concrete pump breakdown", 0.20, []int{3, 4},
			Impacts{Time: Amount(0.3)}),
		MustNewEvent("R7", "Site accident (HSE)", 0.15, allButLast,
			Impacts{Time: Amount(0.25), Safety: Amount(-5), Morale: Amount(-10)}),
	}}
}

// Events returns the events in evaluation order
func (c *Catalog) Events() []*Event {
	out := make([]*Event, len(c.events))
	copy(out, c.events)
	return out
}

// Len returns the number of events
func (c *Catalog) Len() int {
	return len(c.events)
}

// Find returns the event with code
func (c *Catalog) Find(code string) (*Event, error) {
	for _, e := range c.events {
		if e.Code() == code {
			return e, nil
		}
	}
	return nil, fmt.Errorf("risk event not found: %s", code)
}

// EligibleIn returns the events that can fire in month, in catalog order
func (c *Catalog) EligibleIn(month int) []*Event {
	var out []*Event
	for _, e := range c.events {
		if e.IsEligible(month) {
			out = append(out, e)
		}
	}
	return out
}
