package risk

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// Impacts holds the optional effects of a triggered event. A nil field
// means the event has no effect on that value.
type Impacts struct {
	Cost   *int64
	Time   *float64 // months
	Safety *float64
	Morale *float64
}

// Event is an immutable, independently evaluated risk
type Event struct {
	code        string
	name        string
	probability float64
	months      map[int]struct{}
	impacts     Impacts
}

// NewEvent creates an event with validation
func NewEvent(code, name string, probability float64, months []int, impacts Impacts) (*Event, error) {
	if code == "" {
		return nil, shared.NewValidationError("code", "code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewCatalogError(code, "name cannot be empty")
	}
	if probability < 0 || probability > 1 {
		return nil, shared.NewCatalogError(code, fmt.Sprintf("probability %v outside [0, 1]", probability))
	}
	if impacts.Cost != nil && *impacts.Cost < 0 {
		return nil, shared.NewCatalogError(code, "cost impact cannot be negative")
	}
	if len(months) == 0 {
		return nil, shared.NewCatalogError(code, "at least one eligible month is required")
	}

	set := make(map[int]struct{}, len(months))
	for _, m := range months {
		if m < 1 {
			return nil, shared.NewCatalogError(code, fmt.Sprintf("invalid month %d", m))
		}
		set[m] = struct{}{}
	}

	return &Event{
		code:        code,
		name:        name,
		probability: probability,
		months:      set,
		impacts:     copyImpacts(impacts),
	}, nil
}

// MustNewEvent creates an event, panicking if invalid.
// Use only for the built-in catalog.
func MustNewEvent(code, name string, probability float64, months []int, impacts Impacts) *Event {
	e, err := NewEvent(code, name, probability, months, impacts)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Event) Code() string {
	return e.code
}

func (e *Event) Name() string {
	return e.name
}

func (e *Event) Probability() float64 {
	return e.probability
}

// IsEligible reports whether the event can fire in month
func (e *Event) IsEligible(month int) bool {
	_, ok := e.months[month]
	return ok
}

// Months returns the eligible months in ascending order
func (e *Event) Months() []int {
	out := make([]int, 0, len(e.months))
	for m := range e.months {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

// LastMonth returns the latest eligible month
func (e *Event) LastMonth() int {
	last := 0
	for m := range e.months {
		if m > last {
			last = m
		}
	}
	return last
}

// Impacts returns a copy of the event's impacts
func (e *Event) Impacts() Impacts {
	return copyImpacts(e.impacts)
}

func (e *Event) String() string {
	return fmt.Sprintf("Risk[%s %q p=%.2f]", e.code, e.name, e.probability)
}

func copyImpacts(in Impacts) Impacts {
	var out Impacts
	if in.Cost != nil {
		v := *in.Cost
		out.Cost = &v
	}
	if in.Time != nil {
		v := *in.Time
		out.Time = &v
	}
	if in.Safety != nil {
		v := *in.Safety
		out.Safety = &v
	}
	if in.Morale != nil {
		v := *in.Morale
		out.Morale = &v
	}
	return out
}

// Cost returns a pointer for use in Impacts literals
func Cost(v int64) *int64 {
	return &v
}

// Amount returns a pointer for use in Impacts literals
func Amount(v float64) *float64 {
	return &v
}
