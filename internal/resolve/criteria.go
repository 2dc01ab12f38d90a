package resolve

import "github.com/talgya/quest-resolver/internal/outcome"

// Criteria turns one actor into a raw modifier vector. Raw values are in
// criteria units (stat sums, trait counts); the tier converts them into
// chance offsets.
type Criteria[A any] interface {
	SuccessModifiers(actor A) outcome.Vector
}

// CriteriaFunc adapts a plain function to Criteria.
type CriteriaFunc[A any] func(actor A) outcome.Vector

// SuccessModifiers calls f.
func (f CriteriaFunc[A]) SuccessModifiers(actor A) outcome.Vector {
	return f(actor)
}

// Slot is one actor position in a quest. Weight scales the slot's offsets;
// zero means unset and counts as 1.
type Slot[A any] struct {
	Criteria Criteria[A]
	Weight   float64
}

func (s Slot[A]) weight() float64 {
	if s.Weight == 0 {
		return 1.0
	}
	return s.Weight
}

// Slots maps slot name to its definition.
type Slots[A any] map[string]Slot[A]

// Assignment maps slot name to the actor filling it.
type Assignment[A any] map[string]A
