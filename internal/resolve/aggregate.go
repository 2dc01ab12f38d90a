// Package resolve computes the final outcome distribution of a quest from its
// difficulty tier and the actors assigned to it.
//
// The pipeline runs in a fixed order, each stage consuming the previous one:
// per-actor offsets, summation, base-disaster mitigation, offset application,
// success overflow/underflow redistribution, then a clamp cascade that makes
// the result a valid distribution.
package resolve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/outcome"
)

// Usage errors.
var (
	ErrMissingAssignment = errors.New("missing assignment")
	ErrNonFiniteModifier = errors.New("non-finite modifier")
)

// ErrInvariant means the clamp cascade produced an invalid distribution.
// It indicates a bug, never bad input.
var ErrInvariant = errors.New("chance invariant violated")

// residualSlack absorbs float rounding in the final failure residual.
const residualSlack = 1e-9

// Rules are the conversion constants of the pipeline.
type Rules struct {
	Crit                CritTable
	DisasterElimination float64 // fraction of base disaster crit can buy down
	SuccessToCrit       float64 // conversion of success above 1 into crit
	FailureToDisaster   float64 // conversion of success below 0 into lost crit, then disaster
}

// DefaultRules returns the rules built from the balance constants.
func DefaultRules() Rules {
	return Rules{
		Crit:                DefaultCritTable(),
		DisasterElimination: balance.BaseDisasterEliminationFraction,
		SuccessToCrit:       balance.SuccessExcessCritConversion,
		FailureToDisaster:   balance.FailureExcessDisasterConversion,
	}
}

var defaultRules = DefaultRules()

// Breakdown records the intermediate values of one aggregation.
type Breakdown struct {
	Tier       difficulty.Key
	PerSlot    map[string]outcome.Vector // weighted offsets per slot
	Offsets    outcome.Vector            // summed offsets before mitigation
	Mitigation float64                   // base disaster bought down by crit
	Chances    outcome.Vector
}

// ComputeOutcome returns the outcome distribution for tier with the given
// slots filled by assignment, using the default rules.
func ComputeOutcome[A any](tier *difficulty.Tier, slots Slots[A], assignment Assignment[A]) (outcome.Vector, error) {
	b, err := ComputeOutcomeDetailed(defaultRules, tier, slots, assignment)
	if err != nil {
		return outcome.Vector{}, err
	}
	return b.Chances, nil
}

// ComputeOutcomeDetailed runs the full pipeline under rules and returns every
// intermediate value.
func ComputeOutcomeDetailed[A any](rules Rules, tier *difficulty.Tier, slots Slots[A], assignment Assignment[A]) (Breakdown, error) {
	// Sorted so the floating-point sum does not depend on map order.
	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	sort.Strings(names)

	perSlot := make(map[string]outcome.Vector, len(slots))
	offsets := make([]outcome.Vector, 0, len(slots))
	for _, name := range names {
		slot := slots[name]
		actor, ok := assignment[name]
		if !ok {
			return Breakdown{}, fmt.Errorf("slot %q: %w", name, ErrMissingAssignment)
		}
		raw := slot.Criteria.SuccessModifiers(actor)
		if !raw.IsFinite() {
			return Breakdown{}, fmt.Errorf("slot %q: %v: %w", name, raw, ErrNonFiniteModifier)
		}
		// Finite modifiers may still overflow to ±Inf here; settle absorbs that.
		off := ConvertModifiers(rules, raw, tier).Scale(slot.weight())
		if hasNaN(off) {
			return Breakdown{}, fmt.Errorf("slot %q: weighted offset %v: %w", name, off, ErrNonFiniteModifier)
		}
		perSlot[name] = off
		offsets = append(offsets, off)
	}

	sum := SumOffsets(offsets)
	if hasNaN(sum) {
		return Breakdown{}, fmt.Errorf("summed offsets %v: %w", sum, ErrNonFiniteModifier)
	}
	chances, mitigation, err := ApplyOffsets(rules, tier.Base(), sum)
	if err != nil {
		return Breakdown{}, fmt.Errorf("tier %s: %w", tier.Key(), err)
	}

	return Breakdown{
		Tier:       tier.Key(),
		PerSlot:    perSlot,
		Offsets:    sum,
		Mitigation: mitigation,
		Chances:    chances,
	}, nil
}

// ConvertModifiers turns one actor's raw modifiers into chance offsets for
// tier. Success, failure and disaster scale linearly with the tier's
// multipliers. Crit goes through the crit table first, so the tier's crit
// multiplier is a hard cap on what one actor can contribute.
func ConvertModifiers(rules Rules, raw outcome.Vector, tier *difficulty.Tier) outcome.Vector {
	mods := tier.Offsets()
	return outcome.Of(
		rules.Crit.Multiplier(raw[outcome.Crit])*mods[outcome.Crit],
		raw[outcome.Success]*mods[outcome.Success],
		raw[outcome.Failure]*mods[outcome.Failure],
		raw[outcome.Disaster]*mods[outcome.Disaster],
	)
}

// SumOffsets adds offset vectors component-wise.
func SumOffsets(offsets []outcome.Vector) outcome.Vector {
	var sum outcome.Vector
	for _, o := range offsets {
		sum = sum.Add(o)
	}
	return sum
}

// ApplyOffsets applies summed offsets to base chances (mitigation,
// application, redistribution, clamp cascade). base is not modified. It
// returns the final distribution and the amount of base disaster mitigated.
func ApplyOffsets(rules Rules, base, offsets outcome.Vector) (outcome.Vector, float64, error) {
	result := base
	crit := offsets[outcome.Crit]

	// Crit buys down base disaster, up to a fraction of it. Spent crit is consumed.
	mitigation := math.Max(0, math.Min(result[outcome.Disaster]*rules.DisasterElimination, crit))
	crit -= mitigation
	result[outcome.Disaster] -= mitigation

	result[outcome.Disaster] += offsets[outcome.Disaster]
	result[outcome.Failure] += offsets[outcome.Failure]
	result[outcome.Success] += offsets[outcome.Success]
	result[outcome.Crit] += crit

	if result[outcome.Success] > 1.0 {
		// Excess success spills into crit. Success itself is clamped below.
		result[outcome.Crit] += (result[outcome.Success] - 1.0) * rules.SuccessToCrit
	}
	if result[outcome.Success] < 0.0 {
		// Negative success eats crit first, then turns into disaster. A crit
		// already below zero is reset to zero and its deficit lands on disaster.
		excess := -result[outcome.Success] * rules.FailureToDisaster
		eaten := math.Min(excess, result[outcome.Crit])
		excess -= eaten
		result[outcome.Crit] -= eaten
		if math.IsInf(excess, 1) {
			// Unbounded underflow dooms the quest, even against -Inf disaster.
			result[outcome.Disaster] = math.Inf(1)
		} else {
			result[outcome.Disaster] += excess
		}
	}

	settled, err := settle(result)
	if err != nil {
		return outcome.Vector{}, 0, err
	}
	return settled, mitigation, nil
}

func hasNaN(v outcome.Vector) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

// settle clamps v into a distribution. Priority is disaster, crit, success,
// failure: each locks in its share before the next sees the remainder, and
// failure takes whatever is left.
func settle(v outcome.Vector) (outcome.Vector, error) {
	if v[outcome.Disaster] >= 1.0 {
		return outcome.Of(0, 0, 0, 1), nil
	}
	if v[outcome.Disaster] < 0 {
		v[outcome.Disaster] = 0
	}

	if v[outcome.Disaster]+v[outcome.Crit] >= 1.0 {
		v[outcome.Crit] = 1.0 - v[outcome.Disaster]
		v[outcome.Success] = 0
		v[outcome.Failure] = 0
		return v, nil
	}
	if v[outcome.Crit] < 0 {
		v[outcome.Crit] = 0
	}

	if v[outcome.Disaster]+v[outcome.Crit]+v[outcome.Success] >= 1.0 {
		v[outcome.Success] = 1.0 - v[outcome.Disaster] - v[outcome.Crit]
	}
	if v[outcome.Success] < 0 {
		v[outcome.Success] = 0
	}

	failure := 1.0 - v[outcome.Success] - v[outcome.Disaster] - v[outcome.Crit]
	if failure < -residualSlack || math.IsNaN(failure) {
		return outcome.Vector{}, fmt.Errorf("failure residual %v from %v: %w", failure, v, ErrInvariant)
	}
	v[outcome.Failure] = math.Max(0, failure)
	return v, nil
}
