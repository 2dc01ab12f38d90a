package resolve

import (
	"fmt"
	"sort"

	"github.com/talgya/quest-resolver/internal/balance"
)

// Breakpoint maps a raw crit modifier to a multiplier in [0, 1].
type Breakpoint struct {
	Raw        float64
	Multiplier float64
}

// CritTable converts raw crit modifiers into the fraction of a tier's crit
// multiplier they unlock. Raw values below the first breakpoint take the
// first multiplier, values above the last take the last, and values in
// between are interpolated linearly.
type CritTable struct {
	points []Breakpoint
}

// NewCritTable validates and builds a table. Breakpoints must be strictly
// increasing in Raw.
func NewCritTable(points []Breakpoint) (CritTable, error) {
	if len(points) == 0 {
		return CritTable{}, fmt.Errorf("crit table: no breakpoints")
	}
	for i := 1; i < len(points); i++ {
		if points[i].Raw <= points[i-1].Raw {
			return CritTable{}, fmt.Errorf("crit table: breakpoint %d not increasing (%v after %v)",
				i, points[i].Raw, points[i-1].Raw)
		}
	}
	cp := make([]Breakpoint, len(points))
	copy(cp, points)
	return CritTable{points: cp}, nil
}

// DefaultCritTable builds the table from balance.CritChanceTable, one
// breakpoint per integral raw value starting at 0.
func DefaultCritTable() CritTable {
	points := make([]Breakpoint, len(balance.CritChanceTable))
	for i, m := range balance.CritChanceTable {
		points[i] = Breakpoint{Raw: float64(i), Multiplier: m}
	}
	return CritTable{points: points}
}

// Multiplier returns the crit multiplier for a raw crit modifier. The zero
// CritTable has no breakpoints and unlocks nothing.
func (t CritTable) Multiplier(raw float64) float64 {
	pts := t.points
	if len(pts) == 0 {
		return 0
	}
	if raw <= pts[0].Raw {
		return pts[0].Multiplier
	}
	last := pts[len(pts)-1]
	if raw >= last.Raw {
		return last.Multiplier
	}
	// First breakpoint strictly above raw; raw sits in [pts[i-1], pts[i]).
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Raw > raw })
	lo, hi := pts[i-1], pts[i]
	frac := (raw - lo.Raw) / (hi.Raw - lo.Raw)
	return lo.Multiplier + frac*(hi.Multiplier-lo.Multiplier)
}

// Breakpoints returns a copy of the table.
func (t CritTable) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(t.points))
	copy(out, t.points)
	return out
}
