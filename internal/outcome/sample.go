package outcome

import (
	"errors"
	"fmt"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/entropy"
)

// ErrNotDistribution is returned when sampling from a vector that is not a
// valid chance vector.
var ErrNotDistribution = errors.New("not a chance distribution")

// Sample draws one outcome with probability proportional to its chance.
// Outcomes with zero chance are never returned.
func Sample(v Vector, src entropy.Source) (Kind, error) {
	if !v.IsDistribution(balance.FloatTolerance) {
		return 0, fmt.Errorf("sample %v: %w", v, ErrNotDistribution)
	}
	idx, err := entropy.SampleWeighted(src, v[:])
	if err != nil {
		return 0, fmt.Errorf("sample %v: %w", v, err)
	}
	return Kinds[idx], nil
}
