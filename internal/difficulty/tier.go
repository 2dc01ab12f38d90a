// Package difficulty generates and holds the quest difficulty tiers: one tier
// per (archetype, level), each with base outcome chances and the multipliers
// that turn unit modifiers into chance offsets.
package difficulty

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/outcome"
)

// Configuration errors. Any of these aborts tier generation.
var (
	ErrDuplicateTier  = errors.New("duplicate tier key")
	ErrInvalidChances = errors.New("invalid base chance sum")
	ErrMissingChance  = errors.New("missing base chance")
	ErrMissingOffset  = errors.New("missing offset multiplier")
	ErrInvalidConfig  = errors.New("invalid generator config")
)

// ErrTierNotFound is returned when looking up an unregistered key.
var ErrTierNotFound = errors.New("tier not found")

// Key identifies a tier: archetype name followed by level, e.g. "normal5".
type Key string

// MakeKey builds the key for an archetype and level.
func MakeKey(archetype string, level int) Key {
	return Key(archetype + strconv.Itoa(level))
}

// Tier is an immutable (archetype, level) pair with resolved base chances
// and offset multipliers.
type Tier struct {
	key       Key
	name      string
	archetype string
	level     int
	base      outcome.Vector
	offsets   outcome.Vector
}

// NewTier validates and builds a tier. base must carry crit, success and
// failure; disaster is derived as the remainder. A disaster entry in base
// counts toward the sum and is then replaced. offsets must carry all four kinds.
func NewTier(archetype string, level int, base, offsets map[outcome.Kind]float64) (*Tier, error) {
	key := MakeKey(archetype, level)
	if level < 1 {
		return nil, fmt.Errorf("tier %s: level %d: %w", key, level, ErrInvalidConfig)
	}

	var chances outcome.Vector
	sum := 0.0
	for _, k := range []outcome.Kind{outcome.Crit, outcome.Success, outcome.Failure} {
		v, ok := base[k]
		if !ok {
			return nil, fmt.Errorf("tier %s: %s: %w", key, k, ErrMissingChance)
		}
		chances[k] = v
		sum += v
	}
	sum += base[outcome.Disaster]

	if sum > 1.0+balance.FloatTolerance || sum < balance.FloatTolerance {
		return nil, fmt.Errorf("tier %s: sum %.6f: %w", key, sum, ErrInvalidChances)
	}
	// Sums a hair over 1 are rounding noise, not a negative disaster chance.
	chances[outcome.Disaster] = math.Max(0, 1.0-sum)

	var mods outcome.Vector
	for _, k := range outcome.Kinds {
		v, ok := offsets[k]
		if !ok {
			return nil, fmt.Errorf("tier %s: %s: %w", key, k, ErrMissingOffset)
		}
		mods[k] = v
	}

	return &Tier{
		key:       key,
		name:      fmt.Sprintf("Lv %d %s", level, archetype),
		archetype: archetype,
		level:     level,
		base:      chances,
		offsets:   mods,
	}, nil
}

// Key returns the registry key.
func (t *Tier) Key() Key { return t.key }

// Name returns the display name, e.g. "Lv 5 normal".
func (t *Tier) Name() string { return t.name }

// Archetype returns the archetype name.
func (t *Tier) Archetype() string { return t.archetype }

// Level returns the tier level.
func (t *Tier) Level() int { return t.level }

// Base returns a copy of the base chance vector.
func (t *Tier) Base() outcome.Vector { return t.base }

// Offsets returns a copy of the offset multipliers.
func (t *Tier) Offsets() outcome.Vector { return t.offsets }

// BlessingOfLuckStacks returns the blessing-of-luck stacks this tier's
// archetype requires, or 0 for unknown archetypes.
func (t *Tier) BlessingOfLuckStacks() int {
	return blessingOfLuckRequired[t.archetype]
}

func (t *Tier) String() string {
	return string(t.key)
}
