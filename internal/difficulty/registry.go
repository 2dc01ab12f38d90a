package difficulty

import (
	"fmt"
)

// Registry is a read-only catalog of tiers. It is fully built before it is
// returned and never changes afterwards, so it is safe to share between
// goroutines without locking.
type Registry struct {
	tiers map[Key]*Tier
	order []*Tier
}

// NewRegistry builds a registry from tiers. A repeated key is a
// configuration error.
func NewRegistry(tiers ...*Tier) (*Registry, error) {
	r := &Registry{
		tiers: make(map[Key]*Tier, len(tiers)),
		order: make([]*Tier, 0, len(tiers)),
	}
	for _, t := range tiers {
		if err := r.add(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(t *Tier) error {
	if _, exists := r.tiers[t.key]; exists {
		return fmt.Errorf("tier %s: %w", t.key, ErrDuplicateTier)
	}
	r.tiers[t.key] = t
	r.order = append(r.order, t)
	return nil
}

// Get returns the tier registered under key.
func (r *Registry) Get(key Key) (*Tier, error) {
	t, ok := r.tiers[key]
	if !ok {
		return nil, fmt.Errorf("tier %q: %w", key, ErrTierNotFound)
	}
	return t, nil
}

// Lookup returns the tier for an archetype and level.
func (r *Registry) Lookup(archetype string, level int) (*Tier, error) {
	return r.Get(MakeKey(archetype, level))
}

// Len returns the number of registered tiers.
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns every tier in registration order. The slice is a copy.
func (r *Registry) All() []*Tier {
	out := make([]*Tier, len(r.order))
	copy(out, r.order)
	return out
}

// Filter returns the tiers matching archetype (empty matches all) and level
// (0 matches all), in registration order.
func (r *Registry) Filter(archetype string, level int) []*Tier {
	var out []*Tier
	for _, t := range r.order {
		if archetype != "" && t.archetype != archetype {
			continue
		}
		if level != 0 && t.level != level {
			continue
		}
		out = append(out, t)
	}
	return out
}
