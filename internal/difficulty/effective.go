package difficulty

import (
	"github.com/talgya/quest-resolver/internal/balance"
)

// ResolveEffective returns the tier a quest actually plays at. While the
// escalation bonus is active, tiers below balance.VeteranLevel play as the
// same archetype at VeteranLevel. Resolve once per quest and use the result
// for chances, money and exp alike.
func ResolveEffective(reg *Registry, t *Tier, escalated bool) (*Tier, error) {
	if !escalated || t.level >= balance.VeteranLevel {
		return t, nil
	}
	return reg.Lookup(t.archetype, balance.VeteranLevel)
}
