// Package reward computes the money and experience a quest pays out, keyed
// off its difficulty archetype and level.
package reward

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/entropy"
)

var (
	ErrUnknownArchetype = errors.New("unknown difficulty archetype")
	ErrLevelOutOfRange  = errors.New("level out of range")
)

var moneyMultis = map[string]float64{
	difficulty.Easiest: 0.8,
	difficulty.Easier:  0.9,
	difficulty.Easy:    0.95,
	difficulty.Normal:  1.0,
	difficulty.Hard:    1.06,
	difficulty.Harder:  1.15,
	difficulty.Hardest: 1.25,
	difficulty.Extreme: 1.5,
	difficulty.Hell:    2.0,
	difficulty.Abyss:   2.5,
	difficulty.Death:   3.0,
}

var expMultis = map[string]float64{
	difficulty.Easiest: 0.8,
	difficulty.Easier:  0.9,
	difficulty.Easy:    0.95,
	difficulty.Normal:  1.0,
	difficulty.Hard:    1.05,
	difficulty.Harder:  1.1,
	difficulty.Hardest: 1.2,
	difficulty.Extreme: 1.4,
	difficulty.Hell:    1.8,
	difficulty.Abyss:   2.2,
	difficulty.Death:   3.0,
}

func lookup(table map[string]float64, t *difficulty.Tier) (float64, error) {
	multi, ok := table[t.Archetype()]
	if !ok {
		return 0, fmt.Errorf("tier %s: %q: %w", t.Key(), t.Archetype(), ErrUnknownArchetype)
	}
	if t.Level() <= 0 || t.Level() > balance.MaxRewardLevel {
		return 0, fmt.Errorf("tier %s: level %d: %w", t.Key(), t.Level(), ErrLevelOutOfRange)
	}
	return multi, nil
}

// BaseMoney is the payout of a normal quest at or above the plateau level:
// three units' weekly wage plus the scouting share.
func BaseMoney() float64 {
	return 3*balance.MoneyPerSlaverWeek + (1.0/balance.QuestWeeksPerScout)*3*balance.MoneyPerSlaverWeek
}

// Money returns the money reward for a quest at tier. Below the plateau level
// the payout ramps linearly from MoneyLevelOneMulti up to full.
func Money(t *difficulty.Tier) (int, error) {
	multi, err := lookup(moneyMultis, t)
	if err != nil {
		return 0, err
	}

	money := BaseMoney() * multi
	if level := t.Level(); level < balance.LevelPlateau {
		ramp := balance.MoneyLevelOneMulti +
			(1.0-balance.MoneyLevelOneMulti)*(float64(level)/balance.LevelPlateau)
		money *= ramp
	}
	return int(math.Round(money)), nil
}

// BaseExp is the experience for a normal quest at level before jitter.
// It grows exponentially up to the plateau and stays flat afterwards.
func BaseExp(level int) float64 {
	if level >= balance.LevelPlateau {
		return balance.ExpLevelPlateau / balance.ExpLowLevelLevelUpFrequency
	}
	ratio := math.Pow(balance.ExpLevelPlateau/balance.ExpLevel1, 1.0/balance.LevelPlateau)
	return balance.ExpLevel1 * math.Pow(ratio, float64(level-1)) / balance.ExpLowLevelLevelUpFrequency
}

// Exp returns the experience reward for a quest at tier, nudged by up to
// ±ExpNudge using two draws from src.
func Exp(t *difficulty.Tier, src entropy.Source) (int, error) {
	multi, err := lookup(expMultis, t)
	if err != nil {
		return 0, err
	}

	exp := BaseExp(t.Level()) * multi

	nudge := src.Float64() * balance.ExpNudge
	if src.Float64() < 0.5 {
		nudge = -nudge
	}
	exp *= 1.0 + nudge

	return int(math.Round(exp)), nil
}

// ExpAmbient is Exp with crypto/rand jitter, for callers that do not need
// reproducible rewards.
func ExpAmbient(t *difficulty.Tier) (int, error) {
	return Exp(t, entropy.Crypto{})
}
