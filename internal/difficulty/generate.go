package difficulty

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/outcome"
)

// GenConfig holds tier generation parameters.
type GenConfig struct {
	Archetypes      []Archetype
	MaxLevel        int     // Levels 1..MaxLevel are generated per archetype
	StatSumPerLevel float64 // Expected stat growth of one unit per level
	Lv0Stat         float64 // Expected stat total of a level-0 unit
}

// DefaultGenConfig returns the compiled-in archetype table and balance constants.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Archetypes:      Archetypes,
		MaxLevel:        balance.MaxLevel,
		StatSumPerLevel: balance.StatSumPerLevel,
		Lv0Stat:         balance.Lv0Stat,
	}
}

func (c GenConfig) validate() error {
	if len(c.Archetypes) == 0 {
		return fmt.Errorf("no archetypes: %w", ErrInvalidConfig)
	}
	if c.MaxLevel < 1 {
		return fmt.Errorf("MaxLevel must be >= 1, got %d: %w", c.MaxLevel, ErrInvalidConfig)
	}
	if c.StatSumPerLevel <= 0 || math.IsInf(c.StatSumPerLevel, 0) || math.IsNaN(c.StatSumPerLevel) {
		return fmt.Errorf("StatSumPerLevel must be > 0, got %v: %w", c.StatSumPerLevel, ErrInvalidConfig)
	}
	return nil
}

// Generate derives one tier per (archetype, level) and returns the finished
// registry. Any invalid tier aborts generation; no partial registry is returned.
//
// For level i the success offset multiplier is chosen so that NumUnits units
// carrying exactly the expected stat total for level i land on the
// archetype's target success chance:
//
//	lowlevel = min(i - 20, i / 3)
//	multi    = success / NumUnits / (i - lowlevel) / StatSumPerLevel
//	statBase = -multi * NumUnits * (Lv0Stat + StatSumPerLevel * lowlevel)
func Generate(cfg GenConfig) (*Registry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	const nunits = float64(balance.NumUnits)
	for _, arch := range cfg.Archetypes {
		for i := 1; i <= cfg.MaxLevel; i++ {
			level := float64(i)
			lowlevel := math.Min(level-balance.LevelGap, level/3)
			multi := arch.Success / 100.0 / nunits / (level - lowlevel) / cfg.StatSumPerLevel
			statBase := -multi * nunits * (cfg.Lv0Stat + cfg.StatSumPerLevel*lowlevel)

			crit := arch.Crit / 100.0
			base := map[outcome.Kind]float64{
				outcome.Crit:     crit,
				outcome.Disaster: 0,
				outcome.Success:  statBase,
				outcome.Failure:  1.0 - statBase - crit - arch.Disaster/100.0,
			}
			offsets := map[outcome.Kind]float64{
				outcome.Crit:     arch.CritMulti / 100.0,
				outcome.Disaster: arch.DisasterMulti / 100.0,
				outcome.Success:  multi,
				outcome.Failure:  multi,
			}

			t, err := NewTier(arch.Name, i, base, offsets)
			if err != nil {
				return nil, fmt.Errorf("generate: %w", err)
			}
			if err := reg.add(t); err != nil {
				return nil, fmt.Errorf("generate: %w", err)
			}
		}
	}

	slog.Debug("difficulty tiers generated",
		"archetypes", len(cfg.Archetypes),
		"max_level", cfg.MaxLevel,
		"tiers", reg.Len(),
	)
	return reg, nil
}
