// Package balance holds every tuning constant used by quest resolution.
// Tier generation, aggregation and rewards all read from here so a balance
// pass touches one file.
package balance

// Tier generation.
const (
	// MaxLevel is the highest generated level per archetype.
	MaxLevel = 100

	// StatSumPerLevel is the expected growth of one unit's relevant stat total per level.
	StatSumPerLevel = 12.0

	// Lv0Stat is the expected stat total of a level-0 unit.
	Lv0Stat = 80.0

	// NumUnits is the number of actor slots a generated tier assumes.
	NumUnits = 3

	// LevelGap anchors the low end of the level-scaling window.
	LevelGap = 20
)

// Aggregation.
const (
	// BaseDisasterEliminationFraction caps how much of a tier's base disaster
	// chance the aggregate crit offset can buy down.
	BaseDisasterEliminationFraction = 0.5

	// SuccessExcessCritConversion converts success above 1.0 into crit.
	SuccessExcessCritConversion = 0.5

	// FailureExcessDisasterConversion converts success below 0.0 into lost crit, then disaster.
	FailureExcessDisasterConversion = 0.5

	// FloatTolerance is the slack allowed when checking that a chance vector sums to 1.
	FloatTolerance = 1e-5
)

// CritChanceTable maps an integral raw crit modifier (the index) to the
// fraction of a tier's crit offset multiplier it unlocks. Diminishing returns:
// the first crit trait is worth far more than the tenth.
var CritChanceTable = []float64{
	0, 0.25, 0.45, 0.60, 0.70, 0.78, 0.84, 0.89, 0.93, 0.96, 0.98, 1.0,
}

// Rewards.
const (
	// MoneyPerSlaverWeek is the weekly wage of one unit.
	MoneyPerSlaverWeek = 500.0

	// QuestWeeksPerScout is how many quest-weeks one scouting week yields.
	QuestWeeksPerScout = 4.0

	// MoneyLevelOneMulti is the money multiplier at level 0, ramping to 1.0 at LevelPlateau.
	MoneyLevelOneMulti = 0.5

	// LevelPlateau is the level where money and exp stop scaling.
	LevelPlateau = 40

	// ExpLevel1 is the exp a level-1 unit needs for a level-up.
	ExpLevel1 = 10.0

	// ExpLevelPlateau is the exp a unit at LevelPlateau needs for a level-up.
	ExpLevelPlateau = 500.0

	// ExpLowLevelLevelUpFrequency is how many quests a low-level unit needs per level-up.
	ExpLowLevelLevelUpFrequency = 3.0

	// ExpNudge bounds the symmetric fractional jitter applied to exp rewards.
	ExpNudge = 0.1

	// MaxRewardLevel is the highest level rewards are defined for.
	MaxRewardLevel = 1000
)

// VeteranLevel is the level quests below it escalate to while the
// escalation bonus is active.
const VeteranLevel = 40
