package difficulty

// Archetype names, easiest to deadliest.
const (
	Easiest = "easiest"
	Easier  = "easier"
	Easy    = "easy"
	Normal  = "normal"
	Hard    = "hard"
	Harder  = "harder"
	Hardest = "hardest"
	Extreme = "extreme"
	Hell    = "hell"
	Abyss   = "abyss"
	Death   = "death"
)

// Archetype is one row of the hand-authored difficulty table. All values are
// percentages.
type Archetype struct {
	Name string

	// Crit is the base critical chance.
	Crit float64
	// Disaster is the base disaster chance.
	Disaster float64
	// Success is the expected success chance when the units match the tier level.
	Success float64
	// DisasterMulti scales each raw disaster modifier.
	DisasterMulti float64
	// CritMulti is the hard cap on the crit chance a single unit can add;
	// expect around half of it from a typical unit.
	CritMulti float64
}

// Archetypes is the compiled-in difficulty table.
var Archetypes = []Archetype{
	{Name: Easiest, Crit: 10, Disaster: 0, Success: 80, DisasterMulti: 2, CritMulti: 75},
	{Name: Easier, Crit: 10, Disaster: 0, Success: 75, DisasterMulti: 6, CritMulti: 65},
	{Name: Easy, Crit: 7, Disaster: 2, Success: 70, DisasterMulti: 10, CritMulti: 55},
	{Name: Normal, Crit: 5, Disaster: 4, Success: 65, DisasterMulti: 13, CritMulti: 45},
	{Name: Hard, Crit: 5, Disaster: 6, Success: 57, DisasterMulti: 16, CritMulti: 40},
	{Name: Harder, Crit: 5, Disaster: 8, Success: 50, DisasterMulti: 19, CritMulti: 35},
	{Name: Hardest, Crit: 5, Disaster: 10, Success: 42, DisasterMulti: 22, CritMulti: 31},
	{Name: Extreme, Crit: 0, Disaster: 20, Success: 37, DisasterMulti: 25, CritMulti: 27},
	{Name: Hell, Crit: 0, Disaster: 30, Success: 32, DisasterMulti: 28, CritMulti: 23},
	{Name: Abyss, Crit: 0, Disaster: 50, Success: 27, DisasterMulti: 32, CritMulti: 21},
	{Name: Death, Crit: 0, Disaster: 70, Success: 20, DisasterMulti: 36, CritMulti: 18},
}

// blessingOfLuckRequired is how many blessing-of-luck stacks it takes to
// reroll a disaster on each archetype.
var blessingOfLuckRequired = map[string]int{
	Easiest: 1,
	Easier:  1,
	Easy:    1,
	Normal:  1,
	Hard:    1,
	Harder:  1,
	Hardest: 2,
	Extreme: 2,
	Hell:    3,
	Abyss:   3,
	Death:   4,
}

// IsArchetype reports whether name is one of the built-in archetypes.
func IsArchetype(name string) bool {
	_, ok := blessingOfLuckRequired[name]
	return ok
}
