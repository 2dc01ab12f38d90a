package reward

import (
	"errors"
	"math"
	"testing"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/entropy"
	"github.com/talgya/quest-resolver/internal/outcome"
)

// draws replays a fixed sequence of uniform draws.
type draws []float64

func (d *draws) Float64() float64 {
	x := (*d)[0]
	*d = (*d)[1:]
	return x
}

func tier(t *testing.T, archetype string, level int) *difficulty.Tier {
	t.Helper()
	tr, err := difficulty.NewTier(archetype, level,
		map[outcome.Kind]float64{outcome.Crit: 0.1, outcome.Success: 0.5, outcome.Failure: 0.3},
		map[outcome.Kind]float64{outcome.Crit: 1, outcome.Success: 1, outcome.Failure: 1, outcome.Disaster: 1},
	)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestMoney(t *testing.T) {
	if BaseMoney() != 1875 {
		t.Fatalf("BaseMoney = %v, want 1875", BaseMoney())
	}
	tests := []struct {
		archetype string
		level     int
		want      int
	}{
		{difficulty.Normal, 40, 1875},
		{difficulty.Normal, 100, 1875},
		{difficulty.Normal, 20, 1406}, // 1875 * 0.75
		{difficulty.Normal, 1, 961},   // 1875 * 0.5125
		{difficulty.Hell, 40, 3750},
		{difficulty.Death, 1000, 5625},
	}
	for _, tt := range tests {
		got, err := Money(tier(t, tt.archetype, tt.level))
		if err != nil {
			t.Fatalf("%s%d: %v", tt.archetype, tt.level, err)
		}
		if got != tt.want {
			t.Errorf("Money(%s%d) = %d, want %d", tt.archetype, tt.level, got, tt.want)
		}
	}
}

func TestMoney_RampIsMonotonic(t *testing.T) {
	prev := 0
	for level := 1; level <= balance.LevelPlateau+5; level++ {
		got, err := Money(tier(t, difficulty.Hard, level))
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("level %d: money %d below level %d's %d", level, got, level-1, prev)
		}
		prev = got
	}
}

func TestRewards_ConfigurationErrors(t *testing.T) {
	unknown := tier(t, "legendary", 5)
	if _, err := Money(unknown); !errors.Is(err, ErrUnknownArchetype) {
		t.Errorf("Money unknown archetype: got %v", err)
	}
	if _, err := Exp(unknown, entropy.NewSeeded(1)); !errors.Is(err, ErrUnknownArchetype) {
		t.Errorf("Exp unknown archetype: got %v", err)
	}

	tooHigh := tier(t, difficulty.Normal, balance.MaxRewardLevel+1)
	if _, err := Money(tooHigh); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Money level %d: got %v", tooHigh.Level(), err)
	}
	if _, err := Exp(tooHigh, entropy.NewSeeded(1)); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Exp level %d: got %v", tooHigh.Level(), err)
	}
}

func TestBaseExp_Curve(t *testing.T) {
	if got, want := BaseExp(1), balance.ExpLevel1/balance.ExpLowLevelLevelUpFrequency; math.Abs(got-want) > 1e-12 {
		t.Errorf("BaseExp(1) = %v, want %v", got, want)
	}
	plateau := balance.ExpLevelPlateau / balance.ExpLowLevelLevelUpFrequency
	if got := BaseExp(balance.LevelPlateau); got != plateau {
		t.Errorf("BaseExp(plateau) = %v, want %v", got, plateau)
	}
	if got := BaseExp(500); got != plateau {
		t.Errorf("BaseExp(500) = %v, want %v", got, plateau)
	}
	for level := 2; level < balance.LevelPlateau; level++ {
		if BaseExp(level) <= BaseExp(level-1) {
			t.Fatalf("BaseExp not increasing at level %d", level)
		}
	}
}

func TestExp_Nudge(t *testing.T) {
	normal := tier(t, difficulty.Normal, 40)
	tests := []struct {
		name  string
		draws draws
		want  int
	}{
		{"no nudge", draws{0, 0.9}, 167},
		{"up", draws{0.5, 0.9}, 175},
		{"down", draws{0.5, 0.1}, 158},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.draws
			got, err := Exp(normal, &src)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Exp = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExp_StaysWithinNudge(t *testing.T) {
	src := entropy.NewSeeded(77)
	death := tier(t, difficulty.Death, 10)
	base := BaseExp(10) * 3.0
	lo := int(math.Floor(base * (1 - balance.ExpNudge)))
	hi := int(math.Ceil(base * (1 + balance.ExpNudge)))

	for i := 0; i < 1000; i++ {
		got, err := Exp(death, src)
		if err != nil {
			t.Fatal(err)
		}
		if got < lo || got > hi {
			t.Fatalf("Exp = %d outside [%d, %d]", got, lo, hi)
		}
	}
}

func TestExpAmbient(t *testing.T) {
	got, err := ExpAmbient(tier(t, difficulty.Easy, 40))
	if err != nil {
		t.Fatal(err)
	}
	base := BaseExp(40) * 0.95
	if float64(got) < math.Floor(base*0.9) || float64(got) > math.Ceil(base*1.1) {
		t.Errorf("ExpAmbient = %d, outside nudge of %v", got, base)
	}
}
