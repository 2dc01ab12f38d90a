package difficulty

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/talgya/quest-resolver/internal/balance"
	"github.com/talgya/quest-resolver/internal/outcome"
)

func allOffsets(x float64) map[outcome.Kind]float64 {
	return map[outcome.Kind]float64{
		outcome.Crit: x, outcome.Success: x, outcome.Failure: x, outcome.Disaster: x,
	}
}

func TestNewTier_DerivesDisaster(t *testing.T) {
	tier, err := NewTier(Normal, 5, map[outcome.Kind]float64{
		outcome.Crit: 0.05, outcome.Success: 0.40, outcome.Failure: 0.45,
	}, allOffsets(1))
	if err != nil {
		t.Fatal(err)
	}
	if tier.Key() != "normal5" {
		t.Errorf("Key = %q, want normal5", tier.Key())
	}
	if tier.Name() != "Lv 5 normal" {
		t.Errorf("Name = %q, want %q", tier.Name(), "Lv 5 normal")
	}
	if got := tier.Base()[outcome.Disaster]; math.Abs(got-0.10) > 1e-12 {
		t.Errorf("derived disaster = %v, want 0.10", got)
	}
}

func TestNewTier_Validation(t *testing.T) {
	tests := []struct {
		name    string
		base    map[outcome.Kind]float64
		offsets map[outcome.Kind]float64
		want    error
	}{
		{
			name:    "missing success",
			base:    map[outcome.Kind]float64{outcome.Crit: 0.1, outcome.Failure: 0.5},
			offsets: allOffsets(1),
			want:    ErrMissingChance,
		},
		{
			name:    "sum over one",
			base:    map[outcome.Kind]float64{outcome.Crit: 0.5, outcome.Success: 0.5, outcome.Failure: 0.1},
			offsets: allOffsets(1),
			want:    ErrInvalidChances,
		},
		{
			name:    "sum zero",
			base:    map[outcome.Kind]float64{outcome.Crit: 0, outcome.Success: 0, outcome.Failure: 0},
			offsets: allOffsets(1),
			want:    ErrInvalidChances,
		},
		{
			name: "missing disaster offset",
			base: map[outcome.Kind]float64{outcome.Crit: 0.1, outcome.Success: 0.5, outcome.Failure: 0.3},
			offsets: map[outcome.Kind]float64{
				outcome.Crit: 1, outcome.Success: 1, outcome.Failure: 1,
			},
			want: ErrMissingOffset,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTier(Hard, 3, tt.base, tt.offsets)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegistry_DuplicateAndMissing(t *testing.T) {
	base := map[outcome.Kind]float64{outcome.Crit: 0.1, outcome.Success: 0.5, outcome.Failure: 0.3}
	a, _ := NewTier(Easy, 1, base, allOffsets(1))
	b, _ := NewTier(Easy, 1, base, allOffsets(2))

	if _, err := NewRegistry(a, b); !errors.Is(err, ErrDuplicateTier) {
		t.Fatalf("got %v, want ErrDuplicateTier", err)
	}

	reg, err := NewRegistry(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Get("easy2"); !errors.Is(err, ErrTierNotFound) {
		t.Errorf("got %v, want ErrTierNotFound", err)
	}
	got, err := reg.Lookup(Easy, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Errorf("Lookup returned a different tier")
	}
}

func TestGenerate_Catalog(t *testing.T) {
	reg, err := Generate(DefaultGenConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := len(Archetypes) * balance.MaxLevel; reg.Len() != want {
		t.Fatalf("Len = %d, want %d", reg.Len(), want)
	}

	for _, tier := range reg.All() {
		base := tier.Base()
		if math.Abs(base.Sum()-1.0) > balance.FloatTolerance {
			t.Errorf("%s: base sums to %v", tier.Key(), base.Sum())
		}
		off := tier.Offsets()
		if off[outcome.Success] <= 0 || off[outcome.Success] != off[outcome.Failure] {
			t.Errorf("%s: success/failure multipliers %v/%v", tier.Key(), off[outcome.Success], off[outcome.Failure])
		}
	}
}

func TestGenerate_Normal1(t *testing.T) {
	reg, err := Generate(DefaultGenConfig())
	if err != nil {
		t.Fatal(err)
	}
	tier, err := reg.Get("normal1")
	if err != nil {
		t.Fatal(err)
	}

	// lowlevel = -19, so multi = 0.65/3/20/12 and statBase = multi*3*148.
	multi := 0.65 / 720.0
	want := outcome.Of(0.05, multi*444, 1-multi*444-0.05-0.04, 0.04)
	got := tier.Base()
	for _, k := range outcome.Kinds {
		if math.Abs(got[k]-want[k]) > 1e-9 {
			t.Errorf("base %s = %v, want %v", k, got[k], want[k])
		}
	}
	wantOff := outcome.Of(0.45, multi, multi, 0.13)
	if diff := cmp.Diff(wantOff, tier.Offsets(), cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-12
	})); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ExpectedPartyHitsTarget(t *testing.T) {
	cfg := DefaultGenConfig()
	reg, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, arch := range cfg.Archetypes {
		for _, level := range []int{1, 10, 20, 30, 60, 100} {
			tier, err := reg.Lookup(arch.Name, level)
			if err != nil {
				t.Fatal(err)
			}
			perUnit := cfg.Lv0Stat + cfg.StatSumPerLevel*float64(level)
			success := tier.Base()[outcome.Success] +
				balance.NumUnits*perUnit*tier.Offsets()[outcome.Success]
			if math.Abs(success-arch.Success/100) > 1e-9 {
				t.Errorf("%s: on-level party success = %v, want %v", tier.Key(), success, arch.Success/100)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(DefaultGenConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(DefaultGenConfig())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.All(), b.All(), cmp.AllowUnexported(Tier{})); diff != "" {
		t.Errorf("regenerated catalog differs:\n%s", diff)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.MaxLevel = 0
	if _, err := Generate(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("MaxLevel 0: got %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultGenConfig()
	cfg.Archetypes = append([]Archetype{}, Archetypes...)
	cfg.Archetypes = append(cfg.Archetypes, Archetypes[0])
	if _, err := Generate(cfg); !errors.Is(err, ErrDuplicateTier) {
		t.Errorf("repeated archetype: got %v, want ErrDuplicateTier", err)
	}

	cfg = DefaultGenConfig()
	cfg.Archetypes = []Archetype{{Name: "broken", Crit: 50, Disaster: -60, Success: 50}}
	if _, err := Generate(cfg); !errors.Is(err, ErrInvalidChances) {
		t.Errorf("disaster below zero: got %v, want ErrInvalidChances", err)
	}
}

func TestResolveEffective(t *testing.T) {
	reg, err := Generate(DefaultGenConfig())
	if err != nil {
		t.Fatal(err)
	}
	low, _ := reg.Get("hard5")
	high, _ := reg.Lookup(Hard, balance.VeteranLevel+5)

	got, err := ResolveEffective(reg, low, false)
	if err != nil || got != low {
		t.Errorf("inactive: got %v, %v; want hard5", got, err)
	}

	got, err = ResolveEffective(reg, low, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Level() != balance.VeteranLevel || got.Archetype() != Hard {
		t.Errorf("active: got %s, want %s", got.Key(), MakeKey(Hard, balance.VeteranLevel))
	}

	got, err = ResolveEffective(reg, high, true)
	if err != nil || got != high {
		t.Errorf("above threshold: got %v, %v; want %s", got, err, high.Key())
	}
}

func TestBlessingOfLuckStacks(t *testing.T) {
	reg, err := Generate(DefaultGenConfig())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{Normal: 1, Hardest: 2, Hell: 3, Death: 4}
	for name, stacks := range want {
		tier, _ := reg.Lookup(name, 1)
		if got := tier.BlessingOfLuckStacks(); got != stacks {
			t.Errorf("%s: stacks = %d, want %d", name, got, stacks)
		}
	}
}
