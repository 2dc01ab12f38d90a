package resolve

import (
	"math"
	"testing"

	"github.com/talgya/quest-resolver/internal/balance"
)

func TestCritTable_MatchesBalanceTable(t *testing.T) {
	table := DefaultCritTable()
	for i, want := range balance.CritChanceTable {
		if got := table.Multiplier(float64(i)); got != want {
			t.Errorf("Multiplier(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestCritTable_Clamping(t *testing.T) {
	table := DefaultCritTable()
	tests := []struct {
		raw  float64
		want float64
	}{
		{-3, 0},
		{0, 0},
		{2.5, (0.45 + 0.60) / 2},
		{11, 1},
		{500, 1},
	}
	for _, tt := range tests {
		if got := table.Multiplier(tt.raw); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Multiplier(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCritTable_ZeroValue(t *testing.T) {
	var table CritTable
	for _, raw := range []float64{-1, 0, 3, 100} {
		if got := table.Multiplier(raw); got != 0 {
			t.Errorf("Multiplier(%v) = %v, want 0", raw, got)
		}
	}
}

func TestNewCritTable_RejectsUnordered(t *testing.T) {
	if _, err := NewCritTable(nil); err == nil {
		t.Error("expected error for empty table")
	}
	_, err := NewCritTable([]Breakpoint{{Raw: 0, Multiplier: 0}, {Raw: 0, Multiplier: 1}})
	if err == nil {
		t.Error("expected error for repeated breakpoint")
	}

	table, err := NewCritTable([]Breakpoint{{Raw: 1, Multiplier: 0.2}, {Raw: 3, Multiplier: 0.6}})
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Multiplier(0); got != 0.2 {
		t.Errorf("below first breakpoint = %v, want 0.2", got)
	}
	if got := table.Multiplier(2); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("midpoint = %v, want 0.4", got)
	}
}
