package planner

import (
	"math"
	"testing"

	"github.com/dylanratti/grain/internal/model"
)

var expensiveDebt = []model.Debt{{Name: "Card", Balance: 900, AnnualRatePct: 22}}

func TestBaseShareByProfile(t *testing.T) {
	tests := []struct {
		profile model.RiskProfile
		want    float64
	}{
		{model.RiskConservative, 0.30},
		{model.RiskBalanced, 0.55},
		{model.RiskGrowth, 0.55},
		{model.RiskYolo, 0.80},
	}
	for _, tt := range tests {
		if got := BaseShare(tt.profile); got != tt.want {
			t.Errorf("BaseShare(%s) = %v, want %v", tt.profile, got, tt.want)
		}
	}
}

func TestEffectiveShareDebtOverride(t *testing.T) {
	tests := []struct {
		profile model.RiskProfile
		want    float64
	}{
		{model.RiskConservative, 0.15}, // 0.30 - 0.25 floors at 0.15
		{model.RiskBalanced, 0.30},
		{model.RiskGrowth, 0.30},
		{model.RiskYolo, 0.55},
	}
	for _, tt := range tests {
		got := EffectiveShare(tt.profile, expensiveDebt)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EffectiveShare(%s, debt) = %v, want %v", tt.profile, got, tt.want)
		}
	}
}

func TestEffectiveShareIgnoresCheapOrClearedDebt(t *testing.T) {
	debts := []model.Debt{
		{Name: "Car loan", Balance: 6000, AnnualRatePct: 10}, // at the threshold, not above
		{Name: "Old card", Balance: 0, AnnualRatePct: 24},    // no balance left
	}
	if got := EffectiveShare(model.RiskBalanced, debts); got != 0.55 {
		t.Fatalf("EffectiveShare = %v, want the unmodified 0.55", got)
	}
}

func TestAllocateSplitsExactly(t *testing.T) {
	for _, leftover := range []float64{0, 1, 3, 735, 1000, 2847.5} {
		for _, profile := range model.RiskProfiles {
			a := Allocate(leftover, profile, nil)
			if a.CashAmount+a.InvestAmount != leftover {
				t.Fatalf("profile %s leftover %v: cash %v + invest %v does not recompose the leftover",
					profile, leftover, a.CashAmount, a.InvestAmount)
			}
			if a.InvestAmount < 0 || a.CashAmount < 0 {
				t.Fatalf("profile %s leftover %v: negative split %+v", profile, leftover, a)
			}
		}
	}
}

func TestAllocateReportsRealizedShare(t *testing.T) {
	a := Allocate(735, model.RiskBalanced, nil)
	if want := 404.0 / 735.0; math.Abs(a.InvestShare-want) > 1e-9 {
		t.Fatalf("InvestShare = %v, want the realized ratio %v", a.InvestShare, want)
	}

	// With nothing to split there is no realized ratio; the nominal share
	// stands in so the UI still has a number to label.
	a = Allocate(0, model.RiskYolo, nil)
	if a.InvestShare != 0.80 {
		t.Fatalf("InvestShare on zero leftover = %v, want 0.80", a.InvestShare)
	}
}

func TestAllocateDebtOverrideReducesInvesting(t *testing.T) {
	for _, profile := range model.RiskProfiles {
		clean := Allocate(1000, profile, nil)
		indebted := Allocate(1000, profile, expensiveDebt)
		if indebted.InvestAmount >= clean.InvestAmount {
			t.Fatalf("profile %s: invest with debt %v, without %v; override did not reduce it",
				profile, indebted.InvestAmount, clean.InvestAmount)
		}
	}
}

func TestAllocateShareStaysInBounds(t *testing.T) {
	for _, profile := range model.RiskProfiles {
		for _, debts := range [][]model.Debt{nil, expensiveDebt} {
			share := EffectiveShare(profile, debts)
			if share < 0.15-1e-9 || share > 0.80+1e-9 {
				t.Fatalf("EffectiveShare(%s) = %v, outside [0.15, 0.80]", profile, share)
			}
		}
	}
}
