package planner

import (
	"math"
	"reflect"
	"testing"

	"github.com/dylanratti/grain/internal/model"
)

// sampleInput is the worked example used across the calculator tests:
// $4,000/mo of income against $3,265/mo of spend.
func sampleInput() model.BudgetInput {
	return model.BudgetInput{
		Income: 4000,
		Fixed: model.FixedExpenses{
			Rent:          2000,
			Utilities:     180,
			Insurance:     120,
			Subscriptions: 45,
		},
		Variable: model.VariableExpenses{
			Transport: 160,
			Groceries: 420,
			Dining:    220,
			Other:     120,
		},
		RiskProfile:  model.RiskBalanced,
		CryptoCapPct: 5,
	}
}

func TestComputeTotals(t *testing.T) {
	p := Compute(sampleInput(), nil)

	if p.FixedTotal != 2345 {
		t.Fatalf("FixedTotal = %v, want 2345", p.FixedTotal)
	}
	if p.VariableTotal != 920 {
		t.Fatalf("VariableTotal = %v, want 920", p.VariableTotal)
	}
	if p.SpendTotal != 3265 {
		t.Fatalf("SpendTotal = %v, want 3265", p.SpendTotal)
	}
	if p.Leftover != 735 {
		t.Fatalf("Leftover = %v, want 735", p.Leftover)
	}
}

func TestComputeBalancedAllocation(t *testing.T) {
	p := Compute(sampleInput(), nil)

	if p.InvestAmount != 404 {
		t.Fatalf("InvestAmount = %v, want 404", p.InvestAmount)
	}
	if p.CashAmount != 331 {
		t.Fatalf("CashAmount = %v, want 331", p.CashAmount)
	}
	if p.CashAmount+p.InvestAmount != p.Leftover {
		t.Fatalf("cash %v + invest %v != leftover %v", p.CashAmount, p.InvestAmount, p.Leftover)
	}
	if math.Abs(p.InvestShare-404.0/735.0) > 1e-9 {
		t.Fatalf("InvestShare = %v, want %v", p.InvestShare, 404.0/735.0)
	}
}

func TestComputeDebtOverride(t *testing.T) {
	in := sampleInput()
	in.Debts = []model.Debt{{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99}}

	p := Compute(in, nil)

	if p.InvestAmount != 221 {
		t.Fatalf("InvestAmount = %v, want 221", p.InvestAmount)
	}
	if p.CashAmount != 514 {
		t.Fatalf("CashAmount = %v, want 514", p.CashAmount)
	}
}

func TestComputeMix(t *testing.T) {
	p := Compute(sampleInput(), nil)

	if p.Mix.Crypto != 20 {
		t.Fatalf("Mix.Crypto = %v, want 20", p.Mix.Crypto)
	}
	if p.Mix.ETF != 307 {
		t.Fatalf("Mix.ETF = %v, want 307", p.Mix.ETF)
	}
	if p.Mix.Bond != 77 {
		t.Fatalf("Mix.Bond = %v, want 77", p.Mix.Bond)
	}
}

func TestComputeGoalProjection(t *testing.T) {
	in := sampleInput()
	in.WhatIfBoost = 300
	goals := []model.Goal{{ID: "g1", Name: "House deposit", Target: 25000, Saved: 8200}}

	p := Compute(in, goals)

	if p.MonthlyToGoals != 735 {
		t.Fatalf("MonthlyToGoals = %v, want 735", p.MonthlyToGoals)
	}
	if p.MonthlyToGoalsBoosted != 1035 {
		t.Fatalf("MonthlyToGoalsBoosted = %v, want 1035", p.MonthlyToGoalsBoosted)
	}

	pr, ok := p.ProjectionFor("g1")
	if !ok {
		t.Fatal("no projection for g1")
	}
	if pr.MonthsAtCurrentPace != 23 {
		t.Fatalf("MonthsAtCurrentPace = %d, want 23", pr.MonthsAtCurrentPace)
	}
	if pr.MonthsWithBoost != 17 {
		t.Fatalf("MonthsWithBoost = %d, want 17", pr.MonthsWithBoost)
	}
}

func TestComputeLeftoverNeverNegative(t *testing.T) {
	in := sampleInput()
	in.Income = 1000

	p := Compute(in, nil)

	if p.Leftover != 0 {
		t.Fatalf("Leftover = %v, want 0", p.Leftover)
	}
	if p.InvestAmount != 0 || p.CashAmount != 0 {
		t.Fatalf("allocation on zero leftover: cash %v, invest %v, want 0, 0", p.CashAmount, p.InvestAmount)
	}
	if p.Mix.Crypto != 0 || p.Mix.ETF != 0 || p.Mix.Bond != 0 {
		t.Fatalf("mix on zero invest = %+v, want all zero", p.Mix)
	}
}

func TestComputeZeroLeftoverReportsNominalShare(t *testing.T) {
	in := sampleInput()
	in.Income = 3265 // spend swallows income exactly

	p := Compute(in, nil)

	if p.Leftover != 0 {
		t.Fatalf("Leftover = %v, want 0", p.Leftover)
	}
	if p.InvestShare != 0.55 {
		t.Fatalf("InvestShare = %v, want the nominal 0.55", p.InvestShare)
	}
}

func TestComputeSanitizesInput(t *testing.T) {
	in := sampleInput()
	in.Variable.Dining = -50
	in.CryptoCapPct = 40
	in.RiskProfile = "aggressive"

	p := Compute(in, nil)

	// Negative dining drops to zero, shrinking variable spend by 220.
	if p.VariableTotal != 700 {
		t.Fatalf("VariableTotal = %v, want 700", p.VariableTotal)
	}
	// The unknown profile falls back to balanced and the cap clamps to 10%.
	if p.InvestAmount != math.Round(p.Leftover*0.55) {
		t.Fatalf("InvestAmount = %v, want the balanced share of %v", p.InvestAmount, p.Leftover)
	}
	if p.Mix.Crypto != math.Round(p.InvestAmount*0.10) {
		t.Fatalf("Mix.Crypto = %v, want 10%% of %v", p.Mix.Crypto, p.InvestAmount)
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := sampleInput()
	in.Debts = []model.Debt{{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99}}
	in.WhatIfBoost = 300
	goals := []model.Goal{{ID: "g1", Name: "House deposit", Target: 25000, Saved: 8200}}

	a := Compute(in, goals)
	b := Compute(in, goals)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs over identical input differ:\n%+v\n%+v", a, b)
	}
}
