package chat

import (
	"strings"
	"testing"

	"github.com/dylanratti/grain/internal/model"
	"github.com/dylanratti/grain/internal/planner"
)

func TestBuildContextCarriesTheNumbers(t *testing.T) {
	in := model.BudgetInput{
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
		Debts:        []model.Debt{{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99}},
		RiskProfile:  model.RiskBalanced,
		CryptoCapPct: 5,
		WhatIfBoost:  300,
	}
	goals := []model.Goal{{ID: "g1", Name: "House deposit", Target: 25000, Saved: 8200}}
	p := planner.Compute(in, goals)

	got := BuildContext(in, p, goals)

	for _, want := range []string{
		"Monthly net income: $4000",
		"Leftover after spend: $735",
		"Risk profile: balanced",
		"crypto capped at 5%",
		"Visa: $1200 balance at 19.99% APR",
		"What-if boost under consideration: +$300/mo",
		"House deposit: $8200 of $25000 saved",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("context missing %q:\n%s", want, got)
		}
	}
}

func TestBuildContextEmptyBudget(t *testing.T) {
	in := model.DefaultInput()
	p := planner.Compute(in, nil)

	got := BuildContext(in, p, nil)

	if !strings.Contains(got, "Debts: none") {
		t.Fatalf("context missing the empty-debts line:\n%s", got)
	}
	if !strings.Contains(got, "Goals: none") {
		t.Fatalf("context missing the empty-goals line:\n%s", got)
	}
	if strings.Contains(got, "What-if boost") {
		t.Fatalf("context mentions a boost that is not set:\n%s", got)
	}
}

func TestBuildContextGoalTimelines(t *testing.T) {
	in := model.BudgetInput{Income: 4000, RiskProfile: model.RiskBalanced, WhatIfBoost: 300}
	goals := []model.Goal{{ID: "g1", Name: "House deposit", Target: 25000, Saved: 8200}}
	p := planner.Compute(in, goals)

	got := BuildContext(in, p, goals)

	if !strings.Contains(got, "months away at the current pace") {
		t.Fatalf("context missing the pace line:\n%s", got)
	}
	if !strings.Contains(got, "with the boost") {
		t.Fatalf("context missing the boosted pace:\n%s", got)
	}
}
