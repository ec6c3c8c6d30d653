// Package planner implements the deterministic budget calculator: spend
// totals, the cash/invest allocation, the investment mix, goal projections,
// and the coaching insight rules. Every function is pure; the same inputs
// always produce the same plan.
package planner

import "github.com/dylanratti/grain/internal/model"

// Compute runs the full pipeline over one input record and goal list.
func Compute(in model.BudgetInput, goals []model.Goal) model.DerivedPlan {
	in = in.Sanitize()

	p := model.DerivedPlan{
		FixedTotal:    in.Fixed.Total(),
		VariableTotal: in.Variable.Total(),
	}
	p.SpendTotal = p.FixedTotal + p.VariableTotal

	// Spending past income is a problem the insights call out; the
	// allocation itself never goes negative.
	p.Leftover = in.Income - p.SpendTotal
	if p.Leftover < 0 {
		p.Leftover = 0
	}

	alloc := Allocate(p.Leftover, in.RiskProfile, in.Debts)
	p.InvestShare = alloc.InvestShare
	p.CashAmount = alloc.CashAmount
	p.InvestAmount = alloc.InvestAmount

	p.Mix = Mix(p.InvestAmount, in.CryptoCapPct)

	p.MonthlyToGoals = p.CashAmount + p.InvestAmount
	p.MonthlyToGoalsBoosted = p.MonthlyToGoals + in.WhatIfBoost

	p.GoalProjections = ProjectGoals(goals, p.MonthlyToGoals, p.MonthlyToGoalsBoosted)
	p.Insights = Insights(in, p)

	return p
}
