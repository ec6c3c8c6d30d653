// Package model defines the core data structures for grain: budget inputs,
// savings goals, and the derived plan the calculator produces from them.
package model

import "math"

// RiskProfile selects how aggressively leftover income is routed into
// investments instead of cash savings.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskBalanced     RiskProfile = "balanced"
	RiskGrowth       RiskProfile = "growth"
	RiskYolo         RiskProfile = "yolo"
)

// RiskProfiles lists all profiles in ascending order of aggressiveness.
var RiskProfiles = []RiskProfile{RiskConservative, RiskBalanced, RiskGrowth, RiskYolo}

// ParseRiskProfile normalizes a stored or user-entered profile name.
// Unknown values fall back to balanced instead of failing.
func ParseRiskProfile(s string) RiskProfile {
	switch RiskProfile(s) {
	case RiskConservative, RiskBalanced, RiskGrowth, RiskYolo:
		return RiskProfile(s)
	default:
		return RiskBalanced
	}
}

// FixedExpenses are the recurring monthly bills that do not vary with usage.
type FixedExpenses struct {
	Rent          float64 `json:"rent"`
	Utilities     float64 `json:"utilities"`
	Insurance     float64 `json:"insurance"`
	Subscriptions float64 `json:"subscriptions"`
}

// Total sums all fixed categories.
func (f FixedExpenses) Total() float64 {
	return f.Rent + f.Utilities + f.Insurance + f.Subscriptions
}

// VariableExpenses are the monthly categories that move month to month.
type VariableExpenses struct {
	Transport float64 `json:"transport"`
	Groceries float64 `json:"groceries"`
	Dining    float64 `json:"dining"`
	Other     float64 `json:"other"`
}

// Total sums all variable categories.
func (v VariableExpenses) Total() float64 {
	return v.Transport + v.Groceries + v.Dining + v.Other
}

// Debt is one liability with its balance and annual percentage rate.
type Debt struct {
	Name          string  `json:"name"`
	Balance       float64 `json:"balance"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
}

// BudgetInput is the complete user-entered record one plan is computed from.
// The calculator never mutates it; edits produce a new value.
type BudgetInput struct {
	Income       float64          `json:"income"`
	Fixed        FixedExpenses    `json:"fixed"`
	Variable     VariableExpenses `json:"variable"`
	Debts        []Debt           `json:"debts"`
	RiskProfile  RiskProfile      `json:"risk_profile"`
	CryptoCapPct float64          `json:"crypto_cap_pct"`
	WhatIfBoost  float64          `json:"what_if_boost"`
}

// DefaultInput is the record used before onboarding has run.
func DefaultInput() BudgetInput {
	return BudgetInput{
		RiskProfile:  RiskBalanced,
		CryptoCapPct: 5,
	}
}

// Sanitize coerces non-finite and negative amounts to zero, normalizes the
// risk profile, and clamps the crypto cap so the calculator only ever sees
// well-formed numbers. The receiver is not modified.
func (in BudgetInput) Sanitize() BudgetInput {
	in.Income = nonNegative(in.Income)

	in.Fixed.Rent = nonNegative(in.Fixed.Rent)
	in.Fixed.Utilities = nonNegative(in.Fixed.Utilities)
	in.Fixed.Insurance = nonNegative(in.Fixed.Insurance)
	in.Fixed.Subscriptions = nonNegative(in.Fixed.Subscriptions)

	in.Variable.Transport = nonNegative(in.Variable.Transport)
	in.Variable.Groceries = nonNegative(in.Variable.Groceries)
	in.Variable.Dining = nonNegative(in.Variable.Dining)
	in.Variable.Other = nonNegative(in.Variable.Other)

	if len(in.Debts) > 0 {
		debts := make([]Debt, len(in.Debts))
		for i, d := range in.Debts {
			d.Balance = nonNegative(d.Balance)
			d.AnnualRatePct = nonNegative(d.AnnualRatePct)
			debts[i] = d
		}
		in.Debts = debts
	}

	in.RiskProfile = ParseRiskProfile(string(in.RiskProfile))
	in.CryptoCapPct = clamp(nonNegative(in.CryptoCapPct), 0, 10)
	in.WhatIfBoost = nonNegative(in.WhatIfBoost)

	return in
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
