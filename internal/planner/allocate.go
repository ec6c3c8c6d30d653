package planner

import (
	"math"

	"github.com/dylanratti/grain/internal/model"
)

// Base invest share of the leftover by risk profile. Growth carries an
// explicit entry equal to balanced; it is a real profile, not a fallback.
var baseShare = map[model.RiskProfile]float64{
	model.RiskConservative: 0.30,
	model.RiskBalanced:     0.55,
	model.RiskGrowth:       0.55,
	model.RiskYolo:         0.80,
}

const (
	// Carrying a balance above this APR suppresses investing: the share
	// drops by debtSharePenalty, floored at minInvestShare.
	debtAPRThreshold = 10.0
	debtSharePenalty = 0.25
	minInvestShare   = 0.15
)

// Allocation is the cash vs. invest split of the monthly leftover.
// CashAmount + InvestAmount always equals the leftover passed in.
type Allocation struct {
	InvestShare  float64
	CashAmount   float64
	InvestAmount float64
}

// BaseShare returns the nominal invest share for a profile before the
// high-interest debt override is applied.
func BaseShare(profile model.RiskProfile) float64 {
	if s, ok := baseShare[profile]; ok {
		return s
	}
	return baseShare[model.RiskBalanced]
}

// EffectiveShare returns the invest share after the debt override.
func EffectiveShare(profile model.RiskProfile, debts []model.Debt) float64 {
	share := BaseShare(profile)
	if HasExpensiveDebt(debts) {
		share -= debtSharePenalty
		if share < minInvestShare {
			share = minInvestShare
		}
	}
	return share
}

// Allocate splits the leftover into cash savings and an investable amount.
// The invest amount is rounded to a whole unit; cash takes the exact rest.
// The reported share is the realized ratio invest/leftover, or the nominal
// share when there is nothing to split.
func Allocate(leftover float64, profile model.RiskProfile, debts []model.Debt) Allocation {
	share := EffectiveShare(profile, debts)

	// Rounding a fractional leftover up could overshoot it; cash must
	// never go negative.
	invest := math.Round(leftover * share)
	if invest > leftover {
		invest = leftover
	}
	cash := leftover - invest

	if leftover > 0 {
		share = invest / leftover
	}

	return Allocation{
		InvestShare:  share,
		CashAmount:   cash,
		InvestAmount: invest,
	}
}

// HasExpensiveDebt reports whether any debt carries a balance at an APR
// above the override threshold.
func HasExpensiveDebt(debts []model.Debt) bool {
	for _, d := range debts {
		if d.Balance > 0 && d.AnnualRatePct > debtAPRThreshold {
			return true
		}
	}
	return false
}
