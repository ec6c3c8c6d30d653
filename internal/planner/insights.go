package planner

import (
	"fmt"
	"math"

	"github.com/dylanratti/grain/internal/model"
)

// maxInsights caps the coaching list. Rules that fire after the cap is hit
// are dropped; declaration order is the priority order.
const maxInsights = 5

// Insight tags, one per rule.
const (
	TagHousing       = "housing"
	TagDebt          = "debt"
	TagSubscriptions = "subscriptions"
	TagDining        = "dining"
	TagSavings       = "savings"
	TagSafety        = "safety"
)

// A rule inspects the input and derived plan and either emits one insight
// or stays quiet. Rules are independent of each other.
type rule func(in model.BudgetInput, p model.DerivedPlan) (model.Insight, bool)

var rules = []rule{
	housingRule,
	debtRule,
	subscriptionsRule,
	diningRule,
	savingsRateRule,
	emergencyFundRule,
}

// Insights evaluates the rule battery in order against one plan.
func Insights(in model.BudgetInput, p model.DerivedPlan) []model.Insight {
	var out []model.Insight
	for _, r := range rules {
		if len(out) == maxInsights {
			break
		}
		if ins, ok := r(in, p); ok {
			out = append(out, ins)
		}
	}
	return out
}

const (
	housingTriggerRatio = 0.35
	housingBenchmarkPct = 30.0
)

func housingRule(in model.BudgetInput, _ model.DerivedPlan) (model.Insight, bool) {
	if in.Income <= 0 || in.Fixed.Rent/in.Income <= housingTriggerRatio {
		return model.Insight{}, false
	}

	housingPct := in.Fixed.Rent / in.Income * 100
	trim := (housingPct - housingBenchmarkPct) / 100 * in.Income

	return model.Insight{
		Tag:   TagHousing,
		Title: "Housing is eating your budget",
		Detail: fmt.Sprintf("Rent takes %.0f%% of income; the usual benchmark is %.0f%%. Getting there would free up %s/mo.",
			housingPct, housingBenchmarkPct, money(trim)),
	}, true
}

const (
	// APR at which a debt becomes urgent enough to coach on. Distinct
	// from, and higher than, the allocation override threshold.
	debtInsightAPR  = 15.0
	debtRedirectCap = 300.0
)

func debtRule(in model.BudgetInput, p model.DerivedPlan) (model.Insight, bool) {
	worst, ok := worstExpensiveDebt(in.Debts)
	if !ok {
		return model.Insight{}, false
	}

	redirect := math.Min(debtRedirectCap, p.MonthlyToGoals)
	interest := worst.AnnualRatePct / 100 / 12 * worst.Balance

	return model.Insight{
		Tag:   TagDebt,
		Title: "High-interest debt comes first",
		Detail: fmt.Sprintf("%s at %.2f%% APR costs about %s/mo in interest alone. Redirect up to %s/mo toward it before investing.",
			debtLabel(worst), worst.AnnualRatePct, money(interest), money(redirect)),
	}, true
}

// worstExpensiveDebt returns the highest-APR debt carrying a balance at or
// above the insight threshold.
func worstExpensiveDebt(debts []model.Debt) (model.Debt, bool) {
	var worst model.Debt
	found := false
	for _, d := range debts {
		if d.Balance <= 0 || d.AnnualRatePct < debtInsightAPR {
			continue
		}
		if !found || d.AnnualRatePct > worst.AnnualRatePct {
			worst = d
			found = true
		}
	}
	return worst, found
}

const subscriptionsTrigger = 40.0

func subscriptionsRule(in model.BudgetInput, _ model.DerivedPlan) (model.Insight, bool) {
	if in.Fixed.Subscriptions <= subscriptionsTrigger {
		return model.Insight{}, false
	}

	return model.Insight{
		Tag:   TagSubscriptions,
		Title: "Audit your subscriptions",
		Detail: fmt.Sprintf("Subscriptions run %s/mo, which is %s/yr. Cancel the ones you forgot you had.",
			money(in.Fixed.Subscriptions), money(in.Fixed.Subscriptions*12)),
	}, true
}

const (
	diningTrigger   = 200.0
	diningTrimShare = 0.20
)

func diningRule(in model.BudgetInput, _ model.DerivedPlan) (model.Insight, bool) {
	if in.Variable.Dining <= diningTrigger {
		return model.Insight{}, false
	}

	monthly := in.Variable.Dining * diningTrimShare

	return model.Insight{
		Tag:   TagDining,
		Title: "Dining out is creeping up",
		Detail: fmt.Sprintf("A 20%% trim on %s/mo of dining keeps %s/mo (%s/yr) in your pocket.",
			money(in.Variable.Dining), money(monthly), money(monthly*12)),
	}, true
}

const (
	savingsRateFloor  = 500.0
	savingsRateTarget = 0.20
)

func savingsRateRule(in model.BudgetInput, p model.DerivedPlan) (model.Insight, bool) {
	if p.MonthlyToGoals >= savingsRateFloor {
		return model.Insight{}, false
	}

	target := in.Income * savingsRateTarget

	return model.Insight{
		Tag:   TagSavings,
		Title: "Savings rate is below target",
		Detail: fmt.Sprintf("Only %s/mo is going toward goals. A common target is about 20%% of income (%s/mo).",
			money(p.MonthlyToGoals), money(target)),
	}, true
}

const emergencyMonths = 4

func emergencyFundRule(in model.BudgetInput, _ model.DerivedPlan) (model.Insight, bool) {
	core := in.Fixed.Rent + in.Fixed.Utilities + in.Variable.Groceries +
		in.Variable.Transport + in.Fixed.Insurance
	if core <= 0 {
		return model.Insight{}, false
	}

	target := math.Round(core * emergencyMonths)

	return model.Insight{
		Tag:   TagSafety,
		Title: "Emergency fund target",
		Detail: fmt.Sprintf("Core monthly spend is %s. %d months of cover means a %s cushion.",
			money(core), emergencyMonths, money(target)),
	}, true
}

// money formats an amount for insight text. Insight thresholds and formulas
// all work at whole-dollar granularity.
func money(v float64) string {
	return fmt.Sprintf("$%.0f", math.Round(v))
}

func debtLabel(d model.Debt) string {
	if d.Name != "" {
		return d.Name
	}
	return "A debt"
}
