package model

// InvestmentMix splits the monthly invest amount across asset buckets.
// The buckets may drift from the invest amount by at most one currency unit
// because crypto and ETF are rounded independently.
type InvestmentMix struct {
	Crypto float64 `json:"crypto"`
	ETF    float64 `json:"etf"`
	Bond   float64 `json:"bond"`
}

// GoalProjection pairs a goal with its completion timelines in whole months.
type GoalProjection struct {
	GoalID              string
	MonthsAtCurrentPace int
	MonthsWithBoost     int
}

// Insight is one rule-produced coaching message.
type Insight struct {
	Tag    string
	Title  string
	Detail string
}

// DerivedPlan is the full calculator output for one input record. It is
// recomputed wholesale on every change and never patched incrementally.
type DerivedPlan struct {
	FixedTotal    float64
	VariableTotal float64
	SpendTotal    float64
	Leftover      float64

	InvestShare  float64
	CashAmount   float64
	InvestAmount float64
	Mix          InvestmentMix

	MonthlyToGoals        float64
	MonthlyToGoalsBoosted float64
	GoalProjections       []GoalProjection

	Insights []Insight
}

// ProjectionFor returns the projection for a goal ID, if present.
func (p DerivedPlan) ProjectionFor(goalID string) (GoalProjection, bool) {
	for _, pr := range p.GoalProjections {
		if pr.GoalID == goalID {
			return pr, true
		}
	}
	return GoalProjection{}, false
}
