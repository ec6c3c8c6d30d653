package planner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dylanratti/grain/internal/model"
)

func insightTags(list []model.Insight) []string {
	tags := make([]string, len(list))
	for i, ins := range list {
		tags[i] = ins.Tag
	}
	return tags
}

func findInsight(t *testing.T, list []model.Insight, tag string) model.Insight {
	t.Helper()
	for _, ins := range list {
		if ins.Tag == tag {
			return ins
		}
	}
	t.Fatalf("no %q insight in %v", tag, insightTags(list))
	return model.Insight{}
}

func TestHousingInsightTrimAmount(t *testing.T) {
	p := Compute(sampleInput(), nil) // rent is 50% of income

	ins := findInsight(t, p.Insights, TagHousing)
	if !strings.Contains(ins.Detail, "50%") {
		t.Fatalf("housing detail = %q, want the 50%% ratio", ins.Detail)
	}
	if !strings.Contains(ins.Detail, "$800/mo") {
		t.Fatalf("housing detail = %q, want the $800/mo trim", ins.Detail)
	}
}

func TestHousingInsightThreshold(t *testing.T) {
	in := sampleInput()
	in.Fixed.Rent = 1400 // exactly 35% of income: not over the line

	p := Compute(in, nil)
	for _, ins := range p.Insights {
		if ins.Tag == TagHousing {
			t.Fatal("housing insight fired at exactly 35%")
		}
	}
}

func TestHousingInsightZeroIncome(t *testing.T) {
	in := model.BudgetInput{Fixed: model.FixedExpenses{Rent: 900}}
	if _, ok := housingRule(in, model.DerivedPlan{}); ok {
		t.Fatal("housing insight fired with zero income")
	}
}

func TestDebtInsightPicksHighestAPR(t *testing.T) {
	in := sampleInput()
	in.Debts = []model.Debt{
		{Name: "Car loan", Balance: 9000, AnnualRatePct: 6.5},
		{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99},
		{Name: "Store card", Balance: 400, AnnualRatePct: 26.99},
	}

	p := Compute(in, nil)

	ins := findInsight(t, p.Insights, TagDebt)
	if !strings.Contains(ins.Detail, "Store card") {
		t.Fatalf("debt detail = %q, want the highest-APR Store card", ins.Detail)
	}
	// 26.99% APR on $400 is about $9/mo of interest.
	if !strings.Contains(ins.Detail, "$9/mo") {
		t.Fatalf("debt detail = %q, want the $9/mo interest cost", ins.Detail)
	}
	if !strings.Contains(ins.Detail, "$300/mo") {
		t.Fatalf("debt detail = %q, want the $300/mo redirect cap", ins.Detail)
	}
}

func TestDebtInsightRedirectBoundedByGoalFlow(t *testing.T) {
	in := sampleInput()
	in.Variable.Other = 620 // leftover shrinks to 235, under the $300 cap
	in.Debts = []model.Debt{{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99}}

	p := Compute(in, nil)

	ins := findInsight(t, p.Insights, TagDebt)
	if !strings.Contains(ins.Detail, "$235/mo") {
		t.Fatalf("debt detail = %q, want the $235/mo redirect", ins.Detail)
	}
}

func TestDebtInsightThreshold(t *testing.T) {
	in := sampleInput()
	in.Debts = []model.Debt{{Name: "Card", Balance: 800, AnnualRatePct: 14.99}}

	p := Compute(in, nil)
	for _, ins := range p.Insights {
		if ins.Tag == TagDebt {
			t.Fatal("debt insight fired below 15% APR")
		}
	}

	// At exactly 15% it fires.
	in.Debts[0].AnnualRatePct = 15
	p = Compute(in, nil)
	findInsight(t, p.Insights, TagDebt)
}

func TestSubscriptionsInsight(t *testing.T) {
	p := Compute(sampleInput(), nil) // $45/mo of subscriptions

	ins := findInsight(t, p.Insights, TagSubscriptions)
	if !strings.Contains(ins.Detail, "$540/yr") {
		t.Fatalf("subscriptions detail = %q, want the $540/yr total", ins.Detail)
	}

	in := sampleInput()
	in.Fixed.Subscriptions = 40 // at the line, not over
	p = Compute(in, nil)
	for _, got := range p.Insights {
		if got.Tag == TagSubscriptions {
			t.Fatal("subscriptions insight fired at exactly $40")
		}
	}
}

func TestDiningInsight(t *testing.T) {
	p := Compute(sampleInput(), nil) // $220/mo of dining

	ins := findInsight(t, p.Insights, TagDining)
	if !strings.Contains(ins.Detail, "$44/mo") {
		t.Fatalf("dining detail = %q, want the $44/mo trim", ins.Detail)
	}
	if !strings.Contains(ins.Detail, "$528/yr") {
		t.Fatalf("dining detail = %q, want the $528/yr total", ins.Detail)
	}
}

func TestSavingsRateInsight(t *testing.T) {
	in := sampleInput()
	in.Variable.Other = 500 // leftover shrinks to 355

	p := Compute(in, nil)

	ins := findInsight(t, p.Insights, TagSavings)
	if !strings.Contains(ins.Detail, "$800/mo") {
		t.Fatalf("savings detail = %q, want the $800/mo target", ins.Detail)
	}
}

func TestEmergencyFundInsight(t *testing.T) {
	p := Compute(sampleInput(), nil)

	// Core spend: 2000 rent + 180 utilities + 420 groceries +
	// 160 transport + 120 insurance = 2880.
	ins := findInsight(t, p.Insights, TagSafety)
	if !strings.Contains(ins.Detail, "$2880") {
		t.Fatalf("safety detail = %q, want the $2880 core spend", ins.Detail)
	}
	if !strings.Contains(ins.Detail, "$11520") {
		t.Fatalf("safety detail = %q, want the $11520 cushion", ins.Detail)
	}
}

func TestInsightsCapAndOrder(t *testing.T) {
	in := sampleInput()
	in.Debts = []model.Debt{{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99}}
	in.Variable.Other = 500 // push monthly goal flow under $500

	p := Compute(in, nil)

	// All six rules qualify here; the cap keeps the first five.
	want := []string{TagHousing, TagDebt, TagSubscriptions, TagDining, TagSavings}
	if got := insightTags(p.Insights); !reflect.DeepEqual(got, want) {
		t.Fatalf("insight tags = %v, want %v", got, want)
	}
}

func TestInsightsEmptyBudget(t *testing.T) {
	p := Compute(model.DefaultInput(), nil)

	if got := insightTags(p.Insights); !reflect.DeepEqual(got, []string{TagSavings}) {
		t.Fatalf("insight tags = %v, want just the savings nudge", got)
	}
}
