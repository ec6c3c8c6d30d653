package planner

import (
	"testing"

	"github.com/dylanratti/grain/internal/model"
)

func TestMonthsToGoal(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		saved  float64
		rate   float64
		want   int
	}{
		{"worked example", 25000, 8200, 735, 23},
		{"boosted pace", 25000, 8200, 1035, 17},
		{"already met", 5000, 5000, 200, 0},
		{"overfunded", 5000, 6200, 200, 0},
		{"zero rate treated as one", 120, 0, 0, 120},
		{"fractional months round up", 1000, 0, 300, 4},
	}
	for _, tt := range tests {
		if got := MonthsToGoal(tt.target, tt.saved, tt.rate); got != tt.want {
			t.Errorf("%s: MonthsToGoal(%v, %v, %v) = %d, want %d",
				tt.name, tt.target, tt.saved, tt.rate, got, tt.want)
		}
	}
}

func TestMonthsToGoalMonotonicInRate(t *testing.T) {
	prev := MonthsToGoal(25000, 8200, 100)
	for rate := 200.0; rate <= 3000; rate += 100 {
		got := MonthsToGoal(25000, 8200, rate)
		if got > prev {
			t.Fatalf("months grew from %d to %d when the rate rose to %v", prev, got, rate)
		}
		prev = got
	}
}

func TestProjectGoalsBoostNeverSlower(t *testing.T) {
	goals := []model.Goal{
		{ID: "a", Name: "House deposit", Target: 25000, Saved: 8200},
		{ID: "b", Name: "New laptop", Target: 1200, Saved: 0},
		{ID: "c", Name: "Done already", Target: 500, Saved: 900},
	}

	projs := ProjectGoals(goals, 735, 1035)
	if len(projs) != 3 {
		t.Fatalf("len(projs) = %d, want 3", len(projs))
	}
	for _, pr := range projs {
		if pr.MonthsWithBoost > pr.MonthsAtCurrentPace {
			t.Fatalf("goal %s: boosted pace %d months is slower than the current %d",
				pr.GoalID, pr.MonthsWithBoost, pr.MonthsAtCurrentPace)
		}
	}
}

func TestProjectGoalsPreservesOrder(t *testing.T) {
	goals := []model.Goal{
		{ID: "second", Target: 100},
		{ID: "first", Target: 100},
	}
	projs := ProjectGoals(goals, 50, 50)
	if projs[0].GoalID != "second" || projs[1].GoalID != "first" {
		t.Fatalf("projection order = [%s %s], want input order", projs[0].GoalID, projs[1].GoalID)
	}
}

func TestProjectGoalsEmpty(t *testing.T) {
	if projs := ProjectGoals(nil, 735, 1035); projs != nil {
		t.Fatalf("ProjectGoals(nil) = %v, want nil", projs)
	}
}
