package planner

import (
	"math"

	"github.com/dylanratti/grain/internal/model"
)

// MonthsToGoal projects whole months until a goal completes at the given
// monthly rate. Completed goals project to zero. Rates below one unit per
// month are treated as one so the projection stays finite.
func MonthsToGoal(target, saved, monthlyRate float64) int {
	remaining := target - saved
	if remaining <= 0 {
		return 0
	}

	rate := monthlyRate
	if rate < 1 {
		rate = 1
	}

	return int(math.Ceil(remaining / rate))
}

// ProjectGoals computes current-pace and boosted timelines for each goal,
// in input order. The boosted timeline never lands later than the current
// pace.
func ProjectGoals(goals []model.Goal, monthly, boosted float64) []model.GoalProjection {
	if len(goals) == 0 {
		return nil
	}

	out := make([]model.GoalProjection, 0, len(goals))
	for _, g := range goals {
		base := MonthsToGoal(g.Target, g.Saved, monthly)
		fast := MonthsToGoal(g.Target, g.Saved, boosted)
		if fast > base {
			fast = base
		}
		out = append(out, model.GoalProjection{
			GoalID:              g.ID,
			MonthsAtCurrentPace: base,
			MonthsWithBoost:     fast,
		})
	}
	return out
}
