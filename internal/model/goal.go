package model

import "github.com/google/uuid"

// Goal is one savings goal tracked against the monthly contribution rate.
type Goal struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Target float64 `json:"target_amount"`
	Saved  float64 `json:"saved_amount"`
}

// NewGoal creates a goal with a fresh ID. Saved may exceed Target; the
// projection treats such a goal as already complete.
func NewGoal(name string, target, saved float64) Goal {
	return Goal{
		ID:     uuid.NewString(),
		Name:   name,
		Target: nonNegative(target),
		Saved:  nonNegative(saved),
	}
}

// Remaining is the amount still needed, floored at zero.
func (g Goal) Remaining() float64 {
	if g.Saved >= g.Target {
		return 0
	}
	return g.Target - g.Saved
}

// Progress is completion as a fraction in [0, 1]. A zero-target goal counts
// as complete.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 1
	}
	return clamp(g.Saved/g.Target, 0, 1)
}
