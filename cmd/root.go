package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dylanratti/grain/internal/model"
	"github.com/dylanratti/grain/internal/planner"
	"github.com/dylanratti/grain/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagBoost float64
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "grain",
	Short: "Budget planning CLI",
	Long:  "Plan your monthly budget: spending totals, cash/invest split, goal timelines, and coaching insights.",
	RunE:  runPlan,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64VarP(&flagBoost, "boost", "b", -1,
		"Override the what-if monthly boost for this run (negative keeps the saved value)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// snapshot bundles one store read with the plan derived from it.
type snapshot struct {
	Input   model.BudgetInput
	Goals   []model.Goal
	Plan    model.DerivedPlan
	Found   bool
	SavedAt time.Time
	HasAge  bool
}

// loadSnapshot is the shared data loading path used by all commands. A
// missing or unreadable snapshot degrades to defaults so every command
// still renders something.
func loadSnapshot() snapshot {
	snap := snapshot{Input: model.DefaultInput()}

	st, err := store.Open(store.DBPath())
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Snapshot unavailable (%v), starting from defaults\n", err)
		}
	} else {
		defer st.Close()

		if in, found, err := st.LoadInput(); err == nil {
			snap.Input = in
			snap.Found = found
		}
		if goals, err := st.LoadGoals(); err == nil {
			snap.Goals = goals
		}
		if at, ok := st.InputUpdatedAt(); ok {
			snap.SavedAt = at
			snap.HasAge = true
		}
	}

	if flagBoost >= 0 {
		snap.Input.WhatIfBoost = flagBoost
	}

	snap.Input = snap.Input.Sanitize()
	snap.Plan = planner.Compute(snap.Input, snap.Goals)
	return snap
}

// mutateSnapshot applies fn to the persisted input and goals, then writes
// both back. Used by the commands that edit the budget from the shell.
func mutateSnapshot(fn func(in *model.BudgetInput, goals *[]model.Goal)) error {
	st, err := store.Open(store.DBPath())
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer st.Close()

	in, _, err := st.LoadInput()
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	goals, err := st.LoadGoals()
	if err != nil {
		return fmt.Errorf("reading goals: %w", err)
	}

	fn(&in, &goals)
	in = in.Sanitize()

	if err := st.SaveInput(in); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if err := st.SaveGoals(goals); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}

// hintSetup nudges toward the wizard when no snapshot exists yet.
func hintSetup(found bool) {
	if found || flagQuiet {
		return
	}
	fmt.Fprintln(os.Stderr, "  No budget saved yet. Run `grain setup` or `grain tui` to enter one.")
}
