package cmd

import (
	"fmt"
	"strings"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagGoalName   string
	flagGoalTarget float64
	flagGoalSaved  float64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List savings goals with funding timelines",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a savings goal",
	RunE:  runGoalsAdd,
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a goal by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRemove,
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalName, "name", "", "Goal name")
	goalsAddCmd.Flags().Float64Var(&flagGoalTarget, "target", 0, "Target amount")
	goalsAddCmd.Flags().Float64Var(&flagGoalSaved, "saved", 0, "Amount already saved")
	_ = goalsAddCmd.MarkFlagRequired("name")

	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(_ *cobra.Command, _ []string) error {
	snap := loadSnapshot()
	hintSetup(snap.Found)

	if len(snap.Goals) == 0 {
		fmt.Println("\n  No goals yet. Add one with `grain goals add --name ... --target ...`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GOALS  %s/mo to goals", cli.FormatMoney(snap.Plan.MonthlyToGoals))))
	fmt.Println()

	for _, g := range snap.Goals {
		fmt.Printf("  %s  %s\n", g.Name, cli.Muted(shortID(g.ID)))
		fmt.Printf("  %s\n", cli.RenderProgressBar(g.Saved, g.Target, 28))
		fmt.Printf("  %s\n\n", cli.Muted(goalTimeline(snap, g)))
	}

	return nil
}

func goalTimeline(snap snapshot, g model.Goal) string {
	if g.Remaining() == 0 {
		return "fully funded"
	}
	if snap.Plan.MonthlyToGoals <= 0 {
		return "nothing flows to goals right now"
	}
	pr, ok := snap.Plan.ProjectionFor(g.ID)
	if !ok {
		return ""
	}
	s := cli.FormatMonths(pr.MonthsAtCurrentPace) + " at pace"
	if snap.Input.WhatIfBoost > 0 && pr.MonthsWithBoost < pr.MonthsAtCurrentPace {
		s += fmt.Sprintf(", %s with the +%s boost",
			cli.FormatMonths(pr.MonthsWithBoost), cli.FormatMoney(snap.Input.WhatIfBoost))
	}
	return s
}

func runGoalsAdd(_ *cobra.Command, _ []string) error {
	name := strings.TrimSpace(flagGoalName)
	if name == "" {
		return fmt.Errorf("goal name must not be empty")
	}

	goal := model.NewGoal(name, flagGoalTarget, flagGoalSaved)
	err := mutateSnapshot(func(_ *model.BudgetInput, goals *[]model.Goal) {
		*goals = append(*goals, goal)
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Added %q (%s), target %s.\n", goal.Name, shortID(goal.ID), cli.FormatMoney(goal.Target))

	snap := loadSnapshot()
	if line := goalTimeline(snap, goal); line != "" {
		fmt.Printf("  %s\n", cli.Muted(line))
	}
	return nil
}

func runGoalsRemove(_ *cobra.Command, args []string) error {
	prefix := strings.TrimSpace(args[0])
	if prefix == "" {
		return fmt.Errorf("goal ID prefix must not be empty")
	}

	snap := loadSnapshot()

	var matches []model.Goal
	for _, g := range snap.Goals {
		if strings.HasPrefix(g.ID, prefix) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("no goal matches ID prefix %q", prefix)
	case 1:
	default:
		return fmt.Errorf("ID prefix %q matches %d goals, use more characters", prefix, len(matches))
	}
	target := matches[0]

	err := mutateSnapshot(func(_ *model.BudgetInput, goals *[]model.Goal) {
		kept := (*goals)[:0]
		for _, g := range *goals {
			if g.ID != target.ID {
				kept = append(kept, g)
			}
		}
		*goals = kept
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Removed %q (%s).\n", target.Name, shortID(target.ID))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
