package cmd

import (
	"fmt"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/planner"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the monthly plan: totals, allocation, mix, and goal timelines",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	snap := loadSnapshot()
	hintSetup(snap.Found)

	in, p := snap.Input, snap.Plan

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GRAIN  %s/mo  %s", cli.FormatMoney(in.Income), in.RiskProfile)))
	fmt.Println()

	rows := [][]string{
		{"Income", cli.FormatMoney(in.Income)},
		{"Fixed expenses", cli.FormatMoney(p.FixedTotal)},
		{"Variable spending", cli.FormatMoney(p.VariableTotal)},
		{"Total spend", cli.FormatMoney(p.SpendTotal)},
		{"---"},
		{"Leftover", cli.FormatMoney(p.Leftover)},
		{"Invest share", cli.FormatShare(p.InvestShare)},
		{"To investments", cli.FormatMoney(p.InvestAmount)},
		{"To cash savings", cli.FormatMoney(p.CashAmount)},
	}
	if in.WhatIfBoost > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"What-if boost", "+" + cli.FormatMoney(in.WhatIfBoost) + "/mo"})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly Allocation",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if planner.HasExpensiveDebt(in.Debts) {
		fmt.Printf("  %s\n", cli.Warn("High-interest debt is holding the investing share down."))
	}
	fmt.Println()

	if p.InvestAmount > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Investment Mix",
			Headers: []string{"Bucket", "Monthly"},
			Rows: [][]string{
				{"Crypto", cli.FormatMoney(p.Mix.Crypto)},
				{"ETFs", cli.FormatMoney(p.Mix.ETF)},
				{"Bonds", cli.FormatMoney(p.Mix.Bond)},
			},
		}))
		fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("crypto capped at %.0f%% of investments", in.CryptoCapPct)))
	}

	if len(snap.Goals) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Goal Timelines",
			Headers: []string{"Goal", "Progress", "Target", "At pace", "With boost"},
			Rows:    goalRows(snap),
		}))
		fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("contributing %s/mo to goals", cli.FormatMoney(p.MonthlyToGoals))))
	}

	if n := len(p.Insights); n > 0 {
		fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("%d coaching insight(s) available. Run `grain insights`.", n)))
	}

	return nil
}

func goalRows(snap snapshot) [][]string {
	paceKnown := snap.Plan.MonthlyToGoals > 0

	rows := make([][]string, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		pace, boosted := "-", "-"
		pr, ok := snap.Plan.ProjectionFor(g.ID)
		switch {
		case g.Remaining() == 0:
			pace, boosted = "done", "done"
		case ok && paceKnown:
			pace = cli.FormatMonths(pr.MonthsAtCurrentPace)
			boosted = cli.FormatMonths(pr.MonthsWithBoost)
		}

		rows = append(rows, []string{
			truncate(g.Name, 18),
			cli.FormatPercent(g.Progress()),
			cli.FormatMoney(g.Target),
			pace,
			boosted,
		})
	}
	return rows
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
