package cmd

import (
	"fmt"

	"github.com/dylanratti/grain/internal/cli"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Coaching insights derived from the budget",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	snap := loadSnapshot()
	hintSetup(snap.Found)

	if len(snap.Plan.Insights) == 0 {
		fmt.Println("\n  Nothing stands out. The budget looks healthy from here.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSIGHTS"))
	fmt.Println()

	for _, ins := range snap.Plan.Insights {
		fmt.Printf("  %s %s\n", cli.Warn("▲ "+ins.Title), cli.Muted("["+ins.Tag+"]"))
		fmt.Printf("    %s\n\n", ins.Detail)
	}

	fmt.Printf("  %s\n", cli.Muted("Numbers update as the budget changes. Edit it with `grain setup` or `grain tui`."))
	return nil
}
