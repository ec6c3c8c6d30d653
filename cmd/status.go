package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/config"
	"github.com/dylanratti/grain/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where grain keeps its data and what is configured",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	snap := loadSnapshot()

	fmt.Println()
	fmt.Println(cli.RenderTitle("GRAIN STATUS"))
	fmt.Println()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Config:      loaded")
	} else {
		fmt.Println("  Config:      using defaults (no file)")
	}
	fmt.Println()

	fmt.Printf("  Snapshot db: %s\n", store.DBPath())
	switch {
	case !snap.Found:
		fmt.Println("  Snapshot:    none yet, run `grain setup`")
	case snap.HasAge:
		fmt.Printf("  Snapshot:    saved %s\n", ageString(time.Since(snap.SavedAt)))
	default:
		fmt.Println("  Snapshot:    saved")
	}
	fmt.Printf("  Goals:       %d\n", len(snap.Goals))
	if snap.Found {
		fmt.Printf("  Plan:        %s/mo income, %s leftover\n",
			cli.FormatMoney(snap.Input.Income), cli.FormatMoney(snap.Plan.Leftover))
	}
	fmt.Println()

	key := config.GetOpenAIAPIKey(cfg)
	switch {
	case key == "":
		fmt.Println("  Chat key:    not configured")
	case os.Getenv("OPENAI_API_KEY") != "":
		fmt.Printf("  Chat key:    %s (from environment)\n", maskAPIKey(key))
	default:
		fmt.Printf("  Chat key:    %s (from config)\n", maskAPIKey(key))
	}
	fmt.Printf("  Chat model:  %s\n", cfg.Chat.Model)
	fmt.Printf("  Serve addr:  %s\n", cfg.Serve.Addr)
	fmt.Println()

	return nil
}

func ageString(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
