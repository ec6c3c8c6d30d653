// Package cmd implements the grain CLI commands.
package cmd

import (
	"fmt"

	"github.com/dylanratti/grain/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    Auto-save:       %v\n", cfg.General.AutoSave)
	fmt.Println()

	fmt.Println("  [Chat]")
	apiKey := config.GetOpenAIAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key: %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key: not configured")
	}
	fmt.Printf("    Model:   %s\n", cfg.Chat.Model)
	if cfg.Chat.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Chat.BaseURL)
	}
	fmt.Printf("    Timeout: %ds\n", cfg.Chat.TimeoutSecs)
	fmt.Println()

	fmt.Println("  [Serve]")
	fmt.Printf("    Address: %s\n", cfg.Serve.Addr)
	fmt.Printf("    Timeout: %ds\n", cfg.Serve.TimeoutSecs)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `grain setup` to reconfigure.")
	return nil
}
