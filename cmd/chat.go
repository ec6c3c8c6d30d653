package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dylanratti/grain/internal/chat"
	"github.com/dylanratti/grain/internal/config"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask the assistant one question about your budget",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return errors.New("question must not be empty")
	}

	cfg, _ := config.Load()
	client, err := chat.NewClient(cfg)
	if err != nil {
		if errors.Is(err, chat.ErrNoCredential) {
			fmt.Println()
			fmt.Println("  No completion API key configured.")
			fmt.Println()
			fmt.Println("  Set one of:")
			fmt.Println("    OPENAI_API_KEY=sk-... grain chat ...    (environment)")
			fmt.Println("    grain setup                             (saved to config)")
			fmt.Println()
			return nil
		}
		return err
	}

	snap := loadSnapshot()
	planCtx := chat.BuildContext(snap.Input, snap.Plan, snap.Goals)

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Asking %s...\n", client.Model())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply, err := client.Ask(ctx, []chat.Message{{Role: "user", Text: question}}, planCtx)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyReply) {
			return errors.New("the model returned an empty reply, try rephrasing")
		}
		return fmt.Errorf("the assistant is unreachable: %w", err)
	}

	fmt.Println()
	fmt.Println("  " + strings.ReplaceAll(reply, "\n", "\n  "))
	fmt.Println()
	return nil
}
