package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/config"
	"github.com/dylanratti/grain/internal/model"
	"github.com/dylanratti/grain/internal/store"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive budget and configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()
	snap := loadSnapshot()
	in := snap.Input

	fmt.Println()
	fmt.Println("  Welcome to grain!")
	fmt.Println()
	if snap.Found {
		fmt.Printf("  Editing the saved budget (%s/mo income, %d goals). Enter keeps a value.\n",
			cli.FormatMoney(in.Income), len(snap.Goals))
	} else {
		fmt.Println("  A few questions and the plan is ready. Enter skips a field.")
	}
	fmt.Println()

	// 1. Income
	fmt.Println("  1. Monthly take-home income")
	in.Income = promptAmount(reader, "income", in.Income)
	fmt.Println()

	// 2. Fixed bills
	fmt.Println("  2. Fixed monthly bills")
	in.Fixed.Rent = promptAmount(reader, "rent/mortgage", in.Fixed.Rent)
	in.Fixed.Utilities = promptAmount(reader, "utilities", in.Fixed.Utilities)
	in.Fixed.Insurance = promptAmount(reader, "insurance", in.Fixed.Insurance)
	in.Fixed.Subscriptions = promptAmount(reader, "subscriptions", in.Fixed.Subscriptions)
	fmt.Println()

	// 3. Variable spending
	fmt.Println("  3. Variable spending (rough monthly averages are fine)")
	in.Variable.Transport = promptAmount(reader, "transport", in.Variable.Transport)
	in.Variable.Groceries = promptAmount(reader, "groceries", in.Variable.Groceries)
	in.Variable.Dining = promptAmount(reader, "dining out", in.Variable.Dining)
	in.Variable.Other = promptAmount(reader, "everything else", in.Variable.Other)
	fmt.Println()

	// 4. Debt
	fmt.Println("  4. Debt")
	promptDebt(reader, &in)
	fmt.Println()

	// 5. Risk profile
	fmt.Println("  5. Risk profile")
	fmt.Println("     (1) Conservative, keep most of it in cash")
	fmt.Println("     (2) Balanced [default]")
	fmt.Println("     (3) Growth, same split tilted to equities")
	fmt.Println("     (4) Yolo, invest nearly all of it")
	fmt.Print("     > ")
	switch readLine(reader) {
	case "1":
		in.RiskProfile = model.RiskConservative
	case "3":
		in.RiskProfile = model.RiskGrowth
	case "4":
		in.RiskProfile = model.RiskYolo
	case "":
		// keep the current profile
	default:
		in.RiskProfile = model.RiskBalanced
	}
	fmt.Println()

	// 6. Crypto cap
	fmt.Println("  6. Crypto cap, as a percent of investments (0-10)")
	in.CryptoCapPct = promptAmount(reader, "cap", in.CryptoCapPct)
	fmt.Println()

	// 7. First goal, only when none exist yet
	goals := snap.Goals
	if len(goals) == 0 {
		fmt.Println("  7. First savings goal (Enter to skip)")
		fmt.Print("     name > ")
		if name := readLine(reader); name != "" {
			target := promptAmount(reader, "target amount", 0)
			saved := promptAmount(reader, "already saved", 0)
			goals = append(goals, model.NewGoal(name, target, saved))
		}
		fmt.Println()
	}

	// 8. Chat credential, optional
	fmt.Println("  8. Completion API key for the chat assistant (optional)")
	if existing := config.GetOpenAIAPIKey(cfg); existing != "" {
		fmt.Printf("     Current: %s\n", maskAPIKey(existing))
	}
	fmt.Print("     > ")
	if key := readLine(reader); key != "" {
		cfg.Chat.APIKey = key
	}
	fmt.Println()

	// 9. Theme
	fmt.Println("  9. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Flexoki Light")
	fmt.Println("     (3) Catppuccin Mocha")
	fmt.Println("     (4) Tokyo Night")
	fmt.Println("     (5) Terminal (ANSI 16)")
	fmt.Print("     > ")
	switch readLine(reader) {
	case "2":
		cfg.Appearance.Theme = "flexoki-light"
	case "3":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "4":
		cfg.Appearance.Theme = "tokyo-night"
	case "5":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Persist both halves
	in = in.Sanitize()

	st, err := store.Open(store.DBPath())
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer st.Close()

	if err := st.SaveInput(in); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	if err := st.SaveGoals(goals); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Budget saved to %s\n", store.DBPath())
	fmt.Printf("  Config saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `grain` for the plan, `grain tui` for the dashboard.")
	fmt.Println()

	return nil
}

// promptDebt edits the first tracked debt. Extra debts stay untouched; the
// wizard only walks one.
func promptDebt(reader *bufio.Reader, in *model.BudgetInput) {
	if len(in.Debts) > 0 {
		d := in.Debts[0]
		fmt.Printf("     Tracking %q (%s at %.2f%% APR). Keep it? (Y/n) > ",
			d.Name, cli.FormatMoney(d.Balance), d.AnnualRatePct)
	} else {
		fmt.Print("     Track a debt? (y/N) > ")
	}

	answer := strings.ToLower(readLine(reader))
	keep := answer == "y" || answer == "yes" || (answer == "" && len(in.Debts) > 0)
	if !keep {
		if len(in.Debts) > 0 {
			in.Debts = in.Debts[1:]
		}
		return
	}

	d := model.Debt{Name: "debt"}
	if len(in.Debts) > 0 {
		d = in.Debts[0]
	}

	fmt.Printf("     name [%s] > ", d.Name)
	if name := readLine(reader); name != "" {
		d.Name = name
	}
	d.Balance = promptAmount(reader, "balance", d.Balance)
	d.AnnualRatePct = promptAmount(reader, "APR %", d.AnnualRatePct)

	if len(in.Debts) > 0 {
		in.Debts[0] = d
	} else {
		in.Debts = []model.Debt{d}
	}
}

// promptAmount asks for one money amount. Enter keeps the current value,
// junk input keeps it too.
func promptAmount(reader *bufio.Reader, label string, current float64) float64 {
	if current != 0 {
		fmt.Printf("     %s [%s] > ", label, strconv.FormatFloat(current, 'f', -1, 64))
	} else {
		fmt.Printf("     %s > ", label)
	}

	raw := readLine(reader)
	if raw == "" {
		return current
	}

	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		fmt.Printf("     (kept %s)\n", strconv.FormatFloat(current, 'f', -1, 64))
		return current
	}
	return v
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
