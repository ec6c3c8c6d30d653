package chat

import (
	"fmt"
	"strings"

	"github.com/dylanratti/grain/internal/model"
)

// BuildContext flattens the current inputs and derived plan into the
// plain-text snapshot the model grounds its answers on. The exact wording
// is not a wire contract; the numbers are what matters.
func BuildContext(in model.BudgetInput, p model.DerivedPlan, goals []model.Goal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Monthly net income: $%.0f\n", in.Income)
	fmt.Fprintf(&b, "Fixed spend: $%.0f (rent $%.0f, utilities $%.0f, insurance $%.0f, subscriptions $%.0f)\n",
		p.FixedTotal, in.Fixed.Rent, in.Fixed.Utilities, in.Fixed.Insurance, in.Fixed.Subscriptions)
	fmt.Fprintf(&b, "Variable spend: $%.0f (transport $%.0f, groceries $%.0f, dining $%.0f, other $%.0f)\n",
		p.VariableTotal, in.Variable.Transport, in.Variable.Groceries, in.Variable.Dining, in.Variable.Other)
	fmt.Fprintf(&b, "Leftover after spend: $%.0f\n", p.Leftover)
	fmt.Fprintf(&b, "Risk profile: %s (investing %.0f%% of the leftover, crypto capped at %.0f%%)\n",
		in.RiskProfile, p.InvestShare*100, in.CryptoCapPct)
	fmt.Fprintf(&b, "Monthly allocation: $%.0f to cash savings, $%.0f invested (crypto $%.0f, ETF $%.0f, bonds $%.0f)\n",
		p.CashAmount, p.InvestAmount, p.Mix.Crypto, p.Mix.ETF, p.Mix.Bond)

	if len(in.Debts) == 0 {
		b.WriteString("Debts: none\n")
	} else {
		b.WriteString("Debts:\n")
		for _, d := range in.Debts {
			fmt.Fprintf(&b, "  - %s: $%.0f balance at %.2f%% APR\n", debtName(d), d.Balance, d.AnnualRatePct)
		}
	}

	if in.WhatIfBoost > 0 {
		fmt.Fprintf(&b, "What-if boost under consideration: +$%.0f/mo\n", in.WhatIfBoost)
	}

	if len(goals) == 0 {
		b.WriteString("Goals: none\n")
	} else {
		b.WriteString("Goals:\n")
		for _, g := range goals {
			fmt.Fprintf(&b, "  - %s: $%.0f of $%.0f saved", g.Name, g.Saved, g.Target)
			if pr, ok := p.ProjectionFor(g.ID); ok {
				fmt.Fprintf(&b, ", about %d months away at the current pace", pr.MonthsAtCurrentPace)
				if in.WhatIfBoost > 0 {
					fmt.Fprintf(&b, " (%d with the boost)", pr.MonthsWithBoost)
				}
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func debtName(d model.Debt) string {
	if d.Name != "" {
		return d.Name
	}
	return "debt"
}
