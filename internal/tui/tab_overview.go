package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/planner"
	"github.com/dylanratti/grain/internal/tui/components"
	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	p := a.plan
	in := a.input
	var b strings.Builder

	// Row 1: Metric cards
	spendDelta := fmt.Sprintf("fixed %s · variable %s",
		cli.FormatMoney(p.FixedTotal), cli.FormatMoney(p.VariableTotal))

	leftoverDelta := "after expenses"
	if in.Income > 0 {
		leftoverDelta = cli.FormatShare(p.Leftover/in.Income) + " of income"
	}

	goalsDelta := "cash + investments"
	if in.WhatIfBoost > 0 {
		goalsDelta = fmt.Sprintf("%s with boost", cli.FormatMoney(p.MonthlyToGoalsBoosted))
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Income", cli.FormatMoney(in.Income), "per month"},
		{"Spending", cli.FormatMoney(p.SpendTotal), spendDelta},
		{"Leftover", cli.FormatMoney(p.Leftover), leftoverDelta},
		{"To Goals", cli.FormatMoney(p.MonthlyToGoals), goalsDelta},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: allocation split + investment mix
	compact := a.isCompactLayout()
	halves := components.LayoutRow(cw, 2)
	allocW, mixW := halves[0], halves[1]
	if compact {
		allocW, mixW = cw, cw
	}

	allocCard := components.ContentCard("Monthly Allocation", a.renderAllocationBody(allocW), allocW)

	chartH := 9
	if compact {
		chartH = 6
	}
	var mixBody string
	if p.InvestAmount > 0 {
		mixVals := []float64{p.Mix.Crypto, p.Mix.ETF, p.Mix.Bond}
		mixLabels := []string{"Crypto", "ETF", "Bonds"}
		mixBody = components.BarChart(mixVals, mixLabels, t.Blue, components.CardInnerWidth(mixW), chartH)
		mixBody += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(fmt.Sprintf("crypto capped at %.0f%% of investments", in.CryptoCapPct))
	} else {
		mixBody = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("Nothing to invest this month")
	}
	mixCard := components.ContentCard("Investment Mix", mixBody, mixW)

	if compact {
		b.WriteString(allocCard)
		b.WriteString("\n")
		b.WriteString(mixCard)
	} else {
		b.WriteString(components.CardRow([]string{allocCard, mixCard}))
	}
	b.WriteString("\n")

	// Row 3: spend breakdown with the utilization gauge
	b.WriteString(components.ContentCard("Where the Money Goes", a.renderSpendBody(cw), cw))

	// Row 4: insights preview
	if len(p.Insights) > 0 {
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Insights", a.renderInsightsPreview(cw), cw))
	}

	return b.String()
}

// renderAllocationBody shows the cash/invest split of the leftover.
func (a App) renderAllocationBody(outerW int) string {
	t := theme.Active
	p := a.plan
	inner := components.CardInnerWidth(outerW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	barW := inner - 28
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	rows := []struct {
		label string
		v     float64
		color lipgloss.Color
	}{
		{"Cash", p.CashAmount, t.Green},
		{"Invest", p.InvestAmount, t.Accent},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-8s", r.label)))
		b.WriteString(moneyBar(r.v, p.Leftover, barW, r.color))
		b.WriteString(amountStyle.Render(fmt.Sprintf(" %8s", cli.FormatMoney(r.v))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("investing %s of the leftover (%s profile)",
		cli.FormatShare(p.InvestShare), a.input.RiskProfile)))

	if planner.HasExpensiveDebt(a.input.Debts) {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("high-interest debt is holding the investing share down"))
	}

	return b.String()
}

// renderSpendBody lists spending categories largest first under an
// income-utilization gauge.
func (a App) renderSpendBody(cw int) string {
	t := theme.Active
	p := a.plan
	in := a.input
	inner := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder

	if in.Income > 0 {
		gaugeW := inner
		if gaugeW > 60 {
			gaugeW = 60
		}
		b.WriteString(components.CompactGauge("of income spent", p.SpendTotal/in.Income, gaugeW))
		b.WriteString("\n\n")
	}

	type category struct {
		label string
		v     float64
	}
	cats := []category{
		{"Rent", in.Fixed.Rent},
		{"Utilities", in.Fixed.Utilities},
		{"Insurance", in.Fixed.Insurance},
		{"Subscriptions", in.Fixed.Subscriptions},
		{"Transport", in.Variable.Transport},
		{"Groceries", in.Variable.Groceries},
		{"Dining", in.Variable.Dining},
		{"Other", in.Variable.Other},
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].v > cats[j].v })

	maxV := 0.0
	for _, c := range cats {
		if c.v > maxV {
			maxV = c.v
		}
	}
	if maxV == 0 {
		return b.String() + labelStyle.Render("No expenses entered yet. Press e on this tab to fill in the budget.")
	}

	barW := inner - 26
	if barW > 50 {
		barW = 50
	}
	if barW < 10 {
		barW = 10
	}

	for _, c := range cats {
		if c.v == 0 {
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", c.label)))
		b.WriteString(moneyBar(c.v, maxV, barW, t.Accent))
		b.WriteString(amountStyle.Render(fmt.Sprintf(" %8s", cli.FormatMoney(c.v))))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderInsightsPreview(cw int) string {
	t := theme.Active
	p := a.plan

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	shown := len(p.Insights)
	if shown > 3 {
		shown = 3
	}

	var b strings.Builder
	for i := 0; i < shown; i++ {
		b.WriteString(markStyle.Render("▲ "))
		b.WriteString(titleStyle.Render(p.Insights[i].Title))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("[i] all %d insights", len(p.Insights))))

	return b.String()
}

// moneyBar renders a horizontal bar scaled against maxV.
func moneyBar(v, maxV float64, w int, color lipgloss.Color) string {
	t := theme.Active
	if maxV <= 0 {
		maxV = 1
	}

	filled := int(math.Round(v / maxV * float64(w)))
	if filled > w {
		filled = w
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", w-filled))
}
