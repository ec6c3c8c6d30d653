package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dylanratti/grain/internal/model"

	"github.com/charmbracelet/huh"
)

// setupValues holds the raw form answers. Everything is a string until
// applySetupValues parses it; huh inputs edit text, not numbers.
type setupValues struct {
	income string

	rent          string
	utilities     string
	insurance     string
	subscriptions string

	transport string
	groceries string
	dining    string
	other     string

	hasDebt     bool
	debtName    string
	debtBalance string
	debtAPR     string

	risk      string
	cryptoCap string

	goalName   string
	goalTarget string
	goalSaved  string
}

// newSetupValues prefills the form from an existing budget so editing
// starts from the current numbers instead of a blank slate.
func newSetupValues(in model.BudgetInput) setupValues {
	v := setupValues{
		income:        fmtAmount(in.Income),
		rent:          fmtAmount(in.Fixed.Rent),
		utilities:     fmtAmount(in.Fixed.Utilities),
		insurance:     fmtAmount(in.Fixed.Insurance),
		subscriptions: fmtAmount(in.Fixed.Subscriptions),
		transport:     fmtAmount(in.Variable.Transport),
		groceries:     fmtAmount(in.Variable.Groceries),
		dining:        fmtAmount(in.Variable.Dining),
		other:         fmtAmount(in.Variable.Other),
		risk:          string(in.RiskProfile),
		cryptoCap:     fmtAmount(in.CryptoCapPct),
	}

	if len(in.Debts) > 0 {
		d := in.Debts[0]
		v.hasDebt = true
		v.debtName = d.Name
		v.debtBalance = fmtAmount(d.Balance)
		v.debtAPR = fmtAmount(d.AnnualRatePct)
	}

	return v
}

// newBudgetForm builds the onboarding wizard. firstRun adds the welcome
// note and the optional starter goal; editing an existing budget skips both.
func newBudgetForm(vals *setupValues, firstRun bool) *huh.Form {
	var groups []*huh.Group

	if firstRun {
		groups = append(groups, huh.NewGroup(
			huh.NewNote().
				Title("◈ grain").
				Description("A few questions set up your monthly plan.\nEverything can be changed later from the dashboard."),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Monthly net income").
			Description("Take-home pay after tax").
			Placeholder("4000").
			Validate(validateAmount).
			Value(&vals.income),
	))

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Rent / mortgage").
			Placeholder("1800").
			Validate(validateAmount).
			Value(&vals.rent),
		huh.NewInput().
			Title("Utilities").
			Placeholder("150").
			Validate(validateAmount).
			Value(&vals.utilities),
		huh.NewInput().
			Title("Insurance").
			Placeholder("120").
			Validate(validateAmount).
			Value(&vals.insurance),
		huh.NewInput().
			Title("Subscriptions").
			Placeholder("35").
			Validate(validateAmount).
			Value(&vals.subscriptions),
	).Title("Fixed expenses").Description("The bills that land every month"))

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Transport").
			Placeholder("160").
			Validate(validateAmount).
			Value(&vals.transport),
		huh.NewInput().
			Title("Groceries").
			Placeholder("450").
			Validate(validateAmount).
			Value(&vals.groceries),
		huh.NewInput().
			Title("Dining out").
			Placeholder("180").
			Validate(validateAmount).
			Value(&vals.dining),
		huh.NewInput().
			Title("Everything else").
			Placeholder("130").
			Validate(validateAmount).
			Value(&vals.other),
	).Title("Variable spending").Description("Rough monthly averages are fine"))

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Any debt to track?").
			Description("High-interest debt changes the investing split").
			Affirmative("Yes").
			Negative("No").
			Value(&vals.hasDebt),
	))

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("What is it?").
			Placeholder("Credit card").
			Value(&vals.debtName),
		huh.NewInput().
			Title("Balance").
			Placeholder("3200").
			Validate(validateAmount).
			Value(&vals.debtBalance),
		huh.NewInput().
			Title("APR %").
			Placeholder("22.9").
			Validate(validateAmount).
			Value(&vals.debtAPR),
	).WithHideFunc(func() bool { return !vals.hasDebt }))

	groups = append(groups, huh.NewGroup(
		huh.NewSelect[string]().
			Title("Risk appetite").
			Description("How much of each month's leftover goes to investing").
			Options(
				huh.NewOption("Conservative: keep most of it in cash", "conservative"),
				huh.NewOption("Balanced: roughly half invested", "balanced"),
				huh.NewOption("Growth: same split, tilted to equities", "growth"),
				huh.NewOption("Yolo: invest nearly all of it", "yolo"),
			).
			Value(&vals.risk),
		huh.NewInput().
			Title("Crypto cap %").
			Description("Share of investments allowed in crypto, 0 to 10").
			Placeholder("5").
			Validate(validateCryptoCap).
			Value(&vals.cryptoCap),
	))

	if firstRun {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("First savings goal").
				Description("Leave blank to skip").
				Placeholder("Emergency fund").
				Value(&vals.goalName),
			huh.NewInput().
				Title("Target amount").
				Placeholder("12000").
				Validate(validateAmount).
				Value(&vals.goalTarget),
			huh.NewInput().
				Title("Saved so far").
				Placeholder("0").
				Validate(validateAmount).
				Value(&vals.goalSaved),
		))
	}

	return huh.NewForm(groups...)
}

// applySetupValues folds the form answers back into the budget. The form
// shows only the first debt; any extras entered through the CLI survive.
func (a *App) applySetupValues() {
	v := a.setupVals

	in := a.input
	in.Income = parseAmount(v.income)
	in.Fixed = model.FixedExpenses{
		Rent:          parseAmount(v.rent),
		Utilities:     parseAmount(v.utilities),
		Insurance:     parseAmount(v.insurance),
		Subscriptions: parseAmount(v.subscriptions),
	}
	in.Variable = model.VariableExpenses{
		Transport: parseAmount(v.transport),
		Groceries: parseAmount(v.groceries),
		Dining:    parseAmount(v.dining),
		Other:     parseAmount(v.other),
	}

	debts := append([]model.Debt(nil), in.Debts...)
	if v.hasDebt {
		d := model.Debt{
			Name:          strings.TrimSpace(v.debtName),
			Balance:       parseAmount(v.debtBalance),
			AnnualRatePct: parseAmount(v.debtAPR),
		}
		if len(debts) == 0 {
			debts = []model.Debt{d}
		} else {
			debts[0] = d
		}
	} else if len(debts) > 0 {
		debts = debts[1:]
	}
	in.Debts = debts

	in.RiskProfile = model.ParseRiskProfile(v.risk)
	in.CryptoCapPct = parseAmount(v.cryptoCap)
	a.input = in

	// The starter goal only exists on the first-run form
	if a.needSetup {
		if name := strings.TrimSpace(v.goalName); name != "" {
			a.goals = append(a.goals, model.NewGoal(name, parseAmount(v.goalTarget), parseAmount(v.goalSaved)))
		}
	}
}

// fmtAmount renders a dollar amount for form prefill; zero shows the
// placeholder instead.
func fmtAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount reads a user-typed dollar amount. Currency symbols and
// thousands separators are tolerated; anything unparseable is zero.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func validateAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""), 64)
	if err != nil {
		return errors.New("enter a dollar amount, like 1200 or 89.99")
	}
	if v < 0 {
		return errors.New("amounts can't be negative")
	}
	return nil
}

func validateCryptoCap(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 10 {
		return errors.New("keep it between 0 and 10")
	}
	return nil
}
