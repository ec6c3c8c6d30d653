package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/model"
	"github.com/dylanratti/grain/internal/tui/components"
	"github.com/dylanratti/grain/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// goalsState holds the goals tab state.
type goalsState struct {
	cursor    int
	form      *huh.Form
	formVals  goalFormValues
	editingID string // empty while adding
}

// goalFormValues holds raw answers for the add/edit goal form.
type goalFormValues struct {
	name   string
	target string
	saved  string
}

func newGoalForm(vals *goalFormValues, editing bool) *huh.Form {
	title := "Add a goal"
	if editing {
		title = "Edit goal"
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("Emergency fund").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("the goal needs a name")
				}
				return nil
			}).
			Value(&vals.name),
		huh.NewInput().
			Title("Target amount").
			Placeholder("12000").
			Validate(validateAmount).
			Value(&vals.target),
		huh.NewInput().
			Title("Saved so far").
			Placeholder("0").
			Validate(validateAmount).
			Value(&vals.saved),
	).Title(title))
}

// updateGoalsKeys handles goals tab keybindings. The bool reports whether
// the key was consumed.
func (a App) updateGoalsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.goalsState.cursor < len(a.goals)-1 {
			a.goalsState.cursor++
		}
		return a, nil, true

	case "k", "up":
		if a.goalsState.cursor > 0 {
			a.goalsState.cursor--
		}
		return a, nil, true

	case "a":
		a.goalsState.formVals = goalFormValues{}
		a.goalsState.editingID = ""
		a.goalsState.form = newGoalForm(&a.goalsState.formVals, false)
		if a.width > 0 {
			a.goalsState.form = a.goalsState.form.WithWidth(a.width).WithHeight(a.height)
		}
		return a, a.goalsState.form.Init(), true

	case "e", "enter":
		if len(a.goals) == 0 {
			return a, nil, true
		}
		sel := a.goals[a.goalsState.cursor]
		a.goalsState.formVals = goalFormValues{
			name:   sel.Name,
			target: fmtAmount(sel.Target),
			saved:  fmtAmount(sel.Saved),
		}
		a.goalsState.editingID = sel.ID
		a.goalsState.form = newGoalForm(&a.goalsState.formVals, true)
		if a.width > 0 {
			a.goalsState.form = a.goalsState.form.WithWidth(a.width).WithHeight(a.height)
		}
		return a, a.goalsState.form.Init(), true

	case "d":
		if len(a.goals) == 0 {
			return a, nil, true
		}
		i := a.goalsState.cursor
		a.goals = append(a.goals[:i:i], a.goals[i+1:]...)
		return a, a.markMutated(), true
	}

	return a, nil, false
}

func (a App) updateGoalForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.goalsState.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.goalsState.form = f
	}

	if a.goalsState.form.State == huh.StateCompleted {
		a.applyGoalForm()
		a.goalsState.form = nil
		return a, a.markMutated()
	}

	if a.goalsState.form.State == huh.StateAborted {
		a.goalsState.form = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) applyGoalForm() {
	v := a.goalsState.formVals
	name := strings.TrimSpace(v.name)
	if name == "" {
		return
	}

	if a.goalsState.editingID == "" {
		a.goals = append(a.goals, model.NewGoal(name, parseAmount(v.target), parseAmount(v.saved)))
		a.goalsState.cursor = len(a.goals) - 1
		return
	}

	for i, g := range a.goals {
		if g.ID == a.goalsState.editingID {
			a.goals[i].Name = name
			a.goals[i].Target = parseAmount(v.target)
			a.goals[i].Saved = parseAmount(v.saved)
			break
		}
	}
}

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active

	if len(a.goals) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No goals yet. Press a to add one.")
		return components.ContentCard("Goals", hint, cw)
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Goals", a.renderGoalList(cw), cw))
	b.WriteString("\n")

	sel := a.goals[a.goalsState.cursor]
	b.WriteString(components.ContentCard(sel.Name, a.renderGoalDetail(sel, cw), cw))

	return b.String()
}

func (a App) renderGoalList(cw int) string {
	t := theme.Active
	p := a.plan
	inner := components.CardInnerWidth(cw)

	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// months is -1 when nothing flows to goals (pace unknown)
	paceKnown := p.MonthlyToGoals > 0

	labelW := 4
	for _, g := range a.goals {
		if n := len([]rune(g.Name)); n > labelW {
			labelW = n
		}
	}
	if labelW > 18 {
		labelW = 18
	}

	barW := inner - labelW - 24
	if barW > 44 {
		barW = 44
	}
	if barW < 8 {
		barW = 8
	}

	var b strings.Builder
	for i, g := range a.goals {
		if i == a.goalsState.cursor {
			b.WriteString(markerStyle.Render("▸ "))
		} else {
			b.WriteString(spaceStyle.Render("  "))
		}

		months := -1
		if paceKnown {
			if proj, ok := p.ProjectionFor(g.ID); ok {
				months = proj.MonthsAtCurrentPace
			}
		}

		b.WriteString(components.GoalBar(truncStr(g.Name, labelW), g.Saved, g.Target, months, labelW, barW))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("[a]dd  [e]dit  [d]elete  [+/-] boost"))

	return b.String()
}

func (a App) renderGoalDetail(g model.Goal, cw int) string {
	t := theme.Active
	p := a.plan
	inner := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	b.WriteString(labelStyle.Render("Saved       ") + valueStyle.Render(cli.FormatMoney(g.Saved)))
	b.WriteString(labelStyle.Render("  of  ") + valueStyle.Render(cli.FormatMoney(g.Target)))
	b.WriteString(labelStyle.Render("   remaining  ") + valueStyle.Render(cli.FormatMoney(g.Remaining())))
	b.WriteString("\n\n")

	barW := inner - 8
	if barW > 60 {
		barW = 60
	}
	if barW < 10 {
		barW = 10
	}
	b.WriteString(components.ProgressBar(g.Progress(), barW))
	b.WriteString("\n\n")

	proj, ok := p.ProjectionFor(g.ID)
	switch {
	case g.Remaining() <= 0:
		b.WriteString(accentStyle.Render("Fully funded."))
	case !ok || p.MonthlyToGoals <= 0:
		b.WriteString(labelStyle.Render("Nothing flows to goals right now, so there is no pace to project."))
	default:
		b.WriteString(labelStyle.Render("At ") +
			valueStyle.Render(cli.FormatMoney(p.MonthlyToGoals)+"/mo") +
			labelStyle.Render(" this lands in ") +
			valueStyle.Render(cli.FormatMonths(proj.MonthsAtCurrentPace)))
		if a.input.WhatIfBoost > 0 && proj.MonthsWithBoost < proj.MonthsAtCurrentPace {
			saved := proj.MonthsAtCurrentPace - proj.MonthsWithBoost
			b.WriteString("\n")
			b.WriteString(labelStyle.Render("With the ") +
				accentStyle.Render(fmt.Sprintf("+%s/mo", cli.FormatMoney(a.input.WhatIfBoost))) +
				labelStyle.Render(" boost: ") +
				valueStyle.Render(cli.FormatMonths(proj.MonthsWithBoost)) +
				accentStyle.Render(fmt.Sprintf("  (%d sooner)", saved)))
		}

		// Projected balance, month by month, until the target (capped at 2y)
		if trail := goalTrajectory(g, p.MonthlyToGoals, 24); len(trail) > 1 {
			b.WriteString("\n\n")
			b.WriteString(dimStyle.Render("projected balance  "))
			b.WriteString(components.Sparkline(trail, t.Accent))
		}
	}

	return b.String()
}

// goalTrajectory projects the goal balance over the coming months at the
// given monthly pace, capped at maxMonths points.
func goalTrajectory(g model.Goal, pace float64, maxMonths int) []float64 {
	if pace <= 0 || g.Remaining() <= 0 {
		return nil
	}

	var trail []float64
	balance := g.Saved
	for i := 0; i < maxMonths; i++ {
		trail = append(trail, balance)
		if balance >= g.Target {
			break
		}
		balance += pace
	}
	return trail
}
