package tui

import (
	"strings"

	"github.com/dylanratti/grain/internal/planner"
	"github.com/dylanratti/grain/internal/tui/components"
	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// insightTagColor maps an insight tag to its accent color.
func insightTagColor(tag string) lipgloss.Color {
	t := theme.Active
	switch tag {
	case planner.TagHousing:
		return t.Blue
	case planner.TagDebt:
		return t.Red
	case planner.TagSubscriptions:
		return t.Orange
	case planner.TagDining:
		return t.Yellow
	case planner.TagSavings:
		return t.Magenta
	case planner.TagSafety:
		return t.Cyan
	default:
		return t.Accent
	}
}

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active
	insights := a.plan.Insights

	if len(insights) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("Nothing stands out. The budget looks healthy from here.")
		return components.ContentCard("Insights", body, cw)
	}

	inner := components.CardInnerWidth(cw)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(inner)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for _, ins := range insights {
		tagStyle := lipgloss.NewStyle().
			Foreground(insightTagColor(ins.Tag)).
			Background(t.Surface).
			Bold(true)

		body := tagStyle.Render("▲ "+ins.Title) + "\n" +
			detailStyle.Render(ins.Detail)

		b.WriteString(components.ContentCard("", body, cw))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(" Numbers update as the budget changes. Edit it with e on Overview."))

	return b.String()
}
