package components

import (
	"fmt"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, savedAge string, leftover float64, busy bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	if busy {
		left += "  thinking..."
	}

	right := fmt.Sprintf("Leftover: %s/mo ", cli.FormatMoney(leftover))
	if savedAge != "" {
		right = fmt.Sprintf("Saved: %s  %s", savedAge, right)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
