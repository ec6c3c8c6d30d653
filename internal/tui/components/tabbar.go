package components

import (
	"strings"

	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Goals", Key: 'g', KeyPos: 0},
	{Name: "Insights", Key: 'i', KeyPos: 0},
	{Name: "Chat", Key: 'c', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// TabVisualWidth returns the rendered width of a tab in columns. tabAtX
// in the app relies on this matching RenderTabBar exactly, so any change
// to the tab renderer must be reflected here.
func TabVisualWidth(tab Tab, active bool) int {
	w := len(tab.Name) + 2 // one space of padding on each side
	if !active && tab.KeyPos < 0 {
		w += 3 // appended "[x]" hint
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var parts []string
	for i, tab := range Tabs {
		var rendered string
		if i == activeIdx {
			rendered = activeStyle.Render(" " + tab.Name + " ")
		} else if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			// Highlight the shortcut letter in place; the padding keeps
			// the width identical to the active rendering.
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			rendered = inactiveStyle.Render(" "+before) +
				keyStyle.Render(key) +
				inactiveStyle.Render(after+" ")
		} else {
			// Key not in name (e.g., "Settings" with 'x'): append a hint.
			rendered = inactiveStyle.Render(" "+tab.Name+" ") +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		}
		parts = append(parts, rendered)
	}

	return strings.Join(parts, " ")
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
