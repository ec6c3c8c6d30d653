package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dylanratti/grain/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))

	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	// Past the short card's end, the padding lines must still carry ANSI
	// styling or they show as unstyled blocks on dark terminals.
	for i, line := range lines {
		hasESC := strings.Contains(line, "\x1b[")
		if i >= shortLines && !hasESC {
			t.Errorf("Line %d has NO ANSI codes - will show as black squares", i)
		}
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	tallLines := len(strings.Split(tallCard, "\n"))
	if len(lines) != tallLines {
		t.Errorf("Joined should have %d lines (tallest), got %d", tallLines, len(lines))
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		widths := LayoutRow(103, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 103 {
			t.Errorf("LayoutRow(103, %d) sums to %d, want 103", n, sum)
		}
	}
	if LayoutRow(50, 0) != nil {
		t.Error("LayoutRow with n=0 should return nil")
	}
}

func TestTabVisualWidthMatchesRendered(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for _, tab := range Tabs {
		for _, active := range []bool{true, false} {
			want := len(tab.Name) + 2
			if !active && tab.KeyPos < 0 {
				want += 3
			}
			if got := TabVisualWidth(tab, active); got != want {
				t.Errorf("TabVisualWidth(%q, active=%v) = %d, want %d", tab.Name, active, got, want)
			}
		}
	}

	// The rendered bar must agree with the sum of per-tab widths plus
	// one separator column between tabs, or mouse hitboxes drift.
	for active := 0; active < len(Tabs); active++ {
		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		bar := RenderTabBar(active, 120)
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("RenderTabBar(active=%d) width = %d, want %d", active, got, want)
		}
	}
}
