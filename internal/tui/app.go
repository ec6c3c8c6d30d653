// Package tui provides the interactive Bubble Tea dashboard for grain.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dylanratti/grain/internal/cli"
	"github.com/dylanratti/grain/internal/config"
	"github.com/dylanratti/grain/internal/model"
	"github.com/dylanratti/grain/internal/planner"
	"github.com/dylanratti/grain/internal/store"
	"github.com/dylanratti/grain/internal/tui/components"
	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SnapshotLoadedMsg is sent when the stored budget finishes loading.
type SnapshotLoadedMsg struct {
	Input    model.BudgetInput
	Goals    []model.Goal
	Found    bool
	SavedAt  time.Time
	LoadTime time.Duration
}

// ChatReplyMsg is sent when the assistant answers or fails.
type ChatReplyMsg struct {
	Reply string
	Err   error
}

// savedMsg reports the outcome of a background snapshot save.
type savedMsg struct {
	at  time.Time
	err error
}

// App is the root Bubble Tea model.
type App struct {
	// Budget state
	input model.BudgetInput
	goals []model.Goal
	plan  model.DerivedPlan

	loaded   bool
	loadTime time.Duration

	// Persistence
	dbPath  string
	savedAt time.Time
	saveErr error
	dirty   bool // mutations pending while auto-save is off

	autoSave bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	goalsState goalsState
	chatState  chatState
	settings   settingsState

	// First-run setup / budget editing (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model
}

const (
	minTerminalWidth = 72
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5 // minimum content area height

	boostStep = 50 // what-if lever increment in dollars per month
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model reading from the snapshot db at dbPath.
func NewApp(dbPath string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA99F")).Background(theme.Active.Surface)

	cfg := loadConfigOrDefault()

	return App{
		dbPath:   dbPath,
		input:    model.DefaultInput(),
		autoSave: cfg.General.AutoSave,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion, // Enable mouse support
		loadSnapshotCmd(a.dbPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute re-runs the planner over the current input and goals and
// clamps per-tab cursors to the new bounds.
func (a *App) recompute() {
	a.input = a.input.Sanitize()
	a.plan = planner.Compute(a.input, a.goals)

	if a.goalsState.cursor >= len(a.goals) {
		a.goalsState.cursor = len(a.goals) - 1
	}
	if a.goalsState.cursor < 0 {
		a.goalsState.cursor = 0
	}
}

// markMutated recomputes and either persists immediately or flags the
// snapshot dirty when auto-save is off.
func (a *App) markMutated() tea.Cmd {
	a.recompute()
	if a.autoSave {
		return a.persistCmd()
	}
	a.dirty = true
	return nil
}

// persistCmd saves the current input and goals in the background. The
// goals slice is copied up front so later list edits can't race the write.
func (a *App) persistCmd() tea.Cmd {
	in := a.input
	goals := append([]model.Goal(nil), a.goals...)
	dbPath := a.dbPath
	a.dirty = false

	return func() tea.Msg {
		st, err := store.Open(dbPath)
		if err != nil {
			return savedMsg{at: time.Now(), err: err}
		}
		defer st.Close()

		if err := st.SaveInput(in); err != nil {
			return savedMsg{at: time.Now(), err: err}
		}
		if err := st.SaveGoals(goals); err != nil {
			return savedMsg{at: time.Now(), err: err}
		}
		return savedMsg{at: time.Now()}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to active forms
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.goalsState.form != nil {
			a.goalsState.form = a.goalsState.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.goalsState.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			switch a.activeTab {
			case 1:
				if a.goalsState.cursor > 0 {
					a.goalsState.cursor--
				}
			case 3:
				a.chatState.scroll++
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			switch a.activeTab {
			case 1:
				if a.goalsState.cursor < len(a.goals)-1 {
					a.goalsState.cursor++
				}
			case 3:
				if a.chatState.scroll > 0 {
					a.chatState.scroll--
				}
			}
			return a, nil

		case tea.MouseButtonLeft:
			// The tab bar occupies the first header line.
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					return a.switchTab(tab)
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Setup / budget-edit form intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Goal add/edit form intercepts all keys
		if a.goalsState.form != nil {
			return a.updateGoalForm(msg)
		}

		// Chat composition intercepts all keys (text input)
		if a.activeTab == 3 && a.chatState.composing {
			return a.updateChatComposing(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == 4 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Manual save (useful when auto-save is off)
		if key == "S" {
			return a, a.persistCmd()
		}

		// Per-tab keybindings
		switch a.activeTab {
		case 0:
			if key == "e" {
				return a.openBudgetForm()
			}
		case 1:
			if m, cmd, handled := a.updateGoalsKeys(key); handled {
				return m, cmd
			}
		case 3:
			if m, cmd, handled := a.updateChatKeys(key); handled {
				return m, cmd
			}
		case 4:
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Global quit
		if key == "q" {
			return a, tea.Quit
		}

		// What-if boost lever (works on any dashboard tab)
		switch key {
		case "+", "=":
			a.input.WhatIfBoost += boostStep
			return a, a.markMutated()
		case "-", "_":
			a.input.WhatIfBoost -= boostStep
			if a.input.WhatIfBoost < 0 {
				a.input.WhatIfBoost = 0
			}
			return a, a.markMutated()
		}

		// Tab navigation. Shortcut letters come from the tab definitions.
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				return a.switchTab(idx)
			}
		}
		switch key {
		case "left":
			return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right", "tab":
			return a.switchTab((a.activeTab + 1) % len(components.Tabs))
		}
		return a, nil

	case SnapshotLoadedMsg:
		a.input = msg.Input
		a.goals = msg.Goals
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.savedAt = msg.SavedAt
		a.recompute()

		// First run: no stored budget yet, walk through onboarding
		if !msg.Found {
			a.needSetup = true
			a.setupVals = newSetupValues(a.input)
			a.setupForm = newBudgetForm(&a.setupVals, true)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case ChatReplyMsg:
		return a.handleChatReply(msg)

	case savedMsg:
		a.savedAt = msg.at
		a.saveErr = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		// Keeps the save-age display in the status bar honest while idle.
		return a, tickCmd()
	}

	// Forward unhandled messages to active forms (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.goalsState.form != nil {
		return a.updateGoalForm(msg)
	}

	return a, nil
}

// switchTab activates a tab. Entering the chat tab focuses the prompt.
func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.activeTab = idx
	if idx == 3 {
		return a.startComposing()
	}
	return a, nil
}

// openBudgetForm reopens the onboarding form prefilled with the current
// budget so the numbers can be edited in place.
func (a App) openBudgetForm() (tea.Model, tea.Cmd) {
	a.setupVals = newSetupValues(a.input)
	a.setupForm = newBudgetForm(&a.setupVals, false)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetupValues()
		a.needSetup = false
		a.setupForm = nil
		a.recompute()
		return a, a.persistCmd()
	}

	if a.setupForm.State == huh.StateAborted {
		// Abandoned first-run setup keeps the defaults; the dashboard
		// still renders and `e` on Overview reopens the form.
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run onboarding / budget editing
	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.goalsState.form != nil {
		return a.goalsState.form.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  grain needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ grain"))
	b.WriteString(subtitleStyle.Render(" · Budget Planner"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading your snapshot..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o g i c x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"J K", "Scroll chat history"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Budget"))
	b.WriteString("\n")
	budgetBindings := []struct{ key, desc string }{
		{"e", "Edit budget (Overview)"},
		{"+ -", fmt.Sprintf("What-if boost ±$%d/mo", boostStep)},
		{"a e d", "Add / Edit / Delete goal (Goals)"},
		{"S", "Save snapshot now"},
	}
	for _, bind := range budgetBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Compose / Confirm"},
		{"Esc", "Back / Cancel"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + budget pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pillStr := pillStyle.Render(" ") +
		pillAccentStyle.Render(string(a.input.RiskProfile))
	pillStr += pillStyle.Render(" │ ") +
		pillAccentStyle.Render(cli.FormatMoney(a.input.Income)+"/mo")
	if a.input.WhatIfBoost > 0 {
		pillStr += pillStyle.Render(" │ ") +
			pillAccentStyle.Render(fmt.Sprintf("+%s boost", cli.FormatMoney(a.input.WhatIfBoost)))
	}
	pillStr += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pillStr)

	// 2. Render status bar
	statusBar := components.RenderStatusBar(w, a.saveAge(), a.plan.Leftover, a.chatState.busy)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderGoalsTab(cw)
	case 2:
		content = a.renderInsightsTab(cw)
	case 3:
		content = a.renderChatTab(cw, contentH)
	case 4:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure the entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// saveAge describes how fresh the stored snapshot is for the status bar.
func (a App) saveAge() string {
	if a.saveErr != nil {
		return "save failed"
	}
	if a.dirty {
		return "unsaved"
	}
	if a.savedAt.IsZero() {
		return ""
	}

	d := time.Since(a.savedAt)
	switch {
	case d < 10*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(15*time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadSnapshotCmd reads the stored budget and goals in the background.
// A missing or unreadable snapshot falls back to defaults with Found=false
// so the app starts onboarding instead of failing.
func loadSnapshotCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		st, err := store.Open(dbPath)
		if err != nil {
			return SnapshotLoadedMsg{
				Input:    model.DefaultInput(),
				LoadTime: time.Since(start),
			}
		}
		defer st.Close()

		in, found, err := st.LoadInput()
		if err != nil {
			in = model.DefaultInput()
			found = false
		}

		goals, err := st.LoadGoals()
		if err != nil {
			goals = nil
		}

		savedAt, _ := st.InputUpdatedAt()

		return SnapshotLoadedMsg{
			Input:    in,
			Goals:    goals,
			Found:    found,
			SavedAt:  savedAt,
			LoadTime: time.Since(start),
		}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		// Must match RenderTabBar's visual width calculation exactly.
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
