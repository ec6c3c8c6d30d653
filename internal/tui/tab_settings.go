package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dylanratti/grain/internal/config"
	"github.com/dylanratti/grain/internal/tui/components"
	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldAPIKey = iota
	settingsFieldModel
	settingsFieldBaseURL
	settingsFieldTheme
	settingsFieldCurrency
	settingsFieldAutoSave
	settingsFieldServeAddr
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldAPIKey:
		ti.Placeholder = "sk-..."
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		if cfg.Chat.APIKey != "" {
			ti.SetValue(cfg.Chat.APIKey)
		}
	case settingsFieldModel:
		ti.Placeholder = "gpt-4o-mini"
		ti.SetValue(cfg.Chat.Model)
	case settingsFieldBaseURL:
		ti.Placeholder = "https://api.openai.com/v1 (blank for default)"
		ti.SetValue(cfg.Chat.BaseURL)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, flexoki-light, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = "$"
		ti.SetValue(cfg.General.CurrencySymbol)
	case settingsFieldAutoSave:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoSave))
	case settingsFieldServeAddr:
		ti.Placeholder = "127.0.0.1:8484"
		ti.SetValue(cfg.Serve.Addr)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldAPIKey:
		cfg.Chat.APIKey = val
	case settingsFieldModel:
		if val != "" {
			cfg.Chat.Model = val
		}
	case settingsFieldBaseURL:
		cfg.Chat.BaseURL = val
	case settingsFieldTheme:
		// Validate theme name
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if found {
			cfg.Appearance.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldCurrency:
		if val != "" {
			cfg.General.CurrencySymbol = val
		}
	case settingsFieldAutoSave:
		cfg.General.AutoSave = val == "true" || val == "1" || val == "yes"
		a.autoSave = cfg.General.AutoSave
	case settingsFieldServeAddr:
		if val != "" {
			cfg.Serve.Addr = val
		}
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	apiKeyDisplay := "(not set)"
	if key := cfg.Chat.APIKey; key != "" {
		if len(key) > 12 {
			apiKeyDisplay = key[:8] + "..." + key[len(key)-4:]
		} else {
			apiKeyDisplay = "****"
		}
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		apiKeyDisplay += " (env overrides)"
	}

	baseURLDisplay := cfg.Chat.BaseURL
	if baseURLDisplay == "" {
		baseURLDisplay = "(default)"
	}

	fields := []field{
		{"OpenAI API Key", apiKeyDisplay},
		{"Chat Model", cfg.Chat.Model},
		{"Chat Base URL", baseURLDisplay},
		{"Theme", cfg.Appearance.Theme},
		{"Currency", cfg.General.CurrencySymbol},
		{"Auto Save", strconv.FormatBool(a.autoSave)},
		{"Serve Address", cfg.Serve.Addr},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			// Use lipgloss.Width() for correct visual width calculation
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			// Normal row
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Storage info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Snapshot db:   ") + valueStyle.Render(a.dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Goals stored:  ") + valueStyle.Render(strconv.Itoa(len(a.goals))) + "\n")
	infoBody.WriteString(labelStyle.Render("Snapshot read: ") + valueStyle.Render(fmt.Sprintf("%dms", a.loadTime.Milliseconds())))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Storage", infoBody.String(), cw))

	return b.String()
}
