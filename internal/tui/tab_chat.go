package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/dylanratti/grain/internal/chat"
	"github.com/dylanratti/grain/internal/tui/components"
	"github.com/dylanratti/grain/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chatState holds the chat tab state. One question can be in flight at a
// time; busy gates the send key until the reply lands.
type chatState struct {
	input     textinput.Model
	composing bool
	busy      bool
	history   []chat.Message
	scroll    int // lines scrolled up from the bottom
	errText   string
}

func newChatInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your plan..."
	ti.CharLimit = 500
	ti.Width = 60
	return ti
}

// startComposing focuses the chat prompt.
func (a App) startComposing() (tea.Model, tea.Cmd) {
	if a.chatState.input.Width == 0 {
		a.chatState.input = newChatInput()
	}
	a.chatState.composing = true
	a.chatState.input.Focus()
	return a, a.chatState.input.Cursor.BlinkCmd()
}

// updateChatComposing handles key events while the prompt is focused.
func (a App) updateChatComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.chatState.composing = false
		a.chatState.input.Blur()
		return a, nil

	case "enter":
		text := strings.TrimSpace(a.chatState.input.Value())
		if text == "" || a.chatState.busy {
			return a, nil
		}

		a.chatState.history = append(a.chatState.history, chat.Message{Role: "user", Text: text})
		a.chatState.input.SetValue("")
		a.chatState.busy = true
		a.chatState.errText = ""
		a.chatState.scroll = 0

		// Snapshot the conversation and plan before handing off to the
		// command goroutine.
		history := append([]chat.Message(nil), a.chatState.history...)
		planCtx := chat.BuildContext(a.input, a.plan, a.goals)

		return a, askCmd(history, planCtx)
	}

	var cmd tea.Cmd
	a.chatState.input, cmd = a.chatState.input.Update(msg)
	return a, cmd
}

// updateChatKeys handles chat tab keys while the prompt is blurred.
func (a App) updateChatKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "enter", "/":
		m, cmd := a.startComposing()
		return m, cmd, true
	case "K":
		a.chatState.scroll++
		return a, nil, true
	case "J":
		if a.chatState.scroll > 0 {
			a.chatState.scroll--
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) handleChatReply(msg ChatReplyMsg) (tea.Model, tea.Cmd) {
	a.chatState.busy = false
	a.chatState.scroll = 0

	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, chat.ErrNoCredential):
			a.chatState.errText = "Chat isn't configured. Set OPENAI_API_KEY or add a key under Settings."
		case errors.Is(msg.Err, chat.ErrEmptyReply):
			a.chatState.errText = "The model returned an empty reply. Try rephrasing."
		default:
			a.chatState.errText = "The assistant is unreachable right now. Your budget still works offline."
		}
		return a, nil
	}

	a.chatState.history = append(a.chatState.history, chat.Message{Role: "assistant", Text: msg.Reply})
	return a, nil
}

// askCmd relays the conversation in the background. The client is rebuilt
// per question so key changes in Settings apply immediately.
func askCmd(messages []chat.Message, planContext string) tea.Cmd {
	return func() tea.Msg {
		cfg := loadConfigOrDefault()

		client, err := chat.NewClient(cfg)
		if err != nil {
			return ChatReplyMsg{Err: err}
		}

		reply, err := client.Ask(context.Background(), messages, planContext)
		if err != nil {
			return ChatReplyMsg{Err: err}
		}
		return ChatReplyMsg{Reply: reply}
	}
}

func (a App) renderChatTab(cw, h int) string {
	t := theme.Active
	cs := a.chatState
	inner := components.CardInnerWidth(cw)

	youStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Width(inner)

	// Build the transcript
	var lines []string
	if len(cs.history) == 0 {
		lines = append(lines,
			mutedStyle.Render("Ask anything about your budget. Answers use your current numbers."),
			"",
			dimStyle.Render("  \"How long until my emergency fund is done?\""),
			dimStyle.Render("  \"Where could I trim $200 a month?\""),
			"",
			dimStyle.Render("Not financial advice."),
		)
	}
	for _, m := range cs.history {
		if m.Role == "user" {
			lines = append(lines, youStyle.Render("You"))
		} else {
			lines = append(lines, botStyle.Render("✦ grain"))
		}
		lines = append(lines, strings.Split(textStyle.Render(m.Text), "\n")...)
		lines = append(lines, "")
	}
	if cs.busy {
		lines = append(lines, botStyle.Render("✦ grain"), dimStyle.Render("thinking..."))
	}
	if cs.errText != "" {
		lines = append(lines, warnStyle.Render(cs.errText))
	}

	// Window the transcript: card borders + prompt + hint eat ~7 rows
	visible := h - 7
	if visible < 3 {
		visible = 3
	}

	scroll := cs.scroll
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}

	end := len(lines) - scroll
	start := end - visible
	if start < 0 {
		start = 0
	}
	transcript := strings.Join(lines[start:end], "\n")

	var b strings.Builder
	b.WriteString(components.ContentCard("Chat", transcript, cw))
	b.WriteString("\n")

	promptStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	if cs.composing {
		b.WriteString(promptStyle.Render(" ❯ "))
		b.WriteString(cs.input.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(" [Enter] send  [Esc] release prompt"))
	} else {
		b.WriteString(dimStyle.Render(" [Enter] ask a question  [J/K] scroll"))
	}

	return b.String()
}
