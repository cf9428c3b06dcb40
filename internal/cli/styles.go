// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
)

// =============================================================================
// LINE-MODE STYLES
// =============================================================================

var (
	// TitleStyle is used for banners.
	TitleStyle = lipgloss.NewStyle().
			Foreground(styles.Primary).
			Bold(true)

	// LabelStyle is used for speaker names and field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Bold(true)

	// SuccessStyle is used for online status and confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	// ErrorStyle is used for failures and the failure notice.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarningStyle is used for cancellations.
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// DimStyle is used for hints and secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// PromptStyle is used for the line-mode prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Gold).
			Bold(true)

	userStyle = lipgloss.NewStyle().Foreground(styles.UserBubbleBorder).Bold(true)
	botStyle  = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
)

// Separator returns a horizontal rule of width cells.
func Separator(width int) string {
	if width <= 0 {
		width = 30
	}
	return DimStyle.Render(strings.Repeat("─", width))
}

// =============================================================================
// MESSAGE OUTPUT
// =============================================================================

// answerRenderer formats bot answers for line output.
type answerRenderer struct {
	markdown bool
	width    int
}

func newAnswerRenderer(markdown bool) answerRenderer {
	return answerRenderer{
		markdown: markdown && ColorsEnabled(),
		width:    TerminalWidth(80),
	}
}

func (r answerRenderer) render(content string) string {
	if !r.markdown {
		return content
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.width-4),
	)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// formatMessage renders one message as a speaker line followed by its text.
func (r answerRenderer) formatMessage(msg conversation.Message) string {
	var label string
	var body string
	switch {
	case msg.IsUser():
		label = userStyle.Render(msg.Role.DisplayName() + ":")
		body = msg.Content
	case msg.Error:
		label = botStyle.Render(msg.Role.DisplayName() + ":")
		body = ErrorStyle.Render(msg.Content)
	default:
		label = botStyle.Render(msg.Role.DisplayName() + ":")
		body = r.render(msg.Content)
	}
	return label + "\n" + body + "\n"
}
