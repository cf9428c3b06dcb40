// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders one conversation message.
type MessageBubble struct {
	Message  conversation.Message
	Width    int
	Now      time.Time
	Markdown *Markdown
	theme    *styles.Theme
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg conversation.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message: msg,
		Width:   80,
		Now:     time.Now(),
		theme:   theme,
	}
}

// View renders the message bubble. User messages sit on the right, bot
// messages on the left.
func (b *MessageBubble) View() string {
	header := b.theme.RoleLabel.Render(b.Message.Role.DisplayName())
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}

	maxContentWidth := b.Width - 8
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	if b.Message.IsUser() {
		wrapped := wordWrap(b.Message.Content, maxContentWidth)
		bubble := b.theme.UserBubble.Render(wrapped)
		return b.alignRight(lipgloss.JoinVertical(lipgloss.Right, header, bubble))
	}

	style := b.theme.BotBubble
	content := b.Message.Content
	if b.Message.Error {
		style = b.theme.ErrorBubble
		content = styles.StatusIndicators.Error + " " + wordWrap(content, maxContentWidth)
	} else {
		content = b.Markdown.Render(content, b.theme.GlamourStyle(), maxContentWidth)
		if b.Markdown == nil || b.Markdown.disabled {
			content = wordWrap(content, maxContentWidth)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, style.Render(content))
}

func (b *MessageBubble) alignRight(block string) string {
	if w := maxLineWidth(block); w < b.Width {
		return lipgloss.NewStyle().Width(b.Width).Align(lipgloss.Right).Render(block)
	}
	return block
}

// renderTimestamp renders the message age, or "ahora" under a minute.
func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.CreatedAt
	if ts.IsZero() {
		return ""
	}
	if b.Now.Sub(ts) < time.Minute {
		return b.theme.Timestamp.Render("ahora")
	}
	return b.theme.Timestamp.Render(humanize.RelTime(ts, b.Now, "ago", "from now"))
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// MessageList renders the whole conversation.
type MessageList struct {
	Messages []conversation.Message
	Width    int
	Now      time.Time
	Markdown *Markdown
	theme    *styles.Theme
}

// NewMessageList creates a MessageList.
func NewMessageList(theme *styles.Theme, md *Markdown) *MessageList {
	return &MessageList{
		Width:    80,
		Markdown: md,
		theme:    theme,
	}
}

// View renders all messages separated by blank lines.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		return ""
	}
	now := ml.Now
	if now.IsZero() {
		now = time.Now()
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		b := NewMessageBubble(msg, ml.theme)
		b.Width = ml.Width
		b.Now = now
		b.Markdown = ml.Markdown
		bubbles = append(bubbles, b.View())
	}
	return strings.Join(bubbles, "\n\n")
}
