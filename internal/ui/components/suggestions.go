// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
	"github.com/Davidcm2803/bot-literario/internal/util"
)

// SuggestionsLabel heads the suggestion cards.
const SuggestionsLabel = "PREGUNTAS SUGERIDAS"

// SuggestionList renders the suggested questions as cards. Selected is the
// index last copied into the draft, or -1.
type SuggestionList struct {
	Items    []string
	Selected int
	Width    int
	theme    *styles.Theme
}

// NewSuggestionList creates a list with nothing selected.
func NewSuggestionList(theme *styles.Theme, items []string) *SuggestionList {
	return &SuggestionList{
		Items:    items,
		Selected: -1,
		Width:    80,
		theme:    theme,
	}
}

// View lays the cards side by side when they fit, otherwise stacked.
func (s *SuggestionList) View() string {
	if len(s.Items) == 0 {
		return ""
	}

	cols := len(s.Items)
	cardWidth := s.Width/cols - 2
	stacked := cardWidth < 24
	if stacked {
		cardWidth = s.Width - 4
	}

	cards := make([]string, 0, len(s.Items))
	for i, q := range s.Items {
		style := s.theme.SuggestionCard
		if i == s.Selected {
			style = s.theme.SuggestionSelected
		}
		text := s.theme.SuggestionBullet.Render("•") + " " + wordWrap(q, cardWidth-4)
		cards = append(cards, style.Width(cardWidth).Render(text))
	}

	var body string
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	label := s.theme.SuggestionsLabel.Width(s.Width).Render(SuggestionsLabel)
	hint := s.theme.InputHint.Width(s.Width).Align(lipgloss.Center).
		Render(util.TruncateWidth("tab: usar una sugerencia", s.Width))
	return lipgloss.JoinVertical(lipgloss.Center, label, body, hint)
}
