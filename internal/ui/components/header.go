// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
)

const (
	// Title is the panel heading.
	Title = "Biblio IA"
	// Subtitle is shown under the title.
	Subtitle = "Tu bot literario inteligente"
	// Tagline closes the panel.
	Tagline = "Explora el mundo de la literatura con inteligencia artificial"
)

// =============================================================================
// STATUS PILL
// =============================================================================

// PillText is the label for a reachability status.
func PillText(r conversation.Reachability) string {
	switch r {
	case conversation.ReachabilityOnline:
		return styles.StatusIndicators.Success + " En línea"
	case conversation.ReachabilityOffline:
		return styles.StatusIndicators.Error + " Sin conexión"
	default:
		return styles.StatusIndicators.Pending + " Conectando…"
	}
}

// StatusPill renders the reachability badge.
func StatusPill(theme *styles.Theme, r conversation.Reachability) string {
	style := theme.PillChecking
	switch r {
	case conversation.ReachabilityOnline:
		style = theme.PillOnline
	case conversation.ReachabilityOffline:
		style = theme.PillOffline
	}
	return style.Render(PillText(r))
}

// =============================================================================
// HEADER
// =============================================================================

// Header renders the centered title block with the pill beneath it.
func Header(theme *styles.Theme, width int, r conversation.Reachability) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center,
		center.Render(theme.HeaderTitle.Render(Title)),
		center.Render(theme.HeaderSubtitle.Render(Subtitle)),
		center.Render(StatusPill(theme, r)),
	)
}

// Footer renders the tagline.
func Footer(theme *styles.Theme, width int) string {
	return theme.Footer.Width(width).Render(Tagline)
}
