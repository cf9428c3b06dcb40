// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Biblio IA TUI.
//
// # Palettes
//
// Every color is declared once as a lipgloss.AdaptiveColor holding its light
// and dark variant. The active theme is chosen by the user rather than
// guessed from the terminal background, so a Theme resolves each pair to
// one concrete lipgloss.Color when it is built:
//
//	theme := styles.NewTheme(true) // dark
//	theme.BotBubble.Render(answer)
//
// Toggling the theme builds a new Theme. Nothing global changes.
//
// # Color profile
//
// The terminal color profile is detected with termenv. On terminals
// without color support the styles keep their layout (borders, padding,
// bold) and drop all colors.
//
// # Accessibility
//
// Status text always carries an ASCII indicator ([OK], [X], [!]) next to
// its color so state never depends on color alone.
package styles
