// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for one light or dark palette.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// PAGE
	// ==========================================================================

	App    lipgloss.Style
	Scrim  lipgloss.Style
	Footer lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarOverlay   lipgloss.Style
	SidebarBrand     lipgloss.Style
	SidebarIcon      lipgloss.Style
	SidebarSection   lipgloss.Style
	SidebarItem      lipgloss.Style
	SidebarDisabled  lipgloss.Style
	SearchBox        lipgloss.Style
	SearchBoxFocused lipgloss.Style
	ThemeToggle      lipgloss.Style
	ThemeToggleIcon  lipgloss.Style

	// ==========================================================================
	// HEADER
	// ==========================================================================

	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// SUGGESTIONS
	// ==========================================================================

	SuggestionsLabel   lipgloss.Style
	SuggestionCard     lipgloss.Style
	SuggestionSelected lipgloss.Style
	SuggestionBullet   lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	RoleLabel   lipgloss.Style
	Timestamp   lipgloss.Style

	// ==========================================================================
	// STATUS PILL
	// ==========================================================================

	PillChecking lipgloss.Style
	PillOnline   lipgloss.Style
	PillOffline  lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputHint      lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style
}

// NewTheme builds the light or dark theme for the detected color profile.
func NewTheme(dark bool) *Theme {
	return NewThemeWithProfile(dark, termenv.ColorProfile())
}

// NewThemeWithProfile builds a theme for an explicit color profile.
func NewThemeWithProfile(dark bool, profile termenv.Profile) *Theme {
	t := &Theme{
		IsDark:       dark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// HasColor reports whether the terminal renders colors at all.
func (t *Theme) HasColor() bool {
	return t.ColorProfile != termenv.Ascii
}

// GlamourStyle names the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if !t.HasColor() {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// Color resolves a palette pair to the theme's variant. Without color
// support it returns no color.
func (t *Theme) Color(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
	if !t.HasColor() {
		return lipgloss.NoColor{}
	}
	if t.IsDark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	c := t.Color

	t.App = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		Background(c(Background))

	t.Scrim = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Faint(true)

	t.Footer = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true).
		Align(lipgloss.Center)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		Background(c(Card)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(c(Border)).
		Padding(1, 1)

	t.SidebarOverlay = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		Background(c(Card)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Primary)).
		Padding(1, 1)

	t.SidebarBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(TextPrimary))

	t.SidebarIcon = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Primary))

	t.SidebarSection = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(c(Border)).
		PaddingTop(0)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(c(TextSecondary))

	t.SidebarDisabled = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Faint(true)

	t.SearchBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Border)).
		Padding(0, 1)

	t.SearchBoxFocused = t.SearchBox.
		BorderForeground(c(Primary))

	t.ThemeToggle = lipgloss.NewStyle().
		Foreground(c(TextSecondary))

	t.ThemeToggleIcon = lipgloss.NewStyle().
		Foreground(c(Gold))

	// Header
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Primary)).
		Align(lipgloss.Center)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true).
		Align(lipgloss.Center)

	// Suggestions
	t.SuggestionsLabel = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Bold(true).
		Align(lipgloss.Center)

	t.SuggestionCard = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Border)).
		Padding(0, 1)

	t.SuggestionSelected = t.SuggestionCard.
		BorderForeground(c(Primary)).
		Bold(true)

	t.SuggestionBullet = lipgloss.NewStyle().
		Foreground(c(Primary))

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(c(UserBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(UserBubbleBorder)).
		Padding(0, 1)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(c(BotBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(BotBubbleBorder)).
		Padding(0, 1)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(c(ErrorBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(ErrorBubbleBorder)).
		Padding(0, 1)

	t.RoleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(TextSecondary))

	t.Timestamp = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	// Status pill
	pill := lipgloss.NewStyle().
		Bold(true).
		Foreground(c(TextInverse)).
		Padding(0, 1)

	t.PillChecking = pill.Background(c(Amber))
	t.PillOnline = pill.Background(c(Emerald))
	t.PillOffline = pill.Background(c(Rose))

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Border)).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Primary))

	t.InputHint = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(TextPrimary)).
		Background(c(Border)).
		Padding(0, 1)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	t.Spinner = lipgloss.NewStyle().
		Foreground(c(Primary))

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)
}
