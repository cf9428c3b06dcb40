// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Davidcm2803/bot-literario/internal/sidebar"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
	"github.com/Davidcm2803/bot-literario/internal/util"
)

const (
	// SidebarWidth is the width of the expanded sidebar, border included.
	SidebarWidth = 28
	// SidebarCollapsedWidth is the width of the icon-only sidebar.
	SidebarCollapsedWidth = 6

	brand        = "Bot Literario"
	brandIcon    = "❦"
	searchHolder = "Buscar libros..."
	soon         = "(próximamente)"
)

// SidebarView renders the navigation sidebar.
type SidebarView struct {
	Theme     sidebar.Theme
	Collapsed bool
	Overlay   bool
	Height    int

	// Search is the rendered search input; SearchFocused highlights it.
	Search        string
	SearchFocused bool

	// Notice is a one-line status shown under the search box.
	Notice string

	theme *styles.Theme
}

// NewSidebarView creates a view drawn with theme.
func NewSidebarView(theme *styles.Theme) *SidebarView {
	return &SidebarView{theme: theme}
}

// Width is the number of columns the view occupies.
func (v *SidebarView) Width() int {
	if v.Collapsed && !v.Overlay {
		return SidebarCollapsedWidth
	}
	return SidebarWidth
}

// View renders the sidebar.
func (v *SidebarView) View() string {
	if v.Collapsed && !v.Overlay {
		return v.viewCollapsed()
	}
	return v.viewFull()
}

func (v *SidebarView) viewFull() string {
	t := v.theme
	frame := t.Sidebar
	if v.Overlay {
		frame = t.SidebarOverlay
	}
	inner := SidebarWidth - frame.GetHorizontalFrameSize()
	fit := func(s string) string { return util.TruncateWidth(s, inner) }

	head := t.SidebarIcon.Render(brandIcon) + " " + t.SidebarBrand.Render(fit(brand))

	search := v.Search
	if search == "" {
		search = t.InputHint.Render(searchHolder)
	}
	box := t.SearchBox
	if v.SearchFocused {
		box = t.SearchBoxFocused
	}
	searchBox := box.Width(inner - box.GetHorizontalBorderSize()).Render(search)

	toggle := t.ThemeToggleIcon.Render(themeIcon(v.Theme)) + " " + t.ThemeToggle.Render(fit(v.Theme.Label()))

	account := lipgloss.JoinVertical(lipgloss.Left,
		t.SidebarDisabled.Render(fit("→ Iniciar Sesión")),
		t.SidebarDisabled.Render(fit("+ Registrarse")),
		t.SidebarDisabled.Render(fit("  "+soon)),
	)

	hints := lipgloss.JoinVertical(lipgloss.Left,
		shortcut(t, "ctrl+b", "menú", inner),
		shortcut(t, "ctrl+t", "tema", inner),
		shortcut(t, "ctrl+f", "buscar", inner),
		shortcut(t, "esc", "cerrar", inner),
	)

	top := lipgloss.JoinVertical(lipgloss.Left, head, "", searchBox)
	if v.Notice != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, top, t.InputHint.Render(fit(v.Notice)))
	}
	bottom := lipgloss.JoinVertical(lipgloss.Left,
		t.SidebarSection.Width(inner).Render(toggle),
		t.SidebarSection.Width(inner).Render(account),
		t.SidebarSection.Width(inner).Render(hints),
	)

	body := top
	if gap := v.Height - frame.GetVerticalFrameSize() - lipgloss.Height(top) - lipgloss.Height(bottom); gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	body = lipgloss.JoinVertical(lipgloss.Left, body, bottom)

	return frame.Width(SidebarWidth - frame.GetHorizontalBorderSize()).Render(body)
}

func (v *SidebarView) viewCollapsed() string {
	t := v.theme
	frame := t.Sidebar.Padding(1, 0)
	width := SidebarCollapsedWidth - frame.GetHorizontalBorderSize()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	body := lipgloss.JoinVertical(lipgloss.Center,
		center.Render(t.SidebarIcon.Render(brandIcon)),
		"",
		center.Render(t.SidebarItem.Render("⌕")),
		center.Render(t.ThemeToggleIcon.Render(themeIcon(v.Theme))),
	)
	if v.Height > 0 {
		frame = frame.Height(v.Height - frame.GetVerticalFrameSize())
	}
	return frame.Width(width).Render(body)
}

// themeIcon shows the theme the toggle switches to.
func themeIcon(t sidebar.Theme) string {
	if t.IsDark() {
		return "☀"
	}
	return "☾"
}

func shortcut(t *styles.Theme, key, desc string, width int) string {
	k := t.ShortcutKey.Render(key)
	rest := width - lipgloss.Width(k) - 1
	return k + " " + t.ShortcutDesc.Render(util.TruncateWidth(desc, rest))
}
