// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Davidcm2803/bot-literario/internal/ui/components"
	"github.com/Davidcm2803/bot-literario/internal/util"
)

// View renders the panel at exactly its assigned height.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Cargando..."
	}

	snap := m.ctrl.Snapshot()

	header := components.Header(m.theme, m.width, snap.Reachability)

	var body string
	if len(snap.Messages) == 0 {
		list := components.NewSuggestionList(m.theme, snap.Suggestions)
		list.Width = m.width
		list.Selected = m.suggestion
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, list.View())
	} else {
		body = m.viewport.View()
	}

	thinking := ""
	if snap.Pending {
		thinking = m.spinner.View() + " " + m.theme.ThinkingText.Render("Biblio IA está pensando…")
	}

	input := m.theme.InputContainer.
		Width(max(m.width-2, 1)).
		Render(m.input.View())

	hint := m.renderHint(snap.Pending)
	footer := components.Footer(m.theme, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		thinking,
		input,
		hint,
		footer,
	)

	// Clamp to the assigned height so the shell layout never shifts.
	lines := strings.Split(view, "\n")
	if len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHint(pending bool) string {
	t := m.theme
	parts := []string{t.ShortcutKey.Render("Enter") + " " + t.ShortcutDesc.Render("para enviar")}
	if pending {
		parts = append(parts, t.ShortcutKey.Render("Esc")+" "+t.ShortcutDesc.Render("cancelar"))
	}
	hint := strings.Join(parts, "  ")
	if lipgloss.Width(hint) > m.width {
		hint = util.TruncateWidth("Enter para enviar", m.width)
	}
	return t.InputHint.Render(hint)
}
