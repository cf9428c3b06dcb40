// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/prefs"
	"github.com/Davidcm2803/bot-literario/internal/sidebar"
	"github.com/Davidcm2803/bot-literario/internal/ui/components"
)

type stubBackend struct{}

func (stubBackend) Ping(context.Context) error { return nil }
func (stubBackend) Answer(context.Context, string) (string, error) {
	return "respuesta", nil
}

func newShell(t *testing.T, store prefs.Store, width int) *Model {
	t.Helper()
	conv := conversation.New(stubBackend{}, conversation.Options{Suggestions: []string{"a", "b", "c"}})
	m := New(conv, store, Options{NarrowWidth: 80})
	m.Update(tea.WindowSizeMsg{Width: width, Height: 40})
	return m
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestShell_MountReadsTheme(t *testing.T) {
	store := prefs.NewMemoryStore()
	require.NoError(t, store.Set(prefs.KeyTheme, "dark"))

	m := newShell(t, store, 120)
	assert.Equal(t, sidebar.ThemeDark, m.side.Theme())
	assert.True(t, m.theme.IsDark)
	assert.Contains(t, m.View(), "Modo Claro")
}

func TestShell_ToggleThemePersists(t *testing.T) {
	store := prefs.NewMemoryStore()
	m := newShell(t, store, 120)

	press(m, tea.KeyCtrlT)
	assert.True(t, m.theme.IsDark)
	v, ok, err := store.Get(prefs.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", v)

	remounted := newShell(t, store, 120)
	assert.Equal(t, sidebar.ThemeDark, remounted.side.Theme())
}

func TestShell_WideLayout(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 120)
	view := m.View()
	assert.Contains(t, view, "Bot Literario")
	assert.Contains(t, view, components.Title)
	assert.LessOrEqual(t, lipgloss.Width(view), 120)

	press(m, tea.KeyCtrlB)
	assert.True(t, m.side.Collapsed())
	assert.False(t, m.lock.Held(), "collapsing never locks scrolling")
	assert.NotContains(t, m.View(), "Bot Literario")
}

func TestShell_NarrowOverlay(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 60)
	assert.NotContains(t, m.View(), "Bot Literario", "sidebar hidden when narrow")

	press(m, tea.KeyCtrlB)
	assert.True(t, m.side.MobileOpen())
	assert.True(t, m.lock.Held())
	view := m.View()
	assert.Contains(t, view, "Bot Literario")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}

	// Typing is swallowed by the modal overlay.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "", m.conv.Draft())

	press(m, tea.KeyEsc)
	assert.False(t, m.side.MobileOpen())
	assert.False(t, m.lock.Held())
}

func TestShell_WideningClosesOverlay(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 60)
	press(m, tea.KeyCtrlB)
	require.True(t, m.lock.Held())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.False(t, m.side.MobileOpen())
	assert.False(t, m.lock.Held())
}

func TestShell_Search(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 120)

	press(m, tea.KeyCtrlF)
	assert.True(t, m.searching)
	assert.False(t, m.chat.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Cortázar")})
	assert.Equal(t, "Cortázar", m.side.Search())
	assert.Equal(t, "", m.conv.Draft(), "search keys do not reach the panel")

	press(m, tea.KeyEnter)
	assert.False(t, m.searching)
	assert.True(t, m.chat.Focused())
	assert.Equal(t, "Buscando: Cortázar", m.notice)
	assert.Empty(t, m.conv.Messages(), "search is not a question")
}

func TestShell_SearchOpensOverlayWhenNarrow(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 60)

	press(m, tea.KeyCtrlF)
	assert.True(t, m.side.MobileOpen())
	assert.True(t, m.searching)

	press(m, tea.KeyEsc)
	assert.False(t, m.searching)
	assert.True(t, m.side.MobileOpen(), "first esc leaves search only")

	press(m, tea.KeyEsc)
	assert.False(t, m.side.MobileOpen())
}

func TestShell_TypingReachesPanel(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 120)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hola")})
	assert.Equal(t, "hola", m.conv.Draft())
}

func TestShell_QuitClosesControllers(t *testing.T) {
	m := newShell(t, prefs.NewMemoryStore(), 60)
	press(m, tea.KeyCtrlB)
	require.True(t, m.lock.Held())

	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.False(t, m.lock.Held())

	_, ok := m.conv.Submit("tarde")
	assert.False(t, ok)
}

func TestOverlay(t *testing.T) {
	out := overlay("abcdef\nghijkl", "XY\nZW", lipgloss.NewStyle())
	assert.Equal(t, "XYcdef\nZWijkl", out)
}
